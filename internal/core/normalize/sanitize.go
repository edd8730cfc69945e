package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize scrubs text before it is truncated into audit rows:
// drops NUL, ASCII controls except \n \r \t, DEL, C1 controls
// U+0080..U+009F, and invalid UTF-8 bytes.
// Returns s unchanged when nothing needs cleaning
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	if clean(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c < 0x20 {
			if c == '\n' || c == '\r' || c == '\t' {
				b.WriteByte(c)
			}
			i++
			continue
		}
		if c == 0x7F {
			i++
			continue
		}
		if c < 0x80 {
			b.WriteByte(c)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++ // invalid byte, drop
			continue
		}
		if r >= 0x80 && r <= 0x9F {
			i += size // C1 control, drop
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// clean reports whether s needs no scrubbing, so the common case avoids
// an allocation
func clean(s string) bool {
	for i := 0; i < len(s); {
		c := s[i]
		if c < 0x20 {
			if c != '\n' && c != '\r' && c != '\t' {
				return false
			}
			i++
			continue
		}
		if c == 0x7F {
			return false
		}
		if c < 0x80 {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if r >= 0x80 && r <= 0x9F {
			return false
		}
		i += size
	}
	return true
}

// Truncate caps s at max bytes without splitting a rune, used when logging
// or persisting message samples
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
