package normalize

import (
	"strings"
	"unicode"
)

// Phrases returns the space-preserving normal form used by the moderation
// decision path, where multi-word lexicon phrases ("kill yourself") must
// survive. Unlike Normalize it keeps word boundaries:
// lowercase, a small confusable subset, punctuation removal (word chars and
// whitespace survive), and consecutive-run collapse so "chuuutiya" matches
// "chutiya". Trimmed on both ends
func Phrases(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		switch r {
		case '@':
			r = 'a'
		case '1':
			r = 'i'
		case '0':
			r = 'o'
		case '$':
			r = 's'
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			continue
		}
		if r == prev {
			continue // collapse runs
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.TrimSpace(b.String())
}
