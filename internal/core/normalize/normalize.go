// Package normalize provides the deterministic canonicalizer the scrutiny
// engines match against.
// Pipeline order
// 1 Unicode NFD decomposition, strip combining marks (accents fold to base letters)
// 2 Case folding
// 3 Confusable folding eg 0->o 1/!->i 3->e 4/@->a 5/$->s 7->t
// 4 Separator removal: period hyphen underscore asterisk slash backslash pipe
//   and all whitespace are deleted outright, so "f.u.c.k" and "f u c k"
//   collapse to the same token as "fuck"
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer canonicalizes raw text for lexicon matching.
// It is pure, total over strings, and safe for concurrent use
type Normalizer struct{}

// pool of fresh transformer chains; the chain carries scratch state so each
// caller takes one, uses it, resets it, and puts it back
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,                           // decompose accented forms
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the canonical merged form of s.
// Empty in, empty out; Normalize(Normalize(s)) == Normalize(s)
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	ns = confusableFold(ns)
	return stripSeparators(ns)
}

// confusableFold maps the fixed table of digits and symbols commonly used to
// impersonate letters. The table is deliberately not configurable
func confusableFold(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '0':
			b.WriteRune('o')
		case '1', '!':
			b.WriteRune('i')
		case '3':
			b.WriteRune('e')
		case '4', '@':
			b.WriteRune('a')
		case '5', '$':
			b.WriteRune('s')
		case '7':
			b.WriteRune('t')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripSeparators deletes the separator set entirely rather than replacing
// it with spaces, merging spaced-out letters into one token
func stripSeparators(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '.' || r == '-' || r == '_' || r == '*' ||
			r == '/' || r == '\\' || r == '|':
			// dropped
		case unicode.IsSpace(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
