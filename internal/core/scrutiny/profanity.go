package scrutiny

import (
	"strings"
)

// Profanity scoring: two complementary passes.
//
// The normalized pass merges the whole message (diacritics, case,
// confusables, separators all folded away) and tests plain substring
// containment for every lexicon word. Fast, blunt, catches "f.u.c.k" and
// "m@d@rch0d".
//
// The pattern pass runs each general-lexicon word's cached obfuscation
// matcher over the original text. It catches mixed-separator spellings the
// merge can mangle for certain orderings. Regional words are excluded here:
// the regional list is mostly short Latin transliterations and Devanagari
// forms where a per-character separator pattern would be false-positive
// prone, so they ride the normalized pass only.
//
// A word found by either pass scores once; a second sighting never double
// counts.

const wordScore = 10

// scoreProfanity evaluates raw against the engine's lexicon
func (e *Engine) scoreProfanity(raw string) partial {
	var p partial

	merged := e.norm.Normalize(raw)
	seen := make(map[string]struct{})

	record := func(word string) {
		if _, dup := seen[word]; dup {
			return
		}
		seen[word] = struct{}{}
		p.score += wordScore
		p.offending = append(p.offending, word)
	}

	// Normalized pass: general + regional over the merged text, matching
	// each word's folded form so both sides went through the same transform
	for _, entry := range e.general {
		if strings.Contains(merged, entry.folded) {
			record(entry.word)
		}
	}
	for _, entry := range e.regional {
		if strings.Contains(merged, entry.folded) {
			record(entry.word)
		}
	}

	// Pattern pass: general list only, over the original text
	for _, entry := range e.general {
		if _, dup := seen[entry.word]; dup {
			continue
		}
		if e.lex.MatcherFor(entry.word).MatchString(raw) {
			record(entry.word)
		}
	}

	if len(p.offending) > 0 {
		p.violations = append(p.violations, tagAbusive)
	}
	return p
}
