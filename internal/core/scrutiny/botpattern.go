package scrutiny

import "strings"

// Bot-pattern scoring: structural anomalies independent of vocabulary.
// Three checks, always all evaluated, scores additive and uncapped here.

const (
	charRunThreshold   = 8   // identical rune repeated this many times
	wordCountThreshold = 8   // same token appearing more than this often
	capsMinLetters     = 10  // caps check exempt at or below this many letters
	capsRatio          = 0.8 // uppercase share of letters that trips the check

	charRunScore = 5
	wordRepScore = 4
	capsScore    = 6
)

// scoreBotPatterns evaluates the raw, unnormalized text
func scoreBotPatterns(raw string) partial {
	var p partial

	if hasCharRun(raw, charRunThreshold) {
		p.score += charRunScore
		p.violations = append(p.violations, tagCharRepetition)
	}

	if hasRepeatedToken(raw, wordCountThreshold) {
		p.score += wordRepScore
		p.violations = append(p.violations, tagWordRepetition)
	}

	if hasAggressiveCaps(raw) {
		p.score += capsScore
		p.violations = append(p.violations, tagAggressiveCaps)
	}

	return p
}

// hasCharRun reports whether any single rune repeats n or more times in a
// row. Linear scan: RE2 has no backreferences, so `(.)\1{7,}` cannot be a
// Go regexp
func hasCharRun(s string, n int) bool {
	count := 0
	prev := rune(-1)
	for _, r := range s {
		if r == prev {
			count++
			if count >= n {
				return true
			}
			continue
		}
		prev = r
		count = 1
	}
	return false
}

// hasRepeatedToken splits on whitespace and reports whether any exact token
// occurs strictly more than max times in the message
func hasRepeatedToken(s string, max int) bool {
	fields := strings.Fields(s)
	if len(fields) <= max {
		return false
	}
	counts := make(map[string]int, len(fields))
	for _, w := range fields {
		counts[w]++
		if counts[w] > max {
			return true
		}
	}
	return false
}

// hasAggressiveCaps reports whether uppercase letters dominate the message.
// Counts ASCII letters only, matching what the consuming surfaces submit;
// messages with few letters are exempt so acronyms do not trip it
func hasAggressiveCaps(s string) bool {
	var upper, letters int
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			upper++
			letters++
		case c >= 'a' && c <= 'z':
			letters++
		}
	}
	if letters <= capsMinLetters {
		return false
	}
	return float64(upper)/float64(letters) > capsRatio
}
