package scrutiny

import (
	"strings"

	"scrutiny/internal/core/lexicon"
	"scrutiny/internal/core/normalize"
)

// severity thresholds, checked high to low; first match wins
const (
	severeProfanityScore = 10 // one confirmed word always escalates to severe
	severeTotalScore     = 20
	blockedTotalScore    = 10
	cautionTotalScore    = 5
)

// Engine runs the full scrutiny pipeline. It holds no mutable state beyond
// the lexicon's matcher cache, so one Engine serves concurrent requests
type Engine struct {
	lex  *lexicon.Lexicon
	norm *normalize.Normalizer

	// lexicon words folded through the same normalizer as the text, so
	// containment compares like with like (Devanagari entries lose their
	// combining vowel signs exactly as the message text does)
	general  []lexEntry
	regional []lexEntry
}

// lexEntry pairs a lexicon word with its normalized form. The word is what
// gets recorded as offending; the folded form is what matching runs on
type lexEntry struct {
	word   string
	folded string
}

// New constructs an Engine over the given lexicon
func New(lex *lexicon.Lexicon) *Engine {
	if lex == nil {
		panic("scrutiny.Engine requires a non nil lexicon")
	}
	e := &Engine{lex: lex, norm: normalize.New()}
	e.general = foldWords(e.norm, lex.General())
	e.regional = foldWords(e.norm, lex.Regional())
	return e
}

// foldWords normalizes each lexicon word, dropping any that fold to empty
func foldWords(n *normalize.Normalizer, words []string) []lexEntry {
	out := make([]lexEntry, 0, len(words))
	for _, w := range words {
		folded := n.Normalize(w)
		if folded == "" {
			continue
		}
		out = append(out, lexEntry{word: w, folded: folded})
	}
	return out
}

// Analyze evaluates text and returns an immutable Result. Deterministic:
// the same text always yields the same Result. Blank input is the defined
// clean zero, not an error
func (e *Engine) Analyze(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Violations: []string{}, OffendingWords: []string{}}
	}

	// engines are independent; order does not matter
	bot := scoreBotPatterns(text)
	prof := e.scoreProfanity(text)

	total := bot.score + prof.score

	violations := dedupe(bot.violations, prof.violations)

	// the profanity clause and the total clause are both load-bearing even
	// though profanity contributes in multiples of 10 today; keep them
	// separate so lexicon or weight changes cannot silently weaken the gate
	var level Level
	switch {
	case prof.score >= severeProfanityScore || total >= severeTotalScore:
		level = LevelSevere
	case total >= blockedTotalScore:
		level = LevelBlocked
	case total >= cautionTotalScore:
		level = LevelCaution
	default:
		level = LevelClean
	}

	offending := prof.offending
	if offending == nil {
		offending = []string{}
	}

	return Result{
		Level:          level,
		Score:          total,
		Violations:     violations,
		OffendingWords: offending,
	}
}

// dedupe unions tag slices preserving first-seen order
func dedupe(lists ...[]string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, v := range list {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
