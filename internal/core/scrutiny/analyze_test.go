package scrutiny

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnalyze_BlankInput(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	for _, in := range []string{"", "   ", "\n\t  "} {
		res := e.Analyze(in)
		if res.Level != LevelClean || res.Score != 0 {
			t.Fatalf("Analyze(%q) = %+v, want clean zero", in, res)
		}
		if res.Violations == nil || len(res.Violations) != 0 {
			t.Fatalf("Analyze(%q).Violations = %#v, want empty non-nil", in, res.Violations)
		}
		if res.OffendingWords == nil || len(res.OffendingWords) != 0 {
			t.Fatalf("Analyze(%q).OffendingWords = %#v, want empty non-nil", in, res.OffendingWords)
		}
	}
}

func TestAnalyze_CleanSentence(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.Analyze("what a lovely afternoon for a walk")
	if res.Level != LevelClean {
		t.Fatalf("level = %d, want clean; result %+v", res.Level, res)
	}
	if res.Score != 0 {
		t.Fatalf("score = %d, want 0", res.Score)
	}
}

func TestAnalyze_ProfanityIsSevere(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	for _, in := range []string{"fuck you", "f.u.c.k you", "m@d@rch0d", "गांडू", "रण्डी"} {
		res := e.Analyze(in)
		if res.Level != LevelSevere {
			t.Fatalf("Analyze(%q).Level = %d, want severe", in, res.Level)
		}
		if len(res.OffendingWords) == 0 {
			t.Fatalf("Analyze(%q) recorded no offending words", in)
		}
	}
}

func TestAnalyze_ObfuscatedAndPlainAgree(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	plain := e.Analyze("fuck you")
	dotted := e.Analyze("f.u.c.k you")
	if plain.Level != dotted.Level {
		t.Fatalf("plain level %d, dotted level %d", plain.Level, dotted.Level)
	}
	if !reflect.DeepEqual(plain.OffendingWords, dotted.OffendingWords) {
		t.Fatalf("offending mismatch: %v vs %v", plain.OffendingWords, dotted.OffendingWords)
	}
}

func TestAnalyze_CharRunOnly(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.Analyze(strings.Repeat("a", 200))
	if res.Score < charRunScore {
		t.Fatalf("score = %d, want at least %d", res.Score, charRunScore)
	}
	if res.Level < LevelCaution {
		t.Fatalf("level = %d, want at least caution", res.Level)
	}
	if len(res.OffendingWords) != 0 {
		t.Fatalf("offending words for structural violation: %v", res.OffendingWords)
	}
	found := false
	for _, v := range res.Violations {
		if v == tagCharRepetition {
			found = true
		}
	}
	if !found {
		t.Fatalf("violations %v missing char repetition tag", res.Violations)
	}
}

func TestAnalyze_AggressiveCapsTag(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.Analyze("STOP POSTING THIS GARBAGE RIGHT NOW")
	if res.Score != capsScore {
		t.Fatalf("score = %d, want %d", res.Score, capsScore)
	}
	if res.Level != LevelCaution {
		t.Fatalf("level = %d, want caution", res.Level)
	}
	if len(res.Violations) != 1 || res.Violations[0] != tagAggressiveCaps {
		t.Fatalf("violations = %v", res.Violations)
	}
}

func TestAnalyze_StackedStructuralSignalsBlock(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	// caps + char run: 6 + 5 = 11, blocked but not severe
	res := e.Analyze("STOP SPAMMING THIS CHANNEL " + strings.Repeat("!", 10))
	if res.Score != capsScore+charRunScore {
		t.Fatalf("score = %d, want %d", res.Score, capsScore+charRunScore)
	}
	if res.Level != LevelBlocked {
		t.Fatalf("level = %d, want blocked", res.Level)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	in := "F.U.C.K you " + strings.Repeat("!", 12)
	first := e.Analyze(in)
	for range 10 {
		if got := e.Analyze(in); !reflect.DeepEqual(got, first) {
			t.Fatalf("nondeterministic: %+v vs %+v", got, first)
		}
	}
}

func TestAnalyze_ScoreMonotonicWithSignals(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	just := e.Analyze("fuck")
	more := e.Analyze("fuck " + strings.Repeat("!", 12))
	if more.Score <= just.Score {
		t.Fatalf("adding a signal did not raise the score: %d then %d", just.Score, more.Score)
	}
	if more.Level < just.Level {
		t.Fatalf("adding a signal lowered the level: %d then %d", just.Level, more.Level)
	}
}

func TestAnalyze_ViolationsDeduped(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	res := e.Analyze("fuck shit bastard chutiya")
	count := 0
	for _, v := range res.Violations {
		if v == tagAbusive {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("abusive tag appears %d times: %v", count, res.Violations)
	}
}
