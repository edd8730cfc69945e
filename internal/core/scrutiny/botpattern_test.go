package scrutiny

import (
	"strings"
	"testing"
)

func TestHasCharRun(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"short run", "aaaa", false},
		{"exactly threshold", strings.Repeat("a", 8), true},
		{"run inside text", "wow " + strings.Repeat("!", 9) + " ok", true},
		{"alternating never runs", strings.Repeat("ab", 50), false},
		{"multibyte run", strings.Repeat("é", 8), true},
		{"broken run", "aaaa aaaa", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := hasCharRun(tc.in, charRunThreshold); got != tc.want {
				t.Fatalf("hasCharRun(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestHasRepeatedToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"under threshold", strings.Repeat("buy ", 8), false},
		{"over threshold", strings.Repeat("buy ", 9), true},
		{"distinct words", "one two three four five six seven eight nine", false},
		{"case sensitive tokens", strings.Repeat("Buy buy ", 5), false},
		{"repeat among filler", strings.Repeat("spam now ", 9), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := hasRepeatedToken(tc.in, wordCountThreshold); got != tc.want {
				t.Fatalf("hasRepeatedToken(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestHasAggressiveCaps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"short acronym exempt", "ASAP FYI LOL", false},
		{"all caps rant", "STOP SPAMMING THIS CHANNEL RIGHT NOW", true},
		{"mostly lowercase", "this is a normal sentence with words", false},
		{"mixed below ratio", "HELLO there friend how are you today", false},
		{"digits do not count as letters", "CALL 555 TO 123 CLAIM YOUR PRIZE NOW", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := hasAggressiveCaps(tc.in); got != tc.want {
				t.Fatalf("hasAggressiveCaps(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestScoreBotPatterns_Additive(t *testing.T) {
	t.Parallel()

	// char run + caps in one message
	in := "STOP THIS RIGHT NOW " + strings.Repeat("!", 12) + " PLEASE LISTEN"
	p := scoreBotPatterns(in)
	if p.score != charRunScore+capsScore {
		t.Fatalf("score = %d, want %d", p.score, charRunScore+capsScore)
	}
	if len(p.violations) != 2 {
		t.Fatalf("violations = %v", p.violations)
	}
}
