// Package lexicon loads the embedded word lists and owns the memoized
// obfuscation-matcher cache. The lists are small and static for the process
// lifetime, so the cache is bounded by the lexicon size and never evicted
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed lexicon.json
var embedded []byte

type rawLists struct {
	Version  int      `json:"version"`
	General  []string `json:"general"`
	Regional []string `json:"regional"`
	Boost    []string `json:"boost"`
}

// Lexicon exposes the immutable word lists plus the matcher factory.
// Construct with Load and inject it into the engines; there is no package
// level singleton
type Lexicon struct {
	version  int
	general  []string
	regional []string
	boost    []string

	mu       sync.RWMutex
	matchers map[string]*regexp.Regexp
}

// Load parses the embedded lists, lowercases and dedupes them, and returns
// a ready Lexicon. A malformed embed is a build defect, not a runtime state
func Load() (*Lexicon, error) {
	var raw rawLists
	if err := json.Unmarshal(embedded, &raw); err != nil {
		return nil, fmt.Errorf("lexicon: parse lexicon.json: %w", err)
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported lexicon.json version %d (want 1)", raw.Version)
	}
	lx := &Lexicon{
		version:  raw.Version,
		general:  cleanList(raw.General),
		regional: cleanList(raw.Regional),
		boost:    cleanList(raw.Boost),
		matchers: make(map[string]*regexp.Regexp, len(raw.General)),
	}
	if len(lx.general) == 0 || len(lx.regional) == 0 {
		return nil, fmt.Errorf("lexicon: empty word list")
	}
	return lx, nil
}

// MustLoad is Load for wiring paths where a broken embed should stop the
// process
func MustLoad() *Lexicon {
	lx, err := Load()
	if err != nil {
		panic(err)
	}
	return lx
}

// Version returns the embedded list version
func (lx *Lexicon) Version() int { return lx.version }

// General returns the general-profanity list. Callers must not mutate it
func (lx *Lexicon) General() []string { return lx.general }

// Regional returns the regional-profanity list. Callers must not mutate it
func (lx *Lexicon) Regional() []string { return lx.regional }

// Boost returns the severe-term list consumed by the moderation decision
// layer. Callers must not mutate it
func (lx *Lexicon) Boost() []string { return lx.boost }

// MatcherFor returns the compiled obfuscation matcher for word: the word's
// characters in order with any run of whitespace, punctuation, or
// underscores between every letter, case-insensitive. Built on first
// request and cached for the process lifetime. Two racing first lookups
// both compile the same deterministic pattern and one write wins
func (lx *Lexicon) MatcherFor(word string) *regexp.Regexp {
	lx.mu.RLock()
	re, ok := lx.matchers[word]
	lx.mu.RUnlock()
	if ok {
		return re
	}

	re = compileObfuscated(word)

	lx.mu.Lock()
	if prior, ok := lx.matchers[word]; ok {
		re = prior
	} else {
		lx.matchers[word] = re
	}
	lx.mu.Unlock()
	return re
}

// compileObfuscated builds the per-word pattern, eg "mad" ->
// (?i)m[\s\W_]*a[\s\W_]*d[\s\W_]*
func compileObfuscated(word string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)")
	for _, r := range word {
		b.WriteString(regexp.QuoteMeta(string(r)))
		b.WriteString(`[\s\W_]*`)
	}
	return regexp.MustCompile(b.String())
}

func cleanList(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out) // deterministic iteration for tests and audit output
	return out
}
