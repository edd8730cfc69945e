// Package scrutiny implements the layered message-scrutiny pipeline:
// a bot-pattern engine for structural anomalies, a profanity engine for
// vocabulary violations, and an aggregator that folds both scores into one
// graduated severity level
package scrutiny

// Level is the ordinal severity of one evaluation
type Level uint8

const (
	// LevelClean means no signal worth acting on
	LevelClean Level = 0
	// LevelCaution means soft signal, show a warning
	LevelCaution Level = 1
	// LevelBlocked means the submission must be rejected
	LevelBlocked Level = 2
	// LevelSevere means a confirmed vocabulary violation or overwhelming score
	LevelSevere Level = 3
)

// Result is the immutable outcome of one evaluation.
// OffendingWords is audit-only and must never be echoed back to the
// submitting client in full; confirming exact bypassed words teaches the
// adversary which variants slipped through
type Result struct {
	Level          Level    `json:"level"`
	Score          int      `json:"score"`
	Violations     []string `json:"violations"`
	OffendingWords []string `json:"-"`
}

// violation reason tags; deduplicated set semantics, insertion order
// irrelevant
const (
	tagCharRepetition = "repetition anomaly (chars)"
	tagWordRepetition = "repetition anomaly (words)"
	tagAggressiveCaps = "excessive aggressive uppercase"
	tagAbusive        = "abusive language detected"
)

// partial is one engine's contribution before aggregation
type partial struct {
	score      int
	violations []string
	offending  []string
}
