// Package domain defines the wire types for the moderation API
package domain

// Severity buckets a classifier-backed verdict
type Severity string

const (
	// SeverityNormal means nothing crossed a threshold
	SeverityNormal Severity = "normal"
	// SeverityModerate means the toxic/obscene/insult signal crossed its threshold
	SeverityModerate Severity = "moderate"
	// SeverityHigh means the severe_toxic/threat/identity_hate signal crossed its threshold
	SeverityHigh Severity = "high"
)

// CheckInput is the request body for a moderation check
type CheckInput struct {
	Text    string `json:"text" validate:"required"`
	Context string `json:"context" validate:"omitempty,max=64"`
	UserID  string `json:"user_id" validate:"omitempty,max=128"`
}

// Scores is the synthesized probability distribution returned to callers
type Scores struct {
	Normal   float64 `json:"normal"`
	Moderate float64 `json:"moderate"`
	High     float64 `json:"high"`
}

// CheckOutput is the moderation verdict
type CheckOutput struct {
	Severity   Severity `json:"severity"`
	Allow      bool     `json:"allow"`
	Scores     Scores   `json:"scores"`
	DurationMS int64    `json:"duration_ms"`
}
