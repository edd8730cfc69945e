// Package domain defines the wire types for the scrutiny API
package domain

import (
	core "scrutiny/internal/core/scrutiny"
)

// AnalyzeInput is the request body for analyze and gate
type AnalyzeInput struct {
	Text    string `json:"text" validate:"required"`
	Context string `json:"context" validate:"omitempty,max=64"`
	UserID  string `json:"user_id" validate:"omitempty,max=128"`
}

// AnalyzeOutput is what callers see. The matched vocabulary words stay
// server side
type AnalyzeOutput struct {
	Level      core.Level `json:"level"`
	Score      int        `json:"score"`
	Violations []string   `json:"violations"`
	Allow      bool       `json:"allow"`
}

// FromResult maps an engine result onto the wire shape
func FromResult(res core.Result) AnalyzeOutput {
	return AnalyzeOutput{
		Level:      res.Level,
		Score:      res.Score,
		Violations: res.Violations,
		Allow:      res.Level < core.LevelBlocked,
	}
}
