// Package service runs the heuristic pipeline for the scrutiny API
package service

import (
	"context"
	"strconv"

	core "scrutiny/internal/core/scrutiny"
	perr "scrutiny/internal/platform/errors"
	"scrutiny/internal/platform/metrics"
	"scrutiny/internal/services/api/scrutiny/domain"
	auditdom "scrutiny/internal/services/audit/domain"
)

// Service is the port the HTTP layer calls
type Service interface {
	Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeOutput, error)
	Gate(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeOutput, error)
}

// Svc evaluates text and records anything worth keeping
type Svc struct {
	engine *core.Engine
	audit  auditdom.RecorderPort
}

var _ Service = (*Svc)(nil)

// New constructs the scrutiny service
func New(engine *core.Engine, audit auditdom.RecorderPort) *Svc {
	if engine == nil {
		panic("scrutiny.Service requires a non-nil Engine")
	}
	if audit == nil {
		audit = noopRecorder{}
	}
	return &Svc{engine: engine, audit: audit}
}

// Analyze evaluates the text and returns the verdict without enforcing it
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeOutput, error) {
	res := s.engine.Analyze(in.Text)
	metrics.ScrutinyEvaluations.WithLabelValues(strconv.Itoa(int(res.Level))).Inc()

	if res.Level >= core.LevelCaution {
		s.audit.Record(ctx, auditdom.Entry{
			Surface:    "scrutiny",
			Context:    in.Context,
			UserID:     in.UserID,
			Severity:   severityName(res.Level),
			Level:      int(res.Level),
			Score:      res.Score,
			Violations: res.Violations,
			TextSample: in.Text,
		})
	}
	return domain.FromResult(res), nil
}

// Gate evaluates the text and rejects it when the verdict blocks sending
func (s *Svc) Gate(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeOutput, error) {
	out, err := s.Analyze(ctx, in)
	if err != nil {
		return domain.AnalyzeOutput{}, err
	}
	if !out.Allow {
		return domain.AnalyzeOutput{}, perr.Forbiddenf("transmission blocked due to policy violations")
	}
	return out, nil
}

func severityName(l core.Level) string {
	switch {
	case l >= core.LevelSevere:
		return "high"
	case l >= core.LevelBlocked:
		return "moderate"
	default:
		return "low"
	}
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, auditdom.Entry) {}
