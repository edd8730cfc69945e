// Package service implements the classifier-backed moderation decision
package service

import (
	"context"
	"math"
	"strings"
	"time"

	"scrutiny/internal/adapters/classifier"
	"scrutiny/internal/core/lexicon"
	"scrutiny/internal/core/normalize"
	perr "scrutiny/internal/platform/errors"
	"scrutiny/internal/platform/logger"
	"scrutiny/internal/platform/metrics"
	"scrutiny/internal/services/api/moderation/domain"
	auditdom "scrutiny/internal/services/audit/domain"
)

// Decision thresholds. The high lexicon boost (0.50) deliberately exceeds
// the high threshold so a severe-term match blocks even when the model is
// down
const (
	highThreshold     = 0.40
	moderateThreshold = 0.60

	boostHigh     = 0.50
	boostModerate = 0.20
)

// Service is the port the HTTP layer calls
type Service interface {
	Check(ctx context.Context, in domain.CheckInput) (domain.CheckOutput, error)
}

// Svc combines lexicon boost and classifier probabilities into a verdict
type Svc struct {
	lex   *lexicon.Lexicon
	cls   classifier.Port
	audit auditdom.RecorderPort
	now   func() time.Time

	// boost terms pre-normalized with the same pipeline as the input, so
	// multi-word phrases survive the consecutive-run collapse
	boostTerms []string
}

var _ Service = (*Svc)(nil)

// New constructs the moderation service
func New(lex *lexicon.Lexicon, cls classifier.Port, audit auditdom.RecorderPort) *Svc {
	if lex == nil {
		panic("moderation.Service requires a non-nil Lexicon")
	}
	if cls == nil {
		panic("moderation.Service requires a non-nil classifier")
	}
	if audit == nil {
		audit = noopRecorder{}
	}
	terms := make([]string, 0, len(lex.Boost()))
	for _, t := range lex.Boost() {
		if nt := normalize.Phrases(t); nt != "" {
			terms = append(terms, nt)
		}
	}
	return &Svc{lex: lex, cls: cls, audit: audit, now: time.Now, boostTerms: terms}
}

// Check moderates one piece of text
func (s *Svc) Check(ctx context.Context, in domain.CheckInput) (domain.CheckOutput, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.CheckOutput{}, perr.InvalidArgf("text must not be blank")
	}
	start := s.now()

	normalized := normalize.Phrases(in.Text)
	bHigh, bModerate := s.boost(normalized)

	// classifier failures degrade to lexicon-only: fail open on the model,
	// never on the severe-term list
	scores, err := s.cls.Classify(ctx, normalized)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("classifier unavailable, degrading to lexicon only")
		scores = nil
	}

	byLabel := map[string]float64{}
	for _, ls := range scores {
		byLabel[ls.Label] = ls.Score
	}

	highProb := max3(byLabel["severe_toxic"], byLabel["threat"], byLabel["identity_hate"]) + bHigh
	moderateProb := max3(byLabel["toxic"], byLabel["obscene"], byLabel["insult"]) + bModerate

	severity := domain.SeverityNormal
	allow := true
	switch {
	case highProb >= highThreshold:
		severity = domain.SeverityHigh
		allow = false
	case moderateProb >= moderateThreshold:
		severity = domain.SeverityModerate
		allow = false
	}

	dist := distribute(highProb, moderateProb)
	out := domain.CheckOutput{
		Severity:   severity,
		Allow:      allow,
		Scores:     dist,
		DurationMS: s.now().Sub(start).Milliseconds(),
	}

	metrics.ModerationChecks.WithLabelValues(string(severity)).Inc()
	if !allow {
		// persist the deciding probability as a percent so blocked rows
		// carry the verdict strength, not just the label
		verdict := dist.High
		if severity == domain.SeverityModerate {
			verdict = dist.Moderate
		}
		s.audit.Record(ctx, auditdom.Entry{
			Surface:    "moderation",
			Context:    in.Context,
			UserID:     in.UserID,
			Severity:   string(severity),
			Score:      int(math.Round(verdict * 100)),
			Violations: []string{"classifier verdict " + string(severity)},
			TextSample: in.Text,
		})
	}
	return out, nil
}

// boost returns the lexicon boost for a normalized text. Substring
// matching on the phrase-normal form catches embedded and spaced terms
func (s *Svc) boost(normalized string) (high, moderate float64) {
	for _, term := range s.boostTerms {
		if strings.Contains(normalized, term) {
			return boostHigh, boostModerate
		}
	}
	return 0, 0
}

// distribute synthesizes a distribution over {normal, moderate, high}
// that sums to ~1 for UI and logging
func distribute(highProb, moderateProb float64) domain.Scores {
	clampedHigh := min(highProb, 1)
	clampedMod := min(moderateProb, 1)
	estNormal := 1 - max(clampedHigh, clampedMod)
	if estNormal < 0 {
		estNormal = 0
	}
	sum := estNormal + clampedMod + clampedHigh
	if sum <= 0 {
		return domain.Scores{Normal: 1}
	}
	return domain.Scores{
		Normal:   estNormal / sum,
		Moderate: clampedMod / sum,
		High:     clampedHigh / sum,
	}
}

func max3(a, b, c float64) float64 { return max(a, max(b, c)) }

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, auditdom.Entry) {}
