package service

import (
	"context"
	"math"
	"testing"

	"scrutiny/internal/adapters/classifier"
	"scrutiny/internal/core/lexicon"
	perr "scrutiny/internal/platform/errors"
	"scrutiny/internal/services/api/moderation/domain"
	auditdom "scrutiny/internal/services/audit/domain"
)

// fakeClassifier returns canned scores or a canned error
type fakeClassifier struct {
	scores []classifier.LabelScore
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) ([]classifier.LabelScore, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func newSvc(t *testing.T, cls classifier.Port) *Svc {
	t.Helper()
	return New(lexicon.MustLoad(), cls, nil)
}

func TestCheck_BlankText(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeClassifier{})
	_, err := s.Check(context.Background(), domain.CheckInput{Text: "   "})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}

func TestCheck_CleanText(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeClassifier{scores: []classifier.LabelScore{
		{Label: "toxic", Score: 0.02},
		{Label: "severe_toxic", Score: 0.01},
	}})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "have a nice day"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Severity != domain.SeverityNormal || !out.Allow {
		t.Fatalf("verdict = %+v, want allowed normal", out)
	}
	if out.Scores.Normal <= out.Scores.High {
		t.Fatalf("scores = %+v, normal should dominate", out.Scores)
	}
}

func TestCheck_HighThreshold(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeClassifier{scores: []classifier.LabelScore{
		{Label: "threat", Score: 0.45},
	}})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "borderline text"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Severity != domain.SeverityHigh || out.Allow {
		t.Fatalf("verdict = %+v, want blocked high", out)
	}
}

func TestCheck_ModerateThreshold(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeClassifier{scores: []classifier.LabelScore{
		{Label: "insult", Score: 0.65},
	}})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "borderline text"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Severity != domain.SeverityModerate || out.Allow {
		t.Fatalf("verdict = %+v, want blocked moderate", out)
	}
}

func TestCheck_HighWinsOverModerate(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeClassifier{scores: []classifier.LabelScore{
		{Label: "toxic", Score: 0.95},
		{Label: "severe_toxic", Score: 0.50},
	}})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "very bad text"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Severity != domain.SeverityHigh {
		t.Fatalf("severity = %q, want high", out.Severity)
	}
}

func TestCheck_LexiconBoostBlocksWithoutClassifier(t *testing.T) {
	t.Parallel()

	// classifier down: the severe-term boost alone must cross the high
	// threshold
	s := newSvc(t, &fakeClassifier{err: perr.Unavailablef("down")})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "fuck this"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Severity != domain.SeverityHigh || out.Allow {
		t.Fatalf("verdict = %+v, want blocked high on boost alone", out)
	}
}

func TestCheck_MultiWordBoostTermMatches(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeClassifier{err: perr.Unavailablef("down")})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "go kill yourself"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Allow {
		t.Fatalf("verdict = %+v, want blocked", out)
	}
}

func TestCheck_ClassifierFailureFailsOpen(t *testing.T) {
	t.Parallel()

	// clean text + dead classifier must not block
	s := newSvc(t, &fakeClassifier{err: perr.Unavailablef("down")})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "have a nice day"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !out.Allow || out.Severity != domain.SeverityNormal {
		t.Fatalf("verdict = %+v, want allowed normal", out)
	}
}

func TestCheck_ScoresSumToOne(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeClassifier{scores: []classifier.LabelScore{
		{Label: "toxic", Score: 0.7},
		{Label: "threat", Score: 0.3},
	}})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "some text"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	sum := out.Scores.Normal + out.Scores.Moderate + out.Scores.High
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("scores sum = %v: %+v", sum, out.Scores)
	}
}

// recorderSpy captures audit entries handed to Record
type recorderSpy struct {
	entries []auditdom.Entry
}

func (r *recorderSpy) Record(_ context.Context, e auditdom.Entry) {
	r.entries = append(r.entries, e)
}

func TestCheck_BlockedRecordsVerdictScore(t *testing.T) {
	t.Parallel()

	spy := &recorderSpy{}
	s := New(lexicon.MustLoad(), &fakeClassifier{scores: []classifier.LabelScore{
		{Label: "threat", Score: 0.45},
	}}, spy)

	out, err := s.Check(context.Background(), domain.CheckInput{Text: "borderline text"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Allow {
		t.Fatalf("verdict = %+v, want blocked", out)
	}
	if len(spy.entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(spy.entries))
	}
	e := spy.entries[0]
	if e.Surface != "moderation" || e.Severity != string(domain.SeverityHigh) {
		t.Fatalf("entry = %+v, want moderation/high", e)
	}
	want := int(math.Round(out.Scores.High * 100))
	if e.Score != want || e.Score == 0 {
		t.Fatalf("entry score = %d, want %d (nonzero verdict strength)", e.Score, want)
	}
}

func TestCheck_LeetBoostTerm(t *testing.T) {
	t.Parallel()

	// the phrase normal form folds @ 1 0 $ before the boost lookup
	s := newSvc(t, &fakeClassifier{err: perr.Unavailablef("down")})
	out, err := s.Check(context.Background(), domain.CheckInput{Text: "m@darch0d"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Allow {
		t.Fatalf("verdict = %+v, want blocked", out)
	}
}
