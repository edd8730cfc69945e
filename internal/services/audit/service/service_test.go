package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scrutiny/internal/modkit/repokit"
	"scrutiny/internal/services/audit/domain"
)

// fakeRepo records inserts and can be told to fail
type fakeRepo struct {
	inserted []domain.Entry
	fail     bool
}

func (f *fakeRepo) Insert(_ context.Context, e domain.Entry) error {
	if f.fail {
		return errors.New("boom")
	}
	f.inserted = append(f.inserted, e)
	return nil
}

func (f *fakeRepo) RecentByUser(_ context.Context, _ string, _ int) ([]domain.Entry, error) {
	return f.inserted, nil
}

// fakeTx satisfies repokit.TxRunner without a database
type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error   { return fn(fakeTx{}) }

func newTestSvc(repo *fakeRepo) *Svc {
	binder := repokit.BindFunc[domain.Repo](func(repokit.Queryer) domain.Repo { return repo })
	return New(fakeTx{}, binder)
}

func TestRecord_FillsDefaults(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	s := newTestSvc(repo)

	s.Record(context.Background(), domain.Entry{
		Surface:    "scrutiny",
		Severity:   "high",
		TextSample: "bad text",
	})

	if len(repo.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(repo.inserted))
	}
	e := repo.inserted[0]
	if e.ID == "" {
		t.Fatalf("id not generated")
	}
	if e.CreatedAt.IsZero() || time.Since(e.CreatedAt) > time.Minute {
		t.Fatalf("created_at = %v", e.CreatedAt)
	}
	if e.Violations == nil {
		t.Fatalf("violations not defaulted")
	}
}

func TestRecord_SampleSanitizedAndCapped(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	s := newTestSvc(repo)

	s.Record(context.Background(), domain.Entry{
		Surface:    "scrutiny",
		Severity:   "high",
		TextSample: "bad\x00text " + strings.Repeat("a", 500),
	})

	e := repo.inserted[0]
	if strings.ContainsRune(e.TextSample, 0) {
		t.Fatalf("sample kept a control byte: %q", e.TextSample)
	}
	if len(e.TextSample) > 100 {
		t.Fatalf("sample length = %d, want <= 100", len(e.TextSample))
	}
	if !strings.HasPrefix(e.TextSample, "badtext ") {
		t.Fatalf("sample = %q", e.TextSample)
	}
}

func TestRecord_InsertFailureDoesNotPanic(t *testing.T) {
	t.Parallel()

	s := newTestSvc(&fakeRepo{fail: true})

	// must log and count, never propagate
	s.Record(context.Background(), domain.Entry{Surface: "scrutiny", Severity: "high"})
}

func TestNop_Record(t *testing.T) {
	t.Parallel()

	Nop{}.Record(context.Background(), domain.Entry{Surface: "x"})
}
