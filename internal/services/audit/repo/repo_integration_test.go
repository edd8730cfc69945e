//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"scrutiny/internal/platform/store"
	"scrutiny/internal/services/audit/domain"
)

// startPostgres launches a disposable Postgres and returns its DSN
func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	pgc, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("postgres"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pgc.Terminate(context.Background()) })

	dsn, err := pgc.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	return dsn
}

func TestAuditRepo_Integration(t *testing.T) {
	dsn := startPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	if err := EnsureSchema(ctx, st.PG); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// idempotent
	if err := EnsureSchema(ctx, st.PG); err != nil {
		t.Fatalf("EnsureSchema rerun: %v", err)
	}

	repo := NewPG().Bind(st.PG)

	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := domain.Entry{
		ID:         uuid.NewString(),
		Surface:    "scrutiny",
		Context:    "comment",
		UserID:     "u-integration",
		Severity:   "high",
		Level:      3,
		Score:      15,
		Violations: []string{"abusive language detected"},
		TextSample: "f.u.c.k you",
		RequestID:  "req-1",
		CreatedAt:  now,
	}
	if err := repo.Insert(ctx, entry); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.RecentByUser(ctx, "u-integration", 10)
	if err != nil {
		t.Fatalf("RecentByUser: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	e := got[0]
	if e.ID != entry.ID || e.Severity != "high" || e.Score != 15 {
		t.Fatalf("row = %+v", e)
	}
	if len(e.Violations) != 1 || e.Violations[0] != entry.Violations[0] {
		t.Fatalf("violations = %v", e.Violations)
	}
	if !e.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", e.CreatedAt, now)
	}

	// unknown user yields no rows, not an error
	none, err := repo.RecentByUser(ctx, "nobody", 10)
	if err != nil {
		t.Fatalf("RecentByUser(nobody): %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("rows for unknown user: %+v", none)
	}
}
