// Package service provides the best-effort audit recorder
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scrutiny/internal/core/normalize"
	"scrutiny/internal/modkit/repokit"
	"scrutiny/internal/platform/logger"
	"scrutiny/internal/platform/metrics"
	pnet "scrutiny/internal/platform/net"
	"scrutiny/internal/services/audit/domain"
)

// sampleBytes caps how much of the offending text is retained
const sampleBytes = 100

// Svc writes audit rows. Failures are logged and counted, never
// propagated: a broken audit trail must not block moderation itself
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	now    func() time.Time
}

var _ domain.RecorderPort = (*Svc)(nil)

// New constructs the audit recorder
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("audit.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("audit.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder, now: time.Now}
}

// Record persists one entry best effort. Missing fields are filled in:
// id, created_at, and the request id from ctx
func (s *Svc) Record(ctx context.Context, e domain.Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	if e.RequestID == "" {
		e.RequestID = pnet.RequestID(ctx)
	}
	e.TextSample = normalize.Truncate(normalize.Sanitize(e.TextSample), sampleBytes)
	if e.Violations == nil {
		e.Violations = []string{}
	}

	if err := s.binder.Bind(s.db).Insert(ctx, e); err != nil {
		metrics.AuditWriteFailures.Inc()
		logger.C(ctx).Warn().Err(err).
			Str("surface", e.Surface).
			Str("severity", e.Severity).
			Msg("audit write failed")
	}
}

// RecentByUser lists the latest entries for a user
func (s *Svc) RecentByUser(ctx context.Context, userID string, limit int) ([]domain.Entry, error) {
	return s.binder.Bind(s.db).RecentByUser(ctx, userID, limit)
}

// Nop is a RecorderPort that drops everything, used when Postgres is
// not configured
type Nop struct{}

// Record discards the entry
func (Nop) Record(context.Context, domain.Entry) {}
