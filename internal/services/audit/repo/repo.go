// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"
	"fmt"

	"scrutiny/internal/modkit/repokit"
	"scrutiny/internal/services/audit/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements domain.Repo
var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// schemaDDL is idempotent so every boot can run it
const schemaDDL = `
CREATE TABLE IF NOT EXISTS moderation_audit (
	id          uuid PRIMARY KEY,
	surface     text NOT NULL,
	context     text NOT NULL DEFAULT '',
	user_id     text NOT NULL DEFAULT '',
	severity    text NOT NULL,
	level       int  NOT NULL,
	score       int  NOT NULL,
	violations  text[] NOT NULL DEFAULT '{}',
	text_sample text NOT NULL DEFAULT '',
	request_id  text NOT NULL DEFAULT '',
	created_at  timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS moderation_audit_user_idx
	ON moderation_audit (user_id, created_at DESC);
`

// EnsureSchema creates the audit table if it does not exist
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("audit: ensure schema: %w", err)
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, e domain.Entry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO moderation_audit
			(id, surface, context, user_id, severity, level, score, violations, text_sample, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID, e.Surface, e.Context, e.UserID, e.Severity, e.Level, e.Score, e.Violations, e.TextSample, e.RequestID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("audit: insert: %w", err)
	}
	return nil
}

func (r *queries) RecentByUser(ctx context.Context, userID string, limit int) ([]domain.Entry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, surface, context, user_id, severity, level, score, violations, text_sample, request_id, created_at
		FROM moderation_audit
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: recent by user: %w", err)
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID, &e.Surface, &e.Context, &e.UserID, &e.Severity,
			&e.Level, &e.Score, &e.Violations, &e.TextSample, &e.RequestID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit: rows: %w", err)
	}
	return out, nil
}
