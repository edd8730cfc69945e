package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"scrutiny/internal/platform/store/pg"
)

// pgAdapter maps the pgx surface onto the store seams
type pgAdapter struct {
	client *pg.PG
}

func newPGAdapter(client *pg.PG) *pgAdapter { return &pgAdapter{client: client} }

type pgTag struct{ tag pgconn.CommandTag }

func (t pgTag) String() string      { return t.tag.String() }
func (t pgTag) RowsAffected() int64 { return t.tag.RowsAffected() }

type pgRows struct{ rows pgx.Rows }

func (r pgRows) Next() bool             { return r.rows.Next() }
func (r pgRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r pgRows) Err() error             { return r.rows.Err() }
func (r pgRows) Close()                 { r.rows.Close() }

// Ping reports pool health for readiness probes
func (a *pgAdapter) Ping(ctx context.Context) error { return a.client.Pool.Ping(ctx) }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := a.client.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgTag{tag: tag}, nil
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.client.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgRows{rows: rows}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.client.Pool.QueryRow(ctx, sql, args...)
}

// Tx runs fn inside a transaction, committing on nil error
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.client.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	q := &pgTxQuerier{tx: tx}
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// pgTxQuerier scopes the querier surface to an open transaction
type pgTxQuerier struct {
	tx pgx.Tx
}

func (q *pgTxQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := q.tx.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgTag{tag: tag}, nil
}

func (q *pgTxQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := q.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgRows{rows: rows}, nil
}

func (q *pgTxQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return q.tx.QueryRow(ctx, sql, args...)
}
