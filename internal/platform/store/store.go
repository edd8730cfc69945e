// Package store provides the storage seams repos are written against and
// the Postgres adapter behind them
package store

import (
	"context"
	"errors"

	"scrutiny/internal/platform/store/pg"
)

// Row is the minimal scan contract for a single row
type Row interface {
	Scan(dest ...any) error
}

// Rows is the minimal iteration contract for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag inspects command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Config selects and configures backends
type Config struct {
	PG PGConfig
}

// PGConfig configures the Postgres backend
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
}

// Store is the facade over configured backends; PG is nil when disabled
type Store struct {
	PG TxRunner

	pgClient *pg.PG
}

// Open constructs a Store with the requested backends
func Open(ctx context.Context, cfg Config) (*Store, error) {
	s := &Store{}
	if cfg.PG.Enabled {
		client, err := pg.Open(ctx, pg.Config{URL: cfg.PG.URL, MaxConns: cfg.PG.MaxConns})
		if err != nil {
			return nil, err
		}
		s.pgClient = client
		s.PG = newPGAdapter(client)
	}
	return s, nil
}

// Guard verifies the configured backends respond
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.PG != nil {
		var one int
		if err := s.PG.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Close releases backend resources
func (s *Store) Close(ctx context.Context) error {
	if s != nil && s.pgClient != nil {
		s.pgClient.Close()
	}
	return nil
}
