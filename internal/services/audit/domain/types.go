// Package domain defines the audit trail types and ports
package domain

import (
	"context"
	"time"
)

// Entry is one persisted moderation event. TextSample holds at most the
// first 100 bytes of the offending text, control-stripped; the full text
// is never stored
type Entry struct {
	ID         string
	Surface    string
	Context    string
	UserID     string
	Severity   string
	Level      int
	// Score is the integer signal strength: the scrutiny total for the
	// scrutiny surface, the verdict probability in percent for moderation
	Score int
	Violations []string
	TextSample string
	RequestID  string
	CreatedAt  time.Time
}

// Repo is the persistence port for audit entries
type Repo interface {
	Insert(ctx context.Context, e Entry) error
	RecentByUser(ctx context.Context, userID string, limit int) ([]Entry, error)
}

// RecorderPort is what other modules use to record events
type RecorderPort interface {
	Record(ctx context.Context, e Entry)
}
