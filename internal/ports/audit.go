package ports

import (
	"context"
	"time"
)

// LookupEvent is one recorded lookup outcome. It stores what happened,
// never the report itself; the audit trail is not a cache.
type LookupEvent struct {
	ID       string
	Handle   string
	Kind     string
	OK       bool
	Error    string
	Duration time.Duration
	At       time.Time
}

// AuditRepository persists lookup outcomes.
type AuditRepository interface {
	Record(ctx context.Context, ev LookupEvent) error
	Recent(ctx context.Context, limit int) ([]LookupEvent, error)
}
