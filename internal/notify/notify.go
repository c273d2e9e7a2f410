// Package notify carries per-table change events from the catalog
// store to subscribed sessions. The feed guarantees only that
// "something changed in this table"; subscribers refetch rather than
// patch.
package notify

import "context"

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Event describes one change. ID is best-effort; consumers must not
// rely on it covering the full extent of the change.
type Event struct {
	Table string `json:"table"`
	Op    Op     `json:"op"`
	ID    string `json:"id,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Subscription delivers events for one table until closed. Close is
// idempotent; the events channel is closed afterwards.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

type Subscriber interface {
	Subscribe(ctx context.Context, table string) (Subscription, error)
}

type Feed interface {
	Publisher
	Subscriber
}
