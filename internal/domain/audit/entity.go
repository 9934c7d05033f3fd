package audit

import (
	"context"
	"time"
)

// Action classifies one viewer access event.
type Action string

const (
	ActionSearch    Action = "search"
	ActionList      Action = "list"
	ActionDownload  Action = "download"
	ActionView      Action = "view"
	ActionSummarize Action = "summarize"
)

// Event is one chain-of-custody record: who looked at whose scan, when,
// and through which view.
type Event struct {
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
	SessionID string    `json:"session_id"`
	Username  string    `json:"username"`
	Action    Action    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Store port (interface for the audit trail backends).
type Store interface {
	Save(ctx context.Context, e *Event) error
	Latest(ctx context.Context, limit int) ([]*Event, error)
}

// NopStore drops events. Used when no audit backend is configured.
type NopStore struct{}

func (NopStore) Save(context.Context, *Event) error { return nil }

func (NopStore) Latest(context.Context, int) ([]*Event, error) { return nil, nil }
