package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/unireport/viewer/internal/domain/audit"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the events table when it does not exist yet.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS viewer_audit_events (
 id         VARCHAR(36)  NOT NULL PRIMARY KEY,
 at         TIMESTAMPTZ  NOT NULL,
 session_id VARCHAR(36)  NOT NULL,
 username   VARCHAR(190) NOT NULL,
 action     VARCHAR(32)  NOT NULL,
 target     VARCHAR(512) NOT NULL,
 detail     VARCHAR(512) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_viewer_audit_at ON viewer_audit_events (at);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Save insert one audit event
func (r *AuditRepository) Save(ctx context.Context, e *domain.Event) error {
	const q = `
INSERT INTO viewer_audit_events
(id, at, session_id, username, action, target, detail)
VALUES ($1,$2,$3,$4,$5,$6,$7);
`
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	username := e.Username
	if strings.TrimSpace(username) == "" {
		username = "-"
	}

	_, err := r.db.ExecContext(ctx, q,
		e.ID, at, e.SessionID, username,
		string(e.Action), e.Target, e.Detail,
	)
	return err
}

// Latest events, newest first
func (r *AuditRepository) Latest(ctx context.Context, limit int) ([]*domain.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, at, session_id, username, action, target, detail
FROM viewer_audit_events
ORDER BY at DESC LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		var e domain.Event
		var action string
		if err := rows.Scan(
			&e.ID, &e.At, &e.SessionID, &e.Username, &action, &e.Target, &e.Detail,
		); err != nil {
			return nil, err
		}
		e.Action = domain.Action(action)
		out = append(out, &e)
	}
	return out, rows.Err()
}

var _ domain.Store = (*AuditRepository)(nil)
