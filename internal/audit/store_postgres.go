package audit

import (
	"context"
	"database/sql"
	"fmt"

	id "bloodhound/pkg/domain"
)

// PostgresStore persists the audit trail in the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is the DDL for the audit trail table. Applied by migrations in
// production and by test setup in integration suites.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_events (
    id          BIGSERIAL PRIMARY KEY,
    occurred_at TIMESTAMPTZ NOT NULL,
    action      TEXT NOT NULL,
    user_id     UUID NOT NULL,
    entity_id   UUID NOT NULL,
    gstin_hash  TEXT NOT NULL DEFAULT '',
    decision    TEXT NOT NULL DEFAULT '',
    reason      TEXT NOT NULL DEFAULT '',
    ip          TEXT NOT NULL DEFAULT '',
    user_agent  TEXT NOT NULL DEFAULT '',
    request_id  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_audit_events_entity ON audit_events (entity_id, occurred_at);
`

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	const query = `
		INSERT INTO audit_events
			(occurred_at, action, user_id, entity_id, gstin_hash, decision, reason, ip, user_agent, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		event.Timestamp, string(event.Action), event.UserID.String(), event.EntityID.String(),
		event.GSTINHash, event.Decision, event.Reason, event.IP, event.UserAgent, event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByEntity(ctx context.Context, entityID id.EntityID) ([]Event, error) {
	const query = `
		SELECT occurred_at, action, user_id, entity_id, gstin_hash, decision, reason, ip, user_agent, request_id
		FROM audit_events
		WHERE entity_id = $1
		ORDER BY occurred_at, id`

	rows, err := s.db.QueryContext(ctx, query, entityID.String())
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event              Event
			action             string
			userID, scopedID   string
		)
		if err := rows.Scan(&event.Timestamp, &action, &userID, &scopedID,
			&event.GSTINHash, &event.Decision, &event.Reason, &event.IP, &event.UserAgent, &event.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Action = Action(action)
		if event.UserID, err = id.ParseUserID(userID); err != nil {
			return nil, fmt.Errorf("parse audit user id: %w", err)
		}
		if event.EntityID, err = id.ParseEntityID(scopedID); err != nil {
			return nil, fmt.Errorf("parse audit entity id: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
