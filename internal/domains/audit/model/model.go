package model

import "time"

const (
	TableName  = "audit_logs"
	EntityName = "audit log"

	FieldID         = "id"
	FieldEventID    = "event_id"
	FieldEventType  = "event_type"
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldOccurredAt = "occurred_at"
)

// Log is one consumed domain event.
type Log struct {
	ID         string    `db:"id"`
	EventID    string    `db:"event_id"`
	Topic      string    `db:"topic"`
	EventType  string    `db:"event_type"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Actor      string    `db:"actor"`
	Payload    string    `db:"payload"`
	OccurredAt time.Time `db:"occurred_at"`
	CreatedAt  time.Time `db:"created_at"`
}
