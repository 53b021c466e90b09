package domain

import "time"

// OutboxEvent is a pending integration event. Services append events in the
// same write path as the state change; the relay drains unprocessed events to
// the broker and stamps ProcessedAt.
type OutboxEvent struct {
	ID          string     `bson:"_id" json:"id"`
	EventType   string     `bson:"event_type" json:"event_type"`
	Payload     []byte     `bson:"payload" json:"payload"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	ProcessedAt *time.Time `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
}
