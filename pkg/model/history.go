package model

import "time"

// TicketEventType identifies the type of recorded ticket event.
type TicketEventType string

const (
	EventTypeTicketCreate TicketEventType = "ticket_create"
	EventTypeTicketStatus TicketEventType = "ticket_status"
)

// HashValue is a SHA-256 hash stored as hex string.
type HashValue string

// TicketEvent is a single line in the history log (JSONL format).
type TicketEvent struct {
	Timestamp  time.Time       `json:"timestamp"`
	EventType  TicketEventType `json:"event_type"`
	TicketID   string          `json:"ticket_id"`
	Details    map[string]any  `json:"details,omitempty"`
	PrevHash   HashValue       `json:"prev_hash"`
	RecordHash HashValue       `json:"record_hash"`
}
