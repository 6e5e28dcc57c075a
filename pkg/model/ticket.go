// Package model holds the helpdesk data types.
package model

import "time"

// Ticket is a single helpdesk request.
//
// Priority is computed once at creation from Category and Blocked and is
// never recomputed; Status is the only field that changes afterwards.
type Ticket struct {
	ID          string    `json:"ticket_id"`
	CreatedAt   time.Time `json:"created_at"`
	User        string    `json:"user"`
	Category    Category  `json:"category"`
	Blocked     bool      `json:"blocked"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
}

// TimeLayout is the second-precision local timestamp format used on disk.
const TimeLayout = "2006-01-02T15:04:05"
