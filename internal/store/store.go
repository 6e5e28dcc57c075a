// Package store persists tickets.
//
// The ticket file is the only source of truth. Callers load a fresh
// snapshot for every operation, mutate it in memory and write it back;
// there is no conflict detection, the last writer wins.
package store

import "github.com/jvs-project/helpdesk/pkg/model"

// DefaultFile is the ticket file name used when none is configured.
const DefaultFile = "tickets.csv"

// Store loads and persists the ticket collection.
type Store interface {
	// Load returns all tickets in file order. A missing file is an empty
	// collection, not an error.
	Load() ([]model.Ticket, error)
	// Append persists one new ticket without rewriting existing ones.
	Append(t model.Ticket) error
	// SaveAll replaces the whole collection, preserving slice order.
	SaveAll(tickets []model.Ticket) error
}
