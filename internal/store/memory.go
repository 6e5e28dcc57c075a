package store

import (
	"slices"

	"github.com/jvs-project/helpdesk/pkg/model"
)

// MemoryStore is an in-process Store for tests and dry runs.
type MemoryStore struct {
	tickets []model.Ticket
	// Writes counts successful Append and SaveAll calls.
	Writes int
}

// NewMemoryStore returns a store seeded with a copy of tickets.
func NewMemoryStore(tickets ...model.Ticket) *MemoryStore {
	return &MemoryStore{tickets: slices.Clone(tickets)}
}

// Load returns a copy so callers cannot mutate stored state without SaveAll.
func (m *MemoryStore) Load() ([]model.Ticket, error) {
	out := slices.Clone(m.tickets)
	if out == nil {
		out = []model.Ticket{}
	}
	return out, nil
}

func (m *MemoryStore) Append(t model.Ticket) error {
	m.tickets = append(m.tickets, t)
	m.Writes++
	return nil
}

func (m *MemoryStore) SaveAll(tickets []model.Ticket) error {
	m.tickets = slices.Clone(tickets)
	m.Writes++
	return nil
}
