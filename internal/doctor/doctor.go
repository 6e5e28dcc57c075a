// Package doctor runs health checks over the ticket file and the event
// history.
package doctor

import (
	"fmt"

	"github.com/jvs-project/helpdesk/internal/store"
	"github.com/jvs-project/helpdesk/pkg/model"
)

// Severity levels for findings. Only warnings leave the desk healthy.
const (
	SeverityCritical = "critical"
	SeverityError    = "error"
	SeverityWarning  = "warning"
)

// Finding represents a detected issue.
type Finding struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	TicketID    string `json:"ticket_id,omitempty"`
}

// Result contains doctor check results.
type Result struct {
	Healthy  bool      `json:"healthy"`
	Tickets  int       `json:"tickets"`
	Events   int       `json:"events"`
	Findings []Finding `json:"findings"`
}

// History is the read side of the event log.
type History interface {
	Records() ([]model.TicketEvent, error)
	Verify() error
}

// Doctor performs helpdesk health checks.
type Doctor struct {
	store   store.Store
	history History
}

// NewDoctor creates a new doctor. history may be nil when recording is off.
func NewDoctor(s store.Store, history History) *Doctor {
	return &Doctor{store: s, history: history}
}

// Check runs all diagnostic checks. strict adds the cross-check of history
// events against the ticket file.
func (d *Doctor) Check(strict bool) (*Result, error) {
	result := &Result{Healthy: true, Findings: []Finding{}}

	tickets, ok := d.checkTickets(result)
	if d.history == nil {
		return result, nil
	}
	events, historyOK := d.checkHistory(result)
	if strict && ok && historyOK {
		d.checkOrphanEvents(result, tickets, events)
	}
	return result, nil
}

func (r *Result) add(f Finding) {
	r.Findings = append(r.Findings, f)
	if f.Severity != SeverityWarning {
		r.Healthy = false
	}
}

func (d *Doctor) checkTickets(result *Result) ([]model.Ticket, bool) {
	tickets, err := d.store.Load()
	if err != nil {
		result.add(Finding{
			Category:    "tickets",
			Description: fmt.Sprintf("cannot load tickets: %v", err),
			Severity:    SeverityCritical,
		})
		return nil, false
	}
	result.Tickets = len(tickets)

	seen := make(map[string]int, len(tickets))
	for _, t := range tickets {
		seen[t.ID]++
		if seen[t.ID] == 2 {
			result.add(Finding{
				Category:    "tickets",
				Description: fmt.Sprintf("ticket id %s is used more than once", t.ID),
				Severity:    SeverityError,
				TicketID:    t.ID,
			})
		}
	}
	return tickets, true
}

func (d *Doctor) checkHistory(result *Result) ([]model.TicketEvent, bool) {
	if err := d.history.Verify(); err != nil {
		result.add(Finding{
			Category:    "history",
			Description: err.Error(),
			Severity:    SeverityCritical,
		})
		return nil, false
	}
	events, err := d.history.Records()
	if err != nil {
		result.add(Finding{
			Category:    "history",
			Description: fmt.Sprintf("cannot read history: %v", err),
			Severity:    SeverityError,
		})
		return nil, false
	}
	result.Events = len(events)
	return events, true
}

func (d *Doctor) checkOrphanEvents(result *Result, tickets []model.Ticket, events []model.TicketEvent) {
	known := make(map[string]bool, len(tickets))
	for _, t := range tickets {
		known[t.ID] = true
	}
	reported := make(map[string]bool)
	for _, e := range events {
		if known[e.TicketID] || reported[e.TicketID] {
			continue
		}
		reported[e.TicketID] = true
		result.add(Finding{
			Category:    "history",
			Description: fmt.Sprintf("history mentions ticket %s which is not in the ticket file", e.TicketID),
			Severity:    SeverityWarning,
			TicketID:    e.TicketID,
		})
	}
}
