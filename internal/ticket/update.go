package ticket

import (
	"github.com/jvs-project/helpdesk/pkg/errclass"
	"github.com/jvs-project/helpdesk/pkg/model"
)

// StatusPrompter asks the operator for a replacement status, given the
// ticket's current one.
type StatusPrompter func(current model.Status) (string, error)

// Find returns the index of the first ticket with id, or -1.
func Find(tickets []model.Ticket, id string) int {
	for i := range tickets {
		if tickets[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateStatus changes the status of the ticket with id in place. It
// reports whether a ticket was modified; callers persist the slice when it
// was. ask is only called once the ticket has been found.
func UpdateStatus(tickets []model.Ticket, id string, ask StatusPrompter) (bool, error) {
	i := Find(tickets, id)
	if i < 0 {
		return false, errclass.ErrTicketNotFound.WithMessagef("no ticket with id %q", id)
	}

	raw, err := ask(tickets[i].Status)
	if err != nil {
		return false, err
	}
	status, err := model.ParseStatus(raw)
	if err != nil {
		return false, err
	}

	tickets[i].Status = status
	return true, nil
}
