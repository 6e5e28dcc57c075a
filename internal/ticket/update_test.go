package ticket_test

import (
	"errors"
	"testing"

	"github.com/jvs-project/helpdesk/internal/ticket"
	"github.com/jvs-project/helpdesk/pkg/errclass"
	"github.com/jvs-project/helpdesk/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(s string) ticket.StatusPrompter {
	return func(model.Status) (string, error) { return s, nil }
}

func TestUpdateStatus_Mutates(t *testing.T) {
	tickets := sampleTickets()

	var seen model.Status
	changed, err := ticket.UpdateStatus(tickets, "d4", func(current model.Status) (string, error) {
		seen = current
		return " in_progress ", nil
	})

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.StatusOpen, seen)
	assert.Equal(t, model.StatusInProgress, tickets[3].Status)
	assert.Equal(t, model.PriorityLow, tickets[3].Priority, "priority is never recomputed")
}

func TestUpdateStatus_NotFound(t *testing.T) {
	tickets := sampleTickets()
	before := sampleTickets()

	changed, err := ticket.UpdateStatus(tickets, "zz", func(model.Status) (string, error) {
		t.Fatal("prompter must not be called for a missing ticket")
		return "", nil
	})

	assert.ErrorIs(t, err, errclass.ErrTicketNotFound)
	assert.False(t, changed)
	assert.Equal(t, before, tickets)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	tickets := sampleTickets()
	before := sampleTickets()

	changed, err := ticket.UpdateStatus(tickets, "a1", answer("DONE"))

	assert.ErrorIs(t, err, errclass.ErrStatusInvalid)
	assert.False(t, changed)
	assert.Equal(t, before, tickets)
}

func TestUpdateStatus_PrompterError(t *testing.T) {
	tickets := sampleTickets()
	sentinel := errors.New("input closed")

	changed, err := ticket.UpdateStatus(tickets, "a1", func(model.Status) (string, error) {
		return "", sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.False(t, changed)
}

func TestUpdateStatus_FirstMatchOnly(t *testing.T) {
	tickets := append(sampleTickets(), model.Ticket{ID: "a1", Status: model.StatusOpen})

	changed, err := ticket.UpdateStatus(tickets, "a1", answer("CLOSED"))

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.StatusClosed, tickets[0].Status)
	assert.Equal(t, model.StatusOpen, tickets[4].Status)
}

func TestFind(t *testing.T) {
	tickets := sampleTickets()
	assert.Equal(t, 2, ticket.Find(tickets, "c3"))
	assert.Equal(t, -1, ticket.Find(tickets, "nope"))
	assert.Equal(t, -1, ticket.Find(nil, "a1"))
}
