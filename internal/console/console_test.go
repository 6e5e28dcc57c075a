package console_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jvs-project/helpdesk/internal/audit"
	"github.com/jvs-project/helpdesk/internal/clock"
	"github.com/jvs-project/helpdesk/internal/console"
	"github.com/jvs-project/helpdesk/internal/store"
	"github.com/jvs-project/helpdesk/internal/ticket"
	"github.com/jvs-project/helpdesk/pkg/color"
	"github.com/jvs-project/helpdesk/pkg/logging"
	"github.com/jvs-project/helpdesk/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.Disable()
	quiet := logging.NewLogger(logging.LevelError)
	quiet.SetOutput(io.Discard)
	logging.SetGlobal(quiet)
	os.Exit(m.Run())
}

var createdAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)

type event struct {
	kind    model.TicketEventType
	id      string
	details map[string]any
}

type fakeHistory struct {
	events []event
	err    error
}

func (h *fakeHistory) Append(kind model.TicketEventType, id string, details map[string]any) error {
	if h.err != nil {
		return h.err
	}
	h.events = append(h.events, event{kind, id, details})
	return nil
}

type failingStore struct{ err error }

func (s failingStore) Load() ([]model.Ticket, error) { return nil, s.err }
func (s failingStore) Append(model.Ticket) error     { return s.err }
func (s failingStore) SaveAll([]model.Ticket) error  { return s.err }

func seeded() []model.Ticket {
	return []model.Ticket{
		{ID: "aaaa0001", CreatedAt: createdAt, User: "alice", Category: model.CategoryPhishing, Blocked: false, Priority: model.PriorityHigh, Status: model.StatusOpen, Description: "odd invoice mail"},
		{ID: "bbbb0002", CreatedAt: createdAt, User: "bob", Category: model.CategoryAccess, Blocked: true, Priority: model.PriorityMedium, Status: model.StatusInProgress, Description: "locked out"},
	}
}

// run drives a console with one answer per line and returns the transcript.
func run(t *testing.T, s store.Store, h console.History, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	opts := []console.Option{
		console.WithStore(s),
		console.WithFactory(ticket.NewFactory(clock.NewFixed(createdAt), func() string { return "c0ffee00" })),
	}
	if h != nil {
		opts = append(opts, console.WithHistory(h))
	}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, console.New(in, &out, opts...).Run())
	return out.String()
}

func TestRun_QuitImmediately(t *testing.T) {
	out := run(t, store.NewMemoryStore(), nil, "4")

	assert.Contains(t, out, "=== Helpdesk ===")
	assert.Contains(t, out, "1) Create ticket\n2) View tickets\n3) Update ticket status\n4) Quit\n")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestRun_EOFEndsLoop(t *testing.T) {
	var out bytes.Buffer
	c := console.New(strings.NewReader(""), &out, console.WithStore(store.NewMemoryStore()))

	require.NoError(t, c.Run())
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_InvalidChoice(t *testing.T) {
	out := run(t, store.NewMemoryStore(), nil, "9", "", "4")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice."))
}

func TestCreate_AppendsTicket(t *testing.T) {
	s := store.NewMemoryStore()
	h := &fakeHistory{}

	out := run(t, s, h, "1", " dana ", "Network", "maybe", "y", " vpn keeps dropping ", "4")

	assert.Contains(t, out, "Please type yes/no (y/n).")
	assert.Contains(t, out, "Ticket created.\nID: c0ffee00\nPriority: HIGH\nStatus: OPEN\n")

	tickets, _ := s.Load()
	require.Len(t, tickets, 1)
	assert.Equal(t, model.Ticket{
		ID:          "c0ffee00",
		CreatedAt:   createdAt,
		User:        "dana",
		Category:    model.CategoryNetwork,
		Blocked:     true,
		Priority:    model.PriorityHigh,
		Status:      model.StatusOpen,
		Description: "vpn keeps dropping",
	}, tickets[0])

	require.Len(t, h.events, 1)
	assert.Equal(t, model.EventTypeTicketCreate, h.events[0].kind)
	assert.Equal(t, "c0ffee00", h.events[0].id)
	assert.Equal(t, "HIGH", h.events[0].details["priority"])
}

func TestCreate_NoAnswer(t *testing.T) {
	s := store.NewMemoryStore()

	run(t, s, nil, "1", "erin", "access", "NO", "badge expired", "4")

	tickets, _ := s.Load()
	require.Len(t, tickets, 1)
	assert.False(t, tickets[0].Blocked)
	assert.Equal(t, model.PriorityLow, tickets[0].Priority)
}

func TestCreate_InvalidCategoryAborts(t *testing.T) {
	s := store.NewMemoryStore()

	out := run(t, s, nil, "1", "frank", "printer", "4")

	assert.Contains(t, out, "Invalid category. Choose one of: access, network, phishing, system_failure")
	assert.NotContains(t, out, "Ticket created.")
	assert.Zero(t, s.Writes)
}

func TestCreate_StoreFailureKeepsLoopAlive(t *testing.T) {
	out := run(t, failingStore{errors.New("disk full")}, nil, "1", "gina", "phishing", "n", "fake login page", "4")

	assert.Contains(t, out, "Error: could not save ticket: disk full")
	assert.NotContains(t, out, "Ticket created.")
	assert.Contains(t, out, "Goodbye!")
}

func TestCreate_HistoryFailureIsNotFatal(t *testing.T) {
	s := store.NewMemoryStore()
	h := &fakeHistory{err: errors.New("read-only")}

	out := run(t, s, h, "1", "hal", "access", "n", "printer access", "4")

	assert.Contains(t, out, "Ticket created.")
	assert.Equal(t, 1, s.Writes)
}

func TestView_NoTickets(t *testing.T) {
	out := run(t, store.NewMemoryStore(), nil, "2", "4")
	assert.Contains(t, out, "No tickets found.")
	assert.NotContains(t, out, "View tickets:")
}

func TestView_Filters(t *testing.T) {
	out := run(t, store.NewMemoryStore(seeded()...), nil, "2", "1", "3", "6", "8", "7", "4")

	assert.Contains(t, out, "1) All tickets\n2) OPEN tickets\n3) HIGH priority tickets\n4) MEDIUM priority tickets\n5) IN_PROGRESS tickets\n6) CLOSED tickets\n7) Back\n")
	assert.Contains(t, out, "=== All Tickets ===")
	assert.Contains(t, out, "ID: aaaa0001 | User: alice | Category: phishing | Blocked: False | Priority: HIGH | Status: OPEN | Created: 2026-03-01T09:30:00\n  Description: odd invoice mail\n")
	assert.Contains(t, out, "ID: bbbb0002 | User: bob")

	high := out[strings.Index(out, "=== HIGH Priority Tickets ==="):]
	high = high[:strings.Index(high, "View tickets:")]
	assert.Contains(t, high, "aaaa0001")
	assert.NotContains(t, high, "bbbb0002")

	assert.Contains(t, out, "=== CLOSED Tickets ===\nNo tickets to display.")
	assert.Contains(t, out, "Invalid choice.")
}

func TestUpdate_NoTickets(t *testing.T) {
	out := run(t, store.NewMemoryStore(), nil, "3", "4")
	assert.Contains(t, out, "No tickets to update.")
}

func TestUpdate_ChangesStatus(t *testing.T) {
	s := store.NewMemoryStore(seeded()...)
	h := &fakeHistory{}

	out := run(t, s, h, "3", "bbbb0002", " closed ", "4")

	assert.Contains(t, out, "Current status: IN_PROGRESS\nNew status (OPEN / IN_PROGRESS / CLOSED): ")
	assert.Contains(t, out, "Status updated.")

	tickets, _ := s.Load()
	assert.Equal(t, model.StatusClosed, tickets[1].Status)
	assert.Equal(t, model.PriorityMedium, tickets[1].Priority)
	assert.Equal(t, model.StatusOpen, tickets[0].Status)
	assert.Equal(t, 1, s.Writes)

	require.Len(t, h.events, 1)
	assert.Equal(t, model.EventTypeTicketStatus, h.events[0].kind)
	assert.Equal(t, map[string]any{"from": "IN_PROGRESS", "to": "CLOSED"}, h.events[0].details)
}

func TestUpdate_NotFoundLeavesStoreUntouched(t *testing.T) {
	s := store.NewMemoryStore(seeded()...)

	out := run(t, s, nil, "3", "zzzz9999", "4")

	assert.Contains(t, out, "Ticket not found.")
	assert.NotContains(t, out, "Current status")
	tickets, _ := s.Load()
	assert.Equal(t, seeded(), tickets)
	assert.Zero(t, s.Writes)
}

func TestUpdate_InvalidStatusLeavesStoreUntouched(t *testing.T) {
	s := store.NewMemoryStore(seeded()...)

	out := run(t, s, nil, "3", "aaaa0001", "RESOLVED", "4")

	assert.Contains(t, out, "Invalid status.")
	tickets, _ := s.Load()
	assert.Equal(t, seeded(), tickets)
	assert.Zero(t, s.Writes)
}

func TestUpdate_LoadFailure(t *testing.T) {
	out := run(t, failingStore{errors.New("permission denied")}, nil, "3", "4")
	assert.Contains(t, out, "Error: could not load tickets: permission denied")
}

func TestEndToEnd_FileStoreAndHistory(t *testing.T) {
	dir := t.TempDir()
	s := store.NewFileStore(filepath.Join(dir, "tickets.csv"))
	h := audit.NewFileAppender(filepath.Join(dir, ".helpdesk", "history.jsonl"))

	run(t, s, h,
		"1", "ivan", "system_failure", "yes", "server room is hot",
		"3", "c0ffee00", "in_progress",
		"4",
	)

	tickets, err := s.Load()
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, model.StatusInProgress, tickets[0].Status)
	assert.Equal(t, model.PriorityMedium, tickets[0].Priority)

	events, err := h.ForTicket("c0ffee00")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventTypeTicketCreate, events[0].EventType)
	assert.Equal(t, model.EventTypeTicketStatus, events[1].EventType)
	assert.NoError(t, h.Verify())
}
