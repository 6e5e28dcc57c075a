package doctor_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvs-project/helpdesk/internal/audit"
	"github.com/jvs-project/helpdesk/internal/doctor"
	"github.com/jvs-project/helpdesk/internal/store"
	"github.com/jvs-project/helpdesk/pkg/model"
)

func testTicket(id string) model.Ticket {
	return model.Ticket{
		ID:          id,
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local),
		User:        "ops",
		Category:    model.CategoryAccess,
		Priority:    model.PriorityLow,
		Status:      model.StatusOpen,
		Description: "badge",
	}
}

type brokenStore struct{}

func (brokenStore) Load() ([]model.Ticket, error) { return nil, errors.New("unreadable") }
func (brokenStore) Append(model.Ticket) error     { return nil }
func (brokenStore) SaveAll([]model.Ticket) error  { return nil }

func TestDoctor_Check_Healthy(t *testing.T) {
	dir := t.TempDir()
	h := audit.NewFileAppender(filepath.Join(dir, "history.jsonl"))
	require.NoError(t, h.Append(model.EventTypeTicketCreate, "aaaa0001", nil))

	doc := doctor.NewDoctor(store.NewMemoryStore(testTicket("aaaa0001")), h)
	result, err := doc.Check(true)
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	assert.Empty(t, result.Findings)
	assert.Equal(t, 1, result.Tickets)
	assert.Equal(t, 1, result.Events)
}

func TestDoctor_Check_NoHistory(t *testing.T) {
	doc := doctor.NewDoctor(store.NewMemoryStore(), nil)
	result, err := doc.Check(true)
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	assert.Zero(t, result.Events)
}

func TestDoctor_Check_UnloadableTickets(t *testing.T) {
	doc := doctor.NewDoctor(brokenStore{}, nil)
	result, err := doc.Check(false)
	require.NoError(t, err)
	assert.False(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, doctor.SeverityCritical, result.Findings[0].Severity)
	assert.Contains(t, result.Findings[0].Description, "unreadable")
}

func TestDoctor_Check_DuplicateIDs(t *testing.T) {
	s := store.NewMemoryStore(testTicket("dup00001"), testTicket("dup00001"), testTicket("dup00001"), testTicket("ok000001"))

	result, err := doctor.NewDoctor(s, nil).Check(false)
	require.NoError(t, err)
	assert.False(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "dup00001", result.Findings[0].TicketID)
	assert.Equal(t, doctor.SeverityError, result.Findings[0].Severity)
}

func TestDoctor_Check_BrokenChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0644))

	result, err := doctor.NewDoctor(store.NewMemoryStore(), audit.NewFileAppender(path)).Check(false)
	require.NoError(t, err)
	assert.False(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "history", result.Findings[0].Category)
	assert.Contains(t, result.Findings[0].Description, "E_AUDIT_CHAIN_BROKEN")
}

func TestDoctor_Check_OrphanEventsOnlyInStrict(t *testing.T) {
	h := audit.NewFileAppender(filepath.Join(t.TempDir(), "history.jsonl"))
	require.NoError(t, h.Append(model.EventTypeTicketCreate, "gone0001", nil))
	require.NoError(t, h.Append(model.EventTypeTicketStatus, "gone0001", nil))
	doc := doctor.NewDoctor(store.NewMemoryStore(), h)

	result, err := doc.Check(false)
	require.NoError(t, err)
	assert.Empty(t, result.Findings)

	result, err = doc.Check(true)
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, doctor.SeverityWarning, result.Findings[0].Severity)
	assert.Equal(t, "gone0001", result.Findings[0].TicketID)
}
