package ticket

import (
	"strings"
	"time"

	"github.com/jvs-project/helpdesk/internal/clock"
	"github.com/jvs-project/helpdesk/pkg/model"
	"github.com/jvs-project/helpdesk/pkg/uuidutil"
)

// Factory stamps new tickets with an identifier and creation time.
type Factory struct {
	clock clock.Clock
	newID func() string
}

// NewFactory creates a Factory. A nil clock or id generator falls back to
// the system clock and uuidutil.ShortID.
func NewFactory(clk clock.Clock, newID func() string) *Factory {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if newID == nil {
		newID = uuidutil.ShortID
	}
	return &Factory{clock: clk, newID: newID}
}

// New builds an OPEN ticket from operator input. The category is normalized
// but not validated; callers check membership first. Identifiers are random
// and not checked against existing tickets.
func (f *Factory) New(user, category string, blocked bool, description string) model.Ticket {
	return model.Ticket{
		ID:          f.newID(),
		CreatedAt:   f.clock.Now().Truncate(time.Second),
		User:        strings.TrimSpace(user),
		Category:    model.Category(model.Lower(category)),
		Blocked:     blocked,
		Priority:    PriorityFor(category, blocked),
		Status:      model.StatusOpen,
		Description: strings.TrimSpace(description),
	}
}
