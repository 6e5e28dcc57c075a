package ticket

import (
	"fmt"
	"io"
	"strings"

	"github.com/jvs-project/helpdesk/pkg/color"
	"github.com/jvs-project/helpdesk/pkg/model"
)

// View is a named filter over a ticket list. Label is the menu entry,
// Title heads the rendered listing.
type View struct {
	Label string
	Title string
	Match func(model.Ticket) bool
}

func byStatus(s model.Status) func(model.Ticket) bool {
	return func(t model.Ticket) bool { return t.Status == s }
}

func byPriority(p model.Priority) func(model.Ticket) bool {
	return func(t model.Ticket) bool { return t.Priority == p }
}

var (
	ViewAll        = View{Label: "All tickets", Title: "All Tickets", Match: func(model.Ticket) bool { return true }}
	ViewOpen       = View{Label: "OPEN tickets", Title: "OPEN Tickets", Match: byStatus(model.StatusOpen)}
	ViewHigh       = View{Label: "HIGH priority tickets", Title: "HIGH Priority Tickets", Match: byPriority(model.PriorityHigh)}
	ViewMedium     = View{Label: "MEDIUM priority tickets", Title: "MEDIUM Priority Tickets", Match: byPriority(model.PriorityMedium)}
	ViewInProgress = View{Label: "IN_PROGRESS tickets", Title: "IN_PROGRESS Tickets", Match: byStatus(model.StatusInProgress)}
	ViewClosed     = View{Label: "CLOSED tickets", Title: "CLOSED Tickets", Match: byStatus(model.StatusClosed)}
)

// Views lists the views in menu order.
var Views = []View{ViewAll, ViewOpen, ViewHigh, ViewMedium, ViewInProgress, ViewClosed}

// Apply returns the matching tickets in their original order.
func (v View) Apply(tickets []model.Ticket) []model.Ticket {
	var out []model.Ticket
	for _, t := range tickets {
		if v.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Render writes a titled listing, two lines per ticket.
func Render(w io.Writer, title string, tickets []model.Ticket) {
	fmt.Fprintf(w, "\n%s\n", color.Header("=== "+title+" ==="))
	if len(tickets) == 0 {
		fmt.Fprintln(w, "No tickets to display.")
		return
	}
	for _, t := range tickets {
		fields := []string{
			"ID: " + color.TicketID(t.ID),
			"User: " + t.User,
			"Category: " + string(t.Category),
			"Blocked: " + FormatBlocked(t.Blocked),
			"Priority: " + color.Priority(string(t.Priority)),
			"Status: " + color.Status(string(t.Status)),
			"Created: " + t.CreatedAt.Format(model.TimeLayout),
		}
		fmt.Fprintln(w, strings.Join(fields, " | "))
		fmt.Fprintf(w, "  Description: %s\n", t.Description)
	}
}

// FormatBlocked renders the blocked flag the way it is stored.
func FormatBlocked(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
