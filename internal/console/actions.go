package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jvs-project/helpdesk/internal/ticket"
	"github.com/jvs-project/helpdesk/pkg/color"
	"github.com/jvs-project/helpdesk/pkg/errclass"
	"github.com/jvs-project/helpdesk/pkg/model"
)

func categoryNames() string {
	var names []string
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func statusNames() string {
	var names []string
	for _, s := range model.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, " / ")
}

func (c *Console) createTicket() error {
	user, err := c.prompt("Who are you? (name or role): ")
	if err != nil {
		return err
	}

	raw, err := c.prompt("Category (access/network/system_failure/phishing): ")
	if err != nil {
		return err
	}
	category, err := model.ParseCategory(raw)
	if err != nil {
		fmt.Fprintf(c.out, "Invalid category. Choose one of: %s\n", categoryNames())
		return nil
	}

	blocked, err := c.yesNo("Are you blocked from working? (y/n): ")
	if err != nil {
		return err
	}
	description, err := c.prompt("Describe the problem in one line: ")
	if err != nil {
		return err
	}

	t := c.factory.New(user, string(category), blocked, description)
	if err := c.store.Append(t); err != nil {
		c.fail("save ticket", err)
		return nil
	}
	c.log.Info("ticket created", map[string]any{"ticket_id": t.ID, "priority": t.Priority})
	c.record(model.EventTypeTicketCreate, t.ID, map[string]any{
		"user":     t.User,
		"category": string(t.Category),
		"blocked":  t.Blocked,
		"priority": string(t.Priority),
	})

	fmt.Fprintf(c.out, "\n%s\n", color.Success("Ticket created."))
	fmt.Fprintf(c.out, "ID: %s\n", color.TicketID(t.ID))
	fmt.Fprintf(c.out, "Priority: %s\n", color.Priority(string(t.Priority)))
	fmt.Fprintf(c.out, "Status: %s\n", color.Status(string(t.Status)))
	return nil
}

func (c *Console) viewTickets() error {
	tickets, err := c.store.Load()
	if err != nil {
		c.fail("load tickets", err)
		return nil
	}
	if len(tickets) == 0 {
		fmt.Fprintln(c.out, "No tickets found.")
		return nil
	}

	back := strconv.Itoa(len(ticket.Views) + 1)
	for {
		fmt.Fprintln(c.out, "\nView tickets:")
		for i, v := range ticket.Views {
			fmt.Fprintf(c.out, "%d) %s\n", i+1, v.Label)
		}
		fmt.Fprintf(c.out, "%s) Back\n", back)

		choice, err := c.prompt(fmt.Sprintf("Choose 1-%s: ", back))
		if err != nil {
			return err
		}
		if choice == back {
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(ticket.Views) {
			fmt.Fprintln(c.out, "Invalid choice.")
			continue
		}
		v := ticket.Views[n-1]
		ticket.Render(c.out, v.Title, v.Apply(tickets))
	}
}

func (c *Console) updateStatus() error {
	tickets, err := c.store.Load()
	if err != nil {
		c.fail("load tickets", err)
		return nil
	}
	if len(tickets) == 0 {
		fmt.Fprintln(c.out, "No tickets to update.")
		return nil
	}

	id, err := c.prompt("Enter ticket ID to update: ")
	if err != nil {
		return err
	}

	var previous model.Status
	changed, err := ticket.UpdateStatus(tickets, id, func(current model.Status) (string, error) {
		previous = current
		fmt.Fprintf(c.out, "Current status: %s\n", color.Status(string(current)))
		return c.prompt(fmt.Sprintf("New status (%s): ", statusNames()))
	})
	switch {
	case errors.Is(err, errclass.ErrTicketNotFound):
		fmt.Fprintln(c.out, "Ticket not found.")
		return nil
	case errors.Is(err, errclass.ErrStatusInvalid):
		fmt.Fprintln(c.out, "Invalid status.")
		return nil
	case err != nil:
		return err
	}
	if !changed {
		return nil
	}

	if err := c.store.SaveAll(tickets); err != nil {
		c.fail("save tickets", err)
		return nil
	}
	current := tickets[ticket.Find(tickets, id)].Status
	c.log.Info("ticket status changed", map[string]any{"ticket_id": id, "from": previous, "to": current})
	c.record(model.EventTypeTicketStatus, id, map[string]any{
		"from": string(previous),
		"to":   string(current),
	})

	fmt.Fprintln(c.out, color.Success("Status updated."))
	return nil
}
