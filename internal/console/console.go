// Package console runs the interactive helpdesk menu.
//
// The console reads one answer per line from any io.Reader and writes
// prompts and listings to an io.Writer, so a terminal and a scripted test
// drive it the same way. Every menu action loads a fresh snapshot from the
// store; nothing is cached between actions.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jvs-project/helpdesk/internal/store"
	"github.com/jvs-project/helpdesk/internal/ticket"
	"github.com/jvs-project/helpdesk/pkg/color"
	"github.com/jvs-project/helpdesk/pkg/logging"
	"github.com/jvs-project/helpdesk/pkg/model"
)

// History records ticket events. Failures are logged, never fatal.
type History interface {
	Append(eventType model.TicketEventType, ticketID string, details map[string]any) error
}

// Console is the interactive menu loop.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	store   store.Store
	factory *ticket.Factory
	history History
	log     *logging.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithStore sets the ticket store. The default is a FileStore on
// store.DefaultFile.
func WithStore(s store.Store) Option {
	return func(c *Console) { c.store = s }
}

// WithFactory sets the ticket factory.
func WithFactory(f *ticket.Factory) Option {
	return func(c *Console) { c.factory = f }
}

// WithHistory enables event recording.
func WithHistory(h History) Option {
	return func(c *Console) { c.history = h }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Console) { c.log = l }
}

// New creates a console reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = store.NewFileStore(store.DefaultFile)
	}
	if c.factory == nil {
		c.factory = ticket.NewFactory(nil, nil)
	}
	if c.log == nil {
		c.log = logging.Global()
	}
	c.log = c.log.WithFields(map[string]any{"component": "console"})
	return c
}

// errQuit ends the loop on the operator's request.
var errQuit = errors.New("quit")

type command struct {
	key   string
	label string
	run   func(*Console) error
}

var mainMenu = []command{
	{"1", "Create ticket", (*Console).createTicket},
	{"2", "View tickets", (*Console).viewTickets},
	{"3", "Update ticket status", (*Console).updateStatus},
	{"4", "Quit", func(*Console) error { return errQuit }},
}

// Run shows the main menu until the operator quits or input ends.
// Operation failures are reported and the loop continues; only an input
// read error is returned.
func (c *Console) Run() error {
	fmt.Fprintln(c.out, color.Header("=== Helpdesk ==="))
	for {
		fmt.Fprintln(c.out, "\nChoose an option:")
		for _, cmd := range mainMenu {
			fmt.Fprintf(c.out, "%s) %s\n", cmd.key, cmd.label)
		}

		choice, err := c.prompt("Enter 1-4: ")
		if err == nil {
			err = c.dispatch(choice)
		}
		switch {
		case err == nil:
			continue
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		default:
			return err
		}
	}
}

func (c *Console) dispatch(choice string) error {
	for _, cmd := range mainMenu {
		if cmd.key == choice {
			return cmd.run(c)
		}
	}
	fmt.Fprintln(c.out, "Invalid choice.")
	return nil
}

// prompt writes label and returns the next trimmed input line. io.EOF
// signals that input is exhausted.
func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// yesNo asks until the answer is one of y, yes, n, no.
func (c *Console) yesNo(label string) (bool, error) {
	for {
		answer, err := c.prompt(label)
		if err != nil {
			return false, err
		}
		switch model.Lower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, "Please type yes/no (y/n).")
	}
}

// fail reports an operation error to the operator and the log.
func (c *Console) fail(action string, err error) {
	fmt.Fprintf(c.out, "%s could not %s: %v\n", color.Error("Error:"), action, err)
	c.log.ErrorErr(action+" failed", err)
}

func (c *Console) record(eventType model.TicketEventType, ticketID string, details map[string]any) {
	if c.history == nil {
		return
	}
	if err := c.history.Append(eventType, ticketID, details); err != nil {
		c.log.WarnErr("record history", err, map[string]any{"ticket_id": ticketID})
	}
}
