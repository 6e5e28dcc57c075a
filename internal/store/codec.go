package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jvs-project/helpdesk/internal/ticket"
	"github.com/jvs-project/helpdesk/pkg/errclass"
	"github.com/jvs-project/helpdesk/pkg/model"
)

// Columns is the header row, in on-disk order.
var Columns = []string{
	"ticket_id", "created_at", "user", "category",
	"blocked", "priority", "status", "description",
}

// validate is shared; building a validator per row is expensive.
var validate = validator.New()

// row is a ticket as it appears on disk, before conversion.
type row struct {
	TicketID    string `validate:"required"`
	CreatedAt   string `validate:"required"`
	User        string
	Category    string `validate:"oneof=access network system_failure phishing"`
	Blocked     string `validate:"oneof=True False"`
	Priority    string
	Status      string `validate:"oneof=OPEN IN_PROGRESS CLOSED"`
	Description string
}

// toRow lays t out in the given column order. Columns the store does not
// know are left empty.
func toRow(t model.Ticket, columns []string) []string {
	values := map[string]string{
		"ticket_id":   t.ID,
		"created_at":  t.CreatedAt.Format(model.TimeLayout),
		"user":        t.User,
		"category":    string(t.Category),
		"blocked":     ticket.FormatBlocked(t.Blocked),
		"priority":    string(t.Priority),
		"status":      string(t.Status),
		"description": t.Description,
	}
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = values[col]
	}
	return out
}

func (r row) ticket() (model.Ticket, error) {
	if err := validate.Struct(r); err != nil {
		return model.Ticket{}, err
	}
	priority, err := model.ParsePriority(r.Priority)
	if err != nil {
		return model.Ticket{}, err
	}
	created, err := time.ParseInLocation(model.TimeLayout, r.CreatedAt, time.Local)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("created_at: %w", err)
	}
	return model.Ticket{
		ID:          r.TicketID,
		CreatedAt:   created,
		User:        r.User,
		Category:    model.Category(r.Category),
		Blocked:     r.Blocked == "True",
		Priority:    priority,
		Status:      model.Status(r.Status),
		Description: r.Description,
	}, nil
}

// readHeader reads the header row and returns the normalized column names.
// It fails with ErrRowMalformed when a known column is missing and returns
// io.EOF for an empty input.
func readHeader(cr *csv.Reader) ([]string, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errclass.ErrRowMalformed.WithMessagef("header: %v", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}
	for _, col := range Columns {
		if !slices.Contains(header, col) {
			return nil, errclass.ErrRowMalformed.WithMessagef("header: missing column %q", col)
		}
	}
	return header, nil
}

// decode reads a header row followed by ticket rows. Columns are matched by
// header name so reordered files still load; a missing column is an error.
func decode(r io.Reader) ([]model.Ticket, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err == io.EOF {
		return []model.Ticket{}, nil
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	tickets := []model.Ticket{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errclass.ErrRowMalformed.WithMessage(err.Error())
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != len(header) {
			return nil, errclass.ErrRowMalformed.WithMessagef("line %d: %d fields, want %d", line, len(rec), len(header))
		}

		field := func(name string) string { return rec[index[name]] }
		t, err := row{
			TicketID:    field("ticket_id"),
			CreatedAt:   field("created_at"),
			User:        field("user"),
			Category:    field("category"),
			Blocked:     field("blocked"),
			Priority:    field("priority"),
			Status:      field("status"),
			Description: field("description"),
		}.ticket()
		if err != nil {
			return nil, errclass.ErrRowMalformed.WithMessagef("line %d: %v", line, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// encode writes the header (when withHeader is set) and one row per ticket,
// both in the given column order.
func encode(w io.Writer, tickets []model.Ticket, columns []string, withHeader bool) error {
	cw := csv.NewWriter(w)
	if withHeader {
		if err := cw.Write(columns); err != nil {
			return err
		}
	}
	for _, t := range tickets {
		if err := cw.Write(toRow(t, columns)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
