package model

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/jvs-project/helpdesk/pkg/errclass"
)

// Category classifies what a ticket is about.
type Category string

const (
	CategoryAccess        Category = "access"
	CategoryNetwork       Category = "network"
	CategorySystemFailure Category = "system_failure"
	CategoryPhishing      Category = "phishing"
)

var categories = []Category{
	CategoryAccess,
	CategoryNetwork,
	CategoryPhishing,
	CategorySystemFailure,
}

// Categories returns the known categories in sorted order.
func Categories() []Category {
	return slices.Clone(categories)
}

// ParseCategory normalizes s and checks it against the known categories.
func ParseCategory(s string) (Category, error) {
	c := Category(Lower(s))
	if !c.Valid() {
		return "", errclass.ErrCategoryInvalid.WithMessagef("unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(categories, c)
}

// Priority is the urgency derived from category and blocked flag.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority accepts only the exact stored labels.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", errclass.ErrPriorityInvalid.WithMessagef("unknown priority %q", s)
}

// Status is the mutable lifecycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusClosed     Status = "CLOSED"
)

var statuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

// Statuses returns the known statuses in workflow order.
func Statuses() []Status {
	return slices.Clone(statuses)
}

// ParseStatus trims and upper-cases s, then checks it against the known
// statuses.
func ParseStatus(s string) (Status, error) {
	st := Status(Upper(s))
	if !slices.Contains(statuses, st) {
		return "", errclass.ErrStatusInvalid.WithMessagef("unknown status %q", s)
	}
	return st, nil
}

// Lower trims, NFC-normalizes and lower-cases operator input.
func Lower(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(s)))
}

// Upper trims, NFC-normalizes and upper-cases operator input.
func Upper(s string) string {
	return cases.Upper(language.Und).String(norm.NFC.String(strings.TrimSpace(s)))
}
