// Package errclass defines the stable error classes reported by helpdesk.
package errclass

import "fmt"

// HelpdeskError is a stable, machine-readable error class.
type HelpdeskError struct {
	Code    string
	Message string
}

func (e *HelpdeskError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any HelpdeskError carrying the same Code, so errors.Is works
// against the base classes below regardless of message.
func (e *HelpdeskError) Is(target error) bool {
	t, ok := target.(*HelpdeskError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new HelpdeskError with the same Code but a specific message.
func (e *HelpdeskError) WithMessage(msg string) *HelpdeskError {
	return &HelpdeskError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new HelpdeskError with a formatted message.
func (e *HelpdeskError) WithMessagef(format string, args ...any) *HelpdeskError {
	return &HelpdeskError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Stable error classes.
var (
	ErrCategoryInvalid  = &HelpdeskError{Code: "E_CATEGORY_INVALID"}
	ErrStatusInvalid    = &HelpdeskError{Code: "E_STATUS_INVALID"}
	ErrPriorityInvalid  = &HelpdeskError{Code: "E_PRIORITY_INVALID"}
	ErrTicketNotFound   = &HelpdeskError{Code: "E_TICKET_NOT_FOUND"}
	ErrRowMalformed     = &HelpdeskError{Code: "E_ROW_MALFORMED"}
	ErrRoleUnknown      = &HelpdeskError{Code: "E_ROLE_UNKNOWN"}
	ErrActionUnknown    = &HelpdeskError{Code: "E_ACTION_UNKNOWN"}
	ErrAuditChainBroken = &HelpdeskError{Code: "E_AUDIT_CHAIN_BROKEN"}
	ErrConfigInvalid    = &HelpdeskError{Code: "E_CONFIG_INVALID"}
)
