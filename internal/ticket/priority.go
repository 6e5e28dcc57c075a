// Package ticket builds, filters, renders and updates helpdesk tickets.
package ticket

import "github.com/jvs-project/helpdesk/pkg/model"

// PriorityFor derives a ticket's priority from its category and whether the
// reporter is blocked. Unknown categories are LOW.
func PriorityFor(category string, blocked bool) model.Priority {
	switch model.Category(model.Lower(category)) {
	case model.CategoryPhishing:
		return model.PriorityHigh
	case model.CategoryNetwork:
		if blocked {
			return model.PriorityHigh
		}
		return model.PriorityMedium
	case model.CategoryAccess, model.CategorySystemFailure:
		if blocked {
			return model.PriorityMedium
		}
		return model.PriorityLow
	default:
		return model.PriorityLow
	}
}
