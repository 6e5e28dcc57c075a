// Package accessgate answers whether a role may perform an action.
//
// The permission table is static. Checks run in a fixed order: the role
// must be known, then the action, and only then is the table consulted, so
// the three kinds of denial are distinguishable by their message.
package accessgate

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jvs-project/helpdesk/pkg/errclass"
	"github.com/jvs-project/helpdesk/pkg/model"
)

// Role is a caller's role.
type Role string

// Action is an operation a role may attempt.
type Action string

const (
	RoleGuest   Role = "guest"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"

	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

var actions = []Action{ActionView, ActionEdit, ActionDelete}

var permissions = map[Role]map[Action]bool{
	RoleGuest:   {ActionView: true, ActionEdit: false, ActionDelete: false},
	RoleManager: {ActionView: true, ActionEdit: true, ActionDelete: false},
	RoleAdmin:   {ActionView: true, ActionEdit: true, ActionDelete: true},
}

// Decision is the outcome of a permission lookup for a known pair.
type Decision struct {
	Role    Role   `json:"role"`
	Action  Action `json:"action"`
	Allowed bool   `json:"allowed"`
}

// Message is the human-readable verdict.
func (d Decision) Message() string {
	if d.Allowed {
		return fmt.Sprintf("ALLOW: %s may %s", d.Role, d.Action)
	}
	return fmt.Sprintf("DENY: %s may not %s", d.Role, d.Action)
}

// Decide looks up role and action after normalizing both. Unknown roles and
// actions are errors rather than denials.
func Decide(role, action string) (Decision, error) {
	r := Role(model.Lower(role))
	perms, ok := permissions[r]
	if !ok {
		return Decision{}, errclass.ErrRoleUnknown.WithMessagef("Unknown role: %s", role)
	}
	a := Action(model.Lower(action))
	if !slices.Contains(actions, a) {
		return Decision{}, errclass.ErrActionUnknown.WithMessagef("Unknown action: %s", action)
	}
	return Decision{Role: r, Action: a, Allowed: perms[a]}, nil
}

// Check reports whether role may perform action, with a reason.
func Check(role, action string) (bool, string) {
	d, err := Decide(role, action)
	if err != nil {
		var he *errclass.HelpdeskError
		if errors.As(err, &he) {
			return false, he.Message
		}
		return false, err.Error()
	}
	return d.Allowed, d.Message()
}

// Roles returns the known roles, sorted.
func Roles() []Role {
	return slices.Sorted(maps.Keys(permissions))
}

// Actions returns the known actions, sorted.
func Actions() []Action {
	return slices.Sorted(slices.Values(actions))
}
