package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func restoreState(t *testing.T) {
	origEnabled := state.enabled.Load()
	origOverridden := state.overridden.Load()
	t.Cleanup(func() {
		state.enabled.Store(origEnabled)
		state.overridden.Store(origOverridden)
	})
}

func TestEnableDisable(t *testing.T) {
	restoreState(t)

	Enable()
	assert.True(t, Enabled(), "expected colors to be enabled after Enable()")

	Disable()
	assert.False(t, Enabled(), "expected colors to be disabled after Disable()")
}

func TestDisabledReturnsPlainText(t *testing.T) {
	restoreState(t)
	Disable()

	fns := map[string]func(string) string{
		"Success":  Success,
		"Error":    Error,
		"Warning":  Warning,
		"Header":   Header,
		"Dim":      Dim,
		"TicketID": TicketID,
		"Code":     Code,
		"Priority": Priority,
		"Status":   Status,
	}
	for name, fn := range fns {
		assert.Equal(t, "HIGH", fn("HIGH"), name)
	}
}

func TestEnabledKeepsText(t *testing.T) {
	restoreState(t)
	Enable()

	for _, label := range []string{"LOW", "MEDIUM", "HIGH"} {
		assert.Contains(t, Priority(label), label)
	}
	for _, label := range []string{"OPEN", "IN_PROGRESS", "CLOSED", "UNKNOWN"} {
		assert.Contains(t, Status(label), label)
	}
}
