// Package color provides terminal styling for helpdesk output.
// It respects the NO_COLOR environment variable (https://no-color.org/).
package color

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

var state struct {
	once       sync.Once
	enabled    atomic.Bool
	overridden atomic.Bool
}

// Init decides whether styling is on. NO_COLOR, TERM=dumb and the explicit
// flag all turn it off. Enable/Disable calls made earlier take precedence.
func Init(noColorFlag bool) {
	state.once.Do(func() {
		if state.overridden.Load() {
			return
		}
		_, noColorEnv := os.LookupEnv("NO_COLOR")
		disabled := noColorEnv || os.Getenv("TERM") == "dumb" || noColorFlag
		state.enabled.Store(!disabled)
	})
}

// Enabled returns true if styled output is enabled.
func Enabled() bool {
	Init(false)
	return state.enabled.Load()
}

// Disable turns off styled output.
func Disable() {
	state.overridden.Store(true)
	state.enabled.Store(false)
}

// Enable turns on styled output. lipgloss still downgrades to plain text
// when the output is not a terminal.
func Enable() {
	state.overridden.Store(true)
	state.enabled.Store(true)
}

// Palette, adaptive to light and dark terminals.
var (
	colorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMute = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorLink = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(colorPass)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	failStyle   = lipgloss.NewStyle().Foreground(colorFail)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMute)
	accentStyle = lipgloss.NewStyle().Foreground(colorLink)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLink)
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

func render(style lipgloss.Style, s string) string {
	if !Enabled() {
		return s
	}
	return style.Render(s)
}

// Success formats a success message in green.
func Success(s string) string { return render(passStyle, s) }

// Error formats an error message in red.
func Error(s string) string { return render(failStyle, s) }

// Warning formats a warning message in yellow.
func Warning(s string) string { return render(warnStyle, s) }

// Header formats a section header.
func Header(s string) string { return render(headerStyle, s) }

// Dim formats secondary information.
func Dim(s string) string { return render(mutedStyle, s) }

// TicketID formats a ticket identifier.
func TicketID(s string) string { return render(accentStyle, s) }

// Code formats commands and literal values.
func Code(s string) string { return render(boldStyle, s) }

// Priority colors a priority label by urgency.
func Priority(p string) string {
	switch p {
	case "HIGH":
		return render(failStyle.Bold(true), p)
	case "MEDIUM":
		return render(warnStyle, p)
	default:
		return render(mutedStyle, p)
	}
}

// Status colors a status label.
func Status(s string) string {
	switch s {
	case "OPEN":
		return render(accentStyle, s)
	case "IN_PROGRESS":
		return render(warnStyle, s)
	case "CLOSED":
		return render(passStyle, s)
	default:
		return s
	}
}
