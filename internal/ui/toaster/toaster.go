// Package toaster shows submission feedback as a transient box near the
// bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/recipebox/internal/ui/overlay"
	"github.com/zjrosen/recipebox/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess is used for accepted recipes.
	StyleSuccess Style = iota
	// StyleWarn is used for blank submissions.
	StyleWarn
	// StyleError is used for duplicates.
	StyleError
)

// Model holds the toaster state. Each Show starts a new generation so a
// dismiss timer started for an older toast cannot hide a newer one.
type Model struct {
	message string
	style   Style
	visible bool
	gen     int
	width   int
	height  int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays message with the given style, replacing any current toast.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = true
	m.gen++
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the current toast.
func (m Model) Message() string {
	return m.message
}

// Style returns the style of the current toast.
func (m Model) Style() Style {
	return m.style
}

// SetSize updates the viewport dimensions for overlay positioning.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// DismissMsg hides the toast of generation Gen.
type DismissMsg struct {
	Gen int
}

// ScheduleDismiss returns a command that dismisses the current toast after d.
func (m Model) ScheduleDismiss(d time.Duration) tea.Cmd {
	gen := m.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{Gen: gen}
	})
}

// Update handles DismissMsg. Messages from older generations are ignored.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Gen == m.gen {
		return m.Hide()
	}
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	switch m.style {
	case StyleWarn:
		return styles.ToastWarnStyle.Render("⚠ " + m.message)
	case StyleError:
		return styles.ToastErrorStyle.Render("✗ " + m.message)
	default:
		return styles.ToastSuccessStyle.Render("✓ " + m.message)
	}
}

// Overlay renders the toast bottom-centered on top of bg.
func (m Model) Overlay(bg string) string {
	if !m.visible || m.message == "" {
		return bg
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
