// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/recipebox/internal/keys"
	"github.com/zjrosen/recipebox/internal/ui/markdown"
	"github.com/zjrosen/recipebox/internal/ui/overlay"
	"github.com/zjrosen/recipebox/internal/ui/styles"
)

// contentWidth is the markdown wrap width inside the help box.
const contentWidth = 56

// Model holds the help overlay state.
type Model struct {
	visible  bool
	width    int
	height   int
	rendered string
}

// New creates a help overlay rendered with the given glamour style. The
// markdown body is rendered once; if glamour fails the raw markdown is shown
// instead.
func New(style string) Model {
	body := Markdown()
	if r, err := markdown.New(contentWidth, style); err == nil {
		if out, err := r.Render(body); err == nil {
			body = out
		}
	}
	return Model{rendered: body}
}

// Markdown returns the help text as markdown, built from the keymaps.
func Markdown() string {
	var b strings.Builder
	b.WriteString("## Adding recipes\n\n")
	b.WriteString("Type a recipe name and an image URL, then press **enter** on the Add button ")
	b.WriteString("or click it. Names are compared without regard to case, so `Pasta` and `pasta` ")
	b.WriteString("are the same recipe.\n\n")

	b.WriteString("## Form\n\n")
	writeBindings(&b, keys.Form.Next, keys.Form.Prev, keys.Form.Submit)

	b.WriteString("\n## Recipe list\n\n")
	writeBindings(&b, keys.List.Up, keys.List.Down, keys.List.Top, keys.List.Bottom)

	b.WriteString("\n## General\n\n")
	writeBindings(&b, keys.App.Help, keys.App.HelpPlain, keys.App.Escape, keys.App.Quit, keys.App.QuitPlain)
	return b.String()
}

func writeBindings(b *strings.Builder, bindings ...key.Binding) {
	for _, binding := range bindings {
		h := binding.Help()
		fmt.Fprintf(b, "- `%s` %s\n", h.Key, h.Desc)
	}
}

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	return m
}

// Hide closes the overlay.
func (m Model) Hide() Model {
	m.visible = false
	return m
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool {
	return m.visible
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box alone.
func (m Model) View() string {
	title := styles.TitleStyle.Render("Keybindings")
	footer := styles.HintStyle.Render("Press ? or esc to close")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 2).
		Render(title + "\n\n" + m.rendered + "\n\n" + footer)
}

// Overlay centers the help box over background when visible.
func (m Model) Overlay(background string) string {
	if !m.visible {
		return background
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}
