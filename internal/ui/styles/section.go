package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rounded border characters.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Section is a bordered box with an inline title, an optional hint next to
// the title and an optional footer right-aligned in the bottom border:
//
//	╭─ Title (hint) ─────╮
//	│content             │
//	╰────────── footer ─╯
type Section struct {
	Title   string
	Hint    string
	Footer  string
	Width   int
	Focused bool
}

// Render draws content inside the section border. Lines shorter than the
// inner width are padded; the border turns BorderFocusColor when focused.
func (s Section) Render(content []string) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if s.Focused {
		borderColor = BorderFocusColor
	}

	border := lipgloss.NewStyle().Foreground(borderColor)
	title := lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	muted := lipgloss.NewStyle().Foreground(TextMutedColor)

	inner := max(s.Width-2, 1)

	var b strings.Builder
	if s.Title == "" {
		b.WriteString(border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight))
	} else {
		heading := s.Title
		if s.Hint != "" {
			heading += " (" + s.Hint + ")"
		}
		// "─ " before the heading and " " after it
		fill := max(inner-lipgloss.Width(heading)-3, 0)

		b.WriteString(border.Render(borderTopLeft + borderHorizontal + " "))
		b.WriteString(title.Render(s.Title))
		if s.Hint != "" {
			b.WriteString(" " + muted.Render("("+s.Hint+")"))
		}
		b.WriteString(border.Render(" " + strings.Repeat(borderHorizontal, fill) + borderTopRight))
	}

	for _, line := range content {
		pad := max(inner-lipgloss.Width(line), 0)
		b.WriteString("\n")
		b.WriteString(border.Render(borderVertical))
		b.WriteString(line + strings.Repeat(" ", pad))
		b.WriteString(border.Render(borderVertical))
	}

	b.WriteString("\n")
	if s.Footer == "" {
		b.WriteString(border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight))
	} else {
		// " footer ─" sits at the right edge
		fill := max(inner-lipgloss.Width(s.Footer)-3, 0)
		b.WriteString(border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, fill) + " "))
		b.WriteString(muted.Render(s.Footer))
		b.WriteString(border.Render(" " + borderHorizontal + borderBottomRight))
	}

	return b.String()
}
