// Package recipelist renders the accepted recipes in insertion order.
package recipelist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/recipebox/internal/cachemanager"
	"github.com/zjrosen/recipebox/internal/keys"
	"github.com/zjrosen/recipebox/internal/log"
	"github.com/zjrosen/recipebox/internal/presentation"
	"github.com/zjrosen/recipebox/internal/recipe"
	"github.com/zjrosen/recipebox/internal/ui/styles"
)

// LeaveMsg is sent when focus tabs out of the list.
type LeaveMsg struct{}

type rowInput struct {
	recipe   presentation.RecipeDTO
	width    int
	selected bool
	showKind bool
}

func (r rowInput) key() string {
	return fmt.Sprintf("%s\x00%s\x00%d\x00%t\x00%t", r.recipe.Label, r.recipe.ImageRef, r.width, r.selected, r.showKind)
}

// Model holds the list state. The cursor doubles as the scroll anchor: the
// view always keeps the selected recipe on screen.
type Model struct {
	recipes  []presentation.RecipeDTO
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
	showKind bool
	rows     *cachemanager.ReadThroughCache[string, string, rowInput]
}

// New creates a list whose rendered rows are kept in cache.
func New(cache cachemanager.CacheManager[string, string]) Model {
	return Model{
		showKind: true,
		rows:     cachemanager.NewReadThroughCache(cache, renderRow),
	}
}

// SetShowKind toggles the image kind badge.
func (m Model) SetShowKind(show bool) Model {
	m.showKind = show
	return m
}

// SetSize sets the outer dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.clampOffset()
}

// SetItems replaces the snapshot. When the list grew the newest recipe is
// selected so it is visible right after being added.
func (m Model) SetItems(items []recipe.Item) Model {
	grew := len(items) > len(m.recipes)
	m.recipes = presentation.FromItems(items)
	if grew {
		m.cursor = len(m.recipes) - 1
	}
	m.cursor = min(m.cursor, max(len(m.recipes)-1, 0))
	return m.clampOffset()
}

// Len returns the number of recipes shown.
func (m Model) Len() int {
	return len(m.recipes)
}

// Cursor returns the index of the selected recipe.
func (m Model) Cursor() int {
	return m.cursor
}

// Focus gives the list keyboard focus.
func (m Model) Focus() Model {
	m.focused = true
	return m
}

// Blur removes keyboard focus.
func (m Model) Blur() Model {
	m.focused = false
	return m
}

// Focused reports whether the list has keyboard focus.
func (m Model) Focused() bool {
	return m.focused
}

// InvalidateRows drops every cached row, e.g. after the theme changed.
func (m Model) InvalidateRows() {
	if err := m.rows.Invalidate(context.Background()); err != nil {
		log.ErrorErr(log.CatCache, "failed to flush row cache", err)
	}
}

// Update handles navigation keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.List.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(keyMsg, keys.List.Down):
		m.cursor = min(m.cursor+1, max(len(m.recipes)-1, 0))
	case key.Matches(keyMsg, keys.List.Top):
		m.cursor = 0
	case key.Matches(keyMsg, keys.List.Bottom):
		m.cursor = max(len(m.recipes)-1, 0)
	case key.Matches(keyMsg, keys.Form.Next), key.Matches(keyMsg, keys.Form.Prev):
		return m.Blur(), func() tea.Msg { return LeaveMsg{} }
	}
	return m.clampOffset(), nil
}

func (m Model) innerWidth() int {
	return max(m.width-2, 10)
}

func (m Model) innerHeight() int {
	return max(m.height-2, 1)
}

// clampOffset keeps the cursor row inside the visible window.
func (m Model) clampOffset() Model {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	for m.offset < m.cursor && !m.fits(m.offset, m.cursor) {
		m.offset++
	}
	return m
}

// fits reports whether rows from..to render within the inner height.
func (m Model) fits(from, to int) bool {
	lines := 0
	for i := from; i <= to; i++ {
		lines += lipgloss.Height(m.row(i))
	}
	return lines <= m.innerHeight()
}

func (m Model) row(i int) string {
	in := rowInput{
		recipe:   m.recipes[i],
		width:    m.innerWidth(),
		selected: m.focused && i == m.cursor,
		showKind: m.showKind,
	}
	out, err := m.rows.Get(context.Background(), in.key(), in, cachemanager.DefaultExpiration)
	if err != nil {
		log.ErrorErr(log.CatCache, "failed to render recipe row", err, "label", in.recipe.Label)
	}
	return out
}

// View renders the list panel.
func (m Model) View() string {
	section := styles.Section{
		Title:   "Recipes",
		Hint:    strconv.Itoa(len(m.recipes)),
		Width:   m.width,
		Focused: m.focused,
	}

	var lines []string
	if len(m.recipes) == 0 {
		lines = append(lines, styles.HintStyle.Render(" No recipes yet"))
	}
	for i := m.offset; i < len(m.recipes); i++ {
		rowLines := strings.Split(m.row(i), "\n")
		if len(lines)+len(rowLines) > m.innerHeight() {
			break
		}
		lines = append(lines, rowLines...)
	}
	for len(lines) < m.innerHeight() {
		lines = append(lines, "")
	}
	return section.Render(lines)
}

// renderRow draws one recipe: the label on the first line and the image
// reference wrapped beneath it.
func renderRow(_ context.Context, in rowInput) (string, error) {
	prefix := "  "
	if in.selected {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	labelWidth := in.width - 2
	label := runewidth.Truncate(in.recipe.Label, labelWidth, "…")

	badge := ""
	if in.showKind {
		badge = kindBadge(in.recipe.ImageKind) + " "
	}
	indent := "    "
	refWidth := max(in.width-len(indent)-lipgloss.Width(badge), 1)
	ref := wrap.String(in.recipe.ImageRef, refWidth)

	var b strings.Builder
	b.WriteString(prefix + styles.LabelStyle.Render(label))
	for i, line := range strings.Split(ref, "\n") {
		b.WriteString("\n" + indent)
		if i == 0 {
			b.WriteString(badge)
		} else {
			b.WriteString(strings.Repeat(" ", lipgloss.Width(badge)))
		}
		b.WriteString(styles.ImageRefStyle.Render(line))
	}
	return b.String(), nil
}

func kindBadge(kind string) string {
	switch kind {
	case presentation.ImageKindURL:
		return lipgloss.NewStyle().Foreground(styles.ImageURLColor).Render("url ")
	case presentation.ImageKindFile:
		return lipgloss.NewStyle().Foreground(styles.ImageFileColor).Render("file")
	default:
		return lipgloss.NewStyle().Foreground(styles.ImageOtherColor).Render("ref ")
	}
}
