// Package recipeform provides the add-recipe form: a name input, an image
// URL input and an Add button.
package recipeform

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/recipebox/internal/keys"
	"github.com/zjrosen/recipebox/internal/ui/styles"
)

// Field identifies which element is focused.
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldImage
	FieldAdd
)

// zoneAddButton marks the Add button for mouse clicks.
const zoneAddButton = "recipeform-add"

// DefaultWidth is used until SetWidth is called.
const DefaultWidth = 50

// SubmitMsg carries the raw, untrimmed input values. Normalization is left
// to the registry.
type SubmitMsg struct {
	Label    string
	ImageRef string
}

// LeaveMsg is sent when focus tabs past the Add button.
type LeaveMsg struct{}

// Model holds the form state.
type Model struct {
	nameInput  textinput.Model
	imageInput textinput.Model
	focused    Field
	width      int
}

// New creates a form with the name input focused.
func New() Model {
	name := textinput.New()
	name.Placeholder = "Recipe name"
	name.Prompt = " "
	name.Focus()

	image := textinput.New()
	image.Placeholder = "https://example.com/pasta.png"
	image.Prompt = " "

	m := Model{
		nameInput:  name,
		imageInput: image,
		focused:    FieldName,
	}
	return m.SetWidth(DefaultWidth)
}

// SetWidth sets the outer width of the form sections.
func (m Model) SetWidth(width int) Model {
	m.width = width
	// border + prompt + cursor
	inner := max(width-4, 1)
	m.nameInput.Width = inner
	m.imageInput.Width = inner
	return m
}

// Focused returns the currently focused element.
func (m Model) Focused() Field {
	return m.focused
}

// Editing reports whether a text input has focus, in which case plain
// letter keys belong to the input.
func (m Model) Editing() bool {
	return m.focused == FieldName || m.focused == FieldImage
}

// Label returns the current recipe name text.
func (m Model) Label() string {
	return m.nameInput.Value()
}

// ImageRef returns the current image reference text.
func (m Model) ImageRef() string {
	return m.imageInput.Value()
}

// setValues fills both inputs.
func (m Model) setValues(label, imageRef string) Model {
	m.nameInput.SetValue(label)
	m.imageInput.SetValue(imageRef)
	return m
}

// Clear empties both inputs and moves focus back to the name input. It is
// called only after a recipe was accepted; rejected input stays for editing.
func (m Model) Clear() Model {
	m.nameInput.Reset()
	m.imageInput.Reset()
	return m.focus(FieldName)
}

// Focus gives the form focus at the name input.
func (m Model) Focus() Model {
	return m.focus(FieldName)
}

// Blur removes focus from every element.
func (m Model) Blur() Model {
	return m.focus(FieldNone)
}

func (m Model) focus(f Field) Model {
	m.focused = f
	m.nameInput.Blur()
	m.imageInput.Blur()
	switch f {
	case FieldName:
		m.nameInput.Focus()
	case FieldImage:
		m.imageInput.Focus()
	}
	return m
}

// Init returns the cursor blink command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(zoneAddButton); z != nil && z.InBounds(msg) {
				m = m.focus(FieldAdd)
				return m, m.submit()
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.focused == FieldNone {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Form.Next):
			if m.focused == FieldAdd {
				return m.Blur(), func() tea.Msg { return LeaveMsg{} }
			}
			return m.focus(m.focused + 1), nil

		case key.Matches(msg, keys.Form.Prev):
			if m.focused == FieldName {
				return m.focus(FieldAdd), nil
			}
			return m.focus(m.focused - 1), nil

		case key.Matches(msg, keys.Form.Submit):
			if m.focused == FieldName {
				return m.focus(FieldImage), nil
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case FieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case FieldImage:
		m.imageInput, cmd = m.imageInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	label, imageRef := m.nameInput.Value(), m.imageInput.Value()
	return func() tea.Msg {
		return SubmitMsg{Label: label, ImageRef: imageRef}
	}
}

// View renders the form. Zones are registered by the caller's zone.Scan.
func (m Model) View() string {
	count := uniseg.GraphemeClusterCount(m.nameInput.Value())
	counter := ""
	if count > 0 {
		counter = fmt.Sprintf("%d chars", count)
	}

	name := styles.Section{
		Title:   "Recipe name",
		Footer:  counter,
		Width:   m.width,
		Focused: m.focused == FieldName,
	}.Render([]string{m.nameInput.View()})

	image := styles.Section{
		Title:   "Image URL",
		Width:   m.width,
		Focused: m.focused == FieldImage,
	}.Render([]string{m.imageInput.View()})

	buttonStyle := styles.PrimaryButtonStyle
	if m.focused == FieldAdd {
		buttonStyle = styles.PrimaryButtonFocusedStyle
	}
	button := zone.Mark(zoneAddButton, buttonStyle.Render("Add"))

	return lipgloss.JoinVertical(lipgloss.Left, name, image, " "+button)
}
