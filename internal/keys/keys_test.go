package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestKeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"help", App.Help, []string{"f1"}},
		{"help plain", App.HelpPlain, []string{"?"}},
		{"quit", App.Quit, []string{"ctrl+c"}},
		{"quit plain", App.QuitPlain, []string{"q"}},
		{"escape", App.Escape, []string{"esc"}},
		{"logs", App.Logs, []string{"ctrl+x"}},
		{"form next", Form.Next, []string{"tab", "down"}},
		{"form prev", Form.Prev, []string{"shift+tab", "up"}},
		{"form submit", Form.Submit, []string{"enter"}},
		{"list up", List.Up, []string{"k", "up"}},
		{"list down", List.Down, []string{"j", "down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestBindingsHaveHelp(t *testing.T) {
	all := []key.Binding{
		App.Help, App.HelpPlain, App.Quit, App.QuitPlain, App.Escape, App.Logs,
		Form.Next, Form.Prev, Form.Submit,
		List.Up, List.Down, List.Top, List.Bottom,
	}

	for _, b := range all {
		require.NotEmpty(t, b.Help().Key, "binding %v", b.Keys())
		require.NotEmpty(t, b.Help().Desc, "binding %v", b.Keys())
	}
}
