package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/recipebox/internal/config"
	"github.com/zjrosen/recipebox/internal/log"
	"github.com/zjrosen/recipebox/internal/presentation"
	"github.com/zjrosen/recipebox/internal/pubsub"
	"github.com/zjrosen/recipebox/internal/recipebook"
	"github.com/zjrosen/recipebox/internal/ui/recipeform"
	"github.com/zjrosen/recipebox/internal/ui/styles"
	"github.com/zjrosen/recipebox/internal/ui/toaster"
	"github.com/zjrosen/recipebox/internal/watcher"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// createTestModel builds a sized model without a config watcher.
func createTestModel(t *testing.T) (Model, *recipebook.Service) {
	t.Helper()
	cfg := config.Defaults()
	cfg.WatchConfig = false
	cfg.UI.ToastDuration = time.Millisecond

	svc := recipebook.New()
	m := New(svc, cfg, "", false)
	t.Cleanup(func() { _ = m.Close() })

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), svc
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// fillForm types label into the focused name input, tabs to the image input
// and types imageRef.
func fillForm(t *testing.T, m Model, label, imageRef string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(label)})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(imageRef)})
	require.Equal(t, label, m.form.Label())
	require.Equal(t, imageRef, m.form.ImageRef())
	return m
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m, _ := createTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})

	require.Equal(t, 120, m.width)
	require.Equal(t, 50, m.height)
}

func TestApp_SubmitAccepted_ClearsForm(t *testing.T) {
	m, svc := createTestModel(t)
	m = fillForm(t, m, "Pasta", "http://img/p.png")

	m, cmd := update(t, m, recipeform.SubmitMsg{Label: "Pasta", ImageRef: "http://img/p.png"})

	require.NotNil(t, cmd, "toast dismissal is scheduled")
	require.Equal(t, 1, svc.Len())
	require.Empty(t, m.form.Label())
	require.Empty(t, m.form.ImageRef())
	require.Equal(t, "Added Pasta", m.toaster.Message())
	require.Equal(t, toaster.StyleSuccess, m.toaster.Style())
}

func TestApp_SubmitBlank_KeepsForm(t *testing.T) {
	m, svc := createTestModel(t)
	m = fillForm(t, m, "Pasta", "   ")

	m, _ = update(t, m, recipeform.SubmitMsg{Label: "Pasta", ImageRef: "   "})

	require.Zero(t, svc.Len())
	require.Equal(t, "Pasta", m.form.Label())
	require.Equal(t, presentation.MsgBlank, m.toaster.Message())
	require.Equal(t, toaster.StyleWarn, m.toaster.Style())
}

func TestApp_SubmitDuplicate_KeepsForm(t *testing.T) {
	m, svc := createTestModel(t)
	m, _ = update(t, m, recipeform.SubmitMsg{Label: "Pasta", ImageRef: "p.png"})
	m = fillForm(t, m, "pasta", "q.png")

	m, _ = update(t, m, recipeform.SubmitMsg{Label: "pasta", ImageRef: "q.png"})

	require.Equal(t, 1, svc.Len())
	require.Equal(t, "pasta", m.form.Label())
	require.Equal(t, "q.png", m.form.ImageRef())
	require.Equal(t, presentation.MsgDuplicate, m.toaster.Message())
	require.Equal(t, toaster.StyleError, m.toaster.Style())
}

func TestApp_SubmitAccepted_RefreshesListWithoutEvent(t *testing.T) {
	m, _ := createTestModel(t)

	m, _ = update(t, m, recipeform.SubmitMsg{Label: "Pasta", ImageRef: "p.png"})
	m, _ = update(t, m, recipeform.SubmitMsg{Label: "Soup", ImageRef: "s.png"})

	require.Equal(t, 2, m.list.Len())
	view := ansi.Strip(m.View())
	require.Contains(t, view, "Pasta")
	require.Contains(t, view, "Soup")
}

func TestApp_SubmitRejected_LeavesListUnchanged(t *testing.T) {
	m, _ := createTestModel(t)
	m, _ = update(t, m, recipeform.SubmitMsg{Label: "Pasta", ImageRef: "p.png"})

	m, _ = update(t, m, recipeform.SubmitMsg{Label: "PASTA", ImageRef: "q.png"})

	require.Equal(t, 1, m.list.Len())
}

func TestApp_AcceptedEventRefreshesList(t *testing.T) {
	m, svc := createTestModel(t)
	sub := svc.Submit(t.Context(), "Soup", "s.png")

	m, cmd := update(t, m, pubsub.Event[recipebook.Submission]{Type: pubsub.AcceptedEvent, Payload: sub})

	require.NotNil(t, cmd, "listener is re-armed")
	require.Equal(t, 1, m.list.Len())
	require.Contains(t, ansi.Strip(m.View()), "Soup")
}

func TestApp_DismissMsgHidesToast(t *testing.T) {
	m, _ := createTestModel(t)
	m, cmd := update(t, m, recipeform.SubmitMsg{})
	require.True(t, m.toaster.Visible())

	m, _ = update(t, m, cmd())

	require.False(t, m.toaster.Visible())
}

func TestApp_HelpToggle(t *testing.T) {
	m, _ := createTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, m.help.Visible())
	require.Contains(t, ansi.Strip(m.View()), "Keybindings")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.help.Visible())
}

func TestApp_QuestionMarkTypedWhileEditing(t *testing.T) {
	m, _ := createTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})

	require.False(t, m.help.Visible())
	require.Equal(t, "?", m.form.Label())
}

func TestApp_QuestionMarkOnButtonOpensHelp(t *testing.T) {
	m, _ := createTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})

	require.True(t, m.help.Visible())
}

func TestApp_TabMovesFocusToListAndBack(t *testing.T) {
	m, _ := createTestModel(t)

	for range 3 {
		var cmd tea.Cmd
		m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if cmd != nil {
			m, _ = update(t, m, cmd())
		}
	}
	require.True(t, m.list.Focused())
	require.Equal(t, recipeform.FieldNone, m.form.Focused())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, cmd())

	require.False(t, m.list.Focused())
	require.Equal(t, recipeform.FieldName, m.form.Focused())
}

func TestApp_CtrlCQuits(t *testing.T) {
	m, _ := createTestModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestApp_View_ShowsCounts(t *testing.T) {
	m, _ := createTestModel(t)
	m, _ = update(t, m, recipeform.SubmitMsg{Label: "A", ImageRef: "a"})
	m, _ = update(t, m, recipeform.SubmitMsg{Label: "a", ImageRef: "b"})
	m, _ = update(t, m, recipeform.SubmitMsg{})

	view := ansi.Strip(m.View())

	require.Contains(t, view, "1 added · 1 blank · 1 duplicate")
	require.Contains(t, view, "Recipe name")
	require.Contains(t, view, "Image URL")
}

func TestApp_WatcherEventReloadsTheme(t *testing.T) {
	origErr := styles.StatusErrorColor
	t.Cleanup(func() {
		styles.StatusErrorColor = origErr
		styles.ApplyTheme("", "", "")
	})

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	cfg := config.Defaults()
	m := New(recipebook.New(), cfg, path, false)
	t.Cleanup(func() { _ = m.Close() })
	require.NotNil(t, m.watcherListener)

	require.NoError(t, config.SaveTheme(path, config.ThemeConfig{Error: "#ABCDEF"}))
	_, cmd := update(t, m, pubsub.Event[watcher.WatcherEvent]{Type: pubsub.ChangedEvent, Payload: watcher.WatcherEvent{Path: path}})

	require.NotNil(t, cmd)
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#ABCDEF", Dark: "#ABCDEF"}, styles.StatusErrorColor)
}

func TestApp_Teatest_AddRecipe(t *testing.T) {
	cfg := config.Defaults()
	cfg.WatchConfig = false
	svc := recipebook.New()

	tm := teatest.NewTestModel(t, New(svc, cfg, "", false), teatest.WithInitialTermSize(100, 40))

	tm.Type("Pasta")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("http://img/p.png")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Recipes (1)"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)

	require.Equal(t, 1, final.list.Len())
	require.Empty(t, final.form.Label())
	require.Equal(t, "Pasta", svc.List()[0].Label())
	require.Equal(t, "http://img/p.png", svc.List()[0].ImageRef())
}

func TestApp_Teatest_DuplicateKeepsInput(t *testing.T) {
	cfg := config.Defaults()
	cfg.WatchConfig = false
	svc := recipebook.New()
	svc.Submit(t.Context(), "Pasta", "p.png")

	tm := teatest.NewTestModel(t, New(svc, cfg, "", false), teatest.WithInitialTermSize(100, 40))

	tm.Type("PASTA")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("q.png")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(presentation.MsgDuplicate))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)

	require.Equal(t, "PASTA", final.form.Label())
	require.Equal(t, 1, svc.Len())
}

func TestApp_DebugLogOverlay(t *testing.T) {
	var buf bytes.Buffer
	log.SetDefault(log.New(&buf, log.LevelDebug))
	t.Cleanup(func() { log.SetDefault(nil) })

	cfg := config.Defaults()
	cfg.WatchConfig = false
	m := New(recipebook.New(), cfg, "", true)
	t.Cleanup(func() { _ = m.Close() })
	require.NotNil(t, m.logListener)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := update(t, m, log.LogEvent{Type: pubsub.LoggedEvent, Payload: "2026-01-02T15:04:05 [INFO] [recipe] hello\n"})
	require.NotNil(t, cmd)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.True(t, m.logOverlay.Visible())
	require.Contains(t, ansi.Strip(m.View()), "[recipe] hello")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.False(t, m.logOverlay.Visible())
}

func TestApp_CtrlXIgnoredWithoutDebug(t *testing.T) {
	m, _ := createTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})

	require.False(t, m.logOverlay.Visible())
}
