// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/recipebox/internal/cachemanager"
	"github.com/zjrosen/recipebox/internal/config"
	"github.com/zjrosen/recipebox/internal/keys"
	"github.com/zjrosen/recipebox/internal/log"
	"github.com/zjrosen/recipebox/internal/presentation"
	"github.com/zjrosen/recipebox/internal/pubsub"
	"github.com/zjrosen/recipebox/internal/recipebook"
	"github.com/zjrosen/recipebox/internal/ui/help"
	"github.com/zjrosen/recipebox/internal/ui/logoverlay"
	"github.com/zjrosen/recipebox/internal/ui/markdown"
	"github.com/zjrosen/recipebox/internal/ui/recipeform"
	"github.com/zjrosen/recipebox/internal/ui/recipelist"
	"github.com/zjrosen/recipebox/internal/ui/styles"
	"github.com/zjrosen/recipebox/internal/ui/toaster"
	"github.com/zjrosen/recipebox/internal/watcher"
)

// formWidth caps the form so inputs stay readable on wide terminals.
const formWidth = 60

// Model is the root application state.
type Model struct {
	service    *recipebook.Service
	cfg        config.Config
	configPath string

	form       recipeform.Model
	list       recipelist.Model
	toaster    toaster.Model
	help       help.Model
	logOverlay logoverlay.Model

	width  int
	height int

	debugMode bool

	ctx    context.Context
	cancel context.CancelFunc

	recipeListener *pubsub.ContinuousListener[recipebook.Submission]
	logListener    *log.LogListener

	// Config file watcher for live theme reloads
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]
}

// New creates the application model around service.
// configPath is watched for theme changes when cfg.WatchConfig is set.
// debugMode enables the log overlay (ctrl+x).
func New(service *recipebook.Service, cfg config.Config, configPath string, debugMode bool) Model {
	ctx, cancel := context.WithCancel(context.Background())

	rowCache := cachemanager.NewInMemoryCacheManager[string, string](
		"recipe-rows", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval,
	)

	m := Model{
		service:        service,
		cfg:            cfg,
		configPath:     configPath,
		form:           recipeform.New(),
		list:           recipelist.New(rowCache).SetShowKind(cfg.UI.ShowImageKind).SetItems(service.List()),
		toaster:        toaster.New(),
		help:           help.New(markdownStyle()),
		logOverlay:     logoverlay.New(),
		debugMode:      debugMode,
		ctx:            ctx,
		cancel:         cancel,
		recipeListener: pubsub.NewContinuousListener(ctx, service.Broker()),
	}

	if debugMode {
		m.logListener = log.NewListener(ctx)
	}

	if cfg.WatchConfig && configPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(configPath))
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
				log.Warn(log.CatWatcher, "Config watcher disabled", "error", err)
			}
		} else {
			log.Warn(log.CatWatcher, "Config watcher disabled", "error", err)
		}
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.form.Init(), m.recipeListener.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.help.Visible() || m.logOverlay.Visible() {
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case recipeform.SubmitMsg:
		return m.submit(msg)

	case recipeform.LeaveMsg:
		m.list = m.list.Focus()
		return m, nil

	case recipelist.LeaveMsg:
		m.form = m.form.Focus()
		return m, nil

	case pubsub.Event[recipebook.Submission]:
		if msg.Type == pubsub.AcceptedEvent {
			m.list = m.list.SetItems(m.service.List())
		}
		return m, m.recipeListener.Listen()

	case pubsub.Event[watcher.WatcherEvent]:
		m.reloadTheme()
		return m, m.watcherListener.Listen()

	case log.LogEvent:
		m.logOverlay = m.logOverlay.Append(msg.Payload)
		return m, m.logListener.Listen()

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.App.Quit) {
		return m, tea.Quit
	}

	if m.debugMode && key.Matches(msg, keys.App.Logs) {
		m.logOverlay = m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	editing := m.form.Editing()
	if m.help.Visible() {
		if key.Matches(msg, keys.App.Escape, keys.App.Help, keys.App.HelpPlain) {
			m.help = m.help.Hide()
		}
		return m, nil
	}
	if key.Matches(msg, keys.App.Help) || (!editing && key.Matches(msg, keys.App.HelpPlain)) {
		m.help = m.help.Toggle()
		return m, nil
	}
	if !editing && key.Matches(msg, keys.App.QuitPlain) {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.list.Focused() {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

// submit sends the raw form values through the service. The form keeps its
// contents on rejection so the user can correct them.
func (m Model) submit(msg recipeform.SubmitMsg) (tea.Model, tea.Cmd) {
	sub := m.service.Submit(m.ctx, msg.Label, msg.ImageRef)
	fb := presentation.FeedbackFor(sub.Result)

	m.toaster = m.toaster.Show(fb.Message, toastStyle(fb.Severity))
	if sub.Result.Accepted() {
		m.form = m.form.Clear()
		// The broker may drop events for a slow subscriber.
		m.list = m.list.SetItems(m.service.List())
	}
	log.Debug(log.CatUI, "Submission feedback shown", "id", sub.ID, "outcome", sub.Result.Outcome)

	return m, m.toaster.ScheduleDismiss(m.cfg.UI.ToastDuration)
}

// markdownStyle picks the glamour style for the terminal background. The
// background is detected once in cmd before the program starts.
func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return markdown.StyleDark
	}
	return markdown.StyleLight
}

func toastStyle(s presentation.Severity) toaster.Style {
	switch s {
	case presentation.SeverityWarn:
		return toaster.StyleWarn
	case presentation.SeverityError:
		return toaster.StyleError
	default:
		return toaster.StyleSuccess
	}
}

// reloadTheme re-reads the theme section after the config file changed.
// Invalid themes are logged and the current colors kept.
func (m Model) reloadTheme() {
	theme, err := config.LoadTheme(m.configPath)
	if err != nil {
		log.Warn(log.CatConfig, "Ignoring config change", "path", m.configPath, "error", err)
		return
	}
	styles.ApplyTheme(theme.Muted, theme.Error, theme.Success)
	m.list.InvalidateRows()
	log.Info(log.CatConfig, "Theme reloaded", "path", m.configPath)
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height

	m.form = m.form.SetWidth(min(width, formWidth))
	formHeight := lipgloss.Height(m.form.View())
	// header and status bar take one line each
	m.list = m.list.SetSize(width, max(height-formHeight-2, 3))

	m.toaster = m.toaster.SetSize(width, height)
	m.help = m.help.SetSize(width, height)
	m.logOverlay = m.logOverlay.SetSize(width, height)
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	view := lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.form.View(),
		m.list.View(),
		m.statusBar(),
	)

	view = m.toaster.Overlay(view)
	view = m.help.Overlay(view)
	if m.debugMode {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

func (m Model) header() string {
	title := styles.TitleStyle.Render(" recipebox")
	if !m.cfg.UI.ShowCounts {
		return title
	}
	stats := m.service.Stats()
	counts := fmt.Sprintf("%d added · %d blank · %d duplicate", stats.Accepted, stats.Blank, stats.Duplicate)
	return title + "  " + styles.HintStyle.Render(counts)
}

func (m Model) statusBar() string {
	var hints []string
	if m.list.Focused() {
		hints = append(hints, "j/k scroll", "tab back to form")
	} else {
		hints = append(hints, "tab next field", "enter add")
	}
	hints = append(hints, "f1 help", "ctrl+c quit")
	if m.debugMode {
		hints = append(hints, "ctrl+x logs")
	}
	return styles.StatusBarStyle.Render(strings.Join(hints, " • "))
}

// Close releases the listeners and the config watcher.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
