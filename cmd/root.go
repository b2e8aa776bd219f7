package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/recipebox/internal/app"
	"github.com/zjrosen/recipebox/internal/config"
	"github.com/zjrosen/recipebox/internal/flags"
	"github.com/zjrosen/recipebox/internal/log"
	"github.com/zjrosen/recipebox/internal/recipebook"
	"github.com/zjrosen/recipebox/internal/tracing"
	"github.com/zjrosen/recipebox/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "recipebox",
	Short:   "Collect recipes with a name and a picture",
	Long:    `A terminal user interface for building a list of recipes, each with a display name and an image URL.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .recipebox/config.yaml, then ~/.config/recipebox/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false,
		"write a debug log and enable the log overlay (ctrl+x)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	viper.SetEnvPrefix("RECIPEBOX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .recipebox/config.yaml (current directory)
		// 2. ~/.config/recipebox/config.yaml (user config)
		if _, err := os.Stat(config.DefaultConfigPath); err == nil {
			viper.SetConfigFile(config.DefaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "recipebox"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .recipebox/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(config.DefaultConfigPath); writeErr == nil {
				viper.SetConfigFile(config.DefaultConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
	debugMode = viper.GetBool("debug")
}

// setDefaults registers every default so env vars bind and unmarshal fills
// keys missing from the file.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("ui.toast_duration", defaults.UI.ToastDuration)
	v.SetDefault("ui.show_counts", defaults.UI.ShowCounts)
	v.SetDefault("ui.show_image_kind", defaults.UI.ShowImageKind)
	v.SetDefault("theme.muted", defaults.Theme.Muted)
	v.SetDefault("theme.error", defaults.Theme.Error)
	v.SetDefault("theme.success", defaults.Theme.Success)
	v.SetDefault("watch_config", defaults.WatchConfig)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	for name, on := range flags.Defaults() {
		v.SetDefault("flags."+name, on)
	}
}

// configPath returns the file the config was read from, or the default
// location when none was loaded.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.DefaultConfigPath
}

// session is the state shared by every command: a seeded service plus the
// resources that must be released on exit.
type session struct {
	service  *recipebook.Service
	provider *tracing.Provider
	closeLog func()
}

// startSession validates cfg, starts logging and tracing, and seeds the
// recipe book from the configured starter recipes.
func startSession(ctx context.Context, cfg config.Config, debug bool, logPath string) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &session{closeLog: func() {}}
	if debug {
		closeLog, err := log.Init(logPath)
		if err != nil {
			return nil, err
		}
		s.closeLog = closeLog
	}

	provider, err := tracing.NewProvider(cfg.ResolveTracing())
	if err != nil {
		s.closeLog()
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	s.provider = provider
	log.Debug(log.CatTrace, "Tracing configured", "enabled", provider.Enabled(), "exporter", cfg.Tracing.Exporter)

	s.service = recipebook.New(recipebook.WithTracer(provider.Tracer()))
	report := s.service.Seed(ctx, cfg.Recipes)
	log.Info(log.CatRecipe, "Seeded recipes", "accepted", report.Accepted, "rejected", len(report.Rejected))

	return s, nil
}

func (s *session) close(ctx context.Context) error {
	err := s.provider.Shutdown(ctx)
	s.closeLog()
	if err != nil {
		return fmt.Errorf("shutting down tracing: %w", err)
	}
	return nil
}

func debugLogPath() string {
	return filepath.Join(filepath.Dir(configPath()), "debug.log")
}

func runApp(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := startSession(ctx, cfg, debugMode, debugLogPath())
	if err != nil {
		return err
	}

	styles.ApplyTheme(cfg.Theme.Muted, cfg.Theme.Error, cfg.Theme.Success)
	zone.NewGlobal()

	model := app.New(s.service, cfg, configPath(), debugMode)
	p := tea.NewProgram(&model, programOptions(flags.New(cfg.Flags))...)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if closeErr := s.close(ctx); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func programOptions(f *flags.Registry) []tea.ProgramOption {
	var opts []tea.ProgramOption
	if f.Enabled(flags.FlagAltScreen) {
		opts = append(opts, tea.WithAltScreen())
	}
	if f.Enabled(flags.FlagMouse) {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
