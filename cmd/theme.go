package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/recipebox/internal/config"
	"github.com/zjrosen/recipebox/internal/log"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Set theme colors in the config file",
	Long: `Update the theme section of the config file. Other sections and comments
are kept. A running TUI with watch_config enabled picks the change up live.

Examples:
  recipebox theme --success "#73F59F"
  recipebox theme --muted "#555555" --error "#FF5555"`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath()
		theme, err := mergeThemeFlags(cmd, cfg.Theme)
		if err != nil {
			return err
		}
		if err := config.SaveTheme(path, theme); err != nil {
			return fmt.Errorf("saving theme: %w", err)
		}
		log.Info(log.CatConfig, "Theme saved", "path", path)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "theme saved to %s\n", path)
		return err
	},
}

func init() {
	themeCmd.Flags().String("muted", "", "hint and border color (hex)")
	themeCmd.Flags().String("error", "", "duplicate warning color (hex)")
	themeCmd.Flags().String("success", "", "accepted recipe color (hex)")
	rootCmd.AddCommand(themeCmd)
}

// mergeThemeFlags overlays the flags that were set on current.
func mergeThemeFlags(cmd *cobra.Command, current config.ThemeConfig) (config.ThemeConfig, error) {
	changed := 0
	for name, dst := range map[string]*string{
		"muted":   &current.Muted,
		"error":   &current.Error,
		"success": &current.Success,
	} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return current, err
		}
		*dst = value
		changed++
	}
	if changed == 0 {
		return current, fmt.Errorf("nothing to change: set at least one of --muted, --error, --success")
	}
	return current, config.ValidateTheme(current)
}
