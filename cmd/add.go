package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/recipebox/internal/presentation"
	"github.com/zjrosen/recipebox/internal/recipebook"
)

var addCmd = &cobra.Command{
	Use:   "add <label> <image-ref>",
	Short: "Check a recipe against the starter recipes",
	Long: `Submit one recipe against the recipes seeded from the config file and
print the result. Exits non-zero when the recipe is blank or a duplicate.

Examples:
  recipebox add Pasta https://example.com/pasta.png
  recipebox add "  Soup  " ./soup.jpg`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := startSession(ctx, cfg, debugMode, debugLogPath())
		if err != nil {
			return err
		}
		defer func() { _ = s.close(ctx) }()

		return addRecipe(ctx, cmd.OutOrStdout(), s.service, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// addRecipe prints the feedback for one submission and returns the
// rejection as an error.
func addRecipe(ctx context.Context, w io.Writer, svc *recipebook.Service, label, imageRef string) error {
	sub := svc.Submit(ctx, label, imageRef)
	if err := presentation.NewFormatter(w).FormatFeedback(presentation.FeedbackFor(sub.Result)); err != nil {
		return err
	}
	return sub.Result.Err()
}
