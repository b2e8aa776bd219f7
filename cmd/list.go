package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/recipebox/internal/presentation"
	"github.com/zjrosen/recipebox/internal/recipebook"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured starter recipes",
	Long: `Print the recipes seeded from the config file, in order.

Recipes added in the TUI live only for that session, so this shows what a
fresh session starts with. Blank and duplicate starter recipes are skipped.

Examples:
  recipebox list
  recipebox list --format json | jq '.[].label'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		s, err := startSession(ctx, cfg, debugMode, debugLogPath())
		if err != nil {
			return err
		}
		defer func() { _ = s.close(ctx) }()

		return printRecipes(cmd.OutOrStdout(), s.service, listFormat)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format: table or json")
	rootCmd.AddCommand(listCmd)
}

func printRecipes(w io.Writer, svc *recipebook.Service, format string) error {
	formatter := presentation.NewFormatter(w)
	dtos := presentation.FromItems(svc.List())

	switch format {
	case "json":
		return formatter.FormatRecipes(dtos)
	case "table", "":
		return formatter.FormatTable(dtos)
	default:
		return fmt.Errorf("unknown format %q: use table or json", format)
	}
}
