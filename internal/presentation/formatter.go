package presentation

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// Formatter writes recipes for the CLI.
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatRecipes writes recipes as indented JSON. An empty list is written as [].
func (f *Formatter) FormatRecipes(recipes []RecipeDTO) error {
	if recipes == nil {
		recipes = []RecipeDTO{}
	}
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(recipes)
}

// maxLabelColumn caps the label column so long names do not push image refs off screen.
const maxLabelColumn = 32

// FormatTable writes a two-column LABEL / IMAGE table aligned by display width.
func (f *Formatter) FormatTable(recipes []RecipeDTO) error {
	width := runewidth.StringWidth("LABEL")
	for _, r := range recipes {
		width = max(width, runewidth.StringWidth(r.Label))
	}
	width = min(width, maxLabelColumn)

	if _, err := fmt.Fprintf(f.writer, "%s  %s\n", runewidth.FillRight("LABEL", width), "IMAGE"); err != nil {
		return err
	}
	for _, r := range recipes {
		label := runewidth.FillRight(runewidth.Truncate(r.Label, width, "…"), width)
		if _, err := fmt.Fprintf(f.writer, "%s  %s\n", label, r.ImageRef); err != nil {
			return err
		}
	}
	return nil
}

// FormatFeedback writes a one-line submission result.
func (f *Formatter) FormatFeedback(fb Feedback) error {
	prefix := "ok"
	switch fb.Severity {
	case SeverityWarn:
		prefix = "warn"
	case SeverityError:
		prefix = "error"
	}
	_, err := fmt.Fprintf(f.writer, "%s: %s\n", prefix, fb.Message)
	return err
}
