package presentation

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/zjrosen/recipebox/internal/recipe"
)

// Image reference kinds, used only to pick a display badge.
const (
	ImageKindURL   = "url"
	ImageKindFile  = "file"
	ImageKindOther = "other"
)

// RecipeDTO is the JSON shape of a recipe.
type RecipeDTO struct {
	Label     string `json:"label"`
	ImageRef  string `json:"image_ref"`
	ImageKind string `json:"image_kind"`
}

// FromItems converts registry items, preserving order.
func FromItems(items []recipe.Item) []RecipeDTO {
	dtos := make([]RecipeDTO, len(items))
	for i, it := range items {
		dtos[i] = RecipeDTO{
			Label:     it.Label(),
			ImageRef:  it.ImageRef(),
			ImageKind: ImageKind(it.ImageRef()),
		}
	}
	return dtos
}

// ImageKind guesses what an image reference points at. It never touches the
// network or the filesystem.
func ImageKind(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Host != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return ImageKindURL
		}
	}
	if strings.HasPrefix(ref, "file://") {
		return ImageKindFile
	}
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") || strings.HasPrefix(ref, "~/") {
		return ImageKindFile
	}
	return ImageKindOther
}
