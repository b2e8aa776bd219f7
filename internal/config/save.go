package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/recipebox/internal/log"
)

// SaveTheme replaces the theme section of the config file at configPath.
// Other sections, including their comments, are kept as they are.
func SaveTheme(configPath string, theme ThemeConfig) error {
	if err := ValidateTheme(theme); err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	var themeNode yaml.Node
	if err := themeNode.Encode(theme); err != nil {
		return fmt.Errorf("building theme node: %w", err)
	}

	if err := setTopLevelKey(&doc, "theme", &themeNode); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return err
	}
	log.Info(log.CatConfig, "Saved theme", "path", configPath)
	return nil
}

// setTopLevelKey replaces or appends key in the document's root mapping.
func setTopLevelKey(doc *yaml.Node, key string, value *yaml.Node) error {
	if doc.Kind == 0 {
		*doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("config root must be a mapping")
	}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			// Keep any comment that sat under the old value's key.
			value.HeadComment = root.Content[i+1].HeadComment
			root.Content[i+1] = value
			return nil
		}
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
	return nil
}

// writeAtomic writes data to a temp file next to path and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".recipebox.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// LoadTheme reads only the theme section of the config file at configPath.
// It is used to re-apply colors when the file changes while the TUI runs.
func LoadTheme(configPath string) (ThemeConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return ThemeConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var partial struct {
		Theme ThemeConfig `yaml:"theme"`
	}
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return ThemeConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := ValidateTheme(partial.Theme); err != nil {
		return ThemeConfig{}, err
	}
	return partial.Theme, nil
}
