package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveTheme_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveTheme(path, ThemeConfig{Success: "#00FF00"}))

	theme, err := LoadTheme(path)
	require.NoError(t, err)
	require.Equal(t, ThemeConfig{Success: "#00FF00"}, theme)
}

func TestSaveTheme_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveTheme(path, ThemeConfig{Muted: "#111111", Error: "#222222"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# Recipebox Configuration")
	require.Contains(t, content, "toast_duration: 3s")
	require.Contains(t, content, "watch_config: true")

	theme, err := LoadTheme(path)
	require.NoError(t, err)
	require.Equal(t, "#111111", theme.Muted)
	require.Equal(t, "#222222", theme.Error)
	require.Empty(t, theme.Success)
}

func TestSaveTheme_ReplacesExistingTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  muted: \"#AAAAAA\"\nwatch_config: false\n"), 0o600))

	require.NoError(t, SaveTheme(path, ThemeConfig{Success: "#73F59F"}))

	theme, err := LoadTheme(path)
	require.NoError(t, err)
	require.Equal(t, ThemeConfig{Success: "#73F59F"}, theme)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "watch_config: false")
}

func TestSaveTheme_RejectsInvalidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := SaveTheme(path, ThemeConfig{Error: "red"})
	require.Error(t, err)
	require.NoFileExists(t, path)
}

func TestSaveTheme_RootNotMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))

	err := SaveTheme(path, ThemeConfig{Muted: "#123456"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "mapping")
}

func TestLoadTheme_MissingFile(t *testing.T) {
	_, err := LoadTheme(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
