// Package flags reads feature flags from the config file's flags section.
// Flags are read-only after initialization; unknown names are disabled.
package flags

import (
	"maps"

	"github.com/zjrosen/recipebox/internal/log"
)

const (
	// FlagMouse enables mouse reporting so the Add button can be clicked.
	FlagMouse = "mouse"

	// FlagAltScreen runs the TUI in the terminal's alternate screen.
	FlagAltScreen = "alt-screen"
)

// Defaults are applied before config overrides.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagMouse:     true,
		FlagAltScreen: true,
	}
}

// Registry holds the resolved flag values.
type Registry struct {
	flags map[string]bool
}

// New resolves overrides on top of Defaults. A nil map keeps the defaults.
func New(overrides map[string]bool) *Registry {
	resolved := Defaults()
	maps.Copy(resolved, overrides)

	r := &Registry{flags: resolved}
	log.Debug(log.CatConfig, "Feature flags initialized", "flags", r.All())
	return r
}

// Enabled reports whether name is on. Unknown names and a nil registry
// report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	value, ok := r.flags[name]
	if !ok {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
	}
	return value
}

// All returns a copy of the resolved flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
