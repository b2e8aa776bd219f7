package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	r := New(nil)

	require.True(t, r.Enabled(FlagMouse))
	require.True(t, r.Enabled(FlagAltScreen))
}

func TestNew_Overrides(t *testing.T) {
	r := New(map[string]bool{FlagMouse: false, "experimental": true})

	require.False(t, r.Enabled(FlagMouse))
	require.True(t, r.Enabled(FlagAltScreen))
	require.True(t, r.Enabled("experimental"))
}

func TestEnabled_UnknownAndNil(t *testing.T) {
	require.False(t, New(nil).Enabled("unknown-flag"))

	var r *Registry
	require.False(t, r.Enabled(FlagMouse))
	require.Empty(t, r.All())
}

func TestAll_ReturnsCopy(t *testing.T) {
	r := New(nil)

	all := r.All()
	all[FlagMouse] = false

	require.True(t, r.Enabled(FlagMouse))
}
