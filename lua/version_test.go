package lua

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/mod/semver"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		v         Version
		name      string
		sourceDir string
		libName   string
	}{
		{Lua51, "lua51", "lua-5.1.5", "lua5.1"},
		{Lua52, "lua52", "lua-5.2.4", "lua5.2"},
		{Lua53, "lua53", "lua-5.3.6", "lua5.3"},
		{Lua54, "lua54", "lua-5.4.8", "lua5.4"},
		{Lua51Coco, "lua51coco", "lua-5.1.5-coco", "lua5.1-coco"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.v.String())
			require.Equal(t, tt.sourceDir, tt.v.SourceDir())
			require.Equal(t, tt.libName, tt.v.LibName())
			require.True(t, semver.IsValid(tt.v.Release()), tt.v.Release())
		})
	}
	require.Len(t, Versions(), len(tests))
}

func TestFiles(t *testing.T) {
	require.Nil(t, Lua54.Files())
	require.Nil(t, Lua52.Files())

	files := Lua51.Files()
	require.Contains(t, files, "lapi.c")
	require.NotContains(t, files, "lua.c")
	require.NotContains(t, files, "luac.c")

	coco := Lua51Coco.Files()
	require.Len(t, coco, len(files)+1)
	require.Contains(t, coco, "lcoco.c")

	// Callers get their own copy.
	files[0] = "evil.c"
	require.Equal(t, "lapi.c", Lua51.Files()[0])
}

func TestParseVersion(t *testing.T) {
	for in, want := range map[string]Version{
		"lua54":       Lua54,
		"5.4":         Lua54,
		"Lua5.3":      Lua53,
		"lua-5.2":     Lua52,
		"51":          Lua51,
		"lua51coco":   Lua51Coco,
		"lua5.1-coco": Lua51Coco,
	} {
		got, err := ParseVersion(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseVersion("5.5")
	require.Error(t, err)
}

func TestVersionString_Invalid(t *testing.T) {
	require.Equal(t, "Version(9)", Version(9).String())
	require.Panics(t, func() { Version(9).LibName() })
}
