package sources

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
}

func TestByExt(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "lvm.c", "lapi.c", "lua.h", "Makefile", "lapi.cpp", "sub/lcode.c", "c")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.c"), 0o755))

	got, err := ByExt(dir, "c")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "lapi.c"),
		filepath.Join(dir, "lvm.c"),
	}, got)
}

func TestByExtMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")
	_, err := ByExt(dir, "c")
	var pe *fs.PathError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, dir, pe.Path)
}

func TestCurated(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "lapi.c", "lcoco.c", "lua.c")

	got, err := Curated(dir, []string{"lcoco.c", "lapi.c"})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "lcoco.c"), filepath.Join(dir, "lapi.c")}, got)

	_, err = Curated(dir, []string{"lapi.c", "lbitlib.c"})
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCuratedRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "linit.c"), 0o755))
	_, err := Curated(dir, []string{"linit.c"})
	require.ErrorIs(t, err, fs.ErrInvalid)
}
