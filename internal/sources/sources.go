// Package sources lists the C files that make up a Lua library build.
package sources

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
)

// ByExt returns the regular files directly inside dir whose extension is
// ext (without the dot), sorted by name. Subdirectories are not searched.
func ByExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	matched := lo.Filter(entries, func(e fs.DirEntry, _ int) bool {
		return !e.IsDir() && filepath.Ext(e.Name()) == "."+ext
	})
	files := lo.Map(matched, func(e fs.DirEntry, _ int) string {
		return filepath.Join(dir, e.Name())
	})
	sort.Strings(files)
	return files, nil
}

// Curated resolves names against dir, in the given order. Every listed file
// must exist.
func Curated(dir string, names []string) ([]string, error) {
	files := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid}
		}
		files = append(files, path)
	}
	return files, nil
}
