// Package stage prepares a copy of a C source tree that can be compiled as
// C++, with selected public headers wrapped in an extern "C" block.
package stage

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

const (
	// Prologue opens the C linkage block.
	Prologue = "extern \"C\" {\n"
	// Epilogue closes the C linkage block.
	Epilogue = "\n}"
)

// Headers are the Lua headers that need C linkage when compiled as C++.
var Headers = []string{"lauxlib.h", "lua.h", "lualib.h"}

// Wrap replaces dstDir with a copy of srcDir. Top-level files named in
// headers are wrapped with Prologue and Epilogue; everything else is copied
// byte for byte.
//
// dstDir is always removed first and, when it lies inside srcDir, left out
// of the copy. On failure the partial copy is left in place; the next call
// wipes it anyway.
func Wrap(srcDir, dstDir string, headers []string) error {
	if _, err := os.Stat(dstDir); err == nil {
		if err := os.RemoveAll(dstDir); err != nil {
			return &fs.PathError{Op: "remove", Path: dstDir, Err: err}
		}
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}
	skip, err := filepath.Abs(dstDir)
	if err != nil {
		return err
	}

	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == skip {
				return fs.SkipDir
			}
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		dst := filepath.Join(dstDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if filepath.Dir(rel) == "." && slices.Contains(headers, d.Name()) {
			content = wrap(content)
		}
		return os.WriteFile(dst, content, 0o644)
	})
}

func wrap(content []byte) []byte {
	out := make([]byte, 0, len(Prologue)+len(content)+len(Epilogue))
	out = append(out, Prologue...)
	out = append(out, content...)
	return append(out, Epilogue...)
}
