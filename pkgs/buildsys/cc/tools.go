package cc

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/goplus/luasrc/pkgs/buildsys"
)

// tools are the programs and environment flags selected for one request.
type tools struct {
	target string
	host   string

	compiler     string
	compilerArgs []string
	archiver     string
	archiverArgs []string

	// extraFlags come from CFLAGS/CXXFLAGS.
	extraFlags []string
}

func (t *tools) cross() bool {
	return t.host != "" && t.target != t.host
}

func (t *tools) isMSVC() bool {
	return strings.Contains(t.target, "msvc")
}

func (t *tools) isClang() bool {
	return strings.Contains(filepath.Base(t.compiler), "clang")
}

func (t *tools) driver() driver {
	if t.isMSVC() {
		return &msvc{tools: t}
	}
	return &gnu{tools: t}
}

func (c *CC) tools(req *buildsys.Request) *tools {
	t := &tools{target: req.Target, host: req.Host}

	ccKey, flagsKey := "CC", "CFLAGS"
	if req.CPlusPlus {
		ccKey, flagsKey = "CXX", "CXXFLAGS"
	}

	compiler := c.targetEnv(t, ccKey)
	if compiler == "" {
		compiler = defaultCompiler(t, req.CPlusPlus)
	}
	t.compiler, t.compilerArgs = splitCommand(compiler)

	archiver := c.targetEnv(t, "AR")
	if archiver == "" {
		archiver = defaultArchiver(t)
	}
	t.archiver, t.archiverArgs = splitCommand(archiver)

	t.extraFlags = strings.Fields(c.targetEnv(t, flagsKey))
	return t
}

// targetEnv looks key up the way build scripts expect: the target-specific
// forms first, then TARGET_/HOST_ prefixed, then the bare name.
func (c *CC) targetEnv(t *tools, key string) string {
	kind := "HOST_"
	if t.cross() {
		kind = "TARGET_"
	}
	keys := []string{
		key + "_" + t.target,
		key + "_" + strings.ReplaceAll(t.target, "-", "_"),
		kind + key,
		key,
	}
	for _, k := range lo.Uniq(keys) {
		if v := strings.TrimSpace(c.opts.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func defaultCompiler(t *tools, cxx bool) string {
	switch {
	case t.isMSVC():
		return "cl.exe"
	case strings.HasSuffix(t.target, "emscripten"):
		return pick(cxx, "em++", "emcc")
	case strings.Contains(t.target, "apple"):
		return pick(cxx, "clang++", "clang")
	case t.cross():
		if prefix := crossPrefix(t.target); prefix != "" {
			return prefix + pick(cxx, "-g++", "-gcc")
		}
	}
	return pick(cxx, "c++", "cc")
}

func defaultArchiver(t *tools) string {
	switch {
	case t.isMSVC():
		return "lib.exe"
	case strings.HasSuffix(t.target, "emscripten"):
		return "emar"
	case strings.Contains(t.target, "apple"):
		return "ar"
	case t.cross():
		if prefix := crossPrefix(t.target); prefix != "" {
			return prefix + "-ar"
		}
	}
	return "ar"
}

// crossPrefix returns the conventional GNU tool prefix for triple,
// e.g. "aarch64-linux-gnu" for "aarch64-unknown-linux-gnu".
func crossPrefix(triple string) string {
	parts := strings.Split(triple, "-")
	switch {
	case strings.HasSuffix(triple, "windows-gnu") && len(parts) == 4:
		return parts[0] + "-w64-mingw32"
	case len(parts) == 4:
		switch parts[1] {
		case "unknown", "pc", "none":
			return parts[0] + "-" + parts[2] + "-" + parts[3]
		}
		return triple
	case len(parts) == 3:
		return triple
	}
	return ""
}

// splitCommand splits an override such as "ccache gcc" into the program and
// its leading arguments.
func splitCommand(s string) (string, []string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
