package lua

import (
	"fmt"
	"slices"
	"strings"
)

// Version represents the release of Lua to build.
type Version int

const (
	Lua51 Version = iota
	Lua52
	Lua53
	Lua54
	// Lua51Coco is Lua 5.1 patched with Coco (true C coroutines).
	Lua51Coco
)

type versionInfo struct {
	name      string
	sourceDir string
	libName   string
	release   string
	files     []string
}

// lua51Files is the 5.1 core plus its standard libraries. The upstream 5.1
// src directory also carries the standalone interpreter and compiler
// (lua.c, luac.c, print.c) which must stay out of the library.
var lua51Files = []string{
	"lapi.c", "lcode.c", "ldebug.c", "ldo.c", "ldump.c", "lfunc.c", "lgc.c",
	"llex.c", "lmem.c", "lobject.c", "lopcodes.c", "lparser.c", "lstate.c",
	"lstring.c", "ltable.c", "ltm.c", "lundump.c", "lvm.c", "lzio.c",
	"lauxlib.c", "lbaselib.c", "ldblib.c", "liolib.c", "lmathlib.c",
	"loslib.c", "lstrlib.c", "ltablib.c", "loadlib.c", "linit.c",
}

var catalog = [...]versionInfo{
	Lua51: {
		name:      "lua51",
		sourceDir: "lua-5.1.5",
		libName:   "lua5.1",
		release:   "v5.1.5",
		files:     lua51Files,
	},
	Lua52: {
		name:      "lua52",
		sourceDir: "lua-5.2.4",
		libName:   "lua5.2",
		release:   "v5.2.4",
	},
	Lua53: {
		name:      "lua53",
		sourceDir: "lua-5.3.6",
		libName:   "lua5.3",
		release:   "v5.3.6",
	},
	Lua54: {
		name:      "lua54",
		sourceDir: "lua-5.4.8",
		libName:   "lua5.4",
		release:   "v5.4.8",
	},
	Lua51Coco: {
		name:      "lua51coco",
		sourceDir: "lua-5.1.5-coco",
		libName:   "lua5.1-coco",
		release:   "v5.1.5+coco",
		files:     append(slices.Clone(lua51Files), "lcoco.c"),
	},
}

// Versions returns every known version in catalog order.
func Versions() []Version {
	return []Version{Lua51, Lua52, Lua53, Lua54, Lua51Coco}
}

// ParseVersion parses a version name as returned by Version.String.
// A few common spellings ("5.4", "lua5.4") are accepted as well.
func ParseVersion(s string) (Version, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, ".", "")
	name = strings.ReplaceAll(name, "-", "")
	if !strings.HasPrefix(name, "lua") {
		name = "lua" + name
	}
	for _, v := range Versions() {
		if catalog[v].name == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown Lua version %q", s)
}

func (v Version) info() *versionInfo {
	if v < 0 || int(v) >= len(catalog) {
		panic(fmt.Sprintf("lua: invalid version %d", int(v)))
	}
	return &catalog[v]
}

// String returns the short name of the version, e.g. "lua54".
func (v Version) String() string {
	if v < 0 || int(v) >= len(catalog) {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return catalog[v].name
}

// SourceDir returns the name of the source tree directory of v.
func (v Version) SourceDir() string { return v.info().sourceDir }

// LibName returns the name of the static library built for v.
func (v Version) LibName() string { return v.info().libName }

// Release returns the upstream release of v in semver form.
func (v Version) Release() string { return v.info().release }

// Files returns the curated list of C sources for v, or nil when the whole
// source directory is compiled.
func (v Version) Files() []string {
	return slices.Clone(v.info().files)
}
