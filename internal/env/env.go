package env

import (
	"os"
	"path/filepath"
	"strconv"
)

// Environment variables consulted when a build setting is not configured.
const (
	OutDir     = "OUT_DIR"
	Target     = "TARGET"
	Host       = "HOST"
	OptLevel   = "OPT_LEVEL"
	Profile    = "PROFILE"
	Debug      = "DEBUG"
	SourceRoot = "LUA_SOURCE_ROOT"
)

// Env is a snapshot of the build environment. Empty strings and a nil Debug
// mean the variable was not set.
type Env struct {
	OutDir     string
	Target     string
	Host       string
	OptLevel   string
	SourceRoot string
	Debug      *bool
}

// Load reads the build environment of the current process.
func Load() Env {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads the build environment through lookup.
func LoadFrom(lookup func(key string) (string, bool)) Env {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	e := Env{
		OutDir:     get(OutDir),
		Target:     get(Target),
		Host:       get(Host),
		OptLevel:   get(OptLevel),
		SourceRoot: get(SourceRoot),
	}
	switch get(Profile) {
	case "debug":
		e.Debug = ptr(true)
	case "release", "bench":
		e.Debug = ptr(false)
	default:
		if b, err := strconv.ParseBool(get(Debug)); err == nil {
			e.Debug = ptr(b)
		}
	}
	return e
}

// WorkDir returns the directory luasrc uses for builds that have no
// explicit output directory.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".luasrc"), nil
}

func ptr[T any](v T) *T { return &v }
