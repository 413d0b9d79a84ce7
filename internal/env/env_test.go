package env

import (
	"os"
	"path/filepath"
	"testing"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadFrom(t *testing.T) {
	e := LoadFrom(mapLookup(map[string]string{
		"OUT_DIR":         "/tmp/out",
		"TARGET":          "x86_64-unknown-linux-gnu",
		"HOST":            "aarch64-apple-darwin",
		"OPT_LEVEL":       "s",
		"LUA_SOURCE_ROOT": "/src",
	}))
	if e.OutDir != "/tmp/out" || e.Target != "x86_64-unknown-linux-gnu" || e.Host != "aarch64-apple-darwin" {
		t.Fatalf("unexpected env: %+v", e)
	}
	if e.OptLevel != "s" || e.SourceRoot != "/src" {
		t.Fatalf("unexpected env: %+v", e)
	}
	if e.Debug != nil {
		t.Fatalf("Debug = %v, want unset", *e.Debug)
	}
}

func TestLoadFromDebug(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want *bool
	}{
		{"unset", map[string]string{}, nil},
		{"debug profile", map[string]string{"PROFILE": "debug"}, ptr(true)},
		{"release profile", map[string]string{"PROFILE": "release"}, ptr(false)},
		{"profile wins", map[string]string{"PROFILE": "release", "DEBUG": "true"}, ptr(false)},
		{"debug var", map[string]string{"DEBUG": "1"}, ptr(true)},
		{"debug false", map[string]string{"DEBUG": "false"}, ptr(false)},
		{"garbage", map[string]string{"DEBUG": "maybe"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LoadFrom(mapLookup(tt.vars)).Debug
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Debug = %v, want unset", *got)
			case tt.want != nil && got == nil:
				t.Errorf("Debug unset, want %v", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("Debug = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TARGET", "wasm32-unknown-emscripten")
	t.Setenv("OUT_DIR", "")
	e := Load()
	if e.Target != "wasm32-unknown-emscripten" {
		t.Errorf("Target = %q", e.Target)
	}
	if e.OutDir != "" {
		t.Errorf("OutDir = %q, want empty", e.OutDir)
	}
}

func TestWorkDir(t *testing.T) {
	workDir, err := WorkDir()
	if err != nil {
		t.Fatalf("WorkDir() returned error: %v", err)
	}
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		t.Fatalf("os.UserCacheDir() returned error: %v", err)
	}
	if want := filepath.Join(userCacheDir, ".luasrc"); workDir != want {
		t.Errorf("WorkDir() = %q, want %q", workDir, want)
	}
}
