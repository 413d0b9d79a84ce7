package lua

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goplus/luasrc/internal/env"
	"github.com/goplus/luasrc/pkgs/buildsys"
)

// fakeToolchain records every request and writes an empty archive instead
// of invoking a compiler.
type fakeToolchain struct {
	reqs []*buildsys.Request
	err  error
}

func (f *fakeToolchain) Compile(req *buildsys.Request) (string, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return "", f.err
	}
	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return "", err
	}
	lib := filepath.Join(req.OutDir, "lib"+req.LibName+".a")
	return lib, os.WriteFile(lib, []byte("!<arch>\n"), 0o644)
}

func (f *fakeToolchain) last(t *testing.T) *buildsys.Request {
	t.Helper()
	if len(f.reqs) == 0 {
		t.Fatal("toolchain was not invoked")
	}
	return f.reqs[len(f.reqs)-1]
}

// writeSourceTree creates root/<v.SourceDir()> with the public headers,
// a few C files and a nested directory.
func writeSourceTree(t *testing.T, root string, v Version) string {
	t.Helper()
	dir := filepath.Join(root, v.SourceDir())
	files := map[string]string{
		"lua.h":           "#define LUA_VERSION_NUM 504\n",
		"luaconf.h":       "#define LUAI_MAXSTACK 1000000\n",
		"lauxlib.h":       "#include \"lua.h\"\n",
		"lualib.h":        "#include \"lua.h\"\n",
		"lapi.c":          "int lapi;\n",
		"lvm.c":           "int lvm;\n",
		"README":          "not a source file\n",
		"extra/ignored.c": "int ignored;\n",
	}
	for _, name := range v.Files() {
		if _, ok := files[name]; !ok {
			files[name] = "int x;\n"
		}
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// newTestBuild returns a Build isolated from the process environment.
func newTestBuild(t *testing.T, target string, tc *fakeToolchain) (*Build, string) {
	t.Helper()
	root := t.TempDir()
	b := NewBuild()
	b.env = env.Env{}
	b.Target(target).
		OutDir(filepath.Join(root, "out")).
		SourceRoot(filepath.Join(root, "src")).
		Toolchain(tc)
	return b, root
}
