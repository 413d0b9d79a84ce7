// Package cc drives a C/C++ compiler and archiver to produce static
// libraries.
package cc

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sys/execabs"

	"github.com/goplus/luasrc/pkgs/buildsys"
)

// Options configures a CC.
type Options struct {
	Log zerolog.Logger

	// Stdout and Stderr receive the output of the tools. Nil discards it;
	// stderr is still captured for error messages.
	Stdout io.Writer
	Stderr io.Writer

	Observer buildsys.Observer

	// Getenv looks up tool overrides such as CC, AR and CFLAGS.
	// It defaults to os.Getenv.
	Getenv func(key string) string
}

// CC compiles static libraries with GNU-style compilers (gcc, clang,
// emscripten) or with MSVC, depending on the target.
type CC struct {
	opts      Options
	supported map[string]bool
}

var _ buildsys.Toolchain = (*CC)(nil)

// New returns a ready-to-use CC.
func New(opts Options) *CC {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	return &CC{opts: opts, supported: make(map[string]bool)}
}

// driver is one compiler family.
type driver interface {
	// compileArgs returns the arguments shared by every translation unit.
	compileArgs(req *buildsys.Request) []string
	// objectArgs returns the arguments compiling src into obj.
	objectArgs(src, obj string) []string
	// archiveArgs returns the arguments archiving objs into lib.
	archiveArgs(lib string, objs []string) []string
	// probeArgs returns the arguments used to check that flag is accepted.
	probeArgs(flag, src, obj string) []string
	objExt() string
	libFile(name string) string
}

// Compile builds req into a static library inside req.OutDir.
func (c *CC) Compile(req *buildsys.Request) (string, error) {
	if req.LibName == "" {
		return "", errors.New("cc: library name is empty")
	}
	if req.OutDir == "" {
		return "", errors.New("cc: output directory is empty")
	}
	if len(req.Files) == 0 {
		return "", errors.Errorf("cc: no source files for %s", req.LibName)
	}
	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return "", err
	}

	t := c.tools(req)
	d := t.driver()
	args := append(append([]string(nil), t.compilerArgs...), d.compileArgs(req)...)
	for _, flag := range req.FlagsIfSupported {
		if c.supports(t, d, req, flag) {
			args = append(args, flag)
		}
	}

	log := c.opts.Log.With().Str("lib", req.LibName).Str("target", req.Target).Logger()
	log.Debug().Str("compiler", t.compiler).Str("archiver", t.archiver).Int("files", len(req.Files)).Msg("compiling")

	if o := c.opts.Observer; o != nil {
		o.Start(req.LibName, len(req.Files))
	}
	objs := make([]string, 0, len(req.Files))
	for _, src := range req.Files {
		obj := filepath.Join(req.OutDir, objectName(src, d.objExt()))
		cmdArgs := append(append([]string(nil), args...), d.objectArgs(src, obj)...)
		if err := c.run(log, t.compiler, cmdArgs); err != nil {
			return "", err
		}
		objs = append(objs, obj)
		if o := c.opts.Observer; o != nil {
			o.Compiled(src)
		}
	}

	lib := filepath.Join(req.OutDir, d.libFile(req.LibName))
	if err := os.Remove(lib); err != nil && !os.IsNotExist(err) {
		return "", err
	}
	arArgs := append(append([]string(nil), t.archiverArgs...), d.archiveArgs(lib, objs)...)
	if err := c.run(log, t.archiver, arArgs); err != nil {
		return "", err
	}
	if o := c.opts.Observer; o != nil {
		o.Done(req.LibName)
	}
	log.Debug().Str("path", lib).Msg("archived")
	return lib, nil
}

// supports reports whether the compiler accepts flag, probing it once.
func (c *CC) supports(t *tools, d driver, req *buildsys.Request, flag string) bool {
	if _, ok := d.(*msvc); ok && strings.HasPrefix(flag, "-") {
		return false
	}
	key := t.compiler + " " + strings.Join(t.compilerArgs, " ") + " " + flag
	if ok, cached := c.supported[key]; cached {
		return ok
	}

	ext := ".c"
	if req.CPlusPlus {
		ext = ".cpp"
	}
	src := filepath.Join(req.OutDir, "flag_check"+ext)
	obj := filepath.Join(req.OutDir, "flag_check"+d.objExt())
	defer os.Remove(src)
	defer os.Remove(obj)

	ok := false
	if err := os.WriteFile(src, []byte("int main(void) { return 0; }\n"), 0o644); err == nil {
		args := append(append([]string(nil), t.compilerArgs...), d.probeArgs(flag, src, obj)...)
		cmd := execabs.Command(t.compiler, args...)
		cmd.Dir = req.OutDir
		ok = cmd.Run() == nil
	}
	c.opts.Log.Debug().Str("flag", flag).Bool("supported", ok).Msg("probed compiler flag")
	c.supported[key] = ok
	return ok
}

func (c *CC) run(log zerolog.Logger, name string, args []string) error {
	var stderr bytes.Buffer
	cmd := execabs.Command(name, args...)
	cmd.Stdout = c.opts.Stdout
	if c.opts.Stderr != nil {
		cmd.Stderr = io.MultiWriter(c.opts.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}
	log.Debug().Str("cmd", cmd.String()).Msg("run")
	if err := cmd.Run(); err != nil {
		if diag := strings.TrimSpace(stderr.String()); diag != "" {
			return errors.Wrapf(err, "%s\n%s", cmd.String(), diag)
		}
		return errors.Wrap(err, cmd.String())
	}
	return nil
}

// objectName derives a unique object file name from the source path so that
// files with the same base name in different directories do not collide.
func objectName(src, ext string) string {
	h := fnv.New32a()
	h.Write([]byte(filepath.Dir(src)))
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return fmt.Sprintf("%08x-%s%s", h.Sum32(), base, ext)
}
