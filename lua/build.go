package lua

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/goplus/luasrc/internal/build"
	"github.com/goplus/luasrc/internal/env"
	"github.com/goplus/luasrc/internal/platform"
	"github.com/goplus/luasrc/internal/sources"
	"github.com/goplus/luasrc/internal/stage"
	"github.com/goplus/luasrc/pkgs/buildsys"
	"github.com/goplus/luasrc/pkgs/buildsys/cc"
)

// PublicHeaders are copied into the include directory of every build.
var PublicHeaders = []string{"lauxlib.h", "lua.h", "luaconf.h", "lualib.h"}

// Build holds the configuration for building Lua artifacts. Unset values
// fall back to the environment captured by NewBuild.
type Build struct {
	outDir     string
	target     string
	host       string
	optLevel   string
	sourceRoot string
	debug      *bool
	ucid       bool

	toolchain buildsys.Toolchain
	log       zerolog.Logger
	env       env.Env
}

// NewBuild returns a Build that reads OUT_DIR, TARGET, HOST, OPT_LEVEL,
// PROFILE/DEBUG and LUA_SOURCE_ROOT from the current environment.
func NewBuild() *Build {
	return &Build{log: zerolog.Nop(), env: env.Load()}
}

// OutDir sets the directory receiving the build artifacts.
// Required unless OUT_DIR is set.
func (b *Build) OutDir(path string) *Build {
	b.outDir = path
	return b
}

// Target sets the target triple. Required unless TARGET is set.
func (b *Build) Target(target string) *Build {
	b.target = target
	return b
}

// Host sets the host triple. It defaults to HOST, then to the target.
func (b *Build) Host(host string) *Build {
	b.host = host
	return b
}

// OptLevel sets the optimization level ("0".."3", "s", "z"). It defaults
// to OPT_LEVEL, then to "0" for debug builds and "2" otherwise.
func (b *Build) OptLevel(level string) *Build {
	b.optLevel = level
	return b
}

// Debug enables debug info and Lua API checks. It defaults to the
// PROFILE/DEBUG environment, then to false.
func (b *Build) Debug(debug bool) *Build {
	b.debug = &debug
	return b
}

// SourceRoot sets the directory containing the lua-x.y.z source trees.
// Required unless LUA_SOURCE_ROOT is set.
func (b *Build) SourceRoot(dir string) *Build {
	b.sourceRoot = dir
	return b
}

// UCID allows Unicode identifiers in Lua 5.4 sources.
func (b *Build) UCID(enable bool) *Build {
	b.ucid = enable
	return b
}

// Toolchain replaces the compiler driver.
func (b *Build) Toolchain(tc buildsys.Toolchain) *Build {
	b.toolchain = tc
	return b
}

// Logger sets the logger used for build progress.
func (b *Build) Logger(log zerolog.Logger) *Build {
	b.log = log
	return b
}

// config is a Build with every setting resolved.
type config struct {
	outDir     string
	target     string
	host       string
	optLevel   string
	sourceRoot string
	debug      bool
	ucid       bool
}

func (b *Build) resolve() (*config, error) {
	cfg := &config{
		target:     lo.CoalesceOrEmpty(b.target, b.env.Target),
		outDir:     lo.CoalesceOrEmpty(b.outDir, b.env.OutDir),
		sourceRoot: lo.CoalesceOrEmpty(b.sourceRoot, b.env.SourceRoot),
		ucid:       b.ucid,
	}
	switch {
	case cfg.target == "":
		return nil, errors.WithStack(&MissingConfigError{Name: env.Target})
	case cfg.outDir == "":
		return nil, errors.WithStack(&MissingConfigError{Name: env.OutDir})
	case cfg.sourceRoot == "":
		return nil, errors.WithStack(&MissingConfigError{Name: env.SourceRoot})
	}

	outDir, err := filepath.Abs(cfg.outDir)
	if err != nil {
		return nil, fsError("resolve", cfg.outDir, err)
	}
	cfg.outDir = outDir

	// Outside a build script HOST is unset; assume a native build.
	cfg.host = lo.CoalesceOrEmpty(b.host, b.env.Host, cfg.target)

	switch {
	case b.debug != nil:
		cfg.debug = *b.debug
	case b.env.Debug != nil:
		cfg.debug = *b.env.Debug
	}

	cfg.optLevel = lo.CoalesceOrEmpty(b.optLevel, b.env.OptLevel)
	if cfg.optLevel == "" {
		cfg.optLevel = "2"
		if cfg.debug {
			cfg.optLevel = "0"
		}
	}
	return cfg, nil
}

// MustBuild builds v and panics on failure.
func (b *Build) MustBuild(v Version) Artifacts {
	artifacts, err := b.TryBuild(v)
	if err != nil {
		panic(err)
	}
	return artifacts
}

// TryBuild builds the static library of v and publishes its headers.
func (b *Build) TryBuild(v Version) (Artifacts, error) {
	cfg, err := b.resolve()
	if err != nil {
		return Artifacts{}, err
	}
	log := b.log.With().Stringer("version", v).Str("target", cfg.target).Logger()

	sourceDir := filepath.Join(cfg.sourceRoot, v.SourceDir())
	if _, err := os.Stat(sourceDir); err != nil {
		return Artifacts{}, fsError("read", sourceDir, err)
	}
	libDir := filepath.Join(cfg.outDir, "lib")
	includeDir := filepath.Join(cfg.outDir, "include")
	if err := os.MkdirAll(includeDir, 0o755); err != nil {
		return Artifacts{}, fsError("create", includeDir, err)
	}

	profile, err := platform.Resolve(cfg.target, v.Release(), platform.Options{Debug: cfg.debug, UCID: cfg.ucid})
	if err != nil {
		if errors.Is(err, platform.ErrUnsupportedTarget) {
			return Artifacts{}, errors.WithStack(&UnsupportedTargetError{Target: cfg.target})
		}
		return Artifacts{}, err
	}
	defines := lo.Map(profile.Defines, func(d platform.Define, _ int) string { return d.String() })
	log.Debug().Stringer("platform", profile.Platform).Strs("defines", defines).Msg("resolved platform profile")

	if profile.Transform {
		staged := filepath.Join(cfg.outDir, "cpp_source")
		if err := stage.Wrap(sourceDir, staged, stage.Headers); err != nil {
			return Artifacts{}, fsError("stage", staged, err)
		}
		log.Debug().Str("dir", staged).Msg("staged sources for C++")
		sourceDir = staged
	}

	files, err := sourceFiles(v, sourceDir)
	if err != nil {
		return Artifacts{}, fsError("read", sourceDir, err)
	}

	req := &buildsys.Request{
		Target:           cfg.target,
		Host:             cfg.host,
		Includes:         []string{sourceDir},
		Defines:          lo.Map(profile.Defines, func(d platform.Define, _ int) buildsys.Define { return buildsys.Define(d) }),
		Flags:            profile.Flags,
		FlagsIfSupported: []string{"-fno-common"},
		CPlusPlus:        profile.CPlusPlus,
		Warnings:         false,
		OptLevel:         cfg.optLevel,
		Debug:            profile.Debug,
		Files:            files,
		OutDir:           libDir,
		LibName:          v.LibName(),
	}
	tc := b.toolchain
	if tc == nil {
		tc = cc.New(cc.Options{Log: b.log})
	}
	libFile, err := tc.Compile(req)
	if err != nil {
		return Artifacts{}, errors.WithStack(&CompileError{Lib: v.LibName(), Err: err})
	}

	for _, name := range PublicHeaders {
		from := filepath.Join(sourceDir, name)
		to := filepath.Join(includeDir, name)
		if err := copyFile(from, to); err != nil {
			return Artifacts{}, fsError("copy", from, err)
		}
	}

	artifacts := Artifacts{
		version:     v,
		includeDir:  includeDir,
		libDir:      libDir,
		libs:        []string{v.LibName()},
		privateLibs: privateLibs(profile.Platform),
	}
	pcFile := filepath.Join(libDir, "pkgconfig", v.LibName()+".pc")
	if err := writeFile(pcFile, []byte(artifacts.PkgConfig())); err != nil {
		return Artifacts{}, fsError("write", pcFile, err)
	}

	m := &build.Manifest{
		Version:    v.String(),
		Release:    v.Release(),
		Target:     cfg.target,
		Host:       cfg.host,
		IncludeDir: includeDir,
		LibDir:     libDir,
		Libs:       artifacts.Libs(),
		LinkLibs:   artifacts.privateLibs,
		LibFile:    libFile,
		Defines:    defines,
		OptLevel:   cfg.optLevel,
		Debug:      cfg.debug,
		CPlusPlus:  profile.CPlusPlus,
		BuildTime:  time.Now(),
	}
	if err := build.SaveManifest(cfg.outDir, m); err != nil {
		return Artifacts{}, fsError("write", build.ManifestPath(cfg.outDir), err)
	}

	log.Info().Str("lib", libFile).Int("files", len(files)).Msg("built Lua")
	return artifacts, nil
}

// BuildAll builds every version in turn, each into its own subdirectory of
// the output directory named after its library.
func (b *Build) BuildAll(versions ...Version) ([]Artifacts, error) {
	root := lo.CoalesceOrEmpty(b.outDir, b.env.OutDir)
	if root == "" {
		return nil, errors.WithStack(&MissingConfigError{Name: env.OutDir})
	}
	all := make([]Artifacts, 0, len(versions))
	for _, v := range versions {
		sub := *b
		sub.outDir = filepath.Join(root, v.LibName())
		artifacts, err := sub.TryBuild(v)
		if err != nil {
			return nil, err
		}
		all = append(all, artifacts)
	}
	return all, nil
}

// sourceFiles lists the C files of v: the curated list for versions that
// have one, every .c file of dir otherwise.
func sourceFiles(v Version, dir string) ([]string, error) {
	if names := v.Files(); names != nil {
		return sources.Curated(dir, names)
	}
	return sources.ByExt(dir, "c")
}

func privateLibs(p platform.Platform) []string {
	switch p {
	case platform.Linux:
		return []string{"m", "dl"}
	case platform.BSD, platform.Darwin, platform.IOS:
		return []string{"m"}
	}
	return nil
}

func copyFile(from, to string) error {
	data, err := os.ReadFile(from)
	if err != nil {
		return err
	}
	return os.WriteFile(to, data, 0o644)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
