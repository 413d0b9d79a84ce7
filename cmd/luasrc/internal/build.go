package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/goplus/luasrc/internal/config"
	"github.com/goplus/luasrc/internal/env"
	"github.com/goplus/luasrc/lua"
	"github.com/goplus/luasrc/pkgs/buildsys/cc"
)

var (
	buildTarget     string
	buildHost       string
	buildOut        string
	buildOptLevel   string
	buildSourceRoot string
	buildFormat     string
	buildConfig     string
	buildDebug      bool
	buildUCID       bool
	buildVerbose    bool
)

var buildCmd = &cobra.Command{
	Use:   "build [version...]",
	Short: "Build Lua static libraries",
	Long: `Build compiles one or more Lua versions into static libraries and prints
the link metadata for each of them.

Settings are taken from the flags, then from luasrc.toml, then from the
OUT_DIR, TARGET, HOST, OPT_LEVEL, PROFILE/DEBUG and LUA_SOURCE_ROOT
environment variables. With several versions, each one is built into its
own subdirectory of the output directory.`,
	RunE: runBuild,
}

func init() {
	flags := buildCmd.Flags()
	flags.StringVar(&buildTarget, "target", "", "Target triple (default: the host)")
	flags.StringVar(&buildHost, "host", "", "Host triple (default: the target)")
	flags.StringVarP(&buildOut, "out", "o", "", "Output directory")
	flags.StringVarP(&buildOptLevel, "opt-level", "O", "", "Optimization level: 0-3, s or z")
	flags.StringVar(&buildSourceRoot, "source-root", "", "Directory containing the lua-x.y.z source trees")
	flags.StringVarP(&buildFormat, "format", "f", "", "Metadata format: cargo, cgo or pkg-config")
	flags.StringVarP(&buildConfig, "config", "c", "", "Config file (default: ./"+config.FileName+" if present)")
	flags.BoolVarP(&buildDebug, "debug", "g", false, "Build with debug info and API checks")
	flags.BoolVar(&buildUCID, "ucid", false, "Allow Unicode identifiers (Lua 5.4)")
	flags.BoolVarP(&buildVerbose, "verbose", "v", false, "Enable verbose build output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(buildConfig)
	if err != nil {
		return err
	}

	versions, err := parseVersions(lo.Ternary(len(args) > 0, args, cfg.Versions))
	if err != nil {
		return err
	}
	format, err := lua.ParseFormat(lo.CoalesceOrEmpty(buildFormat, cfg.Format, lua.FormatCargo.String()))
	if err != nil {
		return err
	}

	out := lo.CoalesceOrEmpty(buildOut, cfg.OutDir, os.Getenv(env.OutDir))
	if out == "" {
		if out, err = env.WorkDir(); err != nil {
			return fmt.Errorf("failed to get work dir: %w", err)
		}
	}

	stderr := cmd.ErrOrStderr()
	log := newLogger(stderr, buildVerbose)
	opts := cc.Options{Log: log}
	if buildVerbose {
		opts.Stdout, opts.Stderr = stderr, stderr
	} else {
		opts.Observer = newProgress(stderr)
	}

	b := lua.NewBuild().
		OutDir(out).
		Target(targetTriple(buildTarget, cfg)).
		Host(lo.CoalesceOrEmpty(buildHost, cfg.Host)).
		OptLevel(lo.CoalesceOrEmpty(buildOptLevel, cfg.OptLevel)).
		SourceRoot(lo.CoalesceOrEmpty(buildSourceRoot, cfg.SourceRoot)).
		UCID(buildUCID || cfg.UCID).
		Toolchain(cc.New(opts)).
		Logger(log)
	switch {
	case cmd.Flags().Changed("debug"):
		b.Debug(buildDebug)
	case cfg.Debug != nil:
		b.Debug(*cfg.Debug)
	}

	var all []lua.Artifacts
	if len(versions) == 1 {
		artifacts, err := b.TryBuild(versions[0])
		if err != nil {
			return err
		}
		all = append(all, artifacts)
	} else if all, err = b.BuildAll(versions...); err != nil {
		return err
	}
	return writeMetadata(cmd.OutOrStdout(), all, format)
}

// targetTriple picks the target by precedence: flag, config file, TARGET,
// then the host.
func targetTriple(flag string, cfg *config.Config) string {
	return lo.CoalesceOrEmpty(flag, cfg.Target, os.Getenv(env.Target), defaultTriple())
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path, false)
	}
	return config.Load(config.FileName, true)
}

// parseVersions parses version names, dropping duplicates. No names means
// the latest version.
func parseVersions(names []string) ([]lua.Version, error) {
	if len(names) == 0 {
		return []lua.Version{lua.Lua54}, nil
	}
	versions := make([]lua.Version, 0, len(names))
	for _, name := range names {
		v, err := lua.ParseVersion(name)
		if err != nil {
			return nil, fmt.Errorf("%w (known versions: %s)", err, knownVersions())
		}
		versions = append(versions, v)
	}
	return lo.Uniq(versions), nil
}

func knownVersions() string {
	return strings.Join(lo.Map(lua.Versions(), func(v lua.Version, _ int) string { return v.String() }), ", ")
}

func writeMetadata(w io.Writer, all []lua.Artifacts, format lua.Format) error {
	for _, artifacts := range all {
		if err := artifacts.WriteMetadata(w, format); err != nil {
			return err
		}
	}
	return nil
}
