package internal

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/goplus/luasrc/internal/config"
	"github.com/goplus/luasrc/internal/env"
	"github.com/goplus/luasrc/internal/platform"
)

var (
	resolveTarget string
	resolveConfig string
	resolveDebug  bool
	resolveUCID   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [version]",
	Short: "Show the compile settings for a target",
	Long:  `Resolve prints the platform, preprocessor defines and compiler flags used to build a Lua version for a target triple.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveTarget, "target", "", "Target triple (default: the host)")
	resolveCmd.Flags().StringVarP(&resolveConfig, "config", "c", "", "Config file (default: ./"+config.FileName+" if present)")
	resolveCmd.Flags().BoolVarP(&resolveDebug, "debug", "g", false, "Resolve a debug build")
	resolveCmd.Flags().BoolVar(&resolveUCID, "ucid", false, "Allow Unicode identifiers (Lua 5.4)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(resolveConfig)
	if err != nil {
		return err
	}
	versions, err := parseVersions(lo.Ternary(len(args) > 0, args, cfg.Versions))
	if err != nil {
		return err
	}
	v := versions[0]
	target := targetTriple(resolveTarget, cfg)
	if target == "" {
		return fmt.Errorf("--target is required on this host")
	}

	opts := platform.Options{Debug: resolveDebug, UCID: resolveUCID || cfg.UCID}
	if !cmd.Flags().Changed("debug") {
		if debug := lo.CoalesceOrEmpty(cfg.Debug, env.Load().Debug); debug != nil {
			opts.Debug = *debug
		}
	}
	p, err := platform.Resolve(target, v.Release(), opts)
	if err != nil {
		return err
	}
	defines := lo.Map(p.Defines, func(d platform.Define, _ int) string { return d.String() })

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "version:   %s (%s)\n", v, v.Release())
	fmt.Fprintf(w, "target:    %s\n", target)
	fmt.Fprintf(w, "platform:  %s\n", p.Platform)
	fmt.Fprintf(w, "defines:   %s\n", strings.Join(defines, " "))
	fmt.Fprintf(w, "flags:     %s\n", strings.Join(p.Flags, " "))
	fmt.Fprintf(w, "c++:       %t\n", p.CPlusPlus)
	fmt.Fprintf(w, "staged:    %t\n", p.Transform)
	fmt.Fprintf(w, "library:   %s\n", v.LibName())
	return nil
}
