package lua

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/goplus/luasrc/internal/build"
)

// Artifacts describes the output of a successful build. The files it points
// to belong to the build's output directory.
type Artifacts struct {
	version     Version
	includeDir  string
	libDir      string
	libs        []string
	privateLibs []string
}

// IncludeDir returns the directory containing the Lua headers, or "" if
// no headers were published.
func (a Artifacts) IncludeDir() string { return a.includeDir }

// LibDir returns the directory containing the Lua libraries.
func (a Artifacts) LibDir() string { return a.libDir }

// Libs returns the names of the Lua libraries built.
func (a Artifacts) Libs() []string { return slices.Clone(a.libs) }

// Version returns the Lua version the artifacts were built from.
func (a Artifacts) Version() Version { return a.version }

// LoadArtifacts returns the artifacts recorded by the last successful build
// into outDir.
func LoadArtifacts(outDir string) (Artifacts, error) {
	m, err := build.LoadManifest(outDir)
	if err != nil {
		return Artifacts{}, fsError("read", build.ManifestPath(outDir), err)
	}
	v, err := ParseVersion(m.Version)
	if err != nil {
		return Artifacts{}, err
	}
	if len(m.Libs) != 1 || m.Libs[0] != v.LibName() {
		return Artifacts{}, errors.Errorf("manifest in %s lists libs %q, want [%s]", outDir, m.Libs, v.LibName())
	}
	return Artifacts{
		version:     v,
		includeDir:  m.IncludeDir,
		libDir:      m.LibDir,
		libs:        m.Libs,
		privateLibs: m.LinkLibs,
	}, nil
}

// Format selects the syntax of the link metadata written by WriteMetadata.
type Format int

const (
	// FormatCargo emits cargo build-script directives.
	FormatCargo Format = iota
	// FormatCGo emits #cgo CFLAGS/LDFLAGS directives.
	FormatCGo
	// FormatPkgConfig emits compiler and linker flags on one line.
	FormatPkgConfig
)

var formatNames = [...]string{
	FormatCargo:     "cargo",
	FormatCGo:       "cgo",
	FormatPkgConfig: "pkg-config",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat parses a format name as returned by Format.String.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if name == s {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metadata format %q", s)
}

// PrintCargoMetadata prints the cargo directives linking the Lua libraries
// to standard output.
//
// It is typically called from a build script. Calling it more than once
// prints the same directives again.
func (a Artifacts) PrintCargoMetadata() {
	_ = a.WriteMetadata(os.Stdout, FormatCargo)
}

// WriteMetadata writes the link metadata for a downstream build system.
func (a Artifacts) WriteMetadata(w io.Writer, f Format) error {
	var b strings.Builder
	switch f {
	case FormatCargo:
		fmt.Fprintf(&b, "cargo:rustc-link-search=native=%s\n", a.libDir)
		for _, lib := range a.libs {
			fmt.Fprintf(&b, "cargo:rustc-link-lib=static=%s\n", lib)
		}
		if a.includeDir != "" {
			fmt.Fprintf(&b, "cargo:include=%s\n", a.includeDir)
			fmt.Fprintf(&b, "cargo:lib=%s\n", a.libDir)
		}
	case FormatCGo:
		if a.includeDir != "" {
			fmt.Fprintf(&b, "#cgo CFLAGS: -I%s\n", a.includeDir)
		}
		fmt.Fprintf(&b, "#cgo LDFLAGS: %s\n", strings.Join(a.ldflags(), " "))
	case FormatPkgConfig:
		var flags []string
		if a.includeDir != "" {
			flags = append(flags, "-I"+a.includeDir)
		}
		flags = append(flags, a.ldflags()...)
		fmt.Fprintln(&b, strings.Join(flags, " "))
	default:
		return fmt.Errorf("unknown metadata format %v", f)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (a Artifacts) ldflags() []string {
	flags := []string{"-L" + a.libDir}
	for _, lib := range a.libs {
		flags = append(flags, "-l"+lib)
	}
	for _, lib := range a.privateLibs {
		flags = append(flags, "-l"+lib)
	}
	return flags
}

// PkgConfig renders a pkg-config file describing the artifacts.
func (a Artifacts) PkgConfig() string {
	var b strings.Builder
	release, _, _ := strings.Cut(strings.TrimPrefix(a.version.Release(), "v"), "+")
	if a.includeDir != "" {
		fmt.Fprintf(&b, "includedir=%s\n", a.includeDir)
	}
	fmt.Fprintf(&b, "libdir=%s\n\n", a.libDir)
	fmt.Fprintf(&b, "Name: %s\n", a.version.LibName())
	fmt.Fprintf(&b, "Description: Lua %s static library\n", release)
	fmt.Fprintf(&b, "Version: %s\n", release)

	libs := []string{"-L${libdir}"}
	for _, lib := range a.libs {
		libs = append(libs, "-l"+lib)
	}
	fmt.Fprintf(&b, "Libs: %s\n", strings.Join(libs, " "))
	if len(a.privateLibs) > 0 {
		private := make([]string, 0, len(a.privateLibs))
		for _, lib := range a.privateLibs {
			private = append(private, "-l"+lib)
		}
		fmt.Fprintf(&b, "Libs.private: %s\n", strings.Join(private, " "))
	}
	if a.includeDir != "" {
		fmt.Fprintln(&b, "Cflags: -I${includedir}")
	}
	return b.String()
}
