package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Output directory layout:
//
//	outDir/
//	  .artifacts.json     # manifest of the last successful build
//	  include/            # public headers
//	  lib/                # static library
//	    pkgconfig/
//	  cpp_source/         # staged sources, emscripten only
const manifestFile = ".artifacts.json"

// Manifest describes the artifacts of one successful build.
type Manifest struct {
	Version    string    `json:"version"`
	Release    string    `json:"release"`
	Target     string    `json:"target"`
	Host       string    `json:"host"`
	IncludeDir string    `json:"include_dir,omitempty"`
	LibDir     string    `json:"lib_dir"`
	Libs       []string  `json:"libs"`
	LinkLibs   []string  `json:"link_libs,omitempty"`
	LibFile    string    `json:"lib_file"`
	Defines    []string  `json:"defines"`
	OptLevel   string    `json:"opt_level"`
	Debug      bool      `json:"debug"`
	CPlusPlus  bool      `json:"cplusplus,omitempty"`
	BuildTime  time.Time `json:"build_time"`
}

// ManifestPath returns the manifest location inside outDir.
func ManifestPath(outDir string) string {
	return filepath.Join(outDir, manifestFile)
}

// SaveManifest writes m into outDir.
func SaveManifest(outDir string, m *Manifest) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ManifestPath(outDir), data, 0o644)
}

// LoadManifest reads the manifest from outDir.
func LoadManifest(outDir string) (*Manifest, error) {
	data, err := os.ReadFile(ManifestPath(outDir))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
