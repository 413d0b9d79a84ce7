// Package config loads luasrc.toml, the optional project file of the luasrc
// command.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// FileName is the name of the project file looked up in the working directory.
const FileName = "luasrc.toml"

// Config is the content of luasrc.toml. Relative paths are resolved against
// the directory of the file.
type Config struct {
	SourceRoot string   `toml:"source-root"`
	OutDir     string   `toml:"out-dir"`
	Target     string   `toml:"target"`
	Host       string   `toml:"host"`
	OptLevel   string   `toml:"opt-level"`
	Debug      *bool    `toml:"debug"`
	UCID       bool     `toml:"ucid"`
	Format     string   `toml:"format"`
	Versions   []string `toml:"versions"`
}

// Load reads the config at path. A missing file yields an empty Config when
// optional is set.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	dir := filepath.Dir(path)
	cfg.SourceRoot = resolve(dir, cfg.SourceRoot)
	cfg.OutDir = resolve(dir, cfg.OutDir)
	return &cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
