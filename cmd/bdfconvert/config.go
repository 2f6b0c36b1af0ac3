package main

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// Config is the optional file-based configuration; flags override it.
type Config struct {
	Root      string `toml:"root" yaml:"root"`
	Ext       string `toml:"ext" yaml:"ext"`
	Timezone  string `toml:"timezone" yaml:"timezone"`
	ChunkSize int    `toml:"chunk_size" yaml:"chunk_size"`
}

// LoadConfig reads a TOML or YAML config file, chosen by extension.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q (want .toml, .yaml, or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
