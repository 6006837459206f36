// Package config loads the optional embedding configuration for the core:
// recursion limit, module search path, and trace logging toggle. This is
// not a language feature — `quest.yaml` absence is not an error, and
// nothing here is visible to Quest source code.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the embedding-host configuration, loaded from quest.yaml.
type Config struct {
	// MaxCallDepth bounds user-level function call nesting before the
	// evaluator raises RuntimeErr instead of risking a native stack
	// overflow.
	MaxCallDepth int `yaml:"max_call_depth"`
	// ModuleSearchPath lists additional roots consulted for a `use` path
	// that is neither "std/..." nor relative.
	ModuleSearchPath []string `yaml:"module_search_path"`
	// Trace enables the internal/diag logger at debug level.
	Trace bool `yaml:"trace"`
}

// Default returns the configuration used when no quest.yaml is found.
func Default() *Config {
	return &Config{
		MaxCallDepth:     1000,
		ModuleSearchPath: nil,
		Trace:            false,
	}
}

// Load reads quest.yaml from dir (or the current working directory if dir
// is empty). A missing file is not an error; Default() is returned instead.
func Load(dir string) (*Config, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "config: resolve working directory")
		}
		dir = wd
	}
	path := filepath.Join(dir, "quest.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "config: read %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = Default().MaxCallDepth
	}
	return cfg, nil
}
