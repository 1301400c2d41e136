// Package config holds runtime limits and logging settings for the
// extraction tool. The codec itself takes its limits as plain arguments;
// this package exists so the CLI can cap input size and recursion depth
// before handing untrusted bytes to the core.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultMaxNesting = 32

// DefaultMaxFileSize caps input FLV files at 256 MiB.
const DefaultMaxFileSize int64 = 256 << 20

type Config struct {
	// MaxNesting bounds recursion while decoding nested AMF0 containers.
	MaxNesting int `yaml:"max_nesting"`
	// MaxFileSize is the largest FLV file, in bytes, the tool will read.
	MaxFileSize int64 `yaml:"max_file_size"`
	// Development selects zap's development logger (human-readable output,
	// debug level) over the production one.
	Development bool `yaml:"development"`
}

func Default() Config {
	return Config{
		MaxNesting:  DefaultMaxNesting,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Load reads a YAML config file, filling unset fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxNesting <= 0 {
		return errors.Errorf("max_nesting must be positive, got %d", c.MaxNesting)
	}
	if c.MaxFileSize <= 0 {
		return errors.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	return nil
}
