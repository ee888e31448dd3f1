package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns the config file location under the XDG config
// home, e.g. ~/.config/pixeldrift/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "pixeldrift", "config.yaml")
}

// Load reads the config from the default path. A missing file yields the
// defaults, not an error.
func Load() (*Config, error) {
	return LoadFromPath(DefaultConfigPath())
}

// LoadFromPath reads, decodes and validates the config at an explicit
// path. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	var raw RawConfig

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through with an empty raw config.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := decodeStrictYAML(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg := BuildEffectiveConfig(raw)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeStrictYAML decodes YAML rejecting unknown keys. An empty document
// leaves out untouched.
func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
