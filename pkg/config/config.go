// Package config handles the relprov configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds host-specific provisioning settings.
type Config struct {
	// PipUser is the non-root service account pip packages are installed for.
	PipUser string `yaml:"pip_user"`

	// AptGet is the apt-get command name or path.
	AptGet string `yaml:"apt_get,omitempty"`

	// Dpkg is the dpkg command name or path.
	Dpkg string `yaml:"dpkg,omitempty"`

	// Pip is the pip command name or path.
	Pip string `yaml:"pip,omitempty"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		PipUser: "datarel",
		AptGet:  "apt-get",
		Dpkg:    "dpkg",
		Pip:     "pip3",
	}
}

// Load reads a configuration file, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.PipUser == "" {
		return fmt.Errorf("pip_user must not be empty")
	}
	if c.PipUser == "root" {
		return fmt.Errorf("pip_user must be a non-root account")
	}
	return nil
}
