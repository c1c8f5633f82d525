package manifest

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultManifest is the built-in requirement list for a data-releases
// build host. Used whenever no manifest file is given.
//
//go:embed default.yaml
var defaultManifest []byte

// Default returns the built-in manifest.
func Default() (*Manifest, error) {
	return parse(defaultManifest, "embedded default")
}

// Load reads a manifest from a YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", source, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", source, err)
	}
	return &m, nil
}
