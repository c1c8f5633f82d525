package main

import (
	"fmt"

	"github.com/data-releases/relprov/pkg/apt"
	"github.com/data-releases/relprov/pkg/config"
	"github.com/data-releases/relprov/pkg/manifest"
	"github.com/data-releases/relprov/pkg/pip"
	"github.com/data-releases/relprov/pkg/provision"
)

// loadManifest loads the manifest file, or the embedded default when no
// path is given.
func loadManifest(path string) (*manifest.Manifest, error) {
	if path == "" {
		return manifest.Default()
	}
	return manifest.Load(path)
}

// loadConfig loads the config file, or the defaults when no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildInstallers wires the real package managers from the config.
func buildInstallers(cfg *config.Config) (system, pipInstaller provision.Installer) {
	system = apt.NewManager(apt.WithCommands(cfg.AptGet, cfg.Dpkg))
	pipInstaller = pip.NewManager(cfg.PipUser, pip.WithCommand(cfg.Pip))
	return system, pipInstaller
}

// setup resolves manifest, config and installers for a subcommand.
func setup(manifestPath, configPath string) (*manifest.Manifest, provision.Installer, provision.Installer, error) {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	system, pipInstaller := buildInstallers(cfg)
	return m, system, pipInstaller, nil
}
