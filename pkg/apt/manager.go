// Package apt drives the system package manager on Debian-family hosts.
package apt

import (
	"fmt"
	"strings"

	"github.com/data-releases/relprov/pkg/execx"
)

// installedState is the selection token dpkg reports for installed packages.
// Anything else (deinstall, purge, hold) counts as not installed.
const installedState = "install"

// Manager queries and installs system packages via dpkg and apt-get.
type Manager struct {
	executor execx.CommandExecutor
	aptGet   string
	dpkg     string
}

// Option configures a Manager.
type Option func(*Manager)

// WithExecutor sets a custom command executor (for testing).
func WithExecutor(exec execx.CommandExecutor) Option {
	return func(m *Manager) {
		m.executor = exec
	}
}

// WithCommands overrides the apt-get and dpkg command names.
func WithCommands(aptGet, dpkg string) Option {
	return func(m *Manager) {
		if aptGet != "" {
			m.aptGet = aptGet
		}
		if dpkg != "" {
			m.dpkg = dpkg
		}
	}
}

// NewManager creates a system package manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		executor: &execx.RealExecutor{},
		aptGet:   "apt-get",
		dpkg:     "dpkg",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the installer name used in logs and reports.
func (m *Manager) Name() string {
	return "apt"
}

// Installed reports whether the named package is installed.
//
// The package name must match a selections line exactly; a package whose
// name merely starts with the queried name does not count.
func (m *Manager) Installed(name string) (bool, error) {
	output, err := m.executor.Run(m.dpkg, "--get-selections")
	if err != nil {
		return false, fmt.Errorf("dpkg query failed: %w", err)
	}

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if fields[0] == name && fields[1] == installedState {
			return true, nil
		}
	}

	return false, nil
}

// Install installs the named package system-wide. Requires root via sudo.
func (m *Manager) Install(name string) error {
	output, err := m.executor.CombinedOutput(
		"sudo", "DEBIAN_FRONTEND=noninteractive",
		m.aptGet, "install", "-y", name,
	)
	if err != nil {
		return fmt.Errorf("apt-get install %s failed: %w\nOutput: %s", name, err, string(output))
	}
	return nil
}
