// Package pip drives pip installs for the data-releases service account.
package pip

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/data-releases/relprov/pkg/execx"
)

// versionRe matches a dotted numeric version. A listing entry whose
// version is anything else is treated as not installed.
var versionRe = regexp.MustCompile(`^\d+(\.\d+)*$`)

// Manager queries and installs Python packages with pip, always acting as
// a dedicated non-root service account.
type Manager struct {
	executor execx.CommandExecutor
	pip      string
	user     string
}

// Option configures a Manager.
type Option func(*Manager)

// WithExecutor sets a custom command executor (for testing).
func WithExecutor(exec execx.CommandExecutor) Option {
	return func(m *Manager) {
		m.executor = exec
	}
}

// WithCommand overrides the pip command name.
func WithCommand(pip string) Option {
	return func(m *Manager) {
		if pip != "" {
			m.pip = pip
		}
	}
}

// NewManager creates a pip manager acting as the given service account.
func NewManager(user string, opts ...Option) *Manager {
	m := &Manager{
		executor: &execx.RealExecutor{},
		pip:      "pip3",
		user:     user,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the installer name used in logs and reports.
func (m *Manager) Name() string {
	return "pip"
}

// User returns the service account installs run under.
func (m *Manager) User() string {
	return m.user
}

// Installed reports whether the named package appears in the service
// account's pip listing with a dotted numeric version.
//
// Both listing formats are accepted: the modern column output
// ("icalendar   5.0.11") and the legacy parenthesized one
// ("icalendar (3.11)").
func (m *Manager) Installed(name string) (bool, error) {
	output, err := m.executor.Run(
		"sudo", "-H", "-u", m.user,
		m.pip, "list", "--disable-pip-version-check",
	)
	if err != nil {
		return false, fmt.Errorf("pip list failed: %w", err)
	}

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != name {
			continue
		}
		version := strings.TrimSuffix(strings.TrimPrefix(fields[1], "("), ")")
		if versionRe.MatchString(version) {
			return true, nil
		}
	}

	return false, nil
}

// Install installs the named package for the service account.
func (m *Manager) Install(name string) error {
	output, err := m.executor.CombinedOutput(
		"sudo", "-H", "-u", m.user,
		m.pip, "install", name,
	)
	if err != nil {
		return fmt.Errorf("pip install %s failed: %w\nOutput: %s", name, err, string(output))
	}
	return nil
}
