// Package manifest defines the declarative list of requirements the
// provisioner converges the host towards.
package manifest

import (
	"fmt"
)

// InstallerKind identifies which package manager satisfies a requirement.
type InstallerKind string

const (
	// KindSystem requirements are installed system-wide via apt.
	KindSystem InstallerKind = "system"
	// KindPip requirements are installed via pip for the service account.
	KindPip InstallerKind = "pip"
)

// String returns the string representation of the kind.
func (k InstallerKind) String() string {
	return string(k)
}

// Valid reports whether the kind is one relprov knows how to install.
func (k InstallerKind) Valid() bool {
	return k == KindSystem || k == KindPip
}

// Requirement is a single package the host must have.
type Requirement struct {
	// Name is the package name as the installer knows it (e.g. "python3-pip")
	Name string `yaml:"name"`

	// Installer selects the package manager that owns this requirement
	Installer InstallerKind `yaml:"installer"`

	// Reason is a short human-readable note shown in listings
	Reason string `yaml:"reason,omitempty"`
}

// Manifest is an ordered list of requirements, consumed once per run.
// Order is significant: system requirements provide the runtime and pip
// itself, so they must precede every pip requirement.
type Manifest struct {
	Requirements []Requirement `yaml:"requirements"`
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if len(m.Requirements) == 0 {
		return fmt.Errorf("manifest has no requirements")
	}

	seen := make(map[string]bool, len(m.Requirements))
	for i, req := range m.Requirements {
		if req.Name == "" {
			return fmt.Errorf("requirement %d has an empty name", i)
		}
		if !req.Installer.Valid() {
			return fmt.Errorf("requirement %q has unknown installer %q", req.Name, req.Installer)
		}
		key := req.Installer.String() + "/" + req.Name
		if seen[key] {
			return fmt.Errorf("requirement %q listed twice for installer %q", req.Name, req.Installer)
		}
		seen[key] = true
	}

	return nil
}

// System returns the system requirements in manifest order.
func (m *Manifest) System() []Requirement {
	return m.byKind(KindSystem)
}

// Pip returns the pip requirements in manifest order.
func (m *Manifest) Pip() []Requirement {
	return m.byKind(KindPip)
}

func (m *Manifest) byKind(kind InstallerKind) []Requirement {
	var reqs []Requirement
	for _, req := range m.Requirements {
		if req.Installer == kind {
			reqs = append(reqs, req)
		}
	}
	return reqs
}
