// Package provision converges a host onto its requirement manifest:
// every requirement is checked and, when absent, installed through the
// installer that owns it. Satisfied requirements are never touched again.
package provision

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/data-releases/relprov/pkg/manifest"
)

// Installer abstracts a package manager so the orchestration can be
// tested without one present on the build machine.
type Installer interface {
	// Name identifies the installer in logs and reports ("apt", "pip").
	Name() string

	// Installed reports whether the named package is present. An error
	// means the query itself failed, not that the package is missing.
	Installed(name string) (bool, error)

	// Install installs the named package.
	Install(name string) error
}

// StepState tracks a requirement through the provisioning run.
type StepState int

const (
	// StateUnchecked means the requirement has not been examined yet.
	StateUnchecked StepState = iota
	// StatePresent means the requirement was already satisfied.
	StatePresent
	// StateMissing means the requirement is absent (set by Check only).
	StateMissing
	// StateInstalling means an install invocation is in flight.
	StateInstalling
	// StateInstalled means the requirement was installed by this run.
	StateInstalled
	// StateFailed means a query or install failed; the run stops here.
	StateFailed
)

// String returns the string representation of the state.
func (s StepState) String() string {
	switch s {
	case StateUnchecked:
		return "unchecked"
	case StatePresent:
		return "present"
	case StateMissing:
		return "missing"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Step is the outcome of one requirement in a run or check.
type Step struct {
	Requirement manifest.Requirement
	Installer   string
	State       StepState
	Err         error
}

// Summary aggregates the outcome of a read-only check.
type Summary struct {
	Total   int
	Present int
	Missing int
	Errors  int
}

// Satisfied reports whether every requirement is already present.
func (s Summary) Satisfied() bool {
	return s.Missing == 0 && s.Errors == 0
}

// Provisioner orchestrates requirement checks and installs.
type Provisioner struct {
	manifest *manifest.Manifest
	system   Installer
	pip      Installer
	progress ProgressCallback
	logger   *log.Logger
	runID    string
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithProgress sets the progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(p *Provisioner) {
		if cb != nil {
			p.progress = cb
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Provisioner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Provisioner for the given manifest and installers.
func New(m *manifest.Manifest, system, pip Installer, opts ...Option) *Provisioner {
	p := &Provisioner{
		manifest: m,
		system:   system,
		pip:      pip,
		progress: NoOpProgress,
		logger:   log.Default(),
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("run", shortID(p.runID))
	return p
}

// RunID returns the unique identifier of this provisioning session.
func (p *Provisioner) RunID() string {
	return p.runID
}

// steps returns the work list in execution order: system requirements
// first (they provide the runtime and pip itself), then pip requirements.
func (p *Provisioner) steps() []Step {
	var steps []Step
	for _, req := range p.manifest.System() {
		steps = append(steps, Step{Requirement: req, Installer: p.system.Name()})
	}
	for _, req := range p.manifest.Pip() {
		steps = append(steps, Step{Requirement: req, Installer: p.pip.Name()})
	}
	return steps
}

func (p *Provisioner) installerFor(req manifest.Requirement) Installer {
	if req.Installer == manifest.KindSystem {
		return p.system
	}
	return p.pip
}

// Run converges the host onto the manifest. Execution is strictly
// sequential and fail-fast: the first query or install error terminates
// the run, later requirements are never examined, and nothing is rolled
// back. The returned steps cover every requirement that was reached.
func (p *Provisioner) Run() (steps []Step, err error) {
	steps = p.steps()

	// Always runs, success or failure; reports only, no compensation.
	defer func() {
		if err != nil {
			p.logger.Error("provisioning aborted", "error", err)
			return
		}
		p.logger.Info("provisioning complete", "requirements", len(steps))
		p.progress(NewProgressEvent(StageComplete, "", "", "all requirements satisfied"))
	}()

	for i := range steps {
		step := &steps[i]
		name := step.Requirement.Name
		installer := p.installerFor(step.Requirement)

		p.progress(NewProgressEvent(StageChecking, name, step.Installer, "checking "+name))

		installed, qerr := installer.Installed(name)
		if qerr != nil {
			step.State = StateFailed
			step.Err = qerr
			p.progress(NewErrorEvent(name, step.Installer, qerr.Error()))
			return steps, fmt.Errorf("checking %s: %w", name, qerr)
		}

		if installed {
			step.State = StatePresent
			p.logger.Info("already installed", "package", name, "installer", step.Installer)
			p.progress(NewProgressEvent(StagePresent, name, step.Installer, name+" already installed"))
			continue
		}

		step.State = StateInstalling
		p.logger.Info("installing", "package", name, "installer", step.Installer)
		p.progress(NewProgressEvent(StageInstalling, name, step.Installer, "installing "+name))

		if ierr := installer.Install(name); ierr != nil {
			step.State = StateFailed
			step.Err = ierr
			p.progress(NewErrorEvent(name, step.Installer, ierr.Error()))
			return steps, fmt.Errorf("installing %s: %w", name, ierr)
		}

		step.State = StateInstalled
		p.progress(NewProgressEvent(StageInstalled, name, step.Installer, name+" installed"))
	}

	return steps, nil
}

// Check examines every requirement without installing anything. Unlike
// Run it does not stop at the first problem: every requirement is
// reported, with query failures recorded per step.
func (p *Provisioner) Check() ([]Step, Summary) {
	steps := p.steps()
	var summary Summary

	for i := range steps {
		step := &steps[i]
		name := step.Requirement.Name
		summary.Total++

		installed, err := p.installerFor(step.Requirement).Installed(name)
		switch {
		case err != nil:
			step.State = StateFailed
			step.Err = err
			summary.Errors++
		case installed:
			step.State = StatePresent
			summary.Present++
		default:
			step.State = StateMissing
			summary.Missing++
		}
	}

	return steps, summary
}

// shortID truncates a UUID for log readability.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
