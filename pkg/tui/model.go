package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/data-releases/relprov/pkg/provision"
)

// RunFunc executes a provisioning run, reporting progress through the
// supplied callback.
type RunFunc func(provision.ProgressCallback) ([]provision.Step, error)

// Message types for async operations.
type (
	// progressMsg carries one provisioner progress event.
	progressMsg struct {
		event provision.ProgressEvent
	}

	// runDoneMsg indicates the provisioning run has finished.
	runDoneMsg struct {
		steps []provision.Step
		err   error
	}
)

// row is one requirement line in the view.
type row struct {
	name      string
	installer string
	stage     provision.Stage
	message   string
}

// Model is the live provisioning view model.
type Model struct {
	run    RunFunc
	events chan provision.ProgressEvent

	spinner spinner.Model
	rows    []row
	order   map[string]int // requirement name -> rows index
	running bool
	err     error
	steps   []provision.Step
}

// NewModel creates a view model that will drive the given run.
func NewModel(run RunFunc) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		run:     run,
		events:  make(chan provision.ProgressEvent, 16),
		spinner: s,
		order:   make(map[string]int),
		running: true,
	}
}

// Steps returns the run outcome once the view has finished.
func (m *Model) Steps() []provision.Step {
	return m.steps
}

// Err returns the run error, if any, once the view has finished.
func (m *Model) Err() error {
	return m.err
}

// Init starts the spinner, the run, and the event pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startRun(),
		m.waitForEvent(),
	)
}

// startRun executes the provisioning run in the background.
func (m *Model) startRun() tea.Cmd {
	return func() tea.Msg {
		steps, err := m.run(func(e provision.ProgressEvent) {
			m.events <- e
		})
		close(m.events)
		return runDoneMsg{steps: steps, err: err}
	}
}

// waitForEvent delivers the next progress event as a message.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return progressMsg{event: event}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.running {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.applyEvent(msg.event)
		return m, m.waitForEvent()

	case runDoneMsg:
		m.running = false
		m.steps = msg.steps
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// applyEvent folds a progress event into the row list.
func (m *Model) applyEvent(e provision.ProgressEvent) {
	if e.Requirement == "" {
		return // run-level event, summary comes from steps
	}

	idx, ok := m.order[e.Requirement]
	if !ok {
		idx = len(m.rows)
		m.order[e.Requirement] = idx
		m.rows = append(m.rows, row{name: e.Requirement, installer: e.Installer})
	}

	m.rows[idx].stage = e.Stage
	m.rows[idx].message = e.Message
}

// View renders the provisioning progress.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Provisioning host"))
	b.WriteString("\n")

	for _, r := range m.rows {
		b.WriteString(m.renderRow(r))
		b.WriteString("\n")
	}

	if m.running {
		b.WriteString(SubtitleStyle.Render("\nworking..."))
	} else if m.err != nil {
		b.WriteString(ErrorStyle.Render("\nProvisioning failed: " + m.err.Error()))
	} else {
		b.WriteString(SuccessStyle.Render("\nAll requirements satisfied."))
	}
	b.WriteString("\n")

	return b.String()
}

// renderRow renders one requirement line.
func (m *Model) renderRow(r row) string {
	label := fmt.Sprintf("%s (%s)", r.name, r.installer)

	switch r.stage {
	case provision.StageChecking, provision.StageInstalling:
		return fmt.Sprintf("  %s %s  %s", m.spinner.View(), label, DimStyle.Render(r.stage.DisplayName()))
	case provision.StagePresent:
		return fmt.Sprintf("  %s %s  %s", SuccessStyle.Render("✓"), label, DimStyle.Render("already installed"))
	case provision.StageInstalled:
		return fmt.Sprintf("  %s %s  %s", SuccessStyle.Render("✓"), label, DimStyle.Render("installed"))
	case provision.StageError:
		return fmt.Sprintf("  %s %s  %s", ErrorStyle.Render("✗"), label, ErrorStyle.Render(r.message))
	default:
		return fmt.Sprintf("  %s %s", DimStyle.Render("•"), label)
	}
}

// Run drives a provisioning run through the live view and returns its
// outcome.
func Run(run RunFunc) ([]provision.Step, error) {
	m := NewModel(run)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return nil, fmt.Errorf("tui error: %w", err)
	}
	return m.Steps(), m.Err()
}
