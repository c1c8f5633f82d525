package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/data-releases/relprov/pkg/provision"
)

func noopRun(_ provision.ProgressCallback) ([]provision.Step, error) {
	return nil, nil
}

func TestModel_ProgressEventsBuildRows(t *testing.T) {
	m := NewModel(noopRun)

	updated, _ := m.Update(progressMsg{
		event: provision.NewProgressEvent(provision.StageChecking, "python3", "apt", "checking python3"),
	})
	m = updated.(*Model)

	require.Len(t, m.rows, 1)
	assert.Equal(t, "python3", m.rows[0].name)
	assert.Equal(t, provision.StageChecking, m.rows[0].stage)

	updated, _ = m.Update(progressMsg{
		event: provision.NewProgressEvent(provision.StagePresent, "python3", "apt", "python3 already installed"),
	})
	m = updated.(*Model)

	// Same requirement updates its row in place.
	require.Len(t, m.rows, 1)
	assert.Equal(t, provision.StagePresent, m.rows[0].stage)
}

func TestModel_RunLevelEventsAreIgnored(t *testing.T) {
	m := NewModel(noopRun)

	updated, _ := m.Update(progressMsg{
		event: provision.NewProgressEvent(provision.StageComplete, "", "", "all requirements satisfied"),
	})
	m = updated.(*Model)

	assert.Empty(t, m.rows)
}

func TestModel_RunDone(t *testing.T) {
	m := NewModel(noopRun)

	steps := []provision.Step{{State: provision.StateInstalled}}
	updated, cmd := m.Update(runDoneMsg{steps: steps, err: nil})
	m = updated.(*Model)

	assert.False(t, m.running)
	assert.Equal(t, steps, m.Steps())
	assert.NoError(t, m.Err())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_RunDoneWithError(t *testing.T) {
	m := NewModel(noopRun)

	runErr := errors.New("installing python3-pip: exit status 100")
	updated, _ := m.Update(runDoneMsg{err: runErr})
	m = updated.(*Model)

	assert.Equal(t, runErr, m.Err())
	assert.Contains(t, m.View(), "Provisioning failed")
}

func TestModel_View(t *testing.T) {
	m := NewModel(noopRun)

	events := []provision.ProgressEvent{
		provision.NewProgressEvent(provision.StagePresent, "python3", "apt", "python3 already installed"),
		provision.NewProgressEvent(provision.StageInstalled, "python3-pip", "apt", "python3-pip installed"),
		provision.NewProgressEvent(provision.StageInstalling, "icalendar", "pip", "installing icalendar"),
		provision.NewErrorEvent("iso8601", "pip", "pip install failed"),
	}
	var model tea.Model = m
	for _, e := range events {
		model, _ = model.Update(progressMsg{event: e})
	}
	m = model.(*Model)

	view := m.View()
	assert.Contains(t, view, "Provisioning host")
	assert.Contains(t, view, "python3 (apt)")
	assert.Contains(t, view, "already installed")
	assert.Contains(t, view, "python3-pip (apt)")
	assert.Contains(t, view, "icalendar (pip)")
	assert.Contains(t, view, "iso8601 (pip)")
	assert.Contains(t, view, "pip install failed")
}

func TestModel_QuitIgnoredWhileRunning(t *testing.T) {
	m := NewModel(noopRun)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Nil(t, cmd)

	updated, _ := m.Update(runDoneMsg{})
	m = updated.(*Model)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
