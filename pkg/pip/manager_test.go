package pip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockExecutor is a mock command executor for testing.
type MockExecutor struct {
	RunFunc            func(name string, args ...string) (string, error)
	CombinedOutputFunc func(name string, args ...string) ([]byte, error)

	RunCalls     [][]string
	InstallCalls [][]string
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

func (m *MockExecutor) Run(name string, args ...string) (string, error) {
	m.RunCalls = append(m.RunCalls, append([]string{name}, args...))
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return "", nil
}

func (m *MockExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	m.InstallCalls = append(m.InstallCalls, append([]string{name}, args...))
	if m.CombinedOutputFunc != nil {
		return m.CombinedOutputFunc(name, args...)
	}
	return nil, nil
}

func (m *MockExecutor) FileExists(path string) bool {
	return true
}

const columnListing = `Package    Version
---------- -------
icalendar  5.0.11
pip        24.0
setuptools 68.1.2
`

const legacyListing = `icalendar (3.11)
pip (8.1.1)
`

func TestInstalled_ColumnFormat(t *testing.T) {
	exec := &MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return columnListing, nil
		},
	}
	mgr := NewManager("datarel", WithExecutor(exec))

	installed, err := mgr.Installed("icalendar")
	require.NoError(t, err)
	assert.True(t, installed)

	require.Len(t, exec.RunCalls, 1)
	assert.Equal(t, []string{
		"sudo", "-H", "-u", "datarel",
		"pip3", "list", "--disable-pip-version-check",
	}, exec.RunCalls[0])
}

func TestInstalled_LegacyFormat(t *testing.T) {
	exec := &MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return legacyListing, nil
		},
	}
	mgr := NewManager("datarel", WithExecutor(exec))

	installed, err := mgr.Installed("icalendar")
	require.NoError(t, err)
	assert.True(t, installed)
}

func TestInstalled_Missing(t *testing.T) {
	exec := &MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return columnListing, nil
		},
	}
	mgr := NewManager("datarel", WithExecutor(exec))

	installed, err := mgr.Installed("iso8601")
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestInstalled_PrefixDoesNotMatch(t *testing.T) {
	exec := &MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "icalendar-extras  1.0.0\n", nil
		},
	}
	mgr := NewManager("datarel", WithExecutor(exec))

	installed, err := mgr.Installed("icalendar")
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestInstalled_NonNumericVersion(t *testing.T) {
	// An entry without a dotted numeric version does not satisfy the
	// requirement; the caller will reinstall.
	exec := &MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "icalendar  5.0.11.dev0\n", nil
		},
	}
	mgr := NewManager("datarel", WithExecutor(exec))

	installed, err := mgr.Installed("icalendar")
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestInstalled_QueryError(t *testing.T) {
	exec := &MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "", errors.New("sudo: unknown user datarel")
		},
	}
	mgr := NewManager("datarel", WithExecutor(exec))

	_, err := mgr.Installed("icalendar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip list failed")
}

func TestInstall(t *testing.T) {
	exec := &MockExecutor{}
	mgr := NewManager("datarel", WithExecutor(exec))

	err := mgr.Install("iso8601")
	require.NoError(t, err)

	require.Len(t, exec.InstallCalls, 1)
	assert.Equal(t, []string{
		"sudo", "-H", "-u", "datarel",
		"pip3", "install", "iso8601",
	}, exec.InstallCalls[0])
}

func TestInstall_Failure(t *testing.T) {
	exec := &MockExecutor{
		CombinedOutputFunc: func(name string, args ...string) ([]byte, error) {
			return []byte("No matching distribution found"), errors.New("exit status 1")
		},
	}
	mgr := NewManager("datarel", WithExecutor(exec))

	err := mgr.Install("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip install nonexistent failed")
	assert.Contains(t, err.Error(), "No matching distribution found")
}

func TestWithCommand(t *testing.T) {
	exec := &MockExecutor{}
	mgr := NewManager("datarel", WithExecutor(exec), WithCommand("pip3.11"))

	require.NoError(t, mgr.Install("iso8601"))
	assert.Contains(t, exec.InstallCalls[0], "pip3.11")
}
