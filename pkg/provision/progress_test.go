package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTracker(t *testing.T) {
	tracker := NewProgressTracker()
	cb := tracker.Callback()

	assert.Nil(t, tracker.LastEvent())
	assert.False(t, tracker.HasErrors())

	cb(NewProgressEvent(StageChecking, "python3", "apt", "checking python3"))
	cb(NewProgressEvent(StageInstalled, "python3", "apt", "python3 installed"))

	require.Len(t, tracker.Events(), 2)
	assert.Equal(t, StageInstalled, tracker.LastEvent().Stage)
	assert.False(t, tracker.HasErrors())

	cb(NewErrorEvent("iso8601", "pip", "pip install failed"))
	assert.True(t, tracker.HasErrors())
	assert.True(t, tracker.LastEvent().IsError)
}

func TestStageDisplayName(t *testing.T) {
	assert.Equal(t, "Checking", StageChecking.DisplayName())
	assert.Equal(t, "Already Installed", StagePresent.DisplayName())
	assert.Equal(t, "Installing", StageInstalling.DisplayName())
	assert.Equal(t, "Installed", StageInstalled.DisplayName())
	assert.Equal(t, "Complete", StageComplete.DisplayName())
	assert.Equal(t, "Error", StageError.DisplayName())
	assert.Equal(t, "reticulating", Stage("reticulating").DisplayName())
}

func TestProgressEventTimestamps(t *testing.T) {
	e := NewProgressEvent(StageChecking, "python3", "apt", "checking")
	assert.False(t, e.Timestamp.IsZero())

	err := NewErrorEvent("python3", "apt", "boom")
	assert.Equal(t, StageError, err.Stage)
	assert.True(t, err.IsError)
}
