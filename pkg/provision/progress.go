package provision

import "time"

// Stage represents a provisioning stage for a single requirement.
type Stage string

const (
	StageChecking   Stage = "checking"
	StagePresent    Stage = "present"
	StageInstalling Stage = "installing"
	StageInstalled  Stage = "installed"
	StageComplete   Stage = "complete"
	StageError      Stage = "error"
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the stage.
func (s Stage) DisplayName() string {
	switch s {
	case StageChecking:
		return "Checking"
	case StagePresent:
		return "Already Installed"
	case StageInstalling:
		return "Installing"
	case StageInstalled:
		return "Installed"
	case StageComplete:
		return "Complete"
	case StageError:
		return "Error"
	default:
		return string(s)
	}
}

// ProgressEvent represents a provisioning progress update.
type ProgressEvent struct {
	Stage       Stage     // Current stage
	Requirement string    // Requirement name, empty for run-level events
	Installer   string    // Installer name ("apt", "pip"), empty for run-level events
	Message     string    // Human-readable message
	IsError     bool      // True if this is an error message
	Timestamp   time.Time // When this event occurred
}

// NewProgressEvent creates a new progress event.
func NewProgressEvent(stage Stage, requirement, installer, message string) ProgressEvent {
	return ProgressEvent{
		Stage:       stage,
		Requirement: requirement,
		Installer:   installer,
		Message:     message,
		Timestamp:   time.Now(),
	}
}

// NewErrorEvent creates a new error progress event.
func NewErrorEvent(requirement, installer, message string) ProgressEvent {
	return ProgressEvent{
		Stage:       StageError,
		Requirement: requirement,
		Installer:   installer,
		Message:     message,
		IsError:     true,
		Timestamp:   time.Now(),
	}
}

// ProgressCallback is called with progress updates during provisioning.
type ProgressCallback func(ProgressEvent)

// NoOpProgress is a progress callback that does nothing.
func NoOpProgress(_ ProgressEvent) {}

// ProgressTracker collects progress events for later review.
type ProgressTracker struct {
	events []ProgressEvent
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		events: make([]ProgressEvent, 0),
	}
}

// Callback returns a ProgressCallback that records events.
func (t *ProgressTracker) Callback() ProgressCallback {
	return func(e ProgressEvent) {
		t.events = append(t.events, e)
	}
}

// Events returns all recorded events.
func (t *ProgressTracker) Events() []ProgressEvent {
	return t.events
}

// LastEvent returns the most recent event, or nil if none.
func (t *ProgressTracker) LastEvent() *ProgressEvent {
	if len(t.events) == 0 {
		return nil
	}
	return &t.events[len(t.events)-1]
}

// HasErrors returns true if any error events were recorded.
func (t *ProgressTracker) HasErrors() bool {
	for _, e := range t.events {
		if e.IsError {
			return true
		}
	}
	return false
}
