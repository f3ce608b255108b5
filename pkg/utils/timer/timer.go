// Package timer provides stage-aware timing for CLI activities.
package timer

import "time"

// Timer tracks the total runtime of a command and the runtime of the
// current stage within it. Stages are started explicitly via NewStage.
type Timer interface {
	// Start begins overall timing. Calling Start again resets the timer.
	Start()

	// NewStage marks the beginning of a new stage.
	NewStage()

	// GetTiming returns the elapsed total and current-stage durations.
	GetTiming() (total time.Duration, stage time.Duration)
}

// New creates a Timer backed by the wall clock.
func New() Timer {
	return &clockTimer{now: time.Now}
}

// NewWithClock creates a Timer with an injectable clock for tests.
func NewWithClock(now func() time.Time) Timer {
	return &clockTimer{now: now}
}

type clockTimer struct {
	now        func() time.Time
	startTime  time.Time
	stageStart time.Time
	started    bool
}

func (t *clockTimer) Start() {
	t.startTime = t.now()
	t.stageStart = t.startTime
	t.started = true
}

func (t *clockTimer) NewStage() {
	if !t.started {
		t.Start()

		return
	}

	t.stageStart = t.now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	if !t.started {
		return 0, 0
	}

	current := t.now()

	return current.Sub(t.startTime), current.Sub(t.stageStart)
}
