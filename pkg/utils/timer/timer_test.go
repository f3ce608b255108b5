package timer_test

import (
	"testing"
	"time"

	"github.com/hostup-sh/hostup/pkg/utils/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a clock function that advances by step on every call.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	current := start

	return func() time.Time {
		now := current
		current = current.Add(step)

		return now
	}
}

func TestTimer_GetTimingBeforeStart(t *testing.T) {
	t.Parallel()

	tmr := timer.New()

	total, stage := tmr.GetTiming()

	assert.Zero(t, total)
	assert.Zero(t, stage)
}

func TestTimer_NewStageResetsStageOnly(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tmr := timer.NewWithClock(fakeClock(base, time.Second))

	tmr.Start()    // t=0
	tmr.NewStage() // t=1s

	total, stage := tmr.GetTiming() // t=2s

	require.Equal(t, 2*time.Second, total)
	require.Equal(t, time.Second, stage)
}

func TestTimer_NewStageWithoutStartBeginsTiming(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tmr := timer.NewWithClock(fakeClock(base, time.Second))

	tmr.NewStage() // t=0, implicit Start

	total, stage := tmr.GetTiming() // t=1s

	require.Equal(t, time.Second, total)
	require.Equal(t, time.Second, stage)
}
