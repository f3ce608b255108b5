package setup_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/hostup-sh/hostup/pkg/cli/setup"
	"github.com/hostup-sh/hostup/pkg/utils/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStage_SuccessPath(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := setup.RunStage(&out, nil, setup.StageInfo{
		Title:         "Check dependency manifests...",
		Emoji:         "🔍",
		Activity:      "looking for manifests",
		Success:       "manifests found",
		FailurePrefix: "failed to verify dependency manifests",
	}, func() error { return nil })
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "🔍 Check dependency manifests...")
	assert.Contains(t, output, "► looking for manifests")
	assert.Contains(t, output, "✔ manifests found")
}

func TestRunStage_FailureWrapsWithPrefix(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := setup.RunStage(&out, nil, setup.StageInfo{
		Title:         "Install system packages...",
		Emoji:         "📦",
		Success:       "system packages installed",
		FailurePrefix: "failed to prepare system packages",
	}, func() error { return assert.AnError })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare system packages")
	assert.NotContains(t, out.String(), "✔", "no success line on failure")
}

func TestRunStage_TimerShowsTimingBlock(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	tmr := timer.NewWithClock(func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	tmr.Start()

	err := setup.RunStage(&out, tmr, setup.StageInfo{
		Title:   "Provision isolated runtime...",
		Emoji:   "🐍",
		Success: "runtime ready",
	}, func() error { return nil })
	require.NoError(t, err)

	assert.Contains(t, out.String(), "⏲ current:")
}
