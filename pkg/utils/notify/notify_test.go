package notify_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/hostup-sh/hostup/pkg/utils/notify"
	"github.com/hostup-sh/hostup/pkg/utils/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMessage_Symbols(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		msgType notify.MessageType
		symbol  string
	}{
		{name: "error", msgType: notify.ErrorType, symbol: "✗ "},
		{name: "warning", msgType: notify.WarningType, symbol: "⚠ "},
		{name: "activity", msgType: notify.ActivityType, symbol: "► "},
		{name: "success", msgType: notify.SuccessType, symbol: "✔ "},
		{name: "info", msgType: notify.InfoType, symbol: "ℹ "},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			notify.WriteMessage(notify.Message{
				Type:    testCase.msgType,
				Content: "hello",
				Writer:  &buf,
			})

			assert.Contains(t, buf.String(), testCase.symbol+"hello")
		})
	}
}

func TestWriteMessage_FormatsArgs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Activityf(&buf, "installing %q to %s", "kubectl", "/usr/local/bin")

	assert.Contains(t, buf.String(), `installing "kubectl" to /usr/local/bin`)
}

func TestWriteMessage_TitleUsesEmoji(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Titlef(&buf, "🚀", "Bootstrap host...")

	assert.Contains(t, buf.String(), "🚀 Bootstrap host...")
}

func TestWriteMessage_TitleDefaultEmoji(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.TitleType,
		Content: "untitled",
		Writer:  &buf,
	})

	assert.Contains(t, buf.String(), "ℹ️ untitled")
}

func TestWriteMessage_SuccessWithTimerPrintsTimingBlock(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	tmr := timer.NewWithClock(func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	tmr.Start()

	notify.SuccessWithTimerf(&buf, tmr, "done")

	output := buf.String()
	require.Contains(t, output, "✔ done")
	assert.Contains(t, output, "⏲ current:")
	assert.Contains(t, output, "total:")
}

func TestWriteMessage_MultilineContentIsIndented(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Warningf(&buf, "first line\nsecond line")

	assert.Contains(t, buf.String(), "⚠ first line\n  second line")
}

func TestStageSeparatingWriter_InsertsBlankLineBeforeTitles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	writer := notify.NewStageSeparatingWriter(&buf)

	notify.Activityf(writer, "detecting package manager")
	notify.Titlef(writer, "📦", "Install system packages...")

	assert.Contains(t, buf.String(), "detecting package manager\n\n📦 Install system packages...")
}

func TestStageSeparatingWriter_NoLeadingBlankLineOnFirstWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	writer := notify.NewStageSeparatingWriter(&buf)

	notify.Titlef(writer, "🚀", "Bootstrap host...")

	require.False(t, bytes.HasPrefix(buf.Bytes(), []byte("\n")))
}
