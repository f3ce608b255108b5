package setup

import (
	"fmt"
	"io"

	"github.com/hostup-sh/hostup/pkg/utils/notify"
	"github.com/hostup-sh/hostup/pkg/utils/timer"
)

// StageInfo contains display information for a bootstrap stage.
// Leading newlines between stages are handled automatically by
// notify.StageSeparatingWriter.
type StageInfo struct {
	Title         string
	Emoji         string
	Activity      string
	Success       string
	FailurePrefix string
}

// RunStage executes a stage with standard progress messaging:
// title with emoji, optional activity line, the action, then a success line
// (with timing when tmr is non-nil) or a wrapped failure.
func RunStage(out io.Writer, tmr timer.Timer, info StageInfo, action func() error) error {
	if tmr != nil {
		tmr.NewStage()
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.TitleType,
		Content: info.Title,
		Emoji:   info.Emoji,
		Writer:  out,
	})

	if info.Activity != "" {
		notify.Activityf(out, "%s", info.Activity)
	}

	err := action()
	if err != nil {
		return fmt.Errorf("%s: %w", info.FailurePrefix, err)
	}

	if info.Success != "" {
		notify.WriteMessage(notify.Message{
			Type:    notify.SuccessType,
			Content: info.Success,
			Timer:   tmr,
			Writer:  out,
		})
	}

	return nil
}
