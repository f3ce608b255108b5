package notify

import (
	"io"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparatingWriter wraps an io.Writer and automatically adds blank lines
// between CLI stages. It detects title lines (lines starting with an emoji)
// and inserts a leading newline before them when there has been previous
// output, so command handlers need no manual separator bookkeeping.
type StageSeparatingWriter struct {
	underlying io.Writer
	hasWritten bool
	mu         sync.Mutex
}

// NewStageSeparatingWriter creates a new StageSeparatingWriter wrapping the given writer.
func NewStageSeparatingWriter(underlying io.Writer) *StageSeparatingWriter {
	return &StageSeparatingWriter{
		underlying: underlying,
	}
}

// Write implements io.Writer. It inserts a blank line before a title line
// whenever previous output exists.
func (w *StageSeparatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && startsWithEmoji(string(data)) {
		_, err := w.underlying.Write([]byte{'\n'})
		if err != nil {
			return 0, err
		}
	}

	w.hasWritten = true

	return w.underlying.Write(data)
}

// startsWithEmoji reports whether the first rune of the trimmed text is a
// Unicode symbol, which is how title lines are rendered.
func startsWithEmoji(text string) bool {
	trimmed := strings.TrimLeft(text, " \t")
	if trimmed == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(trimmed)

	return unicode.IsSymbol(first) || unicode.In(first, unicode.So)
}
