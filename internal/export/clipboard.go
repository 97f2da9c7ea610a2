package export

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard copies text somewhere the user can paste it from.
type Clipboard interface {
	Copy(text string) error
}

// ErrNoClipboard is returned when no native clipboard tool is installed and
// no OSC52 fallback is configured.
var ErrNoClipboard = errors.New("no clipboard available")

// SystemClipboard uses the native clipboard and falls back to an OSC52
// escape sequence written to Out when no native clipboard is usable. A nil
// Out disables the fallback; inside the TUI only the renderer writes to the
// terminal.
type SystemClipboard struct {
	Out io.Writer
}

// Copy implements Clipboard.
func (c SystemClipboard) Copy(text string) error {
	err := ErrNoClipboard
	if !clipboard.Unsupported {
		if err = clipboard.WriteAll(text); err == nil {
			return nil
		}
	}
	if c.Out == nil {
		return err
	}
	return CopyToClipboard(text, c.Out)
}

// CopyToClipboard writes the content to the terminal clipboard using OSC52.
// The writer defaults to stdout when nil.
func CopyToClipboard(content string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	seq := osc52.New(content)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}
