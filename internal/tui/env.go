package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/x/ansi"

	"github.com/cj3636/grit/internal/config"
	"github.com/cj3636/grit/internal/diff"
	"github.com/cj3636/grit/internal/export"
)

// chromeHeight is the number of rows a list screen spends on its title and
// status lines.
const chromeHeight = 2

// Env carries the collaborators and settings every view is built with.
type Env struct {
	Config    *config.Config
	Styles    *Styles
	Keys      KeyMap
	Diffs     *diff.Engine
	Clipboard export.Clipboard
	Log       *slog.Logger
	// Context bounds the git work done while opening views.
	Context context.Context
}

// NewEnv derives styles and key bindings from cfg.
func NewEnv(cfg *config.Config, diffs *diff.Engine, clipboard export.Clipboard, logger *slog.Logger) *Env {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Env{
		Config:    cfg,
		Styles:    NewStyles(cfg.Theme),
		Keys:      NewKeyMap(cfg.Keybindings),
		Diffs:     diffs,
		Clipboard: clipboard,
		Log:       logger,
		Context:   context.Background(),
	}
}

// yank copies a commit id and returns the notice to show.
func (e *Env) yank(id string) (string, error) {
	if e.Clipboard == nil {
		return "", errors.New("no clipboard available")
	}
	if err := e.Clipboard.Copy(id); err != nil {
		return "", fmt.Errorf("copying %s: %w", id, err)
	}
	e.Log.Debug("yanked commit id", "commit", id)
	return "Yanked " + id, nil
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func bodyHeight(height int) int {
	return height - chromeHeight
}
