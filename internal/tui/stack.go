package tui

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

var errNoOpener = errors.New("navigation command has no view to open")

// Stack owns the open views. The bottom view is the commit history and the
// top view receives key events and is displayed.
type Stack struct {
	views  []View
	width  int
	height int
	log    *slog.Logger
}

// NewStack returns a stack holding root alone.
func NewStack(root View, logger *slog.Logger) *Stack {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Stack{views: []View{root}, log: logger}
}

// Len returns the number of open views.
func (s *Stack) Len() int {
	return len(s.views)
}

// Top returns the current view, or nil once the stack is empty.
func (s *Stack) Top() View {
	if len(s.views) == 0 {
		return nil
	}
	return s.views[len(s.views)-1]
}

// Dispatch processes one event and reports whether the application should
// terminate. Resize events reach every view so that a revealed view is
// already sized to the terminal. Other events go to the top view only.
func (s *Stack) Dispatch(msg tea.Msg) bool {
	if len(s.views) == 0 {
		return true
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		s.width, s.height = size.Width, size.Height
		for _, v := range s.views {
			v.HandleEvent(size)
		}
		return false
	}
	return s.Apply(s.Top().HandleEvent(msg))
}

// Apply performs a navigation command and reports whether the application
// should terminate.
func (s *Stack) Apply(cmd Command) bool {
	if len(s.views) == 0 {
		return true
	}
	switch cmd.Action {
	case Keep:
		return false
	case Push, Replace:
		v, err := s.open(cmd)
		if err != nil {
			s.log.Error("opening view failed", "action", cmd.Action, "err", err)
			if n, ok := s.Top().(Notifier); ok {
				n.Notify(err)
			}
			return false
		}
		if cmd.Action == Replace {
			s.views[len(s.views)-1] = v
		} else {
			s.views = append(s.views, v)
		}
		s.log.Debug("view opened", "action", cmd.Action, "depth", len(s.views))
		return false
	case Pop:
		s.views[len(s.views)-1] = nil
		s.views = s.views[:len(s.views)-1]
		s.log.Debug("view closed", "depth", len(s.views))
		return len(s.views) == 0
	case Quit:
		s.log.Debug("quit", "depth", len(s.views))
		return true
	default:
		s.log.Warn("unknown navigation command", "action", cmd.Action)
		return false
	}
}

func (s *Stack) open(cmd Command) (View, error) {
	if cmd.Open == nil {
		return nil, errNoOpener
	}
	v, err := cmd.Open()
	if err != nil {
		return nil, err
	}
	if s.width > 0 && s.height > 0 {
		v.HandleEvent(tea.WindowSizeMsg{Width: s.width, Height: s.height})
	}
	return v, nil
}
