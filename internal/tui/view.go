package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is one screen of the application. A view reacts to one event at a
// time and paints itself on demand.
type View interface {
	// HandleEvent updates the view for one key or resize event and returns
	// the navigation that should follow. It must not block.
	HandleEvent(msg tea.Msg) Command
	// Display renders the view. It does not change navigation state, so
	// repeated calls without intervening events return the same frame.
	Display() string
}

// Notifier is implemented by views that can surface an error to the user,
// such as a failed attempt to open another view from them.
type Notifier interface {
	Notify(err error)
}

// Opener builds a view when a navigation command is applied. A failing
// opener leaves the stack unchanged.
type Opener func() (View, error)

// Action is the kind of a navigation command.
type Action int

const (
	// Keep leaves the stack as it is.
	Keep Action = iota
	// Push opens a new view on top of the current one.
	Push
	// Pop closes the current view and reveals the one beneath it. Popping the
	// last view terminates the application.
	Pop
	// Replace swaps the current view for a new one in a single step.
	Replace
	// Quit terminates the application regardless of depth.
	Quit
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Push:
		return "push"
	case Pop:
		return "pop"
	case Replace:
		return "replace"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is what a view asks the stack to do after handling an event.
type Command struct {
	Action Action
	// Open builds the view for Push and Replace.
	Open Opener
}

// PushView returns a command opening the view built by open.
func PushView(open Opener) Command {
	return Command{Action: Push, Open: open}
}

// ReplaceView returns a command swapping the current view for the one built
// by open.
func ReplaceView(open Opener) Command {
	return Command{Action: Replace, Open: open}
}

var (
	keepCmd = Command{Action: Keep}
	popCmd  = Command{Action: Pop}
	quitCmd = Command{Action: Quit}
)
