package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/cj3636/grit/internal/config"
)

// KeyMap holds the bindings shared by all views.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Open     key.Binding
	Back     key.Binding
	Quit     key.Binding
	Yank     key.Binding
	Help     key.Binding
}

// NewKeyMap builds key bindings from the configured keybinding map.
func NewKeyMap(kb config.Keybindings) KeyMap {
	kb = config.MergeKeybindings(kb)
	bind := func(action, desc string) key.Binding {
		keys := kb[action]
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), desc),
		)
	}
	return KeyMap{
		Up:       bind(config.ActionUp, "up"),
		Down:     bind(config.ActionDown, "down"),
		PageUp:   bind(config.ActionPageUp, "page up"),
		PageDown: bind(config.ActionPageDown, "page down"),
		Home:     bind(config.ActionHome, "first"),
		End:      bind(config.ActionEnd, "last"),
		Open:     bind(config.ActionOpen, "open"),
		Back:     bind(config.ActionBack, "back"),
		Quit:     bind(config.ActionQuit, "quit"),
		Yank:     bind(config.ActionYank, "yank id"),
		Help:     bind(config.ActionHelp, "help"),
	}
}

// logKeys adapts the key map to the bubbles help component for the log view.
type logKeys KeyMap

func (k logKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Yank, k.Back, k.Help}
}

func (k logKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Open, k.Yank},
		{k.Back, k.Quit, k.Help},
	}
}

// commitKeys adapts the key map to the bubbles help component for the commit
// view.
type commitKeys KeyMap

func (k commitKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Yank, k.Back, k.Help}
}

func (k commitKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Yank},
		{k.Back, k.Quit, k.Help},
	}
}
