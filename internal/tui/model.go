// Package tui implements the interactive screens of grit and the stack that
// navigates between them.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Model adapts a Stack to a bubbletea program. Each Update is one iteration
// of the event loop and View displays the top of the stack.
type Model struct {
	stack *Stack
}

// NewModel creates a new TUI model
func NewModel(stack *Stack) Model {
	return Model{stack: stack}
}

// Stack returns the view stack driven by the model.
func (m Model) Stack() *Stack {
	return m.stack
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.stack.Dispatch(msg) {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	top := m.stack.Top()
	if top == nil {
		return ""
	}
	return top.Display()
}
