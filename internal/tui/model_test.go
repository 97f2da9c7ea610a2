package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"
)

func waitForText(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte(text))
	}, teatest.WithDuration(3*time.Second))
}

func TestModel_BrowseAndReturn(t *testing.T) {
	env, _ := testEnv(t, historySource())
	log := NewLogView(env, testRepo, history(), 100, 24)
	tm := teatest.NewTestModel(t, NewModel(NewStack(log, nil)),
		teatest.WithInitialTermSize(100, 24),
	)

	waitForText(t, tm, "Third change")

	tm.Send(keyPress(tea.KeyDown))
	tm.Send(keyPress(tea.KeyDown))
	tm.Send(keyPress(tea.KeyEnd))
	tm.Send(keyPress(tea.KeyEnter))
	waitForText(t, tm, "No changes")

	tm.Send(runes("q"))
	waitForText(t, tm, "3/3")

	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.Zero(t, final.Stack().Len(), "popping the last view ends the program")
	requireListState(t, log.List(), 2, 0)
}

func TestModel_CtrlCQuitsFromCommitView(t *testing.T) {
	env, _ := testEnv(t, historySource())
	log := NewLogView(env, testRepo, history(), 100, 24)
	tm := teatest.NewTestModel(t, NewModel(NewStack(log, nil)),
		teatest.WithInitialTermSize(100, 24),
	)
	waitForText(t, tm, "Third change")

	tm.Send(keyPress(tea.KeyEnter))
	waitForText(t, tm, "b.txt")
	tm.Send(keyPress(tea.KeyCtrlC))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Equal(t, 2, final.Stack().Len())
}

func TestModel_ViewOfEmptyStack(t *testing.T) {
	s := NewStack(&stubView{name: "log", next: popCmd}, nil)
	m := NewModel(s)

	next, cmd := m.Update(anyKey)

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, next.View())
}
