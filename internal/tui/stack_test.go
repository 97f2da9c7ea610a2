package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// stubView returns a fixed command for every key and records what it saw.
type stubView struct {
	name    string
	next    Command
	keys    int
	sizes   []tea.WindowSizeMsg
	notices []error
}

func (v *stubView) HandleEvent(msg tea.Msg) Command {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.sizes = append(v.sizes, size)
		return keepCmd
	}
	v.keys++
	return v.next
}

func (v *stubView) Display() string { return v.name }

func (v *stubView) Notify(err error) { v.notices = append(v.notices, err) }

func openStub(v *stubView) Opener {
	return func() (View, error) { return v, nil }
}

var anyKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}

func TestStack_PopSingleTerminates(t *testing.T) {
	s := NewStack(&stubView{name: "log", next: popCmd}, nil)

	require.True(t, s.Dispatch(anyKey))
	require.Zero(t, s.Len())
	require.Nil(t, s.Top())
}

func TestStack_PopTwoLevels(t *testing.T) {
	root := &stubView{name: "log", next: popCmd}
	s := NewStack(root, nil)
	require.False(t, s.Apply(PushView(openStub(&stubView{name: "commit", next: popCmd}))))
	require.Equal(t, 2, s.Len())

	require.False(t, s.Dispatch(anyKey), "first pop reveals the log")
	require.Equal(t, 1, s.Len())
	require.Same(t, root, s.Top())

	require.True(t, s.Dispatch(anyKey), "second pop empties the stack")
}

func TestStack_Keep(t *testing.T) {
	root := &stubView{name: "log", next: keepCmd}
	s := NewStack(root, nil)

	require.False(t, s.Dispatch(anyKey))
	require.Equal(t, 1, s.Len())
	require.Equal(t, 1, root.keys)
}

func TestStack_QuitRegardlessOfDepth(t *testing.T) {
	s := NewStack(&stubView{name: "log"}, nil)
	s.Apply(PushView(openStub(&stubView{name: "a"})))
	s.Apply(PushView(openStub(&stubView{name: "b", next: quitCmd})))

	require.True(t, s.Dispatch(anyKey))
	require.Equal(t, 3, s.Len(), "quit does not unwind the stack")
}

func TestStack_KeysGoToTopOnly(t *testing.T) {
	root := &stubView{name: "log"}
	top := &stubView{name: "commit"}
	s := NewStack(root, nil)
	s.Apply(PushView(openStub(top)))

	s.Dispatch(anyKey)

	require.Zero(t, root.keys)
	require.Equal(t, 1, top.keys)
	require.Equal(t, "commit", s.Top().Display())
}

func TestStack_ResizeReachesEveryView(t *testing.T) {
	root := &stubView{name: "log"}
	top := &stubView{name: "commit"}
	s := NewStack(root, nil)
	s.Apply(PushView(openStub(top)))

	require.False(t, s.Dispatch(tea.WindowSizeMsg{Width: 100, Height: 30}))

	require.Equal(t, []tea.WindowSizeMsg{{Width: 100, Height: 30}}, root.sizes)
	require.Equal(t, []tea.WindowSizeMsg{{Width: 100, Height: 30}}, top.sizes)
}

func TestStack_PushedViewIsSized(t *testing.T) {
	s := NewStack(&stubView{name: "log"}, nil)
	s.Dispatch(tea.WindowSizeMsg{Width: 90, Height: 20})
	pushed := &stubView{name: "commit"}

	s.Apply(PushView(openStub(pushed)))

	require.Equal(t, []tea.WindowSizeMsg{{Width: 90, Height: 20}}, pushed.sizes)
}

func TestStack_FailedPushLeavesStackAndNotifies(t *testing.T) {
	root := &stubView{name: "log"}
	s := NewStack(root, nil)
	boom := errors.New("object corrupt")

	done := s.Apply(PushView(func() (View, error) { return nil, boom }))

	require.False(t, done)
	require.Equal(t, 1, s.Len())
	require.Same(t, root, s.Top())
	require.Len(t, root.notices, 1)
	require.ErrorIs(t, root.notices[0], boom)
}

func TestStack_PushWithoutOpenerFails(t *testing.T) {
	root := &stubView{name: "log"}
	s := NewStack(root, nil)

	s.Apply(Command{Action: Push})

	require.Equal(t, 1, s.Len())
	require.ErrorIs(t, root.notices[0], errNoOpener)
}

func TestStack_Replace(t *testing.T) {
	s := NewStack(&stubView{name: "log"}, nil)
	s.Apply(PushView(openStub(&stubView{name: "a"})))

	require.False(t, s.Apply(ReplaceView(openStub(&stubView{name: "b"}))))

	require.Equal(t, 2, s.Len())
	require.Equal(t, "b", s.Top().Display())
}

func TestStack_FailedReplaceKeepsCurrent(t *testing.T) {
	s := NewStack(&stubView{name: "log"}, nil)

	s.Apply(ReplaceView(func() (View, error) { return nil, errors.New("nope") }))

	require.Equal(t, 1, s.Len())
	require.Equal(t, "log", s.Top().Display())
}

func TestStack_DispatchAfterTermination(t *testing.T) {
	s := NewStack(&stubView{name: "log", next: popCmd}, nil)
	require.True(t, s.Dispatch(anyKey))

	require.True(t, s.Dispatch(anyKey), "an empty stack stays terminated")
}

func TestAction_String(t *testing.T) {
	require.Equal(t, "keep", Keep.String())
	require.Equal(t, "push", Push.String())
	require.Equal(t, "pop", Pop.String())
	require.Equal(t, "replace", Replace.String())
	require.Equal(t, "quit", Quit.String())
	require.Equal(t, "unknown", Action(42).String())
}
