package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cj3636/grit/internal/config"
	"github.com/cj3636/grit/internal/diff"
	"github.com/cj3636/grit/internal/git"
)

// memorySource serves patches from memory. Commits listed in roots have no
// parent and commits listed in broken fail.
type memorySource struct {
	patches map[string][]diff.PatchLine
	stats   map[string]diff.Stats
	roots   map[string]bool
	broken  map[string]error
}

func (s *memorySource) Patch(_ context.Context, id string) ([]diff.PatchLine, diff.Stats, error) {
	if err, ok := s.broken[id]; ok {
		return nil, diff.Stats{}, err
	}
	if s.roots[id] {
		return nil, diff.Stats{}, diff.ErrNoParent
	}
	return s.patches[id], s.stats[id], nil
}

type recordingClipboard struct {
	copied []string
	err    error
}

func (c *recordingClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

func commitID(digit string) string {
	return strings.Repeat(digit, 40)
}

// history returns three commits newest first; c1 is the root.
func history() []git.Commit {
	at := time.Date(2020, 5, 1, 12, 0, 0, 0, time.FixedZone("", 2*60*60))
	return []git.Commit{
		{ID: commitID("3"), Author: "Ada", Time: at.Add(2 * time.Hour), Summary: "Third change"},
		{ID: commitID("2"), Author: "Grace", Time: at.Add(time.Hour), Summary: "Second change"},
		{ID: commitID("1"), Author: "Ada", Time: at, Summary: "Initial commit"},
	}
}

func historySource() *memorySource {
	return &memorySource{
		patches: map[string][]diff.PatchLine{
			commitID("2"): {
				{Origin: 'F', Text: "diff --git a/a.txt b/a.txt\n--- a/a.txt\n+++ b/a.txt"},
				{Origin: 'H', Text: "@@ -1 +1 @@"},
				{Origin: '-', Text: "hello world"},
				{Origin: '+', Text: "hello there"},
			},
			commitID("3"): {
				{Origin: 'F', Text: "diff --git a/b.txt b/b.txt"},
				{Origin: 'H', Text: "@@ -0,0 +1 @@"},
				{Origin: '+', Text: "bee"},
			},
		},
		stats: map[string]diff.Stats{
			commitID("2"): {FilesChanged: 1, Insertions: 1, Deletions: 1},
			commitID("3"): {FilesChanged: 1, Insertions: 1},
		},
		roots:  map[string]bool{commitID("1"): true},
		broken: map[string]error{},
	}
}

func testEnv(t *testing.T, src diff.Source) (*Env, *recordingClipboard) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.MarkdownStyle = "notty"
	clip := &recordingClipboard{}
	env := NewEnv(cfg, diff.NewEngine(src, diff.WithWordDiff(cfg.WordDiff)), clip, nil)
	return env, clip
}

var errCorrupt = errors.New("object corrupt")

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
