package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/grit/internal/diff"
	"github.com/cj3636/grit/internal/git"
)

// commitInfo is the markdown template of the header block.
const commitInfo = `# Commit %s

%s

*%s* · %s

---

%d files changed, %d insertions(+), %d deletions(-)
`

// defaultWrap is used for the header until the terminal size is known.
const defaultWrap = 80

// CommitView shows the header and diff of one commit.
type CommitView struct {
	env      *Env
	commit   git.Commit
	result   *diff.Result
	viewport viewport.Model
	help     help.Model
	width    int

	showHelp bool
	notice   string
	err      error
}

// NewCommitView computes the diff of commit against its first parent. It
// fails when the diff cannot be computed.
func NewCommitView(env *Env, commit git.Commit) (*CommitView, error) {
	result, err := env.Diffs.Commit(env.Context, commit.ID)
	if err != nil {
		return nil, err
	}
	v := &CommitView{
		env:      env,
		commit:   commit,
		result:   result,
		viewport: viewport.New(0, 0),
		help:     env.Styles.newHelp(),
	}
	v.viewport.SetContent(v.renderContent())
	return v, nil
}

// Commit returns the commit on display.
func (v *CommitView) Commit() git.Commit {
	return v.commit
}

// Result returns the diff on display.
func (v *CommitView) Result() *diff.Result {
	return v.result
}

// Notify implements Notifier.
func (v *CommitView) Notify(err error) {
	v.err = err
}

// HandleEvent implements View. Scrolling changes only the view's own offset,
// so every event but closing or quitting keeps the stack as it is.
func (v *CommitView) HandleEvent(msg tea.Msg) Command {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Height-1 <= 0 {
			return keepCmd
		}
		v.width = msg.Width
		v.help.Width = msg.Width
		v.viewport.Width = msg.Width
		v.viewport.Height = msg.Height - 1
		offset := v.viewport.YOffset
		v.viewport.SetContent(v.renderContent())
		v.viewport.SetYOffset(offset)
	case tea.KeyMsg:
		v.notice, v.err = "", nil
		return v.handleKey(msg)
	}
	return keepCmd
}

func (v *CommitView) handleKey(msg tea.KeyMsg) Command {
	keys := v.env.Keys
	switch {
	case key.Matches(msg, keys.Quit):
		return quitCmd
	case key.Matches(msg, keys.Back):
		return popCmd
	case key.Matches(msg, keys.Up):
		v.viewport.ScrollUp(1)
	case key.Matches(msg, keys.Down):
		v.viewport.ScrollDown(1)
	case key.Matches(msg, keys.PageUp):
		v.viewport.PageUp()
	case key.Matches(msg, keys.PageDown):
		v.viewport.PageDown()
	case key.Matches(msg, keys.Home):
		v.viewport.GotoTop()
	case key.Matches(msg, keys.End):
		v.viewport.GotoBottom()
	case key.Matches(msg, keys.Yank):
		v.notice, v.err = v.env.yank(v.commit.ID)
	case key.Matches(msg, keys.Help):
		v.showHelp = !v.showHelp
	}
	return keepCmd
}

// Display implements View.
func (v *CommitView) Display() string {
	body := v.viewport.View()
	if v.showHelp {
		body = lipgloss.NewStyle().
			Height(v.viewport.Height).
			Render(v.help.FullHelpView(commitKeys(v.env.Keys).FullHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, v.renderStatus())
}

func (v *CommitView) renderStatus() string {
	switch {
	case v.err != nil:
		return truncate(v.env.Styles.errorText.Render("Error: "+v.err.Error()), v.width)
	case v.notice != "":
		return truncate(v.env.Styles.help.Render(v.notice), v.width)
	}
	position := fmt.Sprintf("%s %3.f%%", v.commit.ShortID(), v.viewport.ScrollPercent()*100)
	status := v.env.Styles.help.Render(position) + "  " + v.help.ShortHelpView(commitKeys(v.env.Keys).ShortHelp())
	return truncate(status, v.width)
}

func (v *CommitView) renderContent() string {
	lines := []string{v.renderHeader()}
	if len(v.result.Lines) == 0 {
		lines = append(lines, v.env.Styles.empty.Render("No changes"))
	}
	for i, line := range v.result.Lines {
		lines = append(lines, v.renderLine(i, line))
	}
	return strings.Join(lines, "\n")
}

func (v *CommitView) renderHeader() string {
	c := v.commit
	stats := v.result.Stats
	md := fmt.Sprintf(commitInfo,
		c.ID, c.Summary,
		c.Author, c.Time.Format(v.env.Config.DateFormat),
		stats.FilesChanged, stats.Insertions, stats.Deletions,
	)

	wrap := v.width
	if wrap <= 0 {
		wrap = defaultWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(v.env.Config.MarkdownStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		v.env.Log.Warn("markdown renderer unavailable", "style", v.env.Config.MarkdownStyle, "err", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		v.env.Log.Warn("rendering commit header failed", "commit", c.ID, "err", err)
		return md
	}
	return strings.TrimRight(out, "\n")
}

// renderLine styles a diff line by its type. Paired changes carry word
// segments, and changed words get the emphasis style.
func (v *CommitView) renderLine(i int, line diff.DiffLine) string {
	styles := v.env.Styles
	style := styles.line(line.Type)

	segments, ok := v.result.Words[i]
	if !ok || len(line.Content) < 2 {
		return truncate(style.Render(line.Content), v.width)
	}

	var b strings.Builder
	b.WriteString(style.Render(line.Content[:2]))
	for _, seg := range segments {
		if seg.Changed {
			b.WriteString(styles.word(line.Type).Render(seg.Text))
		} else {
			b.WriteString(style.Render(seg.Text))
		}
	}
	return truncate(b.String(), v.width)
}
