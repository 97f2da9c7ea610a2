package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/grit/internal/git"
	"github.com/cj3636/grit/internal/listview"
)

// LogView lists the commit history and opens the selected commit.
type LogView struct {
	env   *Env
	repo  Repository
	state git.State
	list  *listview.List[git.Commit]
	help  help.Model
	width int

	showHelp bool
	notice   string
	err      error
}

// NewLogView builds the history screen for a terminal of the given size. The
// first commit starts out selected.
func NewLogView(env *Env, repo Repository, commits []git.Commit, width, height int) *LogView {
	v := &LogView{
		env:   env,
		repo:  repo,
		state: repo.State(),
		list:  listview.New(width, bodyHeight(height), commits...),
		help:  env.Styles.newHelp(),
		width: width,
	}
	v.help.Width = width
	v.list.SelectNext(false)
	return v
}

// List exposes the underlying list.
func (v *LogView) List() *listview.List[git.Commit] {
	return v.list
}

// Notify implements Notifier.
func (v *LogView) Notify(err error) {
	v.err = err
}

// HandleEvent implements View.
func (v *LogView) HandleEvent(msg tea.Msg) Command {
	v.state = v.repo.State()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width
		v.list.Resize(msg.Width, bodyHeight(msg.Height))
		// a list built without room for rows selects once it has some
		if _, ok := v.list.SelectedIndex(); !ok {
			v.list.SelectNext(false)
		}
	case tea.KeyMsg:
		v.notice, v.err = "", nil
		return v.handleKey(msg)
	}
	return keepCmd
}

func (v *LogView) handleKey(msg tea.KeyMsg) Command {
	keys := v.env.Keys
	switch {
	case key.Matches(msg, keys.Quit):
		return quitCmd
	case key.Matches(msg, keys.Up):
		v.list.SelectNext(true)
	case key.Matches(msg, keys.Down):
		v.list.SelectNext(false)
	case key.Matches(msg, keys.PageUp):
		v.list.Unselect()
		v.list.ScrollPages(-1)
		v.list.SelectNext(false)
	case key.Matches(msg, keys.PageDown):
		v.list.Unselect()
		v.list.ScrollPages(1)
		v.list.SelectNext(false)
	case key.Matches(msg, keys.Home):
		v.list.SelectFirst()
	case key.Matches(msg, keys.End):
		v.list.SelectLast()
	case key.Matches(msg, keys.Open):
		if c, ok := v.list.Selection(); ok {
			return PushView(v.opener(c))
		}
	case key.Matches(msg, keys.Back):
		return popCmd
	case key.Matches(msg, keys.Yank):
		if c, ok := v.list.Selection(); ok {
			v.notice, v.err = v.env.yank(c.ID)
		}
	case key.Matches(msg, keys.Help):
		v.showHelp = !v.showHelp
	}
	return keepCmd
}

func (v *LogView) opener(c git.Commit) Opener {
	return func() (View, error) {
		cv, err := NewCommitView(v.env, c)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", c.ShortID(), err)
		}
		return cv, nil
	}
}

// Display implements View.
func (v *LogView) Display() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderTitle(),
		v.renderBody(),
		v.renderStatus(),
	)
}

func (v *LogView) renderTitle() string {
	title := v.env.Styles.title.Render("grit: " + v.repo.Path())
	if v.state != git.StateClean {
		title += v.env.Styles.flag.Render(v.state.String())
	}
	return truncate(title, v.width)
}

func (v *LogView) renderBody() string {
	height := v.list.Viewport().Height
	var lines []string

	switch {
	case v.showHelp:
		lines = strings.Split(v.help.FullHelpView(logKeys(v.env.Keys).FullHelp()), "\n")
	case v.list.Len() == 0:
		lines = []string{v.env.Styles.empty.Render("No commits yet")}
	default:
		start, rows := v.list.Visible()
		selected, hasSelection := v.list.SelectedIndex()
		for i, c := range rows {
			lines = append(lines, v.renderCommit(c, hasSelection && start+i == selected))
		}
	}

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

func (v *LogView) renderCommit(c git.Commit, selected bool) string {
	date := c.Time.Format(v.env.Config.DateFormat)
	if selected {
		plain := fmt.Sprintf("▶ %s %s %s %s", c.ShortID(), date, c.Author, c.Summary)
		style := v.env.Styles.selected
		if v.width > 0 {
			style = style.Width(v.width)
		}
		return truncate(style.Render(truncate(plain, v.width)), v.width)
	}

	s := v.env.Styles
	line := strings.Join([]string{
		" ",
		s.id.Render(c.ShortID()),
		s.date.Render(date),
		s.author.Render(c.Author),
		s.message.Render(c.Summary),
	}, " ")
	return truncate(line, v.width)
}

func (v *LogView) renderStatus() string {
	switch {
	case v.err != nil:
		return truncate(v.env.Styles.errorText.Render("Error: "+v.err.Error()), v.width)
	case v.notice != "":
		return truncate(v.env.Styles.help.Render(v.notice), v.width)
	}

	position := "0/0"
	if i, ok := v.list.SelectedIndex(); ok {
		position = fmt.Sprintf("%d/%d", i+1, v.list.Len())
	} else if v.list.Len() > 0 {
		position = fmt.Sprintf("-/%d", v.list.Len())
	}
	status := v.env.Styles.help.Render(position) + "  " + v.help.ShortHelpView(logKeys(v.env.Keys).ShortHelp())
	return truncate(status, v.width)
}
