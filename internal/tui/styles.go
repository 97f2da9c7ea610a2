package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/grit/internal/config"
	"github.com/cj3636/grit/internal/diff"
)

// Styles holds all the lipgloss styles
type Styles struct {
	added       lipgloss.Style
	removed     lipgloss.Style
	addedWord   lipgloss.Style
	removedWord lipgloss.Style
	context     lipgloss.Style
	fileHeader  lipgloss.Style
	hunkHeader  lipgloss.Style
	id          lipgloss.Style
	date        lipgloss.Style
	author      lipgloss.Style
	message     lipgloss.Style
	selected    lipgloss.Style
	title       lipgloss.Style
	flag        lipgloss.Style
	help        lipgloss.Style
	errorText   lipgloss.Style
	empty       lipgloss.Style
}

// NewStyles initializes all lipgloss styles based on theme
func NewStyles(theme config.Theme) *Styles {
	return &Styles{
		added: lipgloss.NewStyle().
			Foreground(theme.AddedFg).
			Background(theme.AddedBg),
		removed: lipgloss.NewStyle().
			Foreground(theme.RemovedFg).
			Background(theme.RemovedBg),
		addedWord: lipgloss.NewStyle().
			Foreground(theme.AddedBg).
			Background(theme.AddedFg).
			Bold(true),
		removedWord: lipgloss.NewStyle().
			Foreground(theme.RemovedBg).
			Background(theme.RemovedFg).
			Bold(true),
		context: lipgloss.NewStyle().
			Foreground(theme.ContextFg),
		fileHeader: lipgloss.NewStyle().
			Foreground(theme.FileHeaderFg).
			Bold(true),
		hunkHeader: lipgloss.NewStyle().
			Foreground(theme.HunkHeaderFg),
		id: lipgloss.NewStyle().
			Foreground(theme.IDFg),
		date: lipgloss.NewStyle().
			Foreground(theme.DateFg),
		author: lipgloss.NewStyle().
			Foreground(theme.AuthorFg),
		message: lipgloss.NewStyle().
			Foreground(theme.MessageFg),
		selected: lipgloss.NewStyle().
			Background(theme.SelectedBg).
			Bold(true),
		title: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Bold(true).
			Padding(0, 1),
		flag: lipgloss.NewStyle().
			Foreground(theme.TitleBg).
			Background(theme.TitleFg).
			Bold(true).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(theme.HelpFg),
		errorText: lipgloss.NewStyle().
			Foreground(theme.ErrorFg).
			Bold(true),
		empty: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Italic(true),
	}
}

// line returns the style of a diff line.
func (s *Styles) line(t diff.LineType) lipgloss.Style {
	switch t {
	case diff.FileHeader:
		return s.fileHeader
	case diff.HunkHeader:
		return s.hunkHeader
	case diff.Insertion:
		return s.added
	case diff.Deletion:
		return s.removed
	default:
		return s.context
	}
}

// word returns the emphasis style for changed words of a diff line.
func (s *Styles) word(t diff.LineType) lipgloss.Style {
	if t == diff.Insertion {
		return s.addedWord
	}
	return s.removedWord
}

func (s *Styles) newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = s.help.Bold(true)
	h.Styles.ShortDesc = s.help
	h.Styles.ShortSeparator = s.help
	h.Styles.FullKey = s.help.Bold(true)
	h.Styles.FullDesc = s.help
	h.Styles.FullSeparator = s.help
	h.Styles.Ellipsis = s.help
	return h
}
