package config

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Config holds the application configuration
type Config struct {
	Theme         Theme
	ThemePreset   ThemePreset
	HighContrast  bool
	Ref           string
	MarkdownStyle string
	WordDiff      bool
	DateFormat    string
	DiffCacheTTL  time.Duration
	Debug         bool
	LogFile       string
	Keybindings   Keybindings
}

// ThemePreset describes a named theme configuration.
type ThemePreset string

const (
	PresetDefault  ThemePreset = "default"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// Keybindings maps semantic actions to one or more key sequences.
type Keybindings map[string][]string

// Actions understood by the views.
const (
	ActionUp       = "up"
	ActionDown     = "down"
	ActionPageUp   = "page_up"
	ActionPageDown = "page_down"
	ActionHome     = "home"
	ActionEnd      = "end"
	ActionOpen     = "open"
	ActionBack     = "back"
	ActionQuit     = "quit"
	ActionYank     = "yank"
	ActionHelp     = "toggle_help"
)

// Theme defines the color scheme for the application
type Theme struct {
	AddedBg      lipgloss.Color
	AddedFg      lipgloss.Color
	RemovedBg    lipgloss.Color
	RemovedFg    lipgloss.Color
	ContextFg    lipgloss.Color
	FileHeaderFg lipgloss.Color
	HunkHeaderFg lipgloss.Color
	DateFg       lipgloss.Color
	AuthorFg     lipgloss.Color
	MessageFg    lipgloss.Color
	IDFg         lipgloss.Color
	SelectedBg   lipgloss.Color
	BorderFg     lipgloss.Color
	TitleFg      lipgloss.Color
	TitleBg      lipgloss.Color
	HelpFg       lipgloss.Color
	ErrorFg      lipgloss.Color
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ThemePreset:   PresetDefault,
		Theme:         ThemeForPreset(PresetDefault, false),
		HighContrast:  false,
		Ref:           "HEAD",
		MarkdownStyle: "dark",
		WordDiff:      true,
		DateFormat:    "2006-01-02 15:04",
		DiffCacheTTL:  10 * time.Minute,
		LogFile:       "grit.log",
		Keybindings:   DefaultKeybindings(),
	}
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		AddedBg:      lipgloss.Color("#2D4A2B"),
		AddedFg:      lipgloss.Color("#A8E6A3"),
		RemovedBg:    lipgloss.Color("#4A2D2D"),
		RemovedFg:    lipgloss.Color("#E6A3A3"),
		ContextFg:    lipgloss.Color("#B0B0B0"),
		FileHeaderFg: lipgloss.Color("#E5C07B"),
		HunkHeaderFg: lipgloss.Color("#56B6C2"),
		DateFg:       lipgloss.Color("#61AFEF"),
		AuthorFg:     lipgloss.Color("#98C379"),
		MessageFg:    lipgloss.Color("#FFFFFF"),
		IDFg:         lipgloss.Color("#C678DD"),
		SelectedBg:   lipgloss.Color("#3E4451"),
		BorderFg:     lipgloss.Color("#3A3A3A"),
		TitleFg:      lipgloss.Color("#FFFFFF"),
		TitleBg:      lipgloss.Color("#5F5FAF"),
		HelpFg:       lipgloss.Color("#888888"),
		ErrorFg:      lipgloss.Color("#FF5F5F"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme, optionally
// applying a high-contrast variation.
func ThemeForPreset(preset ThemePreset, highContrast bool) Theme {
	switch preset {
	case PresetSolarize:
		return applyContrast(Theme{
			AddedBg:      lipgloss.Color("#073642"),
			AddedFg:      lipgloss.Color("#859900"),
			RemovedBg:    lipgloss.Color("#3C1F1E"),
			RemovedFg:    lipgloss.Color("#DC322F"),
			ContextFg:    lipgloss.Color("#93A1A1"),
			FileHeaderFg: lipgloss.Color("#B58900"),
			HunkHeaderFg: lipgloss.Color("#2AA198"),
			DateFg:       lipgloss.Color("#268BD2"),
			AuthorFg:     lipgloss.Color("#859900"),
			MessageFg:    lipgloss.Color("#EEE8D5"),
			IDFg:         lipgloss.Color("#6C71C4"),
			SelectedBg:   lipgloss.Color("#073642"),
			BorderFg:     lipgloss.Color("#657B83"),
			TitleFg:      lipgloss.Color("#EEE8D5"),
			TitleBg:      lipgloss.Color("#586E75"),
			HelpFg:       lipgloss.Color("#93A1A1"),
			ErrorFg:      lipgloss.Color("#DC322F"),
		}, highContrast)
	case PresetDracula:
		return applyContrast(Theme{
			AddedBg:      lipgloss.Color("#244443"),
			AddedFg:      lipgloss.Color("#50FA7B"),
			RemovedBg:    lipgloss.Color("#402036"),
			RemovedFg:    lipgloss.Color("#FF79C6"),
			ContextFg:    lipgloss.Color("#F8F8F2"),
			FileHeaderFg: lipgloss.Color("#F1FA8C"),
			HunkHeaderFg: lipgloss.Color("#8BE9FD"),
			DateFg:       lipgloss.Color("#8BE9FD"),
			AuthorFg:     lipgloss.Color("#50FA7B"),
			MessageFg:    lipgloss.Color("#F8F8F2"),
			IDFg:         lipgloss.Color("#BD93F9"),
			SelectedBg:   lipgloss.Color("#44475A"),
			BorderFg:     lipgloss.Color("#44475A"),
			TitleFg:      lipgloss.Color("#F8F8F2"),
			TitleBg:      lipgloss.Color("#6272A4"),
			HelpFg:       lipgloss.Color("#BD93F9"),
			ErrorFg:      lipgloss.Color("#FF5555"),
		}, highContrast)
	default:
		return applyContrast(DefaultTheme(), highContrast)
	}
}

// DefaultKeybindings returns the built-in keybinding map.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		ActionUp:       {"up", "k"},
		ActionDown:     {"down", "j"},
		ActionPageUp:   {"pgup"},
		ActionPageDown: {"pgdown"},
		ActionHome:     {"home"},
		ActionEnd:      {"end"},
		ActionOpen:     {"enter"},
		ActionBack:     {"esc", "q"},
		ActionQuit:     {"ctrl+c"},
		ActionYank:     {"y"},
		ActionHelp:     {"?"},
	}
}

// MergeKeybindings overlays user overrides onto defaults.
func MergeKeybindings(overrides Keybindings) Keybindings {
	defaults := DefaultKeybindings()
	for action, keys := range overrides {
		if len(keys) == 0 {
			continue
		}
		defaults[action] = keys
	}
	return defaults
}

func applyContrast(theme Theme, highContrast bool) Theme {
	if !highContrast {
		return theme
	}

	return Theme{
		AddedBg:      adjustBrightness(theme.AddedBg, 0.15),
		AddedFg:      adjustBrightness(theme.AddedFg, 0.25),
		RemovedBg:    adjustBrightness(theme.RemovedBg, 0.15),
		RemovedFg:    adjustBrightness(theme.RemovedFg, 0.25),
		ContextFg:    adjustBrightness(theme.ContextFg, 0.2),
		FileHeaderFg: adjustBrightness(theme.FileHeaderFg, 0.2),
		HunkHeaderFg: adjustBrightness(theme.HunkHeaderFg, 0.2),
		DateFg:       adjustBrightness(theme.DateFg, 0.2),
		AuthorFg:     adjustBrightness(theme.AuthorFg, 0.2),
		MessageFg:    adjustBrightness(theme.MessageFg, 0.2),
		IDFg:         adjustBrightness(theme.IDFg, 0.2),
		SelectedBg:   adjustBrightness(theme.SelectedBg, 0.2),
		BorderFg:     adjustBrightness(theme.BorderFg, 0.2),
		TitleFg:      adjustBrightness(theme.TitleFg, 0.2),
		TitleBg:      adjustBrightness(theme.TitleBg, 0.2),
		HelpFg:       adjustBrightness(theme.HelpFg, 0.2),
		ErrorFg:      adjustBrightness(theme.ErrorFg, 0.2),
	}
}

// adjustBrightness raises the HSL lightness of a hex colour by factor,
// relative to its current lightness. Non-hex colours are returned as is.
func adjustBrightness(c lipgloss.Color, factor float64) lipgloss.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	h, s, l := col.Hsl()
	l *= 1 + factor
	if l > 1 {
		l = 1
	}
	return lipgloss.Color(colorful.Hsl(h, s, l).Clamped().Hex())
}
