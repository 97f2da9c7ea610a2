package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"theme":          "theme",
	"high-contrast":  "high_contrast",
	"ref":            "ref",
	"markdown-style": "markdown_style",
	"word-diff":      "word_diff",
	"date-format":    "date_format",
	"diff-cache-ttl": "diff_cache_ttl",
	"debug":          "debug",
	"log-file":       "log_file",
}

// fileConfig is the on-disk shape of the configuration.
type fileConfig struct {
	Theme         string              `toml:"theme"`
	HighContrast  bool                `toml:"high_contrast"`
	Ref           string              `toml:"ref"`
	MarkdownStyle string              `toml:"markdown_style"`
	WordDiff      bool                `toml:"word_diff"`
	DateFormat    string              `toml:"date_format"`
	DiffCacheTTL  string              `toml:"diff_cache_ttl"`
	Debug         bool                `toml:"debug"`
	LogFile       string              `toml:"log_file"`
	Keybindings   map[string][]string `toml:"keybindings"`
}

// DefaultPath returns the user configuration file location.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "grit", "config.toml")
}

// Load layers defaults, the TOML file at path and any flags the user set.
// A missing file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetDefault("theme", string(defaults.ThemePreset))
	v.SetDefault("high_contrast", defaults.HighContrast)
	v.SetDefault("ref", defaults.Ref)
	v.SetDefault("markdown_style", defaults.MarkdownStyle)
	v.SetDefault("word_diff", defaults.WordDiff)
	v.SetDefault("date_format", defaults.DateFormat)
	v.SetDefault("diff_cache_ttl", defaults.DiffCacheTTL)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_file", defaults.LogFile)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	preset := ThemePreset(strings.ToLower(v.GetString("theme")))
	switch preset {
	case PresetDefault, PresetSolarize, PresetDracula:
	default:
		return nil, fmt.Errorf("unknown theme %q", preset)
	}
	ttl := v.GetDuration("diff_cache_ttl")
	if ttl <= 0 {
		return nil, fmt.Errorf("diff_cache_ttl must be positive, got %q", v.GetString("diff_cache_ttl"))
	}

	highContrast := v.GetBool("high_contrast")
	return &Config{
		ThemePreset:   preset,
		Theme:         ThemeForPreset(preset, highContrast),
		HighContrast:  highContrast,
		Ref:           v.GetString("ref"),
		MarkdownStyle: v.GetString("markdown_style"),
		WordDiff:      v.GetBool("word_diff"),
		DateFormat:    v.GetString("date_format"),
		DiffCacheTTL:  ttl,
		Debug:         v.GetBool("debug"),
		LogFile:       v.GetString("log_file"),
		Keybindings:   MergeKeybindings(Keybindings(v.GetStringMapStringSlice("keybindings"))),
	}, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// WriteDefault writes the default configuration to path as TOML, creating
// parent directories. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}

	d := DefaultConfig()
	data, err := toml.Marshal(fileConfig{
		Theme:         string(d.ThemePreset),
		HighContrast:  d.HighContrast,
		Ref:           d.Ref,
		MarkdownStyle: d.MarkdownStyle,
		WordDiff:      d.WordDiff,
		DateFormat:    d.DateFormat,
		DiffCacheTTL:  d.DiffCacheTTL.String(),
		Debug:         d.Debug,
		LogFile:       d.LogFile,
		Keybindings:   d.Keybindings,
	})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
