package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
	flag "github.com/spf13/pflag"

	"github.com/cj3636/grit/internal/config"
	"github.com/cj3636/grit/internal/diff"
	"github.com/cj3636/grit/internal/export"
	"github.com/cj3636/grit/internal/git"
	"github.com/cj3636/grit/internal/tui"
)

var version = "0.1.0"

var (
	showVersion  bool
	help         bool
	configPath   string
	initConfig   string
	exportFormat string
	exportRev    string
	exportFile   string
	exportCopy   bool
)

func init() {
	defaults := config.DefaultConfig()

	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.BoolVarP(&help, "help", "h", false, "Show help information")
	flag.StringVarP(&configPath, "config", "c", config.DefaultPath(), "Path to the TOML config file")
	flag.StringVar(&initConfig, "init-config", "", "Write the default config to the given path and exit")

	flag.String("theme", string(defaults.ThemePreset), "Color theme: default, solarized or dracula")
	flag.Bool("high-contrast", defaults.HighContrast, "Brighten theme colors")
	flag.StringP("ref", "r", defaults.Ref, "Reference to walk the history from")
	flag.String("markdown-style", defaults.MarkdownStyle, "Glamour style of the commit header")
	flag.Bool("word-diff", defaults.WordDiff, "Highlight changed words in modified lines")
	flag.String("date-format", defaults.DateFormat, "Go time layout of commit dates")
	flag.Duration("diff-cache-ttl", defaults.DiffCacheTTL, "How long computed diffs are cached")
	flag.Bool("debug", defaults.Debug, "Write a debug log")
	flag.String("log-file", defaults.LogFile, "Path of the debug log")

	flag.StringVar(&exportFormat, "export-format", "", "Export a commit diff as html, markdown, or ansi without launching the TUI")
	flag.StringVar(&exportRev, "export-rev", "HEAD", "Commit to export")
	flag.StringVar(&exportFile, "export-file", "", "Write the exported diff to the provided file path")
	flag.BoolVar(&exportCopy, "export-copy", false, "Copy the exported diff to your clipboard")
	flag.Usage = usage
}

func usage() {
	fmt.Println("grit - browse git history in the terminal")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  grit [options] [path]")
	fmt.Println("")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  grit                                  # History of the current repository")
	fmt.Println("  grit -r main ~/src/project            # History of main in another repository")
	fmt.Println("  grit --export-format html --export-rev HEAD~2 --export-file diff.html")
	fmt.Println("")
	fmt.Println("Keyboard shortcuts:")
	fmt.Println("  j/↓ k/↑    Move selection")
	fmt.Println("  pgdn pgup  Page down / up")
	fmt.Println("  home end   First / last commit")
	fmt.Println("  enter      Open commit")
	fmt.Println("  y          Yank commit id")
	fmt.Println("  ?          Toggle help")
	fmt.Println("  esc/q      Close view, quit from the history")
	fmt.Println("  ctrl+c     Quit")
}

func main() {
	flag.Parse()

	if help {
		usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("grit version %s\n", version)
		os.Exit(0)
	}

	if initConfig != "" {
		if err := config.WriteDefault(initConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", initConfig)
		os.Exit(0)
	}

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configPath, flag.CommandLine)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	dir := "."
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}
	repo, err := git.Discover(ctx, dir, logger)
	if err != nil {
		return err
	}

	source := git.NewCachedSource(repo, cfg.DiffCacheTTL, logger)
	engine := diff.NewEngine(source, diff.WithWordDiff(cfg.WordDiff))

	if exportFormat != "" || exportFile != "" || exportCopy {
		return runExport(ctx, repo, engine)
	}

	start := time.Now()
	commits, err := repo.Walk(ctx, cfg.Ref)
	if err != nil {
		return err
	}
	logger.Info("history loaded", "ref", cfg.Ref, "commits", len(commits), "duration", time.Since(start))

	width, height, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return fmt.Errorf("terminal size unavailable: %w", err)
	}

	env := tui.NewEnv(cfg, engine, export.SystemClipboard{}, logger)
	env.Context = ctx
	stack := tui.NewStack(tui.NewLogView(env, repo, commits, width, height), logger)

	p := tea.NewProgram(tui.NewModel(stack), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func setupLogging(cfg *config.Config) (*slog.Logger, func(), error) {
	if !cfg.Debug {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "grit")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

func runExport(ctx context.Context, repo *git.Repository, engine *diff.Engine) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	commit, err := repo.Lookup(ctx, exportRev)
	if err != nil {
		return err
	}
	result, err := engine.Commit(ctx, commit.ID)
	if err != nil {
		return err
	}

	rendered, err := export.Render(result, format, export.Options{
		Title:   commit.ShortID() + " " + commit.Summary,
		Profile: termenv.ANSI,
	})
	if err != nil {
		return fmt.Errorf("exporting diff: %w", err)
	}

	if exportFile != "" {
		if err := os.WriteFile(exportFile, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Diff saved to %s\n", exportFile)
	}

	if exportCopy {
		if err := (export.SystemClipboard{Out: os.Stdout}).Copy(rendered); err != nil {
			return fmt.Errorf("copying diff to clipboard: %w", err)
		}
		fmt.Println("Diff copied to clipboard.")
	}

	if exportFile == "" && !exportCopy {
		fmt.Println(rendered)
	}
	return nil
}
