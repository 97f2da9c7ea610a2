// Package export renders the diff of a single commit without the TUI.
package export

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/muesli/termenv"

	"github.com/cj3636/grit/internal/diff"
)

// Format represents the desired export format.
type Format string

const (
	// FormatHTML emits an HTML document for the diff.
	FormatHTML Format = "html"
	// FormatMarkdown emits a Markdown diff code block.
	FormatMarkdown Format = "markdown"
	// FormatANSI emits an ANSI-colored string.
	FormatANSI Format = "ansi"
)

// Options control how a diff is exported.
type Options struct {
	// Title will be shown above the diff when provided.
	Title string
	// Profile selects the colour depth of ANSI output.
	Profile termenv.Profile
}

// ParseFormat resolves a user supplied format name and its aliases.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(raw) {
	case "", string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatHTML), "htm":
		return FormatHTML, nil
	case string(FormatANSI), "text":
		return FormatANSI, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

// Render returns the diff in the requested format.
func Render(result *diff.Result, format Format, opts Options) (string, error) {
	if result == nil {
		return "", errors.New("diff result is nil")
	}

	switch format {
	case FormatHTML:
		return renderHTML(result, opts), nil
	case FormatMarkdown:
		return renderMarkdown(result, opts), nil
	case FormatANSI:
		return renderANSI(result, opts), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func statsLine(s diff.Stats) string {
	return fmt.Sprintf("%d files changed, %d insertions(+), %d deletions(-)", s.FilesChanged, s.Insertions, s.Deletions)
}

func renderHTML(result *diff.Result, opts Options) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString("<style>body{background:#0f111a;color:#e5e7eb;font-family:Menlo,Consolas,monospace;}" +
		"pre{white-space:pre-wrap;word-wrap:break-word;}" +
		".insertion{background:#12281a;color:#8dd39e;}" +
		".deletion{background:#2b1313;color:#f19999;}" +
		".context{color:#cbd5e1;}" +
		".file-header{color:#e5c07b;font-weight:bold;}" +
		".hunk-header{color:#56b6c2;}" +
		".stats{color:#9ca3af;}" +
		"h1{font-size:18px;margin-bottom:12px;}" +
		"</style></head><body>")

	if opts.Title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(opts.Title))
	}
	fmt.Fprintf(&b, "<p class=\"stats\">%s</p>\n<pre>", statsLine(result.Stats))

	for _, line := range result.Lines {
		fmt.Fprintf(&b, "<div class=\"%s\">%s</div>\n", line.Type, html.EscapeString(line.Content))
	}

	b.WriteString("</pre></body></html>")
	return b.String()
}

func renderMarkdown(result *diff.Result, opts Options) string {
	var b strings.Builder

	if opts.Title != "" {
		b.WriteString("# ")
		b.WriteString(opts.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(statsLine(result.Stats))
	b.WriteString("\n\n")

	b.WriteString("```diff\n")
	for _, line := range result.Lines {
		b.WriteString(line.Content)
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

func renderANSI(result *diff.Result, opts Options) string {
	profile := opts.Profile
	var b strings.Builder
	if opts.Title != "" {
		fmt.Fprintf(&b, "%s\n", termenv.String(opts.Title).Bold())
	}
	fmt.Fprintf(&b, "%s\n\n", termenv.String(statsLine(result.Stats)).Foreground(profile.Color("8")))

	for _, line := range result.Lines {
		s := termenv.String(line.Content).Foreground(profile.Color(ansiColor(line.Type)))
		if line.Type == diff.FileHeader {
			s = s.Bold()
		}
		fmt.Fprintf(&b, "%s\n", s)
	}
	return b.String()
}

func ansiColor(t diff.LineType) string {
	switch t {
	case diff.Insertion:
		return "2"
	case diff.Deletion:
		return "1"
	case diff.FileHeader:
		return "3"
	case diff.HunkHeader:
		return "6"
	default:
		return "7"
	}
}
