package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/grit/internal/diff"
)

func sampleResult() *diff.Result {
	return &diff.Result{
		Lines: diff.Build([]diff.PatchLine{
			{Origin: 'F', Text: "diff --git a/main.go b/main.go\n--- a/main.go\n+++ b/main.go"},
			{Origin: 'H', Text: "@@ -1 +1 @@"},
			{Origin: '-', Text: "x := 1 < 2"},
			{Origin: '+', Text: "x := 2"},
		}),
		Stats: diff.Stats{FilesChanged: 1, Insertions: 1, Deletions: 1},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatMarkdown,
		"md":       FormatMarkdown,
		"Markdown": FormatMarkdown,
		"html":     FormatHTML,
		"htm":      FormatHTML,
		"ansi":     FormatANSI,
		"text":     FormatANSI,
	}
	for raw, want := range tests {
		got, err := ParseFormat(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseFormat("pdf")
	require.ErrorContains(t, err, "pdf")
}

func TestRender_Markdown(t *testing.T) {
	out, err := Render(sampleResult(), FormatMarkdown, Options{Title: "abc1234 Fix x"})

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "# abc1234 Fix x\n\n1 files changed, 1 insertions(+), 1 deletions(-)\n\n```diff\n"))
	require.Contains(t, out, "- x := 1 < 2\n+ x := 2\n```\n")
}

func TestRender_HTMLEscapes(t *testing.T) {
	out, err := Render(sampleResult(), FormatHTML, Options{Title: "<b>"})

	require.NoError(t, err)
	require.Contains(t, out, "<h1>&lt;b&gt;</h1>")
	require.Contains(t, out, `<div class="deletion">- x := 1 &lt; 2</div>`)
	require.Contains(t, out, `<div class="file-header">diff --git a/main.go b/main.go</div>`)
}

func TestRender_ANSI(t *testing.T) {
	out, err := Render(sampleResult(), FormatANSI, Options{Profile: termenv.ANSI})

	require.NoError(t, err)
	require.Contains(t, out, "\x1b[32m+ x := 2\x1b[0m")
	require.Contains(t, out, "\x1b[31m- x := 1 < 2\x1b[0m")

	plain, err := Render(sampleResult(), FormatANSI, Options{Profile: termenv.Ascii})
	require.NoError(t, err)
	require.Contains(t, plain, "\n+ x := 2\n")
}

func TestRender_RootCommit(t *testing.T) {
	out, err := Render(&diff.Result{}, FormatMarkdown, Options{})

	require.NoError(t, err)
	require.Equal(t, "0 files changed, 0 insertions(+), 0 deletions(-)\n\n```diff\n```\n", out)
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(nil, FormatMarkdown, Options{})
	require.Error(t, err)

	_, err = Render(sampleResult(), Format("pdf"), Options{})
	require.Error(t, err)
}

func TestCopyToClipboard_WritesOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer

	require.NoError(t, CopyToClipboard("hello", &buf))

	require.Equal(t, "\x1b]52;c;aGVsbG8=\x07", buf.String())
}

func TestSystemClipboard_FallsBackToOSC52(t *testing.T) {
	if !clipboard.Unsupported {
		t.Skip("native clipboard present")
	}
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer

	require.NoError(t, SystemClipboard{Out: &buf}.Copy("hello"))

	require.Equal(t, "\x1b]52;c;aGVsbG8=\x07", buf.String())
}

func TestSystemClipboard_NoFallbackWithoutOutput(t *testing.T) {
	if !clipboard.Unsupported {
		t.Skip("native clipboard present")
	}

	err := SystemClipboard{}.Copy("hello")

	require.ErrorIs(t, err, ErrNoClipboard)
}
