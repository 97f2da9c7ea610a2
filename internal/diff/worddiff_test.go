package diff

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func joinSegments(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func changedText(segs []Segment) []string {
	var out []string
	for _, s := range segs {
		if s.Changed {
			out = append(out, s.Text)
		}
	}
	return out
}

func TestTokenize(t *testing.T) {
	require.Equal(t, []string{"foo", ".", "bar", "(", "x", ")", " ", "+", " ", "1"}, tokenize("foo.bar(x) + 1"))
	require.Nil(t, tokenize(""))
}

func TestWordDiff_PairsDeletionWithInsertion(t *testing.T) {
	lines := []DiffLine{
		{Type: HunkHeader, Content: "@@ -1 +1 @@"},
		{Type: Deletion, Content: "- total := price * qty"},
		{Type: Insertion, Content: "+ total := price * quantity"},
	}

	words := WordDiff(context.Background(), lines)

	require.Len(t, words, 2)
	require.Equal(t, "total := price * qty", joinSegments(words[1]), "segments reassemble the old line")
	require.Equal(t, "total := price * quantity", joinSegments(words[2]), "segments reassemble the new line")
	require.Equal(t, []string{"qty"}, changedText(words[1]))
	require.Equal(t, []string{"quantity"}, changedText(words[2]))
}

func TestWordDiff_UnpairedLinesIgnored(t *testing.T) {
	lines := []DiffLine{
		{Type: Insertion, Content: "+ added"},
		{Type: Context, Content: "  same"},
		{Type: Deletion, Content: "- removed"},
		{Type: Context, Content: "  same"},
	}

	require.Empty(t, WordDiff(context.Background(), lines))
}

func TestWordDiff_SkipsLongLines(t *testing.T) {
	long := strings.Repeat("x", WordDiffMaxLineLength+1)
	lines := []DiffLine{
		{Type: Deletion, Content: "- " + long},
		{Type: Insertion, Content: "+ " + long + "y"},
	}

	require.Empty(t, WordDiff(context.Background(), lines))
}

func TestWordDiff_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lines := []DiffLine{
		{Type: Deletion, Content: "- a"},
		{Type: Insertion, Content: "+ b"},
	}

	require.Empty(t, WordDiff(ctx, lines))
}
