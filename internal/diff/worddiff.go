package diff

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Word diff bounds.
const (
	WordDiffMaxLineLength = 500
	WordDiffMaxPairs      = 1000
	WordDiffTimeout       = 50 * time.Millisecond
)

// tokenBase is the first rune used to encode tokens. It sits in the private
// use area, above the surrogate range.
const tokenBase = 0xE000

// Segment is a run of text within a changed line.
type Segment struct {
	Changed bool
	Text    string
}

// WordDiff pairs every deletion line immediately followed by an insertion
// line and computes token-level segments for both. The returned segments
// cover the line content after its two-character marker prefix.
func WordDiff(ctx context.Context, lines []DiffLine) map[int][]Segment {
	ctx, cancel := context.WithTimeout(ctx, WordDiffTimeout)
	defer cancel()

	words := make(map[int][]Segment)
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = WordDiffTimeout

	pairs := 0
	for i := 0; i+1 < len(lines) && pairs < WordDiffMaxPairs; i++ {
		if lines[i].Type != Deletion || lines[i+1].Type != Insertion {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		oldText, newText := body(lines[i].Content), body(lines[i+1].Content)
		if len(oldText) > WordDiffMaxLineLength || len(newText) > WordDiffMaxLineLength {
			i++
			continue
		}

		oldSegs, newSegs := wordSegments(dmp, oldText, newText)
		words[i] = oldSegs
		words[i+1] = newSegs
		pairs++
		i++
	}
	return words
}

func body(content string) string {
	if len(content) < 2 {
		return ""
	}
	return content[2:]
}

func wordSegments(dmp *diffmatchpatch.DiffMatchPatch, oldText, newText string) (oldSegs, newSegs []Segment) {
	var vocab []string
	index := make(map[string]rune)
	encode := func(tokens []string) []rune {
		out := make([]rune, len(tokens))
		for i, tok := range tokens {
			r, ok := index[tok]
			if !ok {
				r = rune(tokenBase + len(vocab))
				index[tok] = r
				vocab = append(vocab, tok)
			}
			out[i] = r
		}
		return out
	}

	diffs := dmp.DiffMainRunes(encode(tokenize(oldText)), encode(tokenize(newText)), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	decode := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			if i := int(r - tokenBase); i >= 0 && i < len(vocab) {
				b.WriteString(vocab[i])
			}
		}
		return b.String()
	}

	for _, d := range diffs {
		text := decode(d.Text)
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = appendSegment(oldSegs, Segment{Text: text})
			newSegs = appendSegment(newSegs, Segment{Text: text})
		case diffmatchpatch.DiffDelete:
			oldSegs = appendSegment(oldSegs, Segment{Changed: true, Text: text})
		case diffmatchpatch.DiffInsert:
			newSegs = appendSegment(newSegs, Segment{Changed: true, Text: text})
		}
	}
	return oldSegs, newSegs
}

func appendSegment(segs []Segment, s Segment) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Changed == s.Changed {
		segs[n-1].Text += s.Text
		return segs
	}
	return append(segs, s)
}

// tokenize splits a line into words, single punctuation characters and single
// whitespace characters.
func tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			flush()
			tokens = append(tokens, string(r))
			continue
		}
		current.WriteRune(r)
	}
	flush()
	return tokens
}
