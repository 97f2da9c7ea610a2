package git

import (
	"bytes"
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/cj3636/grit/internal/diff"
)

const noNewline = " No newline at end of file"

// ParsePatch splits unified diff output into patch lines and totals its
// statistics. Each file's extended header, from "diff --git" up to its first
// hunk, becomes a single file header line.
func ParsePatch(text string) ([]diff.PatchLine, diff.Stats, error) {
	if strings.TrimSpace(text) == "" {
		return nil, diff.Stats{}, nil
	}
	files, err := godiff.ParseMultiFileDiff([]byte(text))
	if err != nil {
		return nil, diff.Stats{}, fmt.Errorf("parsing patch: %w", err)
	}

	var lines []diff.PatchLine
	stats := diff.Stats{FilesChanged: len(files)}
	for _, f := range files {
		lines = append(lines, diff.PatchLine{Origin: diff.OriginFile, Text: fileHeader(f)})
		for _, h := range f.Hunks {
			lines = append(lines, diff.PatchLine{Origin: diff.OriginHunk, Text: hunkHeader(h)})
			lines = append(lines, hunkBody(h)...)
		}
		st := f.Stat()
		stats.Insertions += int(st.Added + st.Changed)
		stats.Deletions += int(st.Deleted + st.Changed)
	}
	return lines, stats, nil
}

func fileHeader(f *godiff.FileDiff) string {
	header := append([]string(nil), f.Extended...)
	// git prints the ---/+++ pair only for files with textual hunks
	if len(f.Hunks) > 0 {
		header = append(header, "--- "+f.OrigName, "+++ "+f.NewName)
	}
	return strings.Join(header, "\n")
}

func hunkHeader(h *godiff.Hunk) string {
	header := fmt.Sprintf("@@ -%s +%s @@", hunkRange(h.OrigStartLine, h.OrigLines), hunkRange(h.NewStartLine, h.NewLines))
	if section := strings.TrimLeft(h.Section, " "); section != "" {
		header += " " + section
	}
	return header
}

func hunkRange(start, count int32) string {
	if count == 1 {
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// hunkBody restores the "\ No newline at end of file" markers go-diff folds
// into OrigNoNewlineAt and a missing final newline.
func hunkBody(h *godiff.Hunk) []diff.PatchLine {
	var lines []diff.PatchLine
	body := h.Body
	for pos := 0; pos < len(body); {
		end := bytes.IndexByte(body[pos:], '\n')
		next := len(body)
		if end < 0 {
			end = len(body)
		} else {
			end += pos
			next = end + 1
		}

		line := body[pos:end]
		if len(line) == 0 {
			lines = append(lines, diff.PatchLine{Origin: diff.OriginContext})
		} else {
			lines = append(lines, diff.PatchLine{Origin: rune(line[0]), Text: string(line[1:])})
		}

		switch {
		case h.OrigNoNewlineAt > 0 && int(h.OrigNoNewlineAt) == next && end < len(body):
			lines = append(lines, diff.PatchLine{Origin: diff.OriginNoEOFNL, Text: noNewline})
		case end == len(body):
			lines = append(lines, diff.PatchLine{Origin: diff.OriginNoEOFNL, Text: noNewline})
		}
		pos = next
	}
	return lines
}
