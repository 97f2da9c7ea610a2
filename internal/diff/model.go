package diff

import "strings"

// Origin markers of raw patch lines, as produced by a Source.
const (
	OriginFile     = 'F'
	OriginHunk     = 'H'
	OriginAddition = '+'
	OriginDeletion = '-'
	OriginContext  = ' '
	OriginNoEOFNL  = '\\'
)

// PatchLine is one raw line of a patch, tagged with its origin marker.
type PatchLine struct {
	Origin rune
	Text   string
}

// LineType defines the type of diff line
type LineType int

const (
	FileHeader LineType = iota
	HunkHeader
	Context
	Insertion
	Deletion
)

func (t LineType) String() string {
	switch t {
	case FileHeader:
		return "file-header"
	case HunkHeader:
		return "hunk-header"
	case Insertion:
		return "insertion"
	case Deletion:
		return "deletion"
	default:
		return "context"
	}
}

// DiffLine represents a single classified line of a commit diff
type DiffLine struct {
	Type    LineType
	Content string
}

// Stats holds the aggregate counts reported for a whole diff.
type Stats struct {
	FilesChanged int
	Insertions   int
	Deletions    int
}

// Build classifies raw patch lines into renderable diff lines.
//
// File headers may span several lines and are split into one line each.
// Insertions, deletions and every other marker are prefixed with the marker
// and a space so the renderer can style them without re-deriving it.
func Build(patch []PatchLine) []DiffLine {
	lines := make([]DiffLine, 0, len(patch))
	for _, p := range patch {
		switch p.Origin {
		case OriginFile:
			for _, l := range strings.Split(trimEOL(p.Text), "\n") {
				lines = append(lines, DiffLine{Type: FileHeader, Content: strings.TrimSuffix(l, "\r")})
			}
		case OriginHunk:
			lines = append(lines, DiffLine{Type: HunkHeader, Content: trimEOL(p.Text)})
		default:
			lines = append(lines, DiffLine{
				Type:    classify(p.Origin),
				Content: string(p.Origin) + " " + trimEOL(p.Text),
			})
		}
	}
	return lines
}

func classify(origin rune) LineType {
	switch origin {
	case OriginAddition:
		return Insertion
	case OriginDeletion:
		return Deletion
	default:
		return Context
	}
}

// trimEOL drops a single trailing line terminator.
func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
