// Package git reads commit history and commit diffs from a repository by
// running the git command line tool.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/cj3636/grit/internal/diff"
)

// ErrNotRepository is returned when no repository encloses the given path.
var ErrNotRepository = errors.New("git repository not detected")

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

var logFormat = strings.Join([]string{"%H", "%an", "%aI", "%s"}, fieldSep) + recordSep

// Commit summarizes one commit of the history walk.
type Commit struct {
	ID      string
	Time    time.Time // author time in the author's own offset
	Author  string
	Summary string
}

// ShortID returns the abbreviated commit id.
func (c Commit) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// Repository is a working tree discovered on disk.
type Repository struct {
	root   string
	gitDir string
	log    *slog.Logger
}

// Discover finds the repository enclosing dir.
func Discover(ctx context.Context, dir string, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Repository{root: dir, log: logger}

	out, err := r.run(ctx, "rev-parse", "--show-toplevel", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotRepository, dir, err)
	}
	lines := splitLines(out)
	if len(lines) != 2 {
		return nil, fmt.Errorf("%w: %s: unexpected rev-parse output %q", ErrNotRepository, dir, out)
	}
	r.root, r.gitDir = lines[0], lines[1]
	logger.Debug("repository discovered", "root", r.root, "git_dir", r.gitDir)
	return r, nil
}

// Path returns the root of the working tree.
func (r *Repository) Path() string {
	return r.root
}

// Walk lists the commits reachable from ref in topological order, newest
// first. A repository without any commit yields an empty walk.
func (r *Repository) Walk(ctx context.Context, ref string) ([]Commit, error) {
	if _, err := r.run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}"); err != nil {
		if ref == "HEAD" && !r.hasCommits(ctx) {
			return nil, nil
		}
		return nil, fmt.Errorf("unknown reference %q: %w", ref, err)
	}

	out, err := r.run(ctx, "log", "--topo-order", "--no-color", "--no-show-signature", "--format="+logFormat, ref, "--")
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", ref, err)
	}
	return parseLog(out)
}

// Lookup resolves rev to a single commit.
func (r *Repository) Lookup(ctx context.Context, rev string) (Commit, error) {
	out, err := r.run(ctx, "log", "--max-count=1", "--no-color", "--no-show-signature", "--format="+logFormat, rev+"^{commit}", "--")
	if err != nil {
		return Commit{}, fmt.Errorf("resolving %s: %w", rev, err)
	}
	commits, err := parseLog(out)
	if err != nil {
		return Commit{}, err
	}
	if len(commits) == 0 {
		return Commit{}, fmt.Errorf("resolving %s: no such commit", rev)
	}
	return commits[0], nil
}

func (r *Repository) hasCommits(ctx context.Context) bool {
	out, err := r.run(ctx, "rev-list", "--all", "--max-count=1")
	return err == nil && strings.TrimSpace(out) != ""
}

func parseLog(out string) ([]Commit, error) {
	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.Trim(record, "\n")
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSep, 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed log record %q", record)
		}
		when, err := time.Parse(time.RFC3339, fields[2])
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", fields[0], err)
		}
		commits = append(commits, Commit{
			ID:      fields[0],
			Author:  fields[1],
			Time:    when,
			Summary: fields[3],
		})
	}
	return commits, nil
}

// Patch returns the patch of commit id against its first parent, along with
// its statistics. A root commit returns diff.ErrNoParent.
func (r *Repository) Patch(ctx context.Context, id string) ([]diff.PatchLine, diff.Stats, error) {
	out, err := r.run(ctx, "rev-list", "--parents", "--max-count=1", id)
	if err != nil {
		return nil, diff.Stats{}, fmt.Errorf("resolving %s: %w", id, err)
	}
	ids := strings.Fields(out)
	if len(ids) == 0 {
		return nil, diff.Stats{}, fmt.Errorf("resolving %s: no such commit", id)
	}
	if len(ids) == 1 {
		return nil, diff.Stats{}, fmt.Errorf("%s: %w", id, diff.ErrNoParent)
	}
	parent, commit := ids[1], ids[0]

	patchOut, err := r.run(ctx, "diff", "--no-color", "--no-ext-diff", "--no-renames", "--no-textconv",
		"--src-prefix=a/", "--dst-prefix=b/", parent, commit)
	if err != nil {
		return nil, diff.Stats{}, fmt.Errorf("patch of %s: %w", id, err)
	}
	lines, stats, err := ParsePatch(patchOut)
	if err != nil {
		return nil, diff.Stats{}, fmt.Errorf("%s: %w", id, err)
	}
	return lines, stats, nil
}

func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.root}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	out, err := cmd.Output()
	r.log.Debug("git", "args", args, "duration", time.Since(start), "err", err)
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

func splitLines(out string) []string {
	text := strings.TrimSpace(out)
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
