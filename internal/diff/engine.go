// Package diff turns the raw patch of a commit into classified, renderable
// lines and the statistics shown alongside them.
package diff

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoParent is returned by a Source for a commit without a parent. It is a
// normal history edge case and produces an empty Result.
var ErrNoParent = errors.New("commit has no parent")

// Source produces the raw patch of a commit against its first parent.
type Source interface {
	Patch(ctx context.Context, id string) ([]PatchLine, Stats, error)
}

// Result contains the diff of a single commit
type Result struct {
	Lines []DiffLine
	Stats Stats
	// Words holds word-level segments keyed by line index, for deletion and
	// insertion lines that were paired. Nil when word diff is disabled.
	Words map[int][]Segment
}

// HasChanges returns true if there are any differences
func (r *Result) HasChanges() bool {
	return r.Stats.FilesChanged > 0 || len(r.Lines) > 0
}

// Engine builds commit diffs from a Source
type Engine struct {
	source   Source
	wordDiff bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithWordDiff enables word-level highlighting of paired changes.
func WithWordDiff(enabled bool) Option {
	return func(e *Engine) { e.wordDiff = enabled }
}

// NewEngine creates a new diff engine
func NewEngine(source Source, opts ...Option) *Engine {
	e := &Engine{source: source}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Commit computes the diff of the commit id against its first parent. A root
// commit yields an empty result with zero statistics.
func (e *Engine) Commit(ctx context.Context, id string) (*Result, error) {
	patch, stats, err := e.source.Patch(ctx, id)
	if errors.Is(err, ErrNoParent) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("diff of %s: %w", id, err)
	}

	result := &Result{
		Lines: Build(patch),
		Stats: stats,
	}
	if e.wordDiff {
		result.Words = WordDiff(ctx, result.Lines)
	}
	return result, nil
}
