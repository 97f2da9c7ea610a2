package tui

import "github.com/cj3636/grit/internal/git"

// Repository describes the repository shown in the title bar.
type Repository interface {
	Path() string
	State() git.State
}

// StaticRepository is a Repository with a fixed location and state, for
// callers that have no repository on disk.
type StaticRepository struct {
	Root   string
	Status git.State
}

// Path implements Repository.
func (r StaticRepository) Path() string { return r.Root }

// State implements Repository.
func (r StaticRepository) State() git.State { return r.Status }
