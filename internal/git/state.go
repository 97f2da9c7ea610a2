package git

import (
	"os"
	"path/filepath"
)

// State is the in-progress operation of a repository, if any.
type State int

const (
	StateClean State = iota
	StateMerge
	StateRevert
	StateRevertSequence
	StateCherryPick
	StateCherryPickSequence
	StateBisect
	StateRebase
	StateRebaseInteractive
	StateRebaseMerge
	StateApplyMailbox
	StateApplyMailboxOrRebase
)

var stateNames = map[State]string{
	StateClean:                "",
	StateMerge:                "MERGING",
	StateRevert:               "REVERTING",
	StateRevertSequence:       "REVERTING",
	StateCherryPick:           "CHERRY-PICKING",
	StateCherryPickSequence:   "CHERRY-PICKING",
	StateBisect:               "BISECTING",
	StateRebase:               "REBASE",
	StateRebaseInteractive:    "REBASE-i",
	StateRebaseMerge:          "REBASE-m",
	StateApplyMailbox:         "AM",
	StateApplyMailboxOrRebase: "AM/REBASE",
}

// String returns the short flag git's prompt shows for the state. A clean
// repository has an empty flag.
func (s State) String() string {
	return stateNames[s]
}

// State inspects the marker files in the git directory.
func (r *Repository) State() State {
	exists := func(parts ...string) bool {
		_, err := os.Stat(filepath.Join(append([]string{r.gitDir}, parts...)...))
		return err == nil
	}
	sequence := exists("sequencer", "todo")

	switch {
	case exists("rebase-merge", "interactive"):
		return StateRebaseInteractive
	case exists("rebase-merge"):
		return StateRebaseMerge
	case exists("rebase-apply", "rebasing"):
		return StateRebase
	case exists("rebase-apply", "applying"):
		return StateApplyMailbox
	case exists("rebase-apply"):
		return StateApplyMailboxOrRebase
	case exists("MERGE_HEAD"):
		return StateMerge
	case exists("REVERT_HEAD") && sequence:
		return StateRevertSequence
	case exists("REVERT_HEAD"):
		return StateRevert
	case exists("CHERRY_PICK_HEAD") && sequence:
		return StateCherryPickSequence
	case exists("CHERRY_PICK_HEAD"):
		return StateCherryPick
	case exists("BISECT_LOG"):
		return StateBisect
	default:
		return StateClean
	}
}
