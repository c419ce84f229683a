package errors

import "errors"

// Hook errors with actionable guidance.
var (
	// ErrInvalidBranch indicates the branch name does not follow the naming convention.
	ErrInvalidBranch = errors.New("invalid branch name")

	// ErrMainBranch indicates a commit directly on a main branch without permission.
	ErrMainBranch = errors.New("commit on main branch")

	// ErrNotInGitRepo indicates the command requires a git repository.
	ErrNotInGitRepo = errors.New("not in a git repository")

	// ErrDetachedHead indicates HEAD does not point at a branch.
	ErrDetachedHead = errors.New("HEAD is detached")
)
