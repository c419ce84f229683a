package git

import "errors"

// Git operation errors.
var (
	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrDetachedHead indicates HEAD points at a commit rather than a branch.
	ErrDetachedHead = errors.New("HEAD is detached")
)

// Error wraps a git command error with context.
type Error struct {
	Op     string // Operation that failed (e.g., "get current branch")
	Output string // Captured git output
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
