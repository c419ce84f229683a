package errors

import "errors"

// IsBranchError checks if an error comes from branch policy: an invalid name
// or a disallowed main branch commit.
func IsBranchError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrInvalidBranch) || errors.Is(err, ErrMainBranch)
}

// IsGitError checks if an error is about the repository state rather than the
// branch name.
func IsGitError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNotInGitRepo) || errors.Is(err, ErrDetachedHead)
}
