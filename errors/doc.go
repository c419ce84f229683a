// Package errors provides the hook's error taxonomy with user-friendly messaging.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Sentinel errors:
//   - ErrInvalidBranch: Branch name fails the naming convention
//   - ErrMainBranch: Commit on main/master without --allow-main
//   - ErrNotInGitRepo: Command requires a git repository
//   - ErrDetachedHead: HEAD is not on a branch
//
// Example usage:
//
//	if !rules.IsValid(name) {
//	    return errors.NewInvalidBranchError(name, rules.Types, rules.UserPrefixed)
//	}
//
//	// Map git failures to guidance
//	if _, err := gitCtx.CurrentBranch(); err != nil {
//	    return errors.WrapGitError(err)
//	}
//
//	// Check error types
//	if errors.IsBranchError(err) {
//	    // Abort the commit
//	}
package errors
