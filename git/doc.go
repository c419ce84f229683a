// Package git provides the repository queries the commit hook needs.
//
// Core types:
//   - Context: runs the git executable through a CommandRunner
//   - NativeRepo: reads HEAD with go-git, no git executable required
//   - CommandRunner: Interface for executing git commands (with mocks for testing)
//
// Both Context and NativeRepo expose CurrentBranch, returning the short
// symbolic name of HEAD or ErrDetachedHead / ErrNotGitRepo.
//
// Example usage:
//
//	ctx, err := git.NewContext(".")
//	if err != nil {
//	    return err
//	}
//	branch, err := ctx.CurrentBranch() // "feature/ABC-123"
//
//	hooks, err := ctx.HooksDir() // ".../.git/hooks"
package git
