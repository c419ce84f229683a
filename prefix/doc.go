// Package prefix rewrites commit message files so they start with a
// conventional commit prefix derived from the current branch.
//
// The rewrite is idempotent: a message that already starts with
// "type(context)" is left untouched, otherwise "type(context): " is
// prepended to the original content.
//
// Example usage:
//
//	gitCtx, _ := git.NewContext(".")
//	rw := &prefix.Rewriter{
//	    Rules:    branch.DefaultRules(),
//	    Branches: gitCtx,
//	}
//	result, err := rw.Apply(".git/COMMIT_EDITMSG")
//
// ApplyFile is the single-shot form for callers that already know the branch.
package prefix
