// Package branch validates branch names and derives conventional commit
// prefixes from them.
//
// A branch name has the shape
//
//	[user/]type/CONTEXT-ID...
//
// where type is one of an allow-list of tokens (feature, fix, ...) and
// CONTEXT-ID is a ticket reference such as ABC-123. The type becomes the
// conventional commit type and the remaining path segments become the scope:
//
//	branch.Prefix("fix/ABC-42", false)              // "fix(ABC-42)"
//	branch.Prefix("alice/feature/ABC-123", true)    // "feature(ABC-123)"
//
// Core functions:
//   - IsValid: checks a name against the default allow-list and ticket pattern
//   - Type, Context, Parse: split a name into its parts (no validation)
//   - IsMain: reports whether a name is a main/master branch
//
// Rules carries a configured allow-list and main branch set for callers that
// do not want the defaults.
package branch
