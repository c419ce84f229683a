// Command commit-prefix is a git commit-msg hook that prefixes commit
// messages with "type(context): " derived from the current branch name.
//
// Install it into a repository with:
//
//	commit-prefix install
//
// or run it directly:
//
//	commit-prefix .git/COMMIT_EDITMSG
package main

import (
	"os"
)

func main() {
	os.Exit(run(newApp(os.Stdout, os.Stderr), os.Args[1:]))
}

// run executes the CLI and returns the process exit status.
func run(a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(normalizeBoolArgs(root.PersistentFlags(), args))

	err := root.Execute()
	a.syncLogger()
	if err != nil {
		renderError(a.stderr, err, a.noColor())
		return 1
	}
	return 0
}
