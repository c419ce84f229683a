package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Context runs git commands for a repository working tree.
type Context struct {
	repoPath string        // Path the context was opened with
	workDir  string        // Working directory for commands (defaults to repoPath)
	runner   CommandRunner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// NewContext creates a git context for the repository at repoPath.
// It validates that the path is inside a git repository and applies any options.
func NewContext(repoPath string, opts ...Option) (*Context, error) {
	// Resolve to absolute path
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		repoPath: absPath,
		workDir:  absPath,
		runner:   NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	// Verify it's a git repository
	if _, err := g.runGit("rev-parse", "--git-dir"); err != nil {
		return nil, &Error{Op: "open repository", Output: commandOutput(err), Err: ErrNotGitRepo}
	}

	return g, nil
}

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// WithWorkDir runs commands from dir instead of the repository path.
func WithWorkDir(dir string) Option {
	return func(g *Context) {
		g.workDir = dir
	}
}

// RepoPath returns the path the context was opened with.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// WorkDir returns the working directory for git commands.
func (g *Context) WorkDir() string {
	return g.workDir
}

// CurrentBranch returns the short symbolic name of HEAD (e.g., "feature/ABC-123").
// A detached HEAD returns ErrDetachedHead; running outside a repository returns
// ErrNotGitRepo. Unborn branches (no commits yet) still resolve.
func (g *Context) CurrentBranch() (string, error) {
	branch, err := g.runGit("symbolic-ref", "--short", "HEAD")
	if err != nil {
		output := commandOutput(err)
		switch {
		case strings.Contains(output, "not a symbolic ref"):
			return "", &Error{Op: "get current branch", Output: output, Err: ErrDetachedHead}
		case strings.Contains(output, "not a git repository"):
			return "", &Error{Op: "get current branch", Output: output, Err: ErrNotGitRepo}
		}
		return "", &Error{Op: "get current branch", Output: output, Err: err}
	}
	if branch == "" {
		return "", &Error{Op: "get current branch", Err: ErrDetachedHead}
	}
	return branch, nil
}

// RepoRoot returns the top-level directory of the working tree.
func (g *Context) RepoRoot() (string, error) {
	root, err := g.runGit("rev-parse", "--show-toplevel")
	if err != nil {
		return "", &Error{Op: "find repository root", Output: commandOutput(err), Err: err}
	}
	return root, nil
}

// HooksDir returns the absolute path of the directory git reads hooks from.
// It honors core.hooksPath and linked worktrees.
func (g *Context) HooksDir() (string, error) {
	dir, err := g.runGit("rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", &Error{Op: "find hooks directory", Output: commandOutput(err), Err: err}
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(g.workDir, dir)
	}
	return filepath.Clean(dir), nil
}

// runGit executes a git command and returns stdout.
func (g *Context) runGit(args ...string) (string, error) {
	return g.runner.Run(g.workDir, "git", args...)
}

// commandOutput extracts the captured output from a runner error.
func commandOutput(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Output
	}
	return ""
}
