package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// NativeRepo reads repository state with go-git instead of the git executable.
type NativeRepo struct {
	path string
	repo *gitlib.Repository
}

// OpenNative opens the repository containing path, searching parent
// directories for .git.
func OpenNative(path string) (*NativeRepo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, &Error{Op: "open repository", Output: abs, Err: ErrNotGitRepo}
		}
		return nil, &Error{Op: "open repository", Err: err}
	}
	return &NativeRepo{path: abs, repo: repo}, nil
}

// RepoPath returns the absolute path the repository was opened from.
func (n *NativeRepo) RepoPath() string {
	return n.path
}

// CurrentBranch returns the short name of the branch HEAD points at.
// HEAD is read without resolving its target, so a branch with no commits
// yet is still reported.
func (n *NativeRepo) CurrentBranch() (string, error) {
	head, err := n.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", &Error{Op: "read HEAD", Err: err}
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", &Error{Op: "read HEAD", Err: ErrDetachedHead}
	}
	return head.Target().Short(), nil
}
