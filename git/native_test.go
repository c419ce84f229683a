package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func initNative(t *testing.T) (string, *gitlib.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gitlib.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	return dir, repo
}

func setHead(t *testing.T, repo *gitlib.Repository, ref *plumbing.Reference) {
	t.Helper()
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
}

func TestNativeRepo_CurrentBranch(t *testing.T) {
	dir, repo := initNative(t)
	setHead(t, repo, plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("alice/fix/ABC-42")))

	native, err := OpenNative(dir)
	if err != nil {
		t.Fatalf("OpenNative: %v", err)
	}

	branch, err := native.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "alice/fix/ABC-42" {
		t.Errorf("branch = %q, want %q", branch, "alice/fix/ABC-42")
	}
}

func TestNativeRepo_DetectsParentRepo(t *testing.T) {
	dir, repo := initNative(t)
	setHead(t, repo, plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("feature/ABC-1")))

	sub := filepath.Join(dir, "src", "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	native, err := OpenNative(sub)
	if err != nil {
		t.Fatalf("OpenNative: %v", err)
	}
	branch, err := native.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "feature/ABC-1" {
		t.Errorf("branch = %q, want feature/ABC-1", branch)
	}
	if native.RepoPath() != sub {
		t.Errorf("RepoPath = %q, want %q", native.RepoPath(), sub)
	}
}

func TestNativeRepo_Detached(t *testing.T) {
	dir, repo := initNative(t)
	setHead(t, repo, plumbing.NewHashReference(plumbing.HEAD, plumbing.NewHash("1234567890abcdef1234567890abcdef12345678")))

	native, err := OpenNative(dir)
	if err != nil {
		t.Fatalf("OpenNative: %v", err)
	}
	if _, err := native.CurrentBranch(); !errors.Is(err, ErrDetachedHead) {
		t.Errorf("expected ErrDetachedHead, got %v", err)
	}
}

func TestOpenNative_NotARepo(t *testing.T) {
	_, err := OpenNative(t.TempDir())
	if !errors.Is(err, ErrNotGitRepo) {
		t.Errorf("expected ErrNotGitRepo, got %v", err)
	}
}
