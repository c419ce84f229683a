package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RequireGit skips the test when the git executable is not installed.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not found")
	}
}

// SetupEmptyRepo creates a temporary git repository with no commits.
// HEAD points at the unborn branch "main".
// The repository is automatically cleaned up when the test ends.
func SetupEmptyRepo(t *testing.T) string {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()

	// Initialize git repo
	if err := runGit(t, dir, "init", "-q"); err != nil {
		t.Fatalf("git init failed: %v", err)
	}

	// Pin the initial branch regardless of init.defaultBranch
	if err := runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main"); err != nil {
		t.Fatalf("git symbolic-ref failed: %v", err)
	}

	// Configure git user
	if err := runGit(t, dir, "config", "user.email", "test@test.com"); err != nil {
		t.Fatalf("git config email failed: %v", err)
	}
	if err := runGit(t, dir, "config", "user.name", "Test User"); err != nil {
		t.Fatalf("git config name failed: %v", err)
	}

	return dir
}

// SetupTestRepo creates a temporary git repository on "main" with one commit.
// Returns the path to the repository.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := SetupEmptyRepo(t)

	// Create initial commit
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# Test Repository\n"), 0o644); err != nil {
		t.Fatalf("failed to create README: %v", err)
	}

	if err := runGit(t, dir, "add", "."); err != nil {
		t.Fatalf("git add failed: %v", err)
	}

	if err := runGit(t, dir, "commit", "-q", "--no-verify", "-m", "Initial commit"); err != nil {
		t.Fatalf("git commit failed: %v", err)
	}

	return dir
}

// CreateBranch creates and checks out a new branch in the test repo.
func CreateBranch(t *testing.T, repoDir, branch string) {
	t.Helper()

	if err := runGit(t, repoDir, "checkout", "-q", "-b", branch); err != nil {
		t.Fatalf("git checkout -b %s failed: %v", branch, err)
	}
}

// DetachHead checks out HEAD's commit directly, leaving no current branch.
func DetachHead(t *testing.T, repoDir string) {
	t.Helper()

	if err := runGit(t, repoDir, "checkout", "-q", "--detach"); err != nil {
		t.Fatalf("git checkout --detach failed: %v", err)
	}
}

// GetCurrentBranch returns the current branch name.
func GetCurrentBranch(t *testing.T, repoDir string) string {
	t.Helper()

	cmd := exec.Command("git", "branch", "--show-current")
	cmd.Dir = repoDir

	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("git branch --show-current failed: %v", err)
	}

	return strings.TrimSpace(string(output))
}

// RunGit runs a git command in repoDir and fails the test on error.
func RunGit(t *testing.T, repoDir string, args ...string) {
	t.Helper()

	if err := runGit(t, repoDir, args...); err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) error {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("git %v output: %s", args, output)
		return err
	}

	return nil
}
