package integrationtest

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// binary is the commit-prefix executable built by TestMain, or "" when it
// could not be built.
var binary string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "commit-prefix-bin-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "MkdirTemp: %v\n", err)
		os.Exit(1)
	}

	binary = buildBinary(dir)
	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

func buildBinary(dir string) string {
	if _, err := exec.LookPath("go"); err != nil {
		return ""
	}
	out := filepath.Join(dir, "commit-prefix")
	cmd := exec.Command("go", "build", "-o", out, "./cmd/commit-prefix")
	cmd.Dir = ".."
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "building commit-prefix: %v\n%s\n", err, output)
		return ""
	}
	return out
}

func requireBinary(t *testing.T) {
	t.Helper()
	if binary == "" {
		t.Skip("commit-prefix binary not available")
	}
}

// setupTempRepo creates a temporary git repository with one commit on main.
func setupTempRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not found")
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test Repo\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "--no-verify", "-m", "Initial commit")

	return dir
}

// runGit runs a git command in dir and returns its trimmed output.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := tryGit(dir, args...)
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func tryGit(dir string, args ...string) (string, error) {
	return tryCommand(dir, "git", args...)
}

// commitFile adds a change and commits it with message, returning git's
// output and error so hook failures can be inspected.
func commitFile(t *testing.T, dir, name, message string) (string, error) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(name+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	runGit(t, dir, "add", name)
	return tryGit(dir, "commit", "-q", "-m", message)
}

func lastSubject(t *testing.T, dir string) string {
	t.Helper()
	return runGit(t, dir, "log", "-1", "--format=%s")
}

// install runs the built binary's install command in dir.
func install(t *testing.T, dir string, args ...string) {
	t.Helper()
	args = append([]string{"install", "--command", binary}, args...)
	if output, err := tryCommand(dir, binary, args...); err != nil {
		t.Fatalf("commit-prefix install: %v\n%s", err, output)
	}
}

func tryCommand(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}
