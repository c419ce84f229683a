package git

import (
	"errors"
	"os/exec"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
}

func TestExecRunner_TrimsStdout(t *testing.T) {
	requireShell(t)

	out, err := NewExecRunner().Run(t.TempDir(), "sh", "-c", "printf '  fix/ABC-42\\n\\n'")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "fix/ABC-42" {
		t.Errorf("out = %q, want fix/ABC-42", out)
	}
}

func TestExecRunner_FailureOutput(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"stderr wins over stdout", "echo partial; echo 'fatal: bad ref' >&2; exit 3", "fatal: bad ref"},
		{"stdout when stderr empty", "echo 'usage: nope'; exit 1", "usage: nope"},
		{"silent failure", "exit 2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewExecRunner().Run(t.TempDir(), "sh", "-c", tt.script)
			if out != "" {
				t.Errorf("out = %q, want empty on failure", out)
			}

			var cmdErr *CommandError
			if !errors.As(err, &cmdErr) {
				t.Fatalf("expected *CommandError, got %T (%v)", err, err)
			}
			if cmdErr.Output != tt.want {
				t.Errorf("Output = %q, want %q", cmdErr.Output, tt.want)
			}
			if cmdErr.Command != "sh" || len(cmdErr.Args) != 2 {
				t.Errorf("command = %q %v", cmdErr.Command, cmdErr.Args)
			}

			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				t.Errorf("expected wrapped *exec.ExitError, got %v", cmdErr.Err)
			}
		})
	}
}

func TestExecRunner_ForcesCLocale(t *testing.T) {
	requireShell(t)
	t.Setenv("LC_ALL", "de_DE.UTF-8")

	out, err := NewExecRunner().Run(t.TempDir(), "sh", "-c", "echo $LC_ALL")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "C" {
		t.Errorf("LC_ALL = %q, want C", out)
	}
}

func TestCommandError_Message(t *testing.T) {
	exit := errors.New("exit status 128")

	tests := []struct {
		name string
		err  *CommandError
		want string
	}{
		{"output first", &CommandError{Output: "fatal: not a git repository", Err: exit}, "fatal: not a git repository"},
		{"falls back to err", &CommandError{Err: exit}, "exit status 128"},
		{"bare", &CommandError{}, "command failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if !errors.Is(&CommandError{Err: exit}, exit) {
		t.Error("CommandError should unwrap to its exit error")
	}
}

func TestMockRunner_LookupOrder(t *testing.T) {
	runner := NewMockRunner()
	runner.DefaultResponse = MockResponse{Stdout: "default"}
	runner.OnAnyCommand().Return("any", nil)
	runner.Responses["git"] = MockResponse{Stdout: "git"}
	runner.OnCommand("git", "symbolic-ref", "--short", "HEAD").Return("feature/ABC-1", nil)

	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{"exact key", "git", []string{"symbolic-ref", "--short", "HEAD"}, "feature/ABC-1"},
		{"name only", "git", []string{"rev-parse", "--git-dir"}, "git"},
		{"wildcard", "sh", []string{"-c", "true"}, "any"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runner.Run("/repo", tt.cmd, tt.args...)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if out != tt.want {
				t.Errorf("out = %q, want %q", out, tt.want)
			}
		})
	}

	delete(runner.Responses, wildcardKey)
	if out, _ := runner.Run("/repo", "sh"); out != "default" {
		t.Errorf("without wildcard out = %q, want default", out)
	}
}

func TestMockRunner_RecordsCalls(t *testing.T) {
	runner := NewMockRunner()
	wantErr := errors.New("boom")
	runner.OnCommand("git", "rev-parse", "--show-toplevel").Return("", wantErr)

	if _, err := runner.Run("/a", "git", "rev-parse", "--show-toplevel"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	runner.Run("/b", "git", "symbolic-ref", "--short", "HEAD")

	if len(runner.Calls) != 2 {
		t.Fatalf("Calls = %d, want 2", len(runner.Calls))
	}
	second := runner.Calls[1]
	if second.WorkDir != "/b" || commandKey(second.Command, second.Args) != "git symbolic-ref --short HEAD" {
		t.Errorf("second call = %+v", second)
	}
}

func TestSequentialMockRunner_Queue(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput(".git", nil)
	runner.AddOutputError("git", "fatal: ref HEAD is not a symbolic ref", errors.New("exit status 128"))

	if out, err := runner.Run("", "git", "rev-parse", "--git-dir"); out != ".git" || err != nil {
		t.Errorf("first = (%q, %v), want (.git, nil)", out, err)
	}

	_, err := runner.Run("", "git", "symbolic-ref", "--short", "HEAD")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("second err = %v, want *CommandError", err)
	}
	if cmdErr.Err.Error() != "exit status 128" {
		t.Errorf("explicit err replaced: %v", cmdErr.Err)
	}

	if out, err := runner.Run("", "git", "status"); out != "" || err != nil {
		t.Errorf("drained = (%q, %v), want empty", out, err)
	}
	if len(runner.Calls) != 3 {
		t.Errorf("Calls = %d, want 3", len(runner.Calls))
	}
}

func TestSequentialMockRunner_FeedsBranchLookup(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantErr error
	}{
		{"detached head", "fatal: ref HEAD is not a symbolic ref", ErrDetachedHead},
		{"outside a repo", "fatal: not a git repository (or any of the parent directories): .git", ErrNotGitRepo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewSequentialMockRunner()
			runner.AddOutputError("git", tt.output, nil)

			ctx := newMockContext(t, runner)
			_, err := ctx.CurrentBranch()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}

			var gitErr *Error
			if !errors.As(err, &gitErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if gitErr.Op != "get current branch" || gitErr.Output != tt.output {
				t.Errorf("Error = %+v", gitErr)
			}
			if runner.Calls[0].WorkDir != ctx.WorkDir() {
				t.Errorf("ran in %q, want %q", runner.Calls[0].WorkDir, ctx.WorkDir())
			}
		})
	}
}
