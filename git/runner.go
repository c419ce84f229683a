package git

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// CommandRunner executes external commands.
type CommandRunner interface {
	// Run executes name with args in workDir and returns trimmed stdout.
	Run(workDir, name string, args ...string) (string, error)
}

// CommandError describes a command that exited unsuccessfully.
type CommandError struct {
	Command string
	Args    []string
	Output  string // Trimmed stderr, or stdout when stderr was empty
	Err     error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "command failed"
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner that executes real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner. Commands run under LC_ALL=C so error text
// stays matchable regardless of the user's locale.
func (r *ExecRunner) Run(workDir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		return "", &CommandError{
			Command: name,
			Args:    args,
			Output:  output,
			Err:     err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// =============================================================================
// Mocks
// =============================================================================

// MockResponse is a canned result for a mocked command.
type MockResponse struct {
	Stdout string
	Err    error
}

// MockCall records one invocation of a mock runner.
type MockCall struct {
	WorkDir string
	Command string
	Args    []string
}

// MockRunner returns canned responses keyed by command line.
//
// Lookup order: exact "name arg1 arg2", then "name", then the wildcard set by
// OnAnyCommand, then DefaultResponse.
type MockRunner struct {
	mu              sync.Mutex
	Responses       map[string]MockResponse
	DefaultResponse MockResponse
	Calls           []MockCall
}

// NewMockRunner creates an empty mock runner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Responses: make(map[string]MockResponse),
	}
}

// MockExpectation registers the response for a command.
type MockExpectation struct {
	runner *MockRunner
	key    string
}

// OnCommand starts an expectation for name with exactly args.
func (m *MockRunner) OnCommand(name string, args ...string) *MockExpectation {
	return &MockExpectation{runner: m, key: commandKey(name, args)}
}

// OnAnyCommand starts an expectation matching every command.
func (m *MockRunner) OnAnyCommand() *MockExpectation {
	return &MockExpectation{runner: m, key: wildcardKey}
}

// Return sets the response for the expectation.
func (e *MockExpectation) Return(stdout string, err error) *MockRunner {
	e.runner.mu.Lock()
	defer e.runner.mu.Unlock()
	e.runner.Responses[e.key] = MockResponse{Stdout: stdout, Err: err}
	return e.runner
}

// Run implements CommandRunner.
func (m *MockRunner) Run(workDir, name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{WorkDir: workDir, Command: name, Args: args})

	for _, key := range []string{commandKey(name, args), name, wildcardKey} {
		if resp, ok := m.Responses[key]; ok {
			return resp.Stdout, resp.Err
		}
	}
	return m.DefaultResponse.Stdout, m.DefaultResponse.Err
}

const wildcardKey = "*"

func commandKey(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// SequentialMockRunner returns queued responses in call order.
// Calls beyond the queue return empty output and no error.
type SequentialMockRunner struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
}

// NewSequentialMockRunner creates an empty sequential runner.
func NewSequentialMockRunner() *SequentialMockRunner {
	return &SequentialMockRunner{}
}

// AddOutput queues a response.
func (m *SequentialMockRunner) AddOutput(stdout string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, MockResponse{Stdout: stdout, Err: err})
}

// AddOutputError queues a failed command whose captured output is output.
// If err is nil a generic exit error is used.
func (m *SequentialMockRunner) AddOutputError(command, output string, err error) {
	if err == nil {
		err = errors.New("exit status 1")
	}
	m.AddOutput("", &CommandError{Command: command, Output: output, Err: err})
}

// Run implements CommandRunner.
func (m *SequentialMockRunner) Run(workDir, name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{WorkDir: workDir, Command: name, Args: args})

	if len(m.responses) == 0 {
		return "", nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Stdout, resp.Err
}
