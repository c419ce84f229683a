package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/commitprefix/git"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to customize wording for your hook setup.
type ErrorMessenger interface {
	// InvalidBranchMessage returns the message and suggestion for a branch name
	// that fails validation. types is the allow-list that was applied.
	InvalidBranchMessage(branch string, types []string, userPrefixed bool) (message, suggestion string)

	// MainBranchMessage returns the message and suggestion for commits on a main branch.
	MainBranchMessage(branch string) (message, suggestion string)

	// NotInGitRepoMessage returns the message and suggestion for git repo errors.
	NotInGitRepoMessage() (message, suggestion string)

	// DetachedHeadMessage returns the message and suggestion for a detached HEAD.
	DetachedHeadMessage() (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) InvalidBranchMessage(branch string, types []string, userPrefixed bool) (string, string) {
	example := "feature/ABC-123"
	if userPrefixed {
		example = "jdoe/feature/ABC-123"
	}
	return fmt.Sprintf("Branch name '%s' is invalid.", branch),
		fmt.Sprintf("Rename the branch to match <type>/<TICKET-123>, e.g. %s\nAllowed types: %s",
			example, strings.Join(types, ", "))
}

func (m DefaultMessenger) MainBranchMessage(branch string) (string, string) {
	return fmt.Sprintf("Cannot commit to main branch '%s'.", branch),
		"Create a feature branch, or pass --allow-main to commit without a prefix."
}

func (m DefaultMessenger) NotInGitRepoMessage() (string, string) {
	return "This command must be run from within a git repository.",
		"Run it from a git working tree, usually through a commit-msg hook."
}

func (m DefaultMessenger) DetachedHeadMessage() (string, string) {
	return "HEAD is not on a branch.",
		"Check out a branch before committing: git switch <branch>"
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// NewInvalidBranchError creates an error for a branch that fails validation.
func NewInvalidBranchError(branch string, types []string, userPrefixed bool, opts ...Option) error {
	msg, suggestion := getMessenger(opts).InvalidBranchMessage(branch, types, userPrefixed)
	return &CLIError{
		Err:        ErrInvalidBranch,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewMainBranchError creates an error for a commit on a main branch.
func NewMainBranchError(branch string, opts ...Option) error {
	msg, suggestion := getMessenger(opts).MainBranchMessage(branch)
	return &CLIError{
		Err:        ErrMainBranch,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewNotInGitRepoError creates an error for commands that require a git repository.
func NewNotInGitRepoError(opts ...Option) error {
	msg, suggestion := getMessenger(opts).NotInGitRepoMessage()
	return &CLIError{
		Err:        ErrNotInGitRepo,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewDetachedHeadError creates an error for a HEAD that is not on a branch.
func NewDetachedHeadError(opts ...Option) error {
	msg, suggestion := getMessenger(opts).DetachedHeadMessage()
	return &CLIError{
		Err:        ErrDetachedHead,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// WrapGitError converts errors from the git package into CLI errors.
// Errors it does not recognize are returned unchanged.
func WrapGitError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	switch {
	case errors.Is(err, git.ErrNotGitRepo):
		wrapped := NewNotInGitRepoError(opts...).(*CLIError)
		wrapped.Details = err.Error()
		return wrapped
	case errors.Is(err, git.ErrDetachedHead):
		return NewDetachedHeadError(opts...)
	}

	return err
}
