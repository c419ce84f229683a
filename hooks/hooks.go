package hooks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/randalmurphal/commitprefix/git"
)

// Hook names a git hook the shim can be installed into.
type Hook string

// Supported hooks.
const (
	CommitMsg        Hook = "commit-msg"
	PrepareCommitMsg Hook = "prepare-commit-msg"
)

// All lists every supported hook.
var All = []Hook{CommitMsg, PrepareCommitMsg}

// ParseHook validates a hook name.
func ParseHook(name string) (Hook, error) {
	for _, h := range All {
		if string(h) == name {
			return h, nil
		}
	}
	return "", fmt.Errorf("unsupported hook %q (want %s or %s)", name, CommitMsg, PrepareCommitMsg)
}

// ErrForeignHook is returned when a hook script exists that was not written
// by the installer and Force is not set.
var ErrForeignHook = errors.New("hook exists and is not managed by commit-prefix")

const (
	sectionBegin = "# --- BEGIN COMMIT-PREFIX ---"
	sectionEnd   = "# --- END COMMIT-PREFIX ---"
	shebang      = "#!/bin/sh\n"
)

// Installer manages the commit-prefix section of hook scripts in a hooks
// directory. Content outside the marked section is preserved.
type Installer struct {
	Dir     string   // Hooks directory, usually .git/hooks
	Command string   // Executable the shim runs; "commit-prefix" when empty
	Args    []string // Flags baked into the shim, e.g. --branch-is-user-prefixed
	Force   bool     // Add the section to hooks that were not written by us
	Logger  *zap.Logger
}

// ForRepo returns an installer for the repository's hooks directory.
func ForRepo(gitCtx *git.Context) (*Installer, error) {
	dir, err := gitCtx.HooksDir()
	if err != nil {
		return nil, err
	}
	return &Installer{Dir: dir}, nil
}

// Path returns the script path for hook.
func (i *Installer) Path(hook Hook) string {
	return filepath.Join(i.Dir, string(hook))
}

// Install writes the shim section into hook, creating the script if needed.
// Reinstalling replaces the existing section.
func (i *Installer) Install(hook Hook) error {
	path := i.Path(hook)
	log := i.logger().With(zap.String("hook", string(hook)), zap.String("path", path))

	if err := os.MkdirAll(i.Dir, 0o755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", hook, err)
	}

	section := i.section()
	var content string
	switch {
	case os.IsNotExist(err):
		content = shebang + section
	case hasSection(string(existing)):
		content = injectSection(string(existing), section)
	case i.Force:
		content = injectSection(string(existing), section)
	default:
		return fmt.Errorf("%s: %w (use --force to add to it)", path, ErrForeignHook)
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	if err := writeExecutable(path, content); err != nil {
		return fmt.Errorf("write %s: %w", hook, err)
	}
	log.Info("installed hook")
	return nil
}

// Uninstall removes the shim section from hook. A script left with nothing
// but a shebang is deleted. Hooks without the section are left alone.
func (i *Installer) Uninstall(hook Hook) (bool, error) {
	path := i.Path(hook)

	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", hook, err)
	}

	content, found := removeSection(string(existing))
	if !found {
		return false, nil
	}

	remaining := strings.TrimSpace(content)
	if remaining == "" || remaining == strings.TrimSpace(shebang) || remaining == "#!/usr/bin/env sh" {
		if err := os.Remove(path); err != nil {
			return false, fmt.Errorf("remove %s: %w", hook, err)
		}
	} else if err := writeExecutable(path, content); err != nil {
		return false, fmt.Errorf("write %s: %w", hook, err)
	}

	i.logger().Info("uninstalled hook", zap.String("hook", string(hook)), zap.String("path", path))
	return true, nil
}

// Status describes one hook script.
type Status struct {
	Hook       Hook
	Path       string
	Exists     bool
	Installed  bool // Contains the commit-prefix section
	Executable bool
}

// Status reports the state of every supported hook.
func (i *Installer) Status() ([]Status, error) {
	statuses := make([]Status, 0, len(All))
	for _, hook := range All {
		st := Status{Hook: hook, Path: i.Path(hook)}

		info, err := os.Stat(st.Path)
		switch {
		case os.IsNotExist(err):
			statuses = append(statuses, st)
			continue
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", hook, err)
		}
		st.Exists = true
		st.Executable = info.Mode().Perm()&0o111 != 0

		data, err := os.ReadFile(st.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", hook, err)
		}
		st.Installed = hasSection(string(data))
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func (i *Installer) logger() *zap.Logger {
	if i.Logger == nil {
		return zap.NewNop()
	}
	return i.Logger
}

func (i *Installer) section() string {
	command := i.Command
	if command == "" {
		command = "commit-prefix"
	}

	words := []string{shellQuote(command)}
	for _, arg := range i.Args {
		words = append(words, shellQuote(arg))
	}

	return sectionBegin + "\n" +
		"# Managed by commit-prefix. Do not edit between these markers.\n" +
		strings.Join(words, " ") + " \"$@\" || exit $?\n" +
		sectionEnd + "\n"
}

func writeExecutable(path, content string) error {
	// #nosec G306 -- git only runs executable hooks
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0o755)
}

func hasSection(content string) bool {
	begin := strings.Index(content, sectionBegin)
	end := strings.Index(content, sectionEnd)
	return begin != -1 && end != -1 && begin < end
}

// injectSection replaces the marked section, or appends one when absent.
func injectSection(existing, section string) string {
	if hasSection(existing) {
		start, end := sectionBounds(existing)
		return existing[:start] + section + existing[end:]
	}

	result := existing
	if result != "" && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result + "\n" + section
}

// removeSection strips the marked section and the blank line before it.
func removeSection(content string) (string, bool) {
	if !hasSection(content) {
		return content, false
	}

	start, end := sectionBounds(content)
	if start >= 2 && content[start-1] == '\n' && content[start-2] == '\n' {
		start--
	}
	return content[:start] + content[end:], true
}

// sectionBounds returns the byte range of the marker lines, from the start
// of the begin line through the newline after the end line.
func sectionBounds(content string) (start, end int) {
	begin := strings.Index(content, sectionBegin)
	start = strings.LastIndex(content[:begin], "\n") + 1

	end = strings.Index(content, sectionEnd) + len(sectionEnd)
	if end < len(content) && content[end] == '\n' {
		end++
	}
	return start, end
}

func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
			strings.ContainsRune("-_./=:,@", r))
	}) == -1 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
