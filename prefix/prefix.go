package prefix

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/randalmurphal/commitprefix/branch"
	clierrors "github.com/randalmurphal/commitprefix/errors"
)

// BranchSource reports the branch currently checked out.
type BranchSource interface {
	CurrentBranch() (string, error)
}

// Action describes what Apply did to the message file.
type Action string

// Apply outcomes.
const (
	ActionRewritten       Action = "rewritten"
	ActionAlreadyPrefixed Action = "already-prefixed"
	ActionSkippedMain     Action = "skipped-main"
	ActionSkippedSource   Action = "skipped-source"
	ActionDryRun          Action = "dry-run"
)

// DefaultSkipSources are prepare-commit-msg sources whose messages are left alone.
var DefaultSkipSources = []string{"merge", "squash"}

// Result describes a single Apply run.
type Result struct {
	Branch string // Branch name the prefix was derived from
	Prefix string // "type(context)", empty when skipped
	Action Action
}

// Rewriter prepends branch-derived prefixes to commit message files.
type Rewriter struct {
	Rules       branch.Rules
	AllowMain   bool         // Skip main branches instead of failing
	Branches    BranchSource // Where the current branch comes from
	Logger      *zap.Logger
	DryRun      bool      // Write a diff to Out instead of changing the file
	Out         io.Writer // Dry-run output; os.Stdout when nil
	SkipSources []string  // prepare-commit-msg sources to ignore
}

// Apply rewrites the message file at path for the current branch.
func (r *Rewriter) Apply(path string) (Result, error) {
	return r.ApplySource(path, "")
}

// ApplySource is Apply for prepare-commit-msg, where git passes the message
// source ("message", "template", "merge", "squash", "commit") after the path.
func (r *Rewriter) ApplySource(path, source string) (Result, error) {
	log := r.logger().With(zap.String("path", path))

	if source != "" && slices.Contains(r.SkipSources, source) {
		log.Debug("skipping message source", zap.String("source", source))
		return Result{Action: ActionSkippedSource}, nil
	}

	if r.Branches == nil {
		return Result{}, fmt.Errorf("no branch source configured")
	}
	name, err := r.Branches.CurrentBranch()
	if err != nil {
		return Result{}, clierrors.WrapGitError(err)
	}
	log = log.With(zap.String("branch", name))

	if r.Rules.IsMain(name) {
		if !r.AllowMain {
			return Result{Branch: name}, clierrors.NewMainBranchError(name)
		}
		log.Debug("main branch allowed, leaving message unchanged")
		return Result{Branch: name, Action: ActionSkippedMain}, nil
	}

	if !r.Rules.IsValid(name) {
		return Result{Branch: name}, clierrors.NewInvalidBranchError(name, r.types(), r.Rules.UserPrefixed)
	}

	prefix := r.Rules.Prefix(name)
	log = log.With(zap.String("prefix", prefix))

	content, mode, err := readMessage(path)
	if err != nil {
		return Result{}, err
	}

	updated, changed := Rewrite(content, prefix)
	result := Result{Branch: name, Prefix: prefix, Action: ActionAlreadyPrefixed}
	if !changed {
		log.Debug("message already prefixed")
		return result, nil
	}

	if r.DryRun {
		if err := writeDiff(r.out(), path, content, updated); err != nil {
			return Result{}, err
		}
		result.Action = ActionDryRun
		log.Debug("dry run, message not written")
		return result, nil
	}

	if err := os.WriteFile(path, []byte(updated), mode); err != nil {
		return Result{}, fmt.Errorf("write commit message: %w", err)
	}
	result.Action = ActionRewritten
	log.Info("prefixed commit message")
	return result, nil
}

// ApplyFile validates branchName and prepends its prefix to the message file
// at path. Main branches are not exempt: they fail validation like any other
// name that does not match the default allow-list.
func ApplyFile(path, branchName string, userPrefixed bool) error {
	if !branch.IsValid(branchName, userPrefixed) {
		return clierrors.NewInvalidBranchError(branchName, branch.DefaultTypes, userPrefixed)
	}

	content, mode, err := readMessage(path)
	if err != nil {
		return err
	}

	updated, changed := Rewrite(content, branch.Prefix(branchName, userPrefixed))
	if !changed {
		return nil
	}
	if err := os.WriteFile(path, []byte(updated), mode); err != nil {
		return fmt.Errorf("write commit message: %w", err)
	}
	return nil
}

// Rewrite returns content with "prefix: " prepended. When content already
// starts with prefix it is returned unchanged and changed is false.
func Rewrite(content, prefix string) (updated string, changed bool) {
	if strings.HasPrefix(content, prefix) {
		return content, false
	}
	return prefix + ": " + content, true
}

func (r *Rewriter) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Rewriter) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Rewriter) types() []string {
	if len(r.Rules.Types) == 0 {
		return branch.DefaultTypes
	}
	return r.Rules.Types
}

func readMessage(path string) (string, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("stat commit message: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("read commit message: %w", err)
	}
	return string(data), info.Mode().Perm(), nil
}

func writeDiff(w io.Writer, path, before, after string) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (prefixed)",
		Context:  3,
	}
	if err := difflib.WriteUnifiedDiff(w, diff); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return nil
}
