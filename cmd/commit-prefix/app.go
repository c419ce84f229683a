package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/randalmurphal/commitprefix/config"
	clierrors "github.com/randalmurphal/commitprefix/errors"
	"github.com/randalmurphal/commitprefix/git"
	"github.com/randalmurphal/commitprefix/prefix"
)

// app holds the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	workDir  string
	logger   *zap.Logger
	resolver *config.Resolver
	resolved *config.Resolved
	settings config.Settings

	newLogger    func(verbose bool) (*zap.Logger, error)
	openBranches func(backend, workDir string) (prefix.BranchSource, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:       stdout,
		stderr:       stderr,
		workDir:      ".",
		logger:       zap.NewNop(),
		newLogger:    newLogger,
		openBranches: openBranches,
	}
}

// newLogger builds the stderr logger: warnings only unless verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func openBranches(backend, workDir string) (prefix.BranchSource, error) {
	switch backend {
	case config.BackendNative:
		repo, err := git.OpenNative(workDir)
		if err != nil {
			return nil, clierrors.WrapGitError(err)
		}
		return repo, nil
	default:
		gitCtx, err := git.NewContext(workDir)
		if err != nil {
			return nil, clierrors.WrapGitError(err)
		}
		return gitCtx, nil
	}
}

// gitRootFinder locates the repository root for local config lookup.
func gitRootFinder(dir string) (string, error) {
	gitCtx, err := git.NewContext(dir)
	if err != nil {
		return "", err
	}
	return gitCtx.RepoRoot()
}

// resolve merges config sources with the flags set on cmd.
func (a *app) resolve(cmd *cobra.Command) {
	a.resolver = config.NewResolver(config.ResolverOptions{
		WorkDir:       a.workDir,
		GitRootFinder: gitRootFinder,
	})
	a.resolved = a.resolver.ResolveWithFlags(changedSettings(cmd.Flags()))
}

// setup resolves configuration and builds the logger. It is the
// PersistentPreRunE of every command that acts on a repository.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.resolve(cmd)

	settings, err := config.Load(a.resolved)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.settings = settings

	return a.initLogger(settings.Verbose)
}

func (a *app) initLogger(verbose bool) error {
	logger, err := a.newLogger(verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	for _, w := range a.resolver.Warnings {
		a.logger.Warn("config", zap.String("warning", w))
	}
	a.logger.Debug("configuration loaded",
		zap.String("backend", a.resolved.Get(config.KeyBackend)),
		zap.String("global", a.resolver.GlobalPath()),
		zap.String("local", a.resolver.LocalPath()))
	return nil
}

func (a *app) syncLogger() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) noColor() bool {
	if a.settings.NoColor {
		return true
	}
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// repoPather is implemented by both git backends.
type repoPather interface {
	RepoPath() string
}

func (a *app) branches() (prefix.BranchSource, error) {
	source, err := a.openBranches(a.settings.Backend, a.workDir)
	if err != nil {
		return nil, err
	}
	if r, ok := source.(repoPather); ok {
		a.logger.Debug("opened repository",
			zap.String("backend", a.settings.Backend),
			zap.String("path", r.RepoPath()))
	}
	return source, nil
}
