package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/randalmurphal/commitprefix/branch"
	clierrors "github.com/randalmurphal/commitprefix/errors"
	"github.com/randalmurphal/commitprefix/prefix"
)

func newRootCmd(a *app) *cobra.Command {
	var dryRun bool

	root := &cobra.Command{
		Use:   "commit-prefix [flags] <commit-msg-file> [source] [sha]",
		Short: "Prefix commit messages with type(context) from the branch name",
		Long: `commit-prefix is a git commit-msg hook. It reads the current branch,
checks it against <type>/<TICKET-123> and prepends "type(TICKET-123): " to
the commit message unless the message already starts with it.

Branches named main or master are rejected unless --allow-main is set.

Boolean flags take an optional value: --allow-main, --allow-main=true and
--allow-main true are equivalent, as are the forms of
--branch-is-user-prefixed.`,
		Example: `  commit-prefix .git/COMMIT_EDITMSG
  commit-prefix --branch-is-user-prefixed .git/COMMIT_EDITMSG
  commit-prefix install --hook prepare-commit-msg`,
		Args:              cobra.RangeArgs(1, 3),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			var source string
			if len(args) > 1 {
				source = args[1]
			}
			return a.runHook(cmd, args[0], source, dryRun)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	addSettingFlags(root.PersistentFlags())
	root.Flags().BoolVar(&dryRun, "dry-run", false, "Print a diff of the change instead of rewriting the file")

	root.AddCommand(
		newCheckCmd(a),
		newInstallCmd(a),
		newUninstallCmd(a),
		newStatusCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) runHook(cmd *cobra.Command, path, source string, dryRun bool) error {
	branches, err := a.branches()
	if err != nil {
		return err
	}

	rw := &prefix.Rewriter{
		Rules:       a.settings.Rules(),
		AllowMain:   a.settings.AllowMain,
		Branches:    branches,
		Logger:      a.logger,
		DryRun:      dryRun,
		Out:         cmd.OutOrStdout(),
		SkipSources: a.settings.SkipSources,
	}

	result, err := rw.ApplySource(path, source)
	if err != nil {
		return err
	}
	a.logger.Debug("hook finished",
		zap.String("action", string(result.Action)),
		zap.String("branch", result.Branch),
		zap.String("prefix", result.Prefix))
	return nil
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [branch]",
		Short: "Validate a branch name and print its commit prefix",
		Long: `Validate a branch name against the configured rules and print the
prefix commits on it would get. Without an argument the current branch is
checked. Exits non-zero for invalid names, which makes it usable in CI.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				branches, err := a.branches()
				if err != nil {
					return err
				}
				if name, err = branches.CurrentBranch(); err != nil {
					return clierrors.WrapGitError(err)
				}
			}
			return a.check(cmd, name)
		},
	}
}

func (a *app) check(cmd *cobra.Command, name string) error {
	rules := a.settings.Rules()
	out := cmd.OutOrStdout()

	if rules.IsMain(name) {
		if !a.settings.AllowMain {
			return clierrors.NewMainBranchError(name)
		}
		fmt.Fprintf(out, "%s: main branch, messages are left unchanged\n", name)
		return nil
	}

	if !rules.IsValid(name) {
		types := rules.Types
		if len(types) == 0 {
			types = branch.DefaultTypes
		}
		return clierrors.NewInvalidBranchError(name, types, rules.UserPrefixed)
	}

	fmt.Fprintln(out, rules.Prefix(name))
	return nil
}
