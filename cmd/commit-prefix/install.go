package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	clierrors "github.com/randalmurphal/commitprefix/errors"
	"github.com/randalmurphal/commitprefix/git"
	"github.com/randalmurphal/commitprefix/hooks"
)

func (a *app) installer() (*hooks.Installer, error) {
	gitCtx, err := git.NewContext(a.workDir)
	if err != nil {
		return nil, clierrors.WrapGitError(err)
	}
	inst, err := hooks.ForRepo(gitCtx)
	if err != nil {
		return nil, clierrors.WrapGitError(err)
	}
	inst.Logger = a.logger
	a.logger.Debug("hooks directory",
		zap.String("repo", gitCtx.RepoPath()),
		zap.String("dir", inst.Dir))
	return inst, nil
}

func newInstallCmd(a *app) *cobra.Command {
	var (
		hookName string
		command  string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the commit-prefix hook into this repository",
		Long: `Write a commit-prefix section into .git/hooks/commit-msg (or the hook
named by --hook). Setting flags given to install, such as
--branch-is-user-prefixed, are baked into the hook.

An existing hook that was not written by commit-prefix is left alone
unless --force is given, in which case the section is appended to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hook, err := hooks.ParseHook(hookName)
			if err != nil {
				return err
			}
			inst, err := a.installer()
			if err != nil {
				return err
			}
			inst.Command = command
			inst.Args = changedSettingArgs(cmd.Flags())
			inst.Force = force

			if err := inst.Install(hook); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s hook at %s\n", hook, inst.Path(hook))
			return nil
		},
	}

	cmd.Flags().StringVar(&hookName, "hook", string(hooks.CommitMsg), "Hook to install into: commit-msg or prepare-commit-msg")
	cmd.Flags().StringVar(&command, "command", "commit-prefix", "Executable the hook runs")
	cmd.Flags().BoolVar(&force, "force", false, "Add to an existing hook not written by commit-prefix")
	return cmd
}

func newUninstallCmd(a *app) *cobra.Command {
	var hookName string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the commit-prefix hook from this repository",
		Long: `Remove the commit-prefix section from every supported hook, or only
from the hook named by --hook. Other content in the hook scripts is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets := hooks.All
			if cmd.Flags().Changed("hook") {
				hook, err := hooks.ParseHook(hookName)
				if err != nil {
					return err
				}
				targets = []hooks.Hook{hook}
			}

			inst, err := a.installer()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			removed := 0
			for _, hook := range targets {
				ok, err := inst.Uninstall(hook)
				if err != nil {
					return err
				}
				if ok {
					removed++
					fmt.Fprintf(out, "Removed %s hook\n", hook)
				}
			}
			if removed == 0 {
				fmt.Fprintln(out, "No commit-prefix hooks installed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&hookName, "hook", string(hooks.CommitMsg), "Hook to remove from")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which hooks run commit-prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inst, err := a.installer()
			if err != nil {
				return err
			}
			statuses, err := inst.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, st := range statuses {
				fmt.Fprintf(out, "%-20s %s\n", st.Hook, describeStatus(st))
			}
			return nil
		},
	}
}

func describeStatus(st hooks.Status) string {
	switch {
	case !st.Exists:
		return "not installed"
	case !st.Installed:
		return "not installed (other hook present)"
	case !st.Executable:
		return "installed, not executable"
	default:
		return "installed"
	}
}
