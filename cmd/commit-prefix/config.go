package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/commitprefix/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write commit-prefix settings",
		Long: `Read and write commit-prefix settings.

Settings are read from, in increasing priority:
  defaults
  ~/.config/commit-prefix/config.yaml   (config set --global, config unset --global)
  .commit-prefix.yaml in the git root   (config set, config unset)
  COMMIT_PREFIX_* environment variables
  command-line flags

Keys: ` + strings.Join(config.Keys, ", "),
		// Unlike the other commands, config must work while the settings
		// are invalid so they can be fixed.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.resolve(cmd)
			verbose, _ := strconv.ParseBool(a.resolved.Get(config.KeyVerbose))
			return a.initLogger(verbose)
		},
	}

	cmd.AddCommand(
		newConfigGetCmd(a),
		newConfigSetCmd(a),
		newConfigUnsetCmd(a),
		newConfigListCmd(a),
	)
	return cmd
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting and where it came from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !slices.Contains(config.Keys, key) {
				return fmt.Errorf("unknown config key: %s\n\nValid keys: %s", key, strings.Join(config.Keys, ", "))
			}
			value, source := a.resolved.GetWithSource(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", value, source)
			return nil
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a setting to the repository or global config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			var (
				path string
				err  error
			)
			if global {
				path = a.resolver.GlobalPath()
				err = config.SaveGlobal(key, value)
			} else {
				path = a.resolver.LocalPath()
				err = config.SaveLocal(a.resolver.GitRoot(), key, value)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Write to ~/.config/commit-prefix/config.yaml")
	return cmd
}

func newConfigUnsetCmd(a *app) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting from the repository or global config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var (
				path string
				err  error
			)
			if global {
				path = a.resolver.GlobalPath()
				err = config.DeleteGlobalKey(key)
			} else {
				path = a.resolver.LocalPath()
				err = config.DeleteLocalKey(a.resolver.GitRoot(), key)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unset %s in %s\n", key, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Remove from ~/.config/commit-prefix/config.yaml")
	return cmd
}

func newConfigListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every setting with its source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			values := a.resolved.All()
			for _, key := range a.resolved.Keys() {
				fmt.Fprintf(out, "%-14s %-40s %s\n", key, values[key], a.resolved.Source(key))
			}
			return nil
		},
	}
}
