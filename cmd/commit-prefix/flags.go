package main

import (
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/randalmurphal/commitprefix/config"
)

// settingFlags maps flag names to the config keys they override.
var settingFlags = map[string]string{
	"branch-is-user-prefixed": config.KeyUserPrefixed,
	"allow-main":              config.KeyAllowMain,
	"types":                   config.KeyTypes,
	"main-branches":           config.KeyMainBranches,
	"backend":                 config.KeyBackend,
	"verbose":                 config.KeyVerbose,
}

// addSettingFlags registers the flags that override configuration.
// Defaults are empty because unset flags defer to config files.
func addSettingFlags(fs *flag.FlagSet) {
	fs.Bool("branch-is-user-prefixed", false, "Branch names start with a user segment (user/type/TICKET-1)")
	fs.Bool("allow-main", false, "Leave the message unchanged on main branches instead of failing")
	fs.StringSlice("types", nil, "Allowed branch types (default feature,bugfix,hotfix,feat,docs,bug,fix,refactor,style,test)")
	fs.StringSlice("main-branches", nil, "Main branch names (default main,master)")
	fs.String("backend", "", "Branch lookup backend: cli or native (default cli)")
	fs.BoolP("verbose", "v", false, "Enable debug logging")
}

// changedSettings returns config overrides for the setting flags the user
// set explicitly.
func changedSettings(fs *flag.FlagSet) map[string]string {
	out := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		if key, ok := settingFlags[f.Name]; ok {
			out[key] = flagValue(f)
		}
	})
	return out
}

// changedSettingArgs renders the setting flags the user set as arguments,
// for baking into a hook shim.
func changedSettingArgs(fs *flag.FlagSet) []string {
	var args []string
	fs.Visit(func(f *flag.Flag) {
		if _, ok := settingFlags[f.Name]; ok && f.Name != "verbose" {
			args = append(args, "--"+f.Name+"="+flagValue(f))
		}
	})
	return args
}

func flagValue(f *flag.Flag) string {
	if sv, ok := f.Value.(flag.SliceValue); ok {
		return strings.Join(sv.GetSlice(), ",")
	}
	return f.Value.String()
}

// normalizeBoolArgs joins a long bool flag in fs with a following bool
// literal, so "--allow-main True" parses as "--allow-main=True" instead of
// taking True as the message file.
func normalizeBoolArgs(fs *flag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		name, ok := strings.CutPrefix(arg, "--")
		if ok && !strings.Contains(name, "=") && i+1 < len(args) {
			if f := fs.Lookup(name); f != nil && f.Value.Type() == "bool" {
				if _, err := strconv.ParseBool(args[i+1]); err == nil {
					out = append(out, arg+"="+args[i+1])
					i++
					continue
				}
			}
		}
		out = append(out, arg)
	}
	return out
}
