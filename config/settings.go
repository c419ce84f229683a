package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/commitprefix/branch"
)

// Branch lookup backends.
const (
	BackendCLI    = "cli"    // git executable
	BackendNative = "native" // go-git
)

// Settings is the typed form of a resolved configuration.
type Settings struct {
	Types        []string
	MainBranches []string
	UserPrefixed bool
	AllowMain    bool
	Backend      string
	SkipSources  []string
	Verbose      bool
	NoColor      bool
}

// Rules returns the branch rules the settings describe.
func (s Settings) Rules() branch.Rules {
	return branch.Rules{
		Types:        s.Types,
		MainBranches: s.MainBranches,
		UserPrefixed: s.UserPrefixed,
	}
}

// Load converts resolved values into Settings.
func Load(c *Resolved) (Settings, error) {
	var (
		s   Settings
		err error
	)

	s.Types = splitList(c.Get(KeyTypes))
	if len(s.Types) == 0 {
		return Settings{}, fmt.Errorf("%s: at least one branch type is required", KeyTypes)
	}
	s.MainBranches = splitList(c.Get(KeyMainBranches))
	s.SkipSources = splitList(c.Get(KeySkipSources))

	if s.UserPrefixed, err = parseBool(c, KeyUserPrefixed); err != nil {
		return Settings{}, err
	}
	if s.AllowMain, err = parseBool(c, KeyAllowMain); err != nil {
		return Settings{}, err
	}
	if s.Verbose, err = parseBool(c, KeyVerbose); err != nil {
		return Settings{}, err
	}
	if s.NoColor, err = parseBool(c, KeyNoColor); err != nil {
		return Settings{}, err
	}

	s.Backend = strings.ToLower(strings.TrimSpace(c.Get(KeyBackend)))
	switch s.Backend {
	case "":
		s.Backend = BackendCLI
	case BackendCLI, BackendNative:
	default:
		return Settings{}, fmt.Errorf("%s: unknown backend %q (from %s), want %s or %s",
			KeyBackend, s.Backend, c.Source(KeyBackend), BackendCLI, BackendNative)
	}

	return s, nil
}

func parseBool(c *Resolved, key string) (bool, error) {
	value, source := c.GetWithSource(key)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q (from %s)", key, value, source)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
