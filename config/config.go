package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Configuration keys.
const (
	KeyTypes        = "types"
	KeyMainBranches = "main_branches"
	KeyUserPrefixed = "user_prefixed"
	KeyAllowMain    = "allow_main"
	KeyBackend      = "backend"
	KeySkipSources  = "skip_sources"
	KeyVerbose      = "verbose"
	KeyNoColor      = "no_color"
)

// File locations and environment prefix.
const (
	EnvPrefix        = "COMMIT_PREFIX_"
	GlobalConfigDir  = "commit-prefix"
	GlobalConfigFile = "config.yaml"
	LocalConfigName  = ".commit-prefix.yaml"
)

// Keys lists every key that may appear in a config file.
var Keys = []string{
	KeyTypes,
	KeyMainBranches,
	KeyUserPrefixed,
	KeyAllowMain,
	KeyBackend,
	KeySkipSources,
	KeyVerbose,
}

// Defaults returns the built-in value for every key.
func Defaults() map[string]string {
	return map[string]string{
		KeyTypes:        "feature,bugfix,hotfix,feat,docs,bug,fix,refactor,style,test",
		KeyMainBranches: "main,master",
		KeyUserPrefixed: "false",
		KeyAllowMain:    "false",
		KeyBackend:      BackendCLI,
		KeySkipSources:  "merge,squash",
		KeyVerbose:      "false",
	}
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// WorkDir is where git root detection starts. Defaults to ".".
	WorkDir string

	// GitRootFinder returns the repository root for a directory.
	// If nil, parent directories are searched for .git.
	GitRootFinder func(startDir string) (string, error)

	// Logger receives warnings about unreadable config files.
	Logger *zap.Logger
}

// Resolver merges configuration from defaults, the global file, the
// repository-local file and the environment.
type Resolver struct {
	logger     *zap.Logger
	globalPath string
	localPath  string
	gitRoot    string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver locates the global and local config files.
func NewResolver(opts ResolverOptions) *Resolver {
	r := &Resolver{logger: opts.Logger}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}

	var root string
	if opts.GitRootFinder != nil {
		if found, err := opts.GitRootFinder(workDir); err == nil {
			root = found
		}
	} else {
		root = findGitRoot(workDir)
	}
	if root != "" {
		r.gitRoot = root
		r.localPath = filepath.Join(root, LocalConfigName)
	}

	r.globalPath = GlobalPath()
	return r
}

// NewResolverWithPaths creates a resolver reading the given files.
// Either path may be empty to skip that layer.
func NewResolverWithPaths(globalPath, localPath string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		logger:     logger,
		globalPath: globalPath,
		localPath:  localPath,
	}
}

// GlobalPath returns ~/.config/commit-prefix/config.yaml, or "" when the
// home directory is unknown.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", GlobalConfigDir, GlobalConfigFile)
}

func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	r.logger.Warn(msg)
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Keys returns all configuration keys in sorted order.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > local > global > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for key, value := range Defaults() {
		cfg.set(key, value, SourceDefault)
	}
	r.applyFile(cfg, r.globalPath, SourceGlobal)
	r.applyFile(cfg, r.localPath, SourceLocal)
	applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves config and applies flag overrides on top.
// Keys absent from flags keep their resolved value.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()
	for key, value := range flags {
		cfg.set(key, value, SourceFlag)
	}
	return cfg
}

func (c *Resolved) set(key, value string, source Source) {
	c.values[key] = value
	c.sources[key] = source
}

func (r *Resolver) applyFile(cfg *Resolved, path string, source Source) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return // A missing file is not an error
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for key, value := range parsed {
		if !slices.Contains(Keys, key) {
			r.warn(fmt.Sprintf("unknown key %q in %s", key, path))
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.set(key, strVal, source)
		}
	}
}

func applyEnv(cfg *Resolved) {
	for _, key := range Keys {
		if value := os.Getenv(EnvKey(key)); value != "" {
			cfg.set(key, value, SourceEnv)
		}
	}

	// NO_COLOR is honored regardless of prefix
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.set(KeyNoColor, "true", SourceEnv)
	}
}

// EnvKey returns the environment variable consulted for key.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// GlobalPath returns the path to the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local config file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := toString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// findGitRoot finds the git root by looking for .git.
func findGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		// .git is a file in worktrees and submodules
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
