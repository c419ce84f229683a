// Package config resolves commit-prefix settings from layered sources.
//
// Precedence, highest first:
//  1. Command-line flags (ResolveWithFlags)
//  2. Environment variables (COMMIT_PREFIX_TYPES, COMMIT_PREFIX_ALLOW_MAIN, ...)
//  3. Local config (.commit-prefix.yaml in the git root)
//  4. Global config (~/.config/commit-prefix/config.yaml)
//  5. Built-in defaults
//
// # Basic Usage
//
//	resolver := config.NewResolver(config.ResolverOptions{})
//	resolved := resolver.Resolve()
//	settings, err := config.Load(resolved)
//	if err != nil {
//	    return err
//	}
//	rules := settings.Rules()
//
// # Config Files
//
// Both files are YAML. List values may be written as sequences or as
// comma-separated strings:
//
//	types: [feature, fix, chore]
//	main_branches: main,trunk
//	user_prefixed: true
//
// # Config Sources
//
// Each resolved value tracks where it came from:
//   - "default": Built-in default value
//   - "global": ~/.config/commit-prefix/config.yaml
//   - "local": .commit-prefix.yaml in git root
//   - "env": Environment variable
//   - "flag": Command-line flag
package config
