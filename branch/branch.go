package branch

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// DefaultTypes is the ordered allow-list of branch type tokens.
var DefaultTypes = []string{
	"feature",
	"bugfix",
	"hotfix",
	"feat",
	"docs",
	"bug",
	"fix",
	"refactor",
	"style",
	"test",
}

// DefaultMainBranches are the branch names treated as main branches.
var DefaultMainBranches = []string{"main", "master"}

// ticketPattern follows the type segment: uppercase letters, a hyphen, digits.
// Only ASCII letters and digits count.
const ticketPattern = `/[A-Z]+-[0-9]+`

// Parts holds the components of a branch name.
type Parts struct {
	User    string // Leading user segment, only set for user-prefixed names
	Type    string // Commit type segment (e.g., "feature")
	Context string // Remaining segments joined without separators
}

// Prefix formats the parts as "type(context)".
func (p Parts) Prefix() string {
	return p.Type + "(" + p.Context + ")"
}

// Rules configures validation and main branch detection.
type Rules struct {
	Types        []string // Allowed type tokens; DefaultTypes when empty
	MainBranches []string // Main branch names; DefaultMainBranches when empty
	UserPrefixed bool     // Branch names start with a user segment
}

// DefaultRules returns rules using the default allow-list and main branches.
func DefaultRules() Rules {
	return Rules{
		Types:        append([]string(nil), DefaultTypes...),
		MainBranches: append([]string(nil), DefaultMainBranches...),
	}
}

func (r Rules) types() []string {
	if len(r.Types) == 0 {
		return DefaultTypes
	}
	return r.Types
}

func (r Rules) mainBranches() []string {
	if len(r.MainBranches) == 0 {
		return DefaultMainBranches
	}
	return r.MainBranches
}

// IsValid reports whether name matches the configured allow-list and ticket pattern.
func (r Rules) IsValid(name string) bool {
	return compile(r.types(), r.UserPrefixed).MatchString(name)
}

// IsMain reports whether name is one of the configured main branches.
// The comparison is case-insensitive.
func (r Rules) IsMain(name string) bool {
	return isOneOf(name, r.mainBranches())
}

// Parse splits name according to the user-prefix setting.
func (r Rules) Parse(name string) Parts {
	return Parse(name, r.UserPrefixed)
}

// Prefix returns "type(context)" for name.
func (r Rules) Prefix(name string) string {
	return Prefix(name, r.UserPrefixed)
}

// IsValid reports whether name matches the default allow-list followed by a
// ticket reference. When userPrefixed is true a single leading user segment is
// required. The match is anchored at the start only, so anything after the
// ticket digits is accepted.
func IsValid(name string, userPrefixed bool) bool {
	return compile(DefaultTypes, userPrefixed).MatchString(name)
}

// Type returns the commit type segment: index 0, or 1 when user-prefixed.
// It does not validate; callers check IsValid first.
func Type(name string, userPrefixed bool) string {
	segments := strings.Split(name, "/")
	i := typeIndex(userPrefixed)
	if i >= len(segments) {
		return ""
	}
	return segments[i]
}

// Context returns every segment after the type joined without separators.
// Example: "feature/ABC-123/login" -> "ABC-123login"
func Context(name string, userPrefixed bool) string {
	segments := strings.Split(name, "/")
	i := typeIndex(userPrefixed) + 1
	if i >= len(segments) {
		return ""
	}
	return strings.Join(segments[i:], "")
}

// Parse extracts the user, type and context of name.
func Parse(name string, userPrefixed bool) Parts {
	parts := Parts{
		Type:    Type(name, userPrefixed),
		Context: Context(name, userPrefixed),
	}
	if userPrefixed {
		parts.User, _, _ = strings.Cut(name, "/")
	}
	return parts
}

// Prefix returns "type(context)" for name.
func Prefix(name string, userPrefixed bool) string {
	return Parse(name, userPrefixed).Prefix()
}

// IsMain reports whether name is "main" or "master", ignoring case.
func IsMain(name string) bool {
	return isOneOf(name, DefaultMainBranches)
}

func typeIndex(userPrefixed bool) int {
	if userPrefixed {
		return 1
	}
	return 0
}

func isOneOf(name string, candidates []string) bool {
	// Casers are stateful, so each call gets its own.
	folder := cases.Fold()
	folded := folder.String(name)
	for _, c := range candidates {
		if folder.String(c) == folded {
			return true
		}
	}
	return false
}

// Pattern returns the regular expression source used to validate names.
func Pattern(types []string, userPrefixed bool) string {
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = regexp.QuoteMeta(t)
	}

	var b strings.Builder
	b.WriteString("^")
	if userPrefixed {
		b.WriteString("[^/]+/")
	}
	b.WriteString("(?:")
	b.WriteString(strings.Join(quoted, "|"))
	b.WriteString(")")
	b.WriteString(ticketPattern)
	return b.String()
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func compile(types []string, userPrefixed bool) *regexp.Regexp {
	src := Pattern(types, userPrefixed)

	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := patternCache[src]; ok {
		return re
	}
	re := regexp.MustCompile(src)
	patternCache[src] = re
	return re
}
