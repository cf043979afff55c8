package filter

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher matches slash-separated relative paths against a fixed set of glob
// patterns. Within a pattern, `*` stays inside one path segment and `**`
// crosses segments; matching is case-sensitive. A pattern without a separator
// also matches against the base name, so `*.py` covers nested sources.
//
// Patterns are compiled once at construction; an invalid pattern is a
// configuration error, not something to skip silently at match time.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
	hasSep   []bool

	// Directory forms: a pattern like `venv/*` also marks the `venv`
	// directory itself, so traversal can prune instead of descending and
	// rejecting file by file.
	dirGlobs  []glob.Glob
	dirHasSep []bool
}

// NewMatcher compiles the pattern set. A nil or empty set yields a matcher
// that matches nothing.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: patterns}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
		m.hasSep = append(m.hasSep, strings.Contains(pattern, "/"))

		dirPattern := strings.TrimSuffix(strings.TrimSuffix(pattern, "/**"), "/*")
		if dirPattern == pattern || dirPattern == "" {
			m.dirGlobs = append(m.dirGlobs, nil)
			m.dirHasSep = append(m.dirHasSep, false)
			continue
		}
		dg, err := glob.Compile(dirPattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		m.dirGlobs = append(m.dirGlobs, dg)
		m.dirHasSep = append(m.dirHasSep, strings.Contains(dirPattern, "/"))
	}

	return m, nil
}

// Empty reports whether the matcher holds no patterns.
func (m *Matcher) Empty() bool {
	return len(m.globs) == 0
}

// Patterns returns the original pattern set.
func (m *Matcher) Patterns() []string {
	return m.patterns
}

// MatchesFile reports whether the relative path matches any pattern.
func (m *Matcher) MatchesFile(rel string) bool {
	base := path.Base(rel)
	for i, g := range m.globs {
		if g.Match(rel) {
			return true
		}
		if !m.hasSep[i] && g.Match(base) {
			return true
		}
	}
	return false
}

// MatchesPath reports whether the relative path or any of its ancestor
// directories matches a pattern. Traversal normally prunes matched
// directories before their files are ever seen, but when include patterns
// suspend pruning the files inside still have to count as matched.
func (m *Matcher) MatchesPath(rel string) bool {
	if m.MatchesFile(rel) {
		return true
	}
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if m.MatchesDirPrefix(dir) {
			return true
		}
	}
	return false
}

// MatchesDirPrefix reports whether the relative directory path is itself
// covered by a pattern, meaning everything beneath it is matched and
// traversal may prune the whole subtree.
func (m *Matcher) MatchesDirPrefix(rel string) bool {
	if m.MatchesFile(rel) {
		return true
	}
	base := path.Base(rel)
	for i, dg := range m.dirGlobs {
		if dg == nil {
			continue
		}
		if dg.Match(rel) {
			return true
		}
		if !m.dirHasSep[i] && dg.Match(base) {
			return true
		}
	}
	return false
}
