// Package pathmatch matches slash separated relative paths against fragment file and ignore patterns.
package pathmatch

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher is a compiled, ordered list of glob patterns.
// Patterns prefixed with "!" negate an earlier match; the last matching pattern decides.
type Matcher struct {
	patterns []compiled
}

type compiled struct {
	source string
	negate bool
	g      glob.Glob
}

// Compile compiles patterns in order. An empty list yields a matcher that matches nothing.
func Compile(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]compiled, 0, len(patterns))}

	for _, p := range patterns {
		negate := strings.HasPrefix(p, "!")
		normalized := Normalize(strings.TrimPrefix(p, "!"))
		if normalized == "" {
			return nil, fmt.Errorf("pattern %q is empty", p)
		}

		g, err := glob.Compile(normalized, '/')
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, compiled{source: p, negate: negate, g: g})
	}

	return m, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
func MustCompile(patterns ...string) *Matcher {
	m, err := Compile(patterns)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}

// Match reports whether p is selected by the patterns.
func (m *Matcher) Match(p string) bool {
	if m == nil {
		return false
	}

	target := NormalizePath(p)
	matched := false
	for _, c := range m.patterns {
		if c.g.Match(target) {
			matched = !c.negate
		}
	}
	return matched
}

// Normalize rewrites a pattern into the form handed to the glob compiler.
// A trailing slash selects everything below a directory, so "node_modules/" becomes "node_modules/**".
func Normalize(pattern string) string {
	p := strings.TrimSpace(filepath.ToSlash(pattern))
	p = strings.TrimPrefix(p, "./")
	if p == "" {
		return ""
	}
	if strings.HasSuffix(p, "/") {
		p += "**"
	}
	return p
}

// NormalizePath cleans a file path into the slash separated, relative form patterns are matched against.
func NormalizePath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "./")
	return strings.TrimPrefix(p, "/")
}
