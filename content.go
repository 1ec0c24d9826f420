package twconfig

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ExcludedByGitIgnore is the MatchResult.ExcludedBy value for gitignored paths.
const ExcludedByGitIgnore = ".gitignore"

// MatchResult explains whether a path is covered by the content sources
type MatchResult struct {
	Path       string `json:"path"`
	Matched    bool   `json:"matched"`
	Pattern    string `json:"pattern,omitempty"`     // Positive pattern that matched, as configured
	ExcludedBy string `json:"excluded_by,omitempty"` // Negated pattern or ".gitignore"
}

type contentPattern struct {
	raw     string // as configured, e.g. "!./pages/**/*.test.tsx"
	glob    string // normalized, e.g. "pages/**/*.test.tsx"
	negated bool
	abs     bool
}

// Matcher decides which file paths the content globs cover.
type Matcher struct {
	positive  []contentPattern
	negative  []contentPattern
	baseDir   string // absolute, slash-separated; "" when unset
	gitIgnore *ignore.GitIgnore
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher) error

// WithBaseDir resolves relative patterns against dir. Relative paths given to
// Match are then taken from the working directory, like any file argument,
// and made relative to dir. Without it paths are compared as given.
func WithBaseDir(dir string) MatcherOption {
	return func(m *Matcher) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve base dir %q: %w", dir, err)
		}
		m.baseDir = filepath.ToSlash(abs)
		return nil
	}
}

// WithGitIgnore excludes paths matched by gi.
func WithGitIgnore(gi *ignore.GitIgnore) MatcherOption {
	return func(m *Matcher) error {
		m.gitIgnore = gi
		return nil
	}
}

// NewMatcher compiles content patterns. Patterns starting with '!' exclude.
func NewMatcher(patterns []string, opts ...MatcherOption) (*Matcher, error) {
	m := &Matcher{}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	for _, raw := range patterns {
		p := parseContentPattern(raw)
		if p.glob == "" {
			return nil, fmt.Errorf("content pattern %q is empty", raw)
		}
		if !doublestar.ValidatePattern(p.glob) {
			return nil, fmt.Errorf("invalid glob pattern %q", raw)
		}
		if p.negated {
			m.negative = append(m.negative, p)
		} else {
			m.positive = append(m.positive, p)
		}
	}

	return m, nil
}

// Matcher returns a Matcher for the record's content sources.
func (c *Config) Matcher(opts ...MatcherOption) (*Matcher, error) {
	return NewMatcher(c.content, opts...)
}

func parseContentPattern(raw string) contentPattern {
	p := contentPattern{raw: raw}
	glob := strings.TrimSpace(raw)
	if strings.HasPrefix(glob, "!") {
		p.negated = true
		glob = glob[1:]
	}
	// Backslashes are glob escapes, so only the "./" prefix is normalized.
	for strings.HasPrefix(glob, "./") {
		glob = glob[2:]
	}
	p.abs = strings.HasPrefix(glob, "/")
	p.glob = glob
	return p
}

// Match reports whether path is covered.
func (m *Matcher) Match(p string) bool {
	return m.MatchDetail(p).Matched
}

// MatchDetail reports whether path is covered and by which pattern.
func (m *Matcher) MatchDetail(p string) MatchResult {
	result := MatchResult{Path: p}
	rel, abs := m.candidates(p)

	for _, pat := range m.positive {
		if m.matches(pat, rel, abs) {
			result.Pattern = pat.raw
			break
		}
	}
	if result.Pattern == "" {
		return result
	}

	for _, pat := range m.negative {
		if m.matches(pat, rel, abs) {
			result.ExcludedBy = pat.raw
			return result
		}
	}

	if m.gitIgnore != nil && rel != "" && m.gitIgnore.MatchesPath(rel) {
		result.ExcludedBy = ExcludedByGitIgnore
		return result
	}

	result.Matched = true
	return result
}

func (m *Matcher) matches(pat contentPattern, rel, abs string) bool {
	name := rel
	if pat.abs {
		name = abs
	}
	if name == "" {
		return false
	}
	ok, err := doublestar.Match(pat.glob, name)
	return err == nil && ok
}

// candidates returns the base-relative and absolute slash forms of p.
// Either may be empty when it cannot be derived.
func (m *Matcher) candidates(p string) (rel, abs string) {
	// Normalize Windows separators so patterns written with '/' still apply
	p = strings.ReplaceAll(p, "\\", "/")

	if !path.IsAbs(p) && !filepath.IsAbs(p) {
		if m.baseDir == "" {
			return path.Clean(p), ""
		}
		wd, err := filepath.Abs(filepath.FromSlash(p))
		if err != nil {
			return path.Clean(p), path.Join(m.baseDir, p)
		}
		p = filepath.ToSlash(wd)
	}

	abs = path.Clean(p)
	if m.baseDir != "" {
		if r, err := filepath.Rel(m.baseDir, abs); err == nil {
			r = filepath.ToSlash(r)
			if r != ".." && !strings.HasPrefix(r, "../") {
				rel = r
			}
		}
	}
	return rel, abs
}
