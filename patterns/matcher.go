package patterns

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// Matcher decides which files belong in the watch set, based on include and
// ignore glob patterns.
type Matcher struct {
	includePatterns []glob.Glob
	ignorePatterns  []glob.Glob
	mu              sync.RWMutex
}

// NewMatcher creates a new pattern matcher
func NewMatcher() *Matcher {
	return &Matcher{
		includePatterns: make([]glob.Glob, 0),
		ignorePatterns:  make([]glob.Glob, 0),
	}
}

// SetIncludePatterns sets the include patterns. Blank lines and lines
// starting with '#' are skipped.
func (m *Matcher) SetIncludePatterns(patterns []string) error {
	compiled, err := compile(patterns)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.includePatterns = compiled
	return nil
}

// SetIgnorePatterns sets the ignore patterns
func (m *Matcher) SetIgnorePatterns(patterns []string) error {
	compiled, err := compile(patterns)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ignorePatterns = compiled
	return nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}

		// Normalize pattern: use forward slashes
		pattern = filepath.ToSlash(pattern)

		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// IsIgnored checks if a path matches any ignore pattern
func (m *Matcher) IsIgnored(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	normalized := filepath.ToSlash(path)

	for _, pattern := range m.ignorePatterns {
		if pattern.Match(normalized) {
			return true
		}
		// Also check just the filename
		if pattern.Match(filepath.Base(normalized)) {
			return true
		}
	}

	return false
}

// Matches reports whether a path belongs in the watch set. Ignore patterns
// win over include patterns. With no include patterns defined, nothing
// matches.
func (m *Matcher) Matches(path string) bool {
	if m.IsIgnored(path) {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.includePatterns) == 0 {
		return false
	}

	normalized := filepath.ToSlash(path)

	for _, pattern := range m.includePatterns {
		if pattern.Match(normalized) {
			return true
		}
		if pattern.Match(filepath.Base(normalized)) {
			return true
		}
	}

	return false
}
