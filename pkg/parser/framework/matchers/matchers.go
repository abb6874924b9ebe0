// Package matchers provides reusable detection rules for framework definitions.
package matchers

import (
	"context"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/specvital/splitter/pkg/parser/framework"
)

// ImportMatcher matches import paths exactly, or by prefix when the pattern ends with "/".
type ImportMatcher struct {
	patterns []string
	negative bool
}

// NewImportMatcher creates a matcher that reports positive import evidence.
func NewImportMatcher(patterns ...string) *ImportMatcher {
	return &ImportMatcher{patterns: patterns}
}

// NewNegativeImportMatcher creates a matcher whose hits rule the framework out.
func NewNegativeImportMatcher(patterns ...string) *ImportMatcher {
	return &ImportMatcher{patterns: patterns, negative: true}
}

func (m *ImportMatcher) Match(_ context.Context, signal framework.Signal) framework.MatchResult {
	if signal.Type != framework.SignalImport {
		return framework.NoMatch()
	}

	for _, pattern := range m.patterns {
		if signal.Value == pattern || (strings.HasSuffix(pattern, "/") && strings.HasPrefix(signal.Value, pattern)) {
			if m.negative {
				return framework.NegativeMatch("Imports conflicting module: " + signal.Value)
			}
			return framework.DefiniteMatch("Imports " + signal.Value)
		}
	}

	return framework.NoMatch()
}

// ContentPattern is a content regular expression with a readable description.
type ContentPattern struct {
	Pattern     *regexp.Regexp
	Description string
}

// ContentMatcher reports the first pattern found in the file code.
// The detector strips comments before offering the content.
type ContentMatcher struct {
	patterns []ContentPattern
}

// NewContentMatcher creates a content matcher from described patterns.
func NewContentMatcher(patterns ...ContentPattern) *ContentMatcher {
	return &ContentMatcher{patterns: patterns}
}

// NewContentMatcherFromStrings compiles each expression and uses it as its own description.
// Panics on invalid expressions, like regexp.MustCompile.
func NewContentMatcherFromStrings(expressions ...string) *ContentMatcher {
	patterns := make([]ContentPattern, 0, len(expressions))
	for _, expr := range expressions {
		patterns = append(patterns, ContentPattern{
			Pattern:     regexp.MustCompile(expr),
			Description: expr,
		})
	}
	return NewContentMatcher(patterns...)
}

func (m *ContentMatcher) Match(_ context.Context, signal framework.Signal) framework.MatchResult {
	if signal.Type != framework.SignalFileContent {
		return framework.NoMatch()
	}

	content, ok := signal.Context.([]byte)
	if !ok {
		content = []byte(signal.Value)
	}

	for _, p := range m.patterns {
		if p.Pattern.Match(content) {
			return framework.PartialMatch(40, "Found pattern: "+p.Description)
		}
	}

	return framework.NoMatch()
}

// FilenameMatcher matches base names against doublestar patterns.
type FilenameMatcher struct {
	patterns []string
}

// NewFilenameMatcher creates a matcher for file base names such as "*.cy.ts".
func NewFilenameMatcher(patterns ...string) *FilenameMatcher {
	return &FilenameMatcher{patterns: patterns}
}

func (m *FilenameMatcher) Match(_ context.Context, signal framework.Signal) framework.MatchResult {
	if signal.Type != framework.SignalFileName {
		return framework.NoMatch()
	}

	for _, pattern := range m.patterns {
		if matched, err := doublestar.Match(pattern, signal.Value); err == nil && matched {
			return framework.PartialMatch(20, "Filename matches "+pattern)
		}
	}

	return framework.NoMatch()
}

// ConfigMatcher matches runner config file names.
type ConfigMatcher struct {
	names []string
}

// NewConfigMatcher creates a matcher for config file base names.
func NewConfigMatcher(names ...string) *ConfigMatcher {
	return &ConfigMatcher{names: names}
}

func (m *ConfigMatcher) Match(_ context.Context, signal framework.Signal) framework.MatchResult {
	if signal.Type != framework.SignalConfigFile {
		return framework.NoMatch()
	}

	for _, name := range m.names {
		if signal.Value == name {
			return framework.DefiniteMatch("Config file " + name)
		}
	}

	return framework.NoMatch()
}
