package matchers_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/parser/framework/matchers"
)

func TestImportMatcher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := matchers.NewImportMatcher("vitest", "@vitest/")

	tests := []struct {
		name       string
		signal     framework.Signal
		confidence int
	}{
		{name: "should match exact imports", signal: framework.Signal{Type: framework.SignalImport, Value: "vitest"}, confidence: 100},
		{name: "should match prefix patterns", signal: framework.Signal{Type: framework.SignalImport, Value: "@vitest/expect"}, confidence: 100},
		{name: "should not match partial names", signal: framework.Signal{Type: framework.SignalImport, Value: "vitest-extra"}, confidence: 0},
		{name: "should ignore other signals", signal: framework.Signal{Type: framework.SignalFileName, Value: "vitest"}, confidence: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.confidence, m.Match(ctx, tt.signal).Confidence)
		})
	}

	t.Run("should report negative evidence", func(t *testing.T) {
		t.Parallel()

		result := matchers.NewNegativeImportMatcher("vitest").Match(ctx, framework.Signal{Type: framework.SignalImport, Value: "vitest"})
		assert.True(t, result.Negative)
	})
}

func TestContentMatcher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := matchers.NewContentMatcher(matchers.ContentPattern{
		Pattern:     regexp.MustCompile(`\bjest\.fn\s*\(`),
		Description: "jest.fn()",
	})

	t.Run("should match patterns in code", func(t *testing.T) {
		t.Parallel()

		result := m.Match(ctx, framework.Signal{Type: framework.SignalFileContent, Context: []byte("const f = jest.fn();\n")})
		assert.Equal(t, 40, result.Confidence)
	})

	t.Run("should not match code without the pattern", func(t *testing.T) {
		t.Parallel()

		result := m.Match(ctx, framework.Signal{Type: framework.SignalFileContent, Context: []byte("const f = vi.fn();\n")})
		assert.Equal(t, 0, result.Confidence)
	})

	t.Run("should compile string patterns", func(t *testing.T) {
		t.Parallel()

		fromStrings := matchers.NewContentMatcherFromStrings(`\bcy\.visit\s*\(`)
		result := fromStrings.Match(ctx, framework.Signal{Type: framework.SignalFileContent, Context: []byte("cy.visit('/');\n")})
		assert.Equal(t, 40, result.Confidence)
	})
}

func TestFilenameMatcher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := matchers.NewFilenameMatcher("*.cy.{js,ts}")

	assert.Equal(t, 20, m.Match(ctx, framework.Signal{Type: framework.SignalFileName, Value: "login.cy.ts"}).Confidence)
	assert.Equal(t, 0, m.Match(ctx, framework.Signal{Type: framework.SignalFileName, Value: "login.spec.ts"}).Confidence)
}

func TestConfigMatcher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := matchers.NewConfigMatcher("jest.config.js", "jest.config.ts")

	assert.Equal(t, 100, m.Match(ctx, framework.Signal{Type: framework.SignalConfigFile, Value: "jest.config.ts"}).Confidence)
	assert.Equal(t, 0, m.Match(ctx, framework.Signal{Type: framework.SignalConfigFile, Value: "vitest.config.ts"}).Confidence)
	assert.Equal(t, 0, m.Match(ctx, framework.Signal{Type: framework.SignalImport, Value: "jest.config.js"}).Confidence)
}
