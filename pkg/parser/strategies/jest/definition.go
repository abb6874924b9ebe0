// Package jest registers the Jest marker preset.
package jest

import (
	"regexp"

	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/parser/framework/matchers"
	"github.com/specvital/splitter/pkg/parser/strategies/shared/jstest"
)

const frameworkName = framework.FrameworkJest

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:        frameworkName,
		Description: "Jest describe/it/test with beforeEach/afterEach/beforeAll/afterAll hooks",
		Markers:     jstest.JasmineStyleMarkers(),
		Matchers: []framework.Matcher{
			matchers.NewImportMatcher("@jest/globals", "@jest/", "jest"),
			matchers.NewConfigMatcher(
				"jest.config.js",
				"jest.config.ts",
				"jest.config.mjs",
				"jest.config.cjs",
				"jest.config.json",
			),
			matchers.NewContentMatcher(contentPatterns...),
		},
		Priority: framework.PriorityGeneric,
	}
}

var contentPatterns = []matchers.ContentPattern{
	{Pattern: regexp.MustCompile(`\bjest\.advanceTimersByTime\s*\(`), Description: "jest.advanceTimersByTime()"},
	{Pattern: regexp.MustCompile(`\bjest\.clearAllMocks\s*\(`), Description: "jest.clearAllMocks()"},
	{Pattern: regexp.MustCompile(`\bjest\.fn\s*\(`), Description: "jest.fn()"},
	{Pattern: regexp.MustCompile(`\bjest\.isolateModules\s*\(`), Description: "jest.isolateModules()"},
	{Pattern: regexp.MustCompile(`\bjest\.mock\s*\(`), Description: "jest.mock()"},
	{Pattern: regexp.MustCompile(`\bjest\.resetAllMocks\s*\(`), Description: "jest.resetAllMocks()"},
	{Pattern: regexp.MustCompile(`\bjest\.resetModules\s*\(`), Description: "jest.resetModules()"},
	{Pattern: regexp.MustCompile(`\bjest\.restoreAllMocks\s*\(`), Description: "jest.restoreAllMocks()"},
	{Pattern: regexp.MustCompile(`\bjest\.runAllTimers\s*\(`), Description: "jest.runAllTimers()"},
	{Pattern: regexp.MustCompile(`\bjest\.setTimeout\s*\(`), Description: "jest.setTimeout()"},
	{Pattern: regexp.MustCompile(`\bjest\.spyOn\s*\(`), Description: "jest.spyOn()"},
	{Pattern: regexp.MustCompile(`\bjest\.useFakeTimers\s*\(`), Description: "jest.useFakeTimers()"},
	{Pattern: regexp.MustCompile(`\bjest\.useRealTimers\s*\(`), Description: "jest.useRealTimers()"},
}
