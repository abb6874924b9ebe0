// Package vitest registers the Vitest marker preset.
package vitest

import (
	"regexp"

	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/parser/framework/matchers"
	"github.com/specvital/splitter/pkg/parser/strategies/shared/jstest"
)

const frameworkName = framework.FrameworkVitest

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:        frameworkName,
		Description: "Vitest describe/it/test, Jest-compatible globals",
		Markers:     jstest.JasmineStyleMarkers(),
		Matchers: []framework.Matcher{
			matchers.NewImportMatcher("vitest", "vitest/"),
			matchers.NewConfigMatcher(
				"vitest.config.js",
				"vitest.config.ts",
				"vitest.config.mjs",
				"vitest.config.mts",
				"vitest.workspace.ts",
			),
			matchers.NewContentMatcher(contentPatterns...),
		},
		Priority: framework.PrioritySpecialized,
	}
}

var contentPatterns = []matchers.ContentPattern{
	{Pattern: regexp.MustCompile(`\bvi\.fn\s*\(`), Description: "vi.fn()"},
	{Pattern: regexp.MustCompile(`\bvi\.mock\s*\(`), Description: "vi.mock()"},
	{Pattern: regexp.MustCompile(`\bvi\.spyOn\s*\(`), Description: "vi.spyOn()"},
	{Pattern: regexp.MustCompile(`\bvi\.useFakeTimers\s*\(`), Description: "vi.useFakeTimers()"},
	{Pattern: regexp.MustCompile(`\bvi\.clearAllMocks\s*\(`), Description: "vi.clearAllMocks()"},
	{Pattern: regexp.MustCompile(`\bvi\.resetAllMocks\s*\(`), Description: "vi.resetAllMocks()"},
	{Pattern: regexp.MustCompile(`\bvi\.restoreAllMocks\s*\(`), Description: "vi.restoreAllMocks()"},
	{Pattern: regexp.MustCompile(`\bvi\.stubGlobal\s*\(`), Description: "vi.stubGlobal()"},
	{Pattern: regexp.MustCompile(`\bvi\.stubEnv\s*\(`), Description: "vi.stubEnv()"},
}
