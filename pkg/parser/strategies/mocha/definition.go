// Package mocha registers the Mocha marker preset.
package mocha

import (
	"regexp"

	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/parser/framework/matchers"
	"github.com/specvital/splitter/pkg/parser/strategies/shared/jstest"
)

const frameworkName = framework.FrameworkMocha

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:        frameworkName,
		Description: "Mocha BDD (describe/context/it) and TDD (suite/test) interfaces",
		Markers:     jstest.MochaStyleMarkers(),
		Matchers: []framework.Matcher{
			matchers.NewImportMatcher("mocha", "mocha/"),
			matchers.NewConfigMatcher(
				".mocharc.cjs",
				".mocharc.js",
				".mocharc.json",
				".mocharc.jsonc",
				".mocharc.mjs",
				".mocharc.yaml",
				".mocharc.yml",
				"mocha.opts",
			),
			matchers.NewContentMatcher(contentPatterns...),
		},
		Priority: framework.PriorityGeneric,
	}
}

var contentPatterns = []matchers.ContentPattern{
	{Pattern: regexp.MustCompile(`\bthis\.timeout\s*\(`), Description: "this.timeout()"},
	{Pattern: regexp.MustCompile(`\bthis\.slow\s*\(`), Description: "this.slow()"},
	{Pattern: regexp.MustCompile(`\bthis\.retries\s*\(`), Description: "this.retries()"},
	{Pattern: regexp.MustCompile(`\bthis\.skip\s*\(\s*\)`), Description: "this.skip()"},
	{Pattern: regexp.MustCompile(`\bthis\.currentTest\b`), Description: "this.currentTest"},
	{Pattern: regexp.MustCompile(`\bmocha\.setup\s*\(`), Description: "mocha.setup()"},
	{Pattern: regexp.MustCompile(`\bmocha\.run\s*\(`), Description: "mocha.run()"},
}
