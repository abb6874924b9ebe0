// Package jasmine registers the Jasmine marker preset.
package jasmine

import (
	"regexp"

	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/parser/framework/matchers"
	"github.com/specvital/splitter/pkg/parser/strategies/shared/jstest"
)

const frameworkName = framework.FrameworkJasmine

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:        frameworkName,
		Description: "Jasmine describe/it with fdescribe/fit/xdescribe/xit aliases",
		Markers:     jstest.JasmineStyleMarkers(),
		Matchers: []framework.Matcher{
			matchers.NewImportMatcher("jasmine", "jasmine-core"),
			matchers.NewConfigMatcher("jasmine.json", "karma.conf.js", "karma.conf.ts"),
			matchers.NewContentMatcher(contentPatterns...),
		},
		Priority: framework.PriorityGeneric,
	}
}

var contentPatterns = []matchers.ContentPattern{
	{Pattern: regexp.MustCompile(`\bjasmine\.createSpy\s*\(`), Description: "jasmine.createSpy()"},
	{Pattern: regexp.MustCompile(`\bjasmine\.createSpyObj\s*\(`), Description: "jasmine.createSpyObj()"},
	{Pattern: regexp.MustCompile(`\bjasmine\.clock\s*\(`), Description: "jasmine.clock()"},
	{Pattern: regexp.MustCompile(`\bjasmine\.any\s*\(`), Description: "jasmine.any()"},
	{Pattern: regexp.MustCompile(`\bspyOn\s*\([^)]*\)\.and\.`), Description: "spyOn().and"},
}
