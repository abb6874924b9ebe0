// Package playwright registers the Playwright Test marker preset.
package playwright

import (
	"regexp"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/parser/framework/matchers"
	"github.com/specvital/splitter/pkg/parser/strategies/shared/jstest"
)

const (
	frameworkName    = framework.FrameworkPlaywright
	funcTestDescribe = jstest.FuncTest + "." + jstest.FuncDescribe
)

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:        frameworkName,
		Description: "Playwright test/test.describe with test.beforeEach-style hooks",
		Markers:     Markers(),
		Matchers: []framework.Matcher{
			matchers.NewImportMatcher("@playwright/test", "@playwright/test/"),
			matchers.NewConfigMatcher(
				"playwright.config.js",
				"playwright.config.ts",
				"playwright.config.mjs",
				"playwright.config.mts",
			),
			matchers.NewContentMatcher(contentPatterns...),
		},
		Priority: framework.PriorityE2E,
	}
}

// Markers returns the Playwright call vocabulary.
func Markers() domain.MarkerConfig {
	return domain.MarkerConfig{
		Tests: jstest.WithModifiers(jstest.FuncTest,
			jstest.ModifierOnly, jstest.ModifierSkip, jstest.ModifierFixme, jstest.ModifierFail, jstest.ModifierSlow),
		Groups: jstest.WithModifiers(funcTestDescribe,
			jstest.ModifierOnly, jstest.ModifierSkip, jstest.ModifierSerial, jstest.ModifierParallel, jstest.ModifierFixme),
		Hooks: []string{
			jstest.FuncTest + "." + jstest.HookBeforeEach,
			jstest.FuncTest + "." + jstest.HookAfterEach,
			jstest.FuncTest + "." + jstest.HookBeforeAll,
			jstest.FuncTest + "." + jstest.HookAfterAll,
		},
	}
}

var contentPatterns = []matchers.ContentPattern{
	{Pattern: regexp.MustCompile(`\btest\.describe\s*\(`), Description: "test.describe()"},
	{Pattern: regexp.MustCompile(`\btest\.beforeEach\s*\(`), Description: "test.beforeEach()"},
	{Pattern: regexp.MustCompile(`async\s*\(\s*\{\s*page\b`), Description: "page fixture"},
}
