// Package cypress registers the Cypress marker preset.
package cypress

import (
	"regexp"

	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/parser/framework/matchers"
	"github.com/specvital/splitter/pkg/parser/strategies/shared/jstest"
)

const frameworkName = framework.FrameworkCypress

func init() {
	framework.Register(NewDefinition())
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:        frameworkName,
		Description: "Cypress specs, Mocha BDD vocabulary",
		Markers:     jstest.MochaStyleMarkers(),
		Matchers: []framework.Matcher{
			matchers.NewImportMatcher("cypress", "cypress/"),
			matchers.NewConfigMatcher(
				"cypress.config.cjs",
				"cypress.config.js",
				"cypress.config.mjs",
				"cypress.config.mts",
				"cypress.config.ts",
			),
			matchers.NewFilenameMatcher("*.cy.{js,ts,jsx,tsx}"),
			matchers.NewContentMatcher(contentPatterns...),
		},
		Priority: framework.PriorityE2E,
	}
}

var contentPatterns = []matchers.ContentPattern{
	{Pattern: regexp.MustCompile(`\bcy\.visit\s*\(`), Description: "cy.visit()"},
	{Pattern: regexp.MustCompile(`\bcy\.get\s*\(`), Description: "cy.get()"},
	{Pattern: regexp.MustCompile(`\bcy\.contains\s*\(`), Description: "cy.contains()"},
	{Pattern: regexp.MustCompile(`\bcy\.intercept\s*\(`), Description: "cy.intercept()"},
	{Pattern: regexp.MustCompile(`\bcy\.request\s*\(`), Description: "cy.request()"},
	{Pattern: regexp.MustCompile(`\bcy\.wait\s*\(`), Description: "cy.wait()"},
	{Pattern: regexp.MustCompile(`\bcy\.fixture\s*\(`), Description: "cy.fixture()"},
	{Pattern: regexp.MustCompile(`\bCypress\.Commands\.add\s*\(`), Description: "Cypress.Commands.add()"},
	{Pattern: regexp.MustCompile(`\bCypress\.env\s*\(`), Description: "Cypress.env()"},
}
