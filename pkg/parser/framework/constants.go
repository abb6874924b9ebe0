package framework

// Priority constants determine the order in which frameworks are checked during detection.
// Higher priority frameworks are evaluated first.
//
// Use increments of 50 to allow for future insertions between priority levels.
const (
	// PriorityGeneric is for common, general-purpose test runners.
	// Examples: Jest, Jasmine, Mocha
	PriorityGeneric = 100

	// PriorityE2E is for end-to-end testing frameworks.
	// These are checked before generic runners since they share the describe/it vocabulary.
	// Examples: Playwright, Cypress
	PriorityE2E = 150

	// PrioritySpecialized is for runners that mimic another runner's API.
	// Examples: Vitest (Jest-compatible globals)
	PrioritySpecialized = 200
)

// Framework names as constants to ensure consistency.
const (
	FrameworkCypress    = "cypress"
	FrameworkJasmine    = "jasmine"
	FrameworkJest       = "jest"
	FrameworkMocha      = "mocha"
	FrameworkPlaywright = "playwright"
	FrameworkVitest     = "vitest"
)

// FrameworkAuto requests per-file detection instead of a fixed preset.
const FrameworkAuto = "auto"
