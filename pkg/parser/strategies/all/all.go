// Package all imports all marker presets for side-effect registration.
// Usage: _ "github.com/specvital/splitter/pkg/parser/strategies/all"
package all

import (
	_ "github.com/specvital/splitter/pkg/parser/strategies/cypress"
	_ "github.com/specvital/splitter/pkg/parser/strategies/jasmine"
	_ "github.com/specvital/splitter/pkg/parser/strategies/jest"
	_ "github.com/specvital/splitter/pkg/parser/strategies/mocha"
	_ "github.com/specvital/splitter/pkg/parser/strategies/playwright"
	_ "github.com/specvital/splitter/pkg/parser/strategies/vitest"
)
