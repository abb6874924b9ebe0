package jstest

import (
	"sort"

	"github.com/specvital/splitter/pkg/domain"
)

// WithModifiers returns base followed by base.<modifier> for each modifier.
func WithModifiers(base string, modifiers ...string) []string {
	names := make([]string, 0, len(modifiers)+1)
	names = append(names, base)
	for _, m := range modifiers {
		names = append(names, base+"."+m)
	}
	return names
}

// AliasesOf returns the skipped and focused aliases of fn, sorted.
func AliasesOf(fn string) []string {
	var aliases []string
	for alias, target := range SkippedFunctionAliases {
		if target == fn {
			aliases = append(aliases, alias)
		}
	}
	for alias, target := range FocusedFunctionAliases {
		if target == fn {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return aliases
}

// JasmineStyleMarkers is the describe/it/test vocabulary of Jest, Jasmine and Vitest.
func JasmineStyleMarkers() domain.MarkerConfig {
	tests := WithModifiers(FuncIt, ModifierOnly, ModifierSkip, ModifierConcurrent)
	tests = append(tests, WithModifiers(FuncTest, ModifierOnly, ModifierSkip, ModifierConcurrent)...)
	tests = append(tests, AliasesOf(FuncIt)...)
	tests = append(tests, AliasesOf(FuncTest)...)

	groups := WithModifiers(FuncDescribe, ModifierOnly, ModifierSkip, ModifierConcurrent, ModifierEach)
	groups = append(groups, AliasesOf(FuncDescribe)...)

	return domain.MarkerConfig{
		Tests:  tests,
		Groups: groups,
		Hooks:  []string{HookBeforeEach, HookAfterEach, HookBeforeAll, HookAfterAll},
	}
}

// MochaStyleMarkers is the BDD and TDD vocabulary of Mocha and Cypress.
func MochaStyleMarkers() domain.MarkerConfig {
	tests := WithModifiers(FuncIt, ModifierOnly, ModifierSkip)
	tests = append(tests, WithModifiers(FuncSpecify, ModifierOnly, ModifierSkip)...)
	tests = append(tests, WithModifiers(FuncTest, ModifierOnly, ModifierSkip)...)
	tests = append(tests, AliasesOf(FuncIt)...)
	tests = append(tests, AliasesOf(FuncSpecify)...)

	groups := WithModifiers(FuncDescribe, ModifierOnly, ModifierSkip)
	groups = append(groups, WithModifiers(FuncContext, ModifierOnly, ModifierSkip)...)
	groups = append(groups, WithModifiers(FuncSuite, ModifierOnly, ModifierSkip)...)
	groups = append(groups, AliasesOf(FuncDescribe)...)
	groups = append(groups, AliasesOf(FuncContext)...)

	return domain.MarkerConfig{
		Tests:  tests,
		Groups: groups,
		Hooks: []string{
			HookBefore, HookAfter, HookBeforeEach, HookAfterEach,
			HookSuiteSetup, HookSuiteTeardown, HookSetup, HookTeardown,
		},
	}
}
