// Package jstest holds the call vocabulary shared by the JavaScript test runners.
package jstest

const (
	FuncDescribe = "describe"
	FuncIt       = "it"
	FuncTest     = "test"

	// Mocha BDD/TDD interface functions
	FuncContext = "context"
	FuncSpecify = "specify"
	FuncSuite   = "suite"

	HookAfter         = "after"
	HookAfterAll      = "afterAll"
	HookAfterEach     = "afterEach"
	HookBefore        = "before"
	HookBeforeAll     = "beforeAll"
	HookBeforeEach    = "beforeEach"
	HookSetup         = "setup"
	HookSuiteSetup    = "suiteSetup"
	HookSuiteTeardown = "suiteTeardown"
	HookTeardown      = "teardown"

	ModifierConcurrent = "concurrent"
	ModifierEach       = "each"
	ModifierFail       = "fail"
	ModifierFixme      = "fixme"
	ModifierOnly       = "only"
	ModifierParallel   = "parallel"
	ModifierSerial     = "serial"
	ModifierSkip       = "skip"
	ModifierSlow       = "slow"
)

// SkippedFunctionAliases maps x-prefixed aliases to the function they disable.
var SkippedFunctionAliases = map[string]string{
	"xdescribe": FuncDescribe,
	"xit":       FuncIt,
	"xtest":     FuncTest,
	"xcontext":  FuncContext,
	"xspecify":  FuncSpecify,
}

// FocusedFunctionAliases maps f-prefixed aliases to the function they focus.
var FocusedFunctionAliases = map[string]string{
	"fdescribe": FuncDescribe,
	"fit":       FuncIt,
	"fcontext":  FuncContext,
	"fspecify":  FuncSpecify,
}
