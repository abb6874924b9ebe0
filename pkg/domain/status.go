package domain

import "strings"

// TestStatus represents the execution behavior of a test case declaration.
type TestStatus string

const (
	// TestStatusActive indicates a normal test that runs and expects success.
	TestStatusActive TestStatus = "active"
	// TestStatusSkipped indicates a test intentionally excluded from execution (it.skip, xit).
	TestStatusSkipped TestStatus = "skipped"
	// TestStatusTodo indicates a test not yet implemented (test.todo, test.fixme).
	TestStatusTodo TestStatus = "todo"
	// TestStatusFocused indicates a debugging-only test (.only, fit).
	TestStatusFocused TestStatus = "focused"
)

var skippedAliases = map[string]bool{
	"xcontext":  true,
	"xdescribe": true,
	"xit":       true,
	"xspecify":  true,
	"xtest":     true,
}

var focusedAliases = map[string]bool{
	"fcontext":  true,
	"fdescribe": true,
	"fit":       true,
	"fspecify":  true,
}

// StatusFromCallee derives a status from a dotted callee name such as "it.skip" or "xit".
func StatusFromCallee(callee string) TestStatus {
	if skippedAliases[callee] {
		return TestStatusSkipped
	}
	if focusedAliases[callee] {
		return TestStatusFocused
	}

	for _, modifier := range strings.Split(callee, ".")[1:] {
		switch modifier {
		case "skip":
			return TestStatusSkipped
		case "only":
			return TestStatusFocused
		case "todo", "fixme":
			return TestStatusTodo
		}
	}

	return TestStatusActive
}
