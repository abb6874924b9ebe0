// Package framework describes test frameworks as marker presets plus the
// detection rules that recognize their files.
package framework

import (
	"context"

	"github.com/specvital/splitter/pkg/domain"
)

// Definition is a registered test framework.
type Definition struct {
	Name        string
	Description string
	// Markers are the call names the framework uses for tests, groups and hooks.
	Markers domain.MarkerConfig
	// Matchers produce detection evidence for a file.
	Matchers []Matcher
	Priority    int
}

// SignalType is the kind of input a matcher inspects.
type SignalType int

const (
	SignalImport SignalType = iota
	SignalFileContent
	SignalFileName
	SignalConfigFile
)

// Signal is one piece of evidence offered to a matcher.
type Signal struct {
	Type  SignalType
	Value string
	// Context carries the file content, comments removed, for SignalFileContent.
	Context any
}

// MatchResult is a matcher verdict.
type MatchResult struct {
	Confidence int
	Evidence   []string
	// Negative marks evidence that rules the framework out.
	Negative bool
}

// Matcher inspects a signal and reports evidence for its framework.
type Matcher interface {
	Match(ctx context.Context, signal Signal) MatchResult
}

// NoMatch returns an empty verdict.
func NoMatch() MatchResult {
	return MatchResult{}
}

// PartialMatch returns a verdict with the given confidence.
func PartialMatch(confidence int, evidence ...string) MatchResult {
	return MatchResult{Confidence: confidence, Evidence: evidence}
}

// DefiniteMatch returns a full-confidence verdict.
func DefiniteMatch(evidence ...string) MatchResult {
	return MatchResult{Confidence: 100, Evidence: evidence}
}

// NegativeMatch returns a verdict that disqualifies the framework.
func NegativeMatch(evidence ...string) MatchResult {
	return MatchResult{Negative: true, Evidence: evidence}
}
