// Package detection selects the framework preset that governs a test file.
package detection

import "github.com/specvital/splitter/pkg/parser/framework"

// Evidence is one observation supporting or ruling out a framework.
type Evidence struct {
	Source      string
	Description string
	Confidence  int
	Negative    bool
}

// Result is the outcome of detecting a single file.
// The zero value means no framework was detected.
type Result struct {
	Framework  string
	Confidence int
	Evidence   []Evidence
	// Scope is the config scope the file fell under, if any.
	Scope *framework.ConfigScope
}

// AddEvidence appends an observation.
func (r *Result) AddEvidence(ev Evidence) {
	r.Evidence = append(r.Evidence, ev)
}

// IsDetected reports whether a framework was selected.
func (r Result) IsDetected() bool {
	return r.Framework != "" && r.Confidence > 0
}

// IsDefinite reports confidence above 70.
func (r Result) IsDefinite() bool {
	return r.Confidence > 70
}

// IsModerate reports confidence in (30, 70].
func (r Result) IsModerate() bool {
	return r.Confidence > 30 && r.Confidence <= 70
}

// IsWeak reports confidence in (0, 30].
func (r Result) IsWeak() bool {
	return r.Confidence > 0 && r.Confidence <= 30
}

// ConfidenceLevel returns "definite", "moderate", "weak" or "none".
func (r Result) ConfidenceLevel() string {
	switch {
	case r.IsDefinite():
		return "definite"
	case r.IsModerate():
		return "moderate"
	case r.IsWeak():
		return "weak"
	default:
		return "none"
	}
}

// Sources returns the distinct evidence sources in the order they were observed.
func (r Result) Sources() []string {
	seen := make(map[string]bool, len(r.Evidence))
	var sources []string
	for _, ev := range r.Evidence {
		if ev.Negative || seen[ev.Source] {
			continue
		}
		seen[ev.Source] = true
		sources = append(sources, ev.Source)
	}
	return sources
}
