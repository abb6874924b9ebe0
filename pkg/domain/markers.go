package domain

import (
	"errors"
	"fmt"
	"slices"
)

// MarkerConfig names the calls recognized as test cases, groups and lifecycle hooks.
type MarkerConfig struct {
	// Tests are callee names declaring a test case (e.g., "it", "test.only").
	Tests []string `json:"tests" mapstructure:"tests"`
	// Groups are callee names declaring a grouping block (e.g., "describe").
	Groups []string `json:"groups" mapstructure:"groups"`
	// Hooks are callee names declaring setup/teardown logic (e.g., "beforeEach").
	Hooks []string `json:"hooks" mapstructure:"hooks"`
	// Unwrap lists group callees that are replaced by their body when the
	// body holds nothing but the retained test case. Empty disables unwrapping.
	Unwrap []string `json:"unwrap,omitempty" mapstructure:"unwrap"`
	// PruneHookOnlyGroups makes groups holding only hooks eligible for pruning.
	// By default hooks alone keep a group alive.
	PruneHookOnlyGroups bool `json:"pruneHookOnlyGroups,omitempty" mapstructure:"prune_hook_only_groups"`
}

var ErrNoTestMarkers = errors.New("markers: at least one test marker is required")

// IsTest reports whether name declares a test case.
func (m MarkerConfig) IsTest(name string) bool {
	return slices.Contains(m.Tests, name)
}

// IsGroup reports whether name declares a grouping block.
func (m MarkerConfig) IsGroup(name string) bool {
	return slices.Contains(m.Groups, name)
}

// IsHook reports whether name declares a lifecycle hook.
func (m MarkerConfig) IsHook(name string) bool {
	return slices.Contains(m.Hooks, name)
}

// IsUnwrappable reports whether a group with this callee may be unwrapped.
func (m MarkerConfig) IsUnwrappable(name string) bool {
	return slices.Contains(m.Unwrap, name)
}

// IsRelevant reports whether a call to name keeps its enclosing group alive.
func (m MarkerConfig) IsRelevant(name string) bool {
	if m.IsTest(name) || m.IsGroup(name) {
		return true
	}
	return !m.PruneHookOnlyGroups && m.IsHook(name)
}

// Merge returns a copy of m with every non-empty field of override applied.
func (m MarkerConfig) Merge(override MarkerConfig) MarkerConfig {
	merged := m.Clone()
	if len(override.Tests) > 0 {
		merged.Tests = slices.Clone(override.Tests)
	}
	if len(override.Groups) > 0 {
		merged.Groups = slices.Clone(override.Groups)
	}
	if len(override.Hooks) > 0 {
		merged.Hooks = slices.Clone(override.Hooks)
	}
	if len(override.Unwrap) > 0 {
		merged.Unwrap = slices.Clone(override.Unwrap)
	}
	if override.PruneHookOnlyGroups {
		merged.PruneHookOnlyGroups = true
	}
	return merged
}

// Clone returns a deep copy of m.
func (m MarkerConfig) Clone() MarkerConfig {
	return MarkerConfig{
		Tests:               slices.Clone(m.Tests),
		Groups:              slices.Clone(m.Groups),
		Hooks:               slices.Clone(m.Hooks),
		Unwrap:              slices.Clone(m.Unwrap),
		PruneHookOnlyGroups: m.PruneHookOnlyGroups,
	}
}

// IsZero reports whether no marker is configured.
func (m MarkerConfig) IsZero() bool {
	return len(m.Tests) == 0 && len(m.Groups) == 0 && len(m.Hooks) == 0 && len(m.Unwrap) == 0
}

// Validate checks that the marker sets are usable for splitting.
func (m MarkerConfig) Validate() error {
	if len(m.Tests) == 0 {
		return ErrNoTestMarkers
	}

	for _, name := range m.Tests {
		if name == "" {
			return fmt.Errorf("markers: empty test marker")
		}
		if m.IsGroup(name) || m.IsHook(name) {
			return fmt.Errorf("markers: %q is declared as test and as group or hook", name)
		}
	}

	for _, name := range m.Unwrap {
		if !m.IsGroup(name) {
			return fmt.Errorf("markers: unwrap target %q is not a group marker", name)
		}
	}

	return nil
}
