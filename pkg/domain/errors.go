package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnparsable is returned when the source text contains syntax errors.
	ErrUnparsable = errors.New("splitter: source is not parsable")
	// ErrNotRelocatable is returned when a target leaf has no counterpart in a fresh parse.
	ErrNotRelocatable = errors.New("splitter: target leaf not relocatable")
	// ErrMalformedRemovalSite is returned when a sibling leaf has no removable enclosing statement.
	ErrMalformedRemovalSite = errors.New("splitter: malformed removal site")
	// ErrMissingSpan is returned when a target leaf carries no location.
	ErrMissingSpan = errors.New("splitter: target leaf has no location")
)

// Phase names the step of a split run in which an error occurred.
type Phase string

const (
	PhaseDiscovery Phase = "discovery"
	PhaseRead      Phase = "read"
	PhaseParse     Phase = "parse"
	PhaseRelocate  Phase = "relocate"
	PhaseRemove    Phase = "remove"
	PhasePrint     Phase = "print"
	PhaseWrite     Phase = "write"
)

// SplitError is a per-file or per-target failure. It never aborts other targets or files.
type SplitError struct {
	Err   error
	Path  string
	Label string
	// Order is the target's zero-based rank, or -1 for file-level errors.
	Order int
	Phase Phase
}

// Error implements the error interface.
func (e *SplitError) Error() string {
	switch {
	case e.Path == "":
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	case e.Order < 0:
		return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
	default:
		return fmt.Sprintf("[%s] %s #%d %q: %v", e.Phase, e.Path, e.Order+1, e.Label, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *SplitError) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the error message instead of the opaque error value.
func (e SplitError) MarshalJSON() ([]byte, error) {
	type payload struct {
		Path    string `json:"path,omitempty"`
		Label   string `json:"label,omitempty"`
		Order   int    `json:"order"`
		Phase   Phase  `json:"phase"`
		Message string `json:"message"`
	}

	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}

	return json.Marshal(payload{
		Path:    e.Path,
		Label:   e.Label,
		Order:   e.Order,
		Phase:   e.Phase,
		Message: msg,
	})
}

// NewFileError creates a file-level error.
func NewFileError(path string, phase Phase, err error) *SplitError {
	return &SplitError{Err: err, Path: path, Order: -1, Phase: phase}
}

// NewTargetError creates an error bound to one target leaf.
func NewTargetError(path string, leaf LeafRecord, phase Phase, err error) *SplitError {
	return &SplitError{Err: err, Path: path, Label: leaf.Label, Order: leaf.Order, Phase: phase}
}
