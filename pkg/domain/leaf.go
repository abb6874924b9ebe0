package domain

// LeafRecord is a test-case declaration found during discovery.
type LeafRecord struct {
	// Callee is the dotted call target (e.g., "it", "test.only").
	Callee string `json:"callee"`
	// Label is the unquoted string literal passed as first argument.
	Label string `json:"label"`
	// Order is the zero-based rank in document order.
	Order int `json:"order"`
	// Span is the location of the call; nil when the parser attached none.
	Span *SourceSpan `json:"span,omitempty"`
	// Status is derived from the callee modifier.
	Status TestStatus `json:"status"`
}

// Number returns the 1-based position used for output numbering.
func (l LeafRecord) Number() int {
	return l.Order + 1
}

// ExtractionResult is the source text produced for a single target leaf.
type ExtractionResult struct {
	Label  string `json:"label"`
	Order  int    `json:"order"`
	Source []byte `json:"-"`
}
