package domain

import "fmt"

// SourceSpan is the location of a node in the original text.
// Lines are 1-based, columns are 0-based byte offsets within the line.
// A span is created once by the parser and only ever compared.
type SourceSpan struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

// SpansEqual reports whether a and b describe exactly the same range.
// It returns false when either span is absent.
func SpansEqual(a, b *SourceSpan) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// Before reports whether s starts before other in document order.
func (s SourceSpan) Before(other SourceSpan) bool {
	if s.StartLine != other.StartLine {
		return s.StartLine < other.StartLine
	}
	return s.StartCol < other.StartCol
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}
