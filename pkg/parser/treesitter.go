package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/tspool"
)

const MaxTreeDepth = tspool.MaxTreeDepth

// GetNodeText returns the source text for the given AST node.
// Returns empty string if the node's byte range exceeds the source length.
// Uses defensive bounds checking and panic recovery to handle edge cases.
func GetNodeText(node *sitter.Node, source []byte) (result string) {
	start := node.StartByte()
	end := node.EndByte()
	sourceLen := uint32(len(source))

	// Validate bounds before calling tree-sitter C code
	if start > sourceLen || end > sourceLen {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	return node.Content(source)
}

// GetSpan converts a tree-sitter node position to a [domain.SourceSpan].
// Line numbers are converted to 1-based indexing.
// Returns nil for nodes inserted by error recovery, which have no real location.
func GetSpan(node *sitter.Node) *domain.SourceSpan {
	if node == nil || node.IsMissing() {
		return nil
	}

	start := node.StartPoint()
	end := node.EndPoint()

	return &domain.SourceSpan{
		StartLine: int(start.Row) + 1, // Convert to 1-based
		StartCol:  int(start.Column),
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column),
	}
}

// FindChildByType returns the first direct child with the given node type.
func FindChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func walkTreeWithDepth(node *sitter.Node, visitor func(*sitter.Node) bool, depth int) {
	if depth > tspool.MaxTreeDepth {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTreeWithDepth(node.Child(i), visitor, depth+1)
	}
}

// WalkTree recursively visits all nodes in the AST.
// The visitor function returns false to stop traversing into children.
func WalkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	walkTreeWithDepth(node, visitor, 0)
}
