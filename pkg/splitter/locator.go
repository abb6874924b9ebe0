package splitter

import (
	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/jsast"
)

// FindLeaves returns every test-case declaration under root in document
// order. A call is a leaf when its callee is a test marker and its first
// argument is a string literal; calls with computed labels are not leaves.
// The tree is not modified.
func FindLeaves(root *jsast.Node, markers domain.MarkerConfig) []domain.LeafRecord {
	leaves, _ := locate(root, markers)
	return leaves
}

// locate returns the leaves together with the call nodes they were read from.
func locate(root *jsast.Node, markers domain.MarkerConfig) ([]domain.LeafRecord, []*jsast.Node) {
	var (
		leaves []domain.LeafRecord
		nodes  []*jsast.Node
	)

	root.Walk(func(n *jsast.Node) bool {
		if !isLeaf(n, markers) {
			return true
		}
		leaves = append(leaves, domain.LeafRecord{
			Callee: n.Callee,
			Label:  n.Label,
			Order:  len(leaves),
			Span:   n.Span,
			Status: domain.StatusFromCallee(n.Callee),
		})
		nodes = append(nodes, n)
		return true
	})

	return leaves, nodes
}

func isLeaf(n *jsast.Node, markers domain.MarkerConfig) bool {
	return n.Kind == jsast.KindCall && n.HasLabel && markers.IsTest(n.Callee)
}
