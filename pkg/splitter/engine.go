package splitter

import (
	"context"
	"errors"
	"fmt"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/jsast"
)

// ExtractOne produces the source text that keeps target and drops every other
// test case of source. It parses its own tree, so concurrent calls on the same
// source never interfere.
//
// The target is found again in the fresh tree by span equality. Every other
// leaf's enclosing statement is removed, groups left without relevant content
// are pruned, and qualifying groups are unwrapped before printing.
func ExtractOne(ctx context.Context, source []byte, lang domain.Language, target domain.LeafRecord, markers domain.MarkerConfig) (*domain.ExtractionResult, error) {
	if target.Span == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNotRelocatable, domain.ErrMissingSpan)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := jsast.Parse(ctx, lang, source)
	if err != nil {
		if errors.Is(err, jsast.ErrSyntax) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnparsable, err)
		}
		return nil, err
	}

	leaves, nodes := locate(tree.Root(), markers)

	targetIdx := -1
	for i, leaf := range leaves {
		if domain.SpansEqual(leaf.Span, target.Span) {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("%w: no test case at %s", domain.ErrNotRelocatable, target.Span)
	}
	targetNode := nodes[targetIdx]

	// Resolve every removal site before mutating, so a malformed site leaves
	// nothing half-done.
	siblings := make([]*jsast.Node, 0, len(nodes)-1)
	for i, node := range nodes {
		if i == targetIdx {
			continue
		}
		stmt, err := node.Statement()
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", domain.ErrMalformedRemovalSite, leaves[i].Label, err)
		}
		if encloses(stmt, targetNode) {
			return nil, fmt.Errorf("%w: %q encloses the target", domain.ErrMalformedRemovalSite, leaves[i].Label)
		}
		siblings = append(siblings, stmt)
	}

	for _, stmt := range siblings {
		if !stmt.Attached() {
			// Already gone with an enclosing sibling.
			continue
		}
		if err := tree.Remove(stmt); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRemovalSite, err)
		}
	}

	PruneEmptyGroups(tree, markers)

	if len(markers.Unwrap) > 0 {
		if targetStmt, err := targetNode.Statement(); err == nil {
			unwrapGroups(tree, targetStmt, markers)
		}
	}

	return &domain.ExtractionResult{
		Label:  target.Label,
		Order:  target.Order,
		Source: jsast.Print(tree),
	}, nil
}

// encloses reports whether node is ancestor-or-self of descendant.
func encloses(node, descendant *jsast.Node) bool {
	for cur := descendant; cur != nil; cur = cur.Parent() {
		if cur == node {
			return true
		}
	}
	return false
}
