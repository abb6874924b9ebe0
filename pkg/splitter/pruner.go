package splitter

import (
	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/jsast"
)

// PruneEmptyGroups deletes every group whose body no longer holds a relevant
// call (a test, a group, or a hook unless markers.PruneHookOnlyGroups is set)
// and returns how many were deleted.
//
// Groups are visited innermost-last-first, so a group emptied by the deletion
// of its children is itself deleted in the same pass. Groups without a block
// body or without a removable statement are left in place.
func PruneEmptyGroups(tree *jsast.Tree, markers domain.MarkerConfig) int {
	groups := collectGroups(tree.Root(), markers)

	pruned := 0
	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		if !group.Attached() || holdsRelevantCall(group.Body(), markers) {
			continue
		}

		stmt, err := group.Statement()
		if err != nil {
			continue
		}
		if err := tree.Remove(stmt); err != nil {
			continue
		}
		pruned++
	}

	return pruned
}

func collectGroups(root *jsast.Node, markers domain.MarkerConfig) []*jsast.Node {
	var groups []*jsast.Node
	root.Walk(func(n *jsast.Node) bool {
		if n.Kind == jsast.KindCall && markers.IsGroup(n.Callee) && n.Body() != nil {
			groups = append(groups, n)
		}
		return true
	})
	return groups
}

func holdsRelevantCall(body *jsast.Node, markers domain.MarkerConfig) bool {
	found := false
	body.Walk(func(n *jsast.Node) bool {
		if found {
			return false
		}
		if n.Kind == jsast.KindCall && markers.IsRelevant(n.Callee) {
			found = true
			return false
		}
		return true
	})
	return found
}
