package splitter

import (
	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/jsast"
)

// unwrapGroups replaces each unwrappable group whose body holds nothing but
// stmt with stmt itself, walking outwards until a group does not qualify.
// It returns the number of groups unwrapped.
func unwrapGroups(tree *jsast.Tree, stmt *jsast.Node, markers domain.MarkerConfig) int {
	unwrapped := 0

	for {
		group := enclosingGroup(stmt, markers)
		if group == nil || !markers.IsUnwrappable(group.Callee) {
			return unwrapped
		}

		body := group.Body()
		if body == nil || stmt.Parent() != body {
			return unwrapped
		}
		if stmts := body.Statements(); len(stmts) != 1 || stmts[0] != stmt {
			return unwrapped
		}

		groupStmt, err := group.Statement()
		if err != nil {
			return unwrapped
		}
		if err := tree.Replace(groupStmt, stmt); err != nil {
			return unwrapped
		}
		unwrapped++
	}
}

// enclosingGroup returns the group call whose callback body directly contains stmt.
func enclosingGroup(stmt *jsast.Node, markers domain.MarkerConfig) *jsast.Node {
	block := stmt.Parent()
	if block == nil || block.Kind != jsast.KindBlock {
		return nil
	}
	fn := block.Parent()
	if fn == nil || fn.Kind != jsast.KindFunction {
		return nil
	}
	args := fn.Parent()
	if args == nil {
		return nil
	}
	call := args.Parent()
	if call == nil || call.Kind != jsast.KindCall || !markers.IsGroup(call.Callee) {
		return nil
	}
	return call
}
