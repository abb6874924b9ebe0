// Package jsast mirrors a tree-sitter JavaScript/TypeScript syntax tree into a
// mutable, Go-owned tree and prints it back to source.
//
// Every Parse call produces an independent Tree; nodes from two trees never
// share identity, only their spans are comparable. Mutations (Remove, Replace)
// detach nodes and record byte-range edits against the original text, so Print
// reproduces every byte outside the edited ranges, comments and formatting
// included.
package jsast

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser"
	"github.com/specvital/splitter/pkg/parser/tspool"
)

var (
	// ErrSyntax is returned when the source contains syntax errors.
	ErrSyntax = errors.New("jsast: source has syntax errors")
	// ErrNoStatement is returned when a node is not enclosed by a removable statement.
	ErrNoStatement = errors.New("jsast: no removable enclosing statement")
	// ErrDetached is returned when mutating a node that is no longer part of its tree.
	ErrDetached = errors.New("jsast: node is not attached to the tree")
)

// Kind is the structural category of a node.
type Kind string

const (
	KindProgram    Kind = "program"
	KindBlock      Kind = "block"
	KindStatement  Kind = "statement"
	KindCall       Kind = "call"
	KindFunction   Kind = "function"
	KindComment    Kind = "comment"
	KindExpression Kind = "expression"
)

// Node is one named node of the mirrored tree. A parent exclusively owns its children.
type Node struct {
	Kind Kind
	// Type is the raw tree-sitter node type.
	Type string
	// Callee is the dotted call target for call nodes ("it", "test.describe.only").
	// Empty when the target is not a plain identifier or member chain.
	Callee string
	// Label is the unquoted first argument when it is a string literal.
	Label    string
	HasLabel bool
	// Span is nil when the parser attached no location.
	Span     *domain.SourceSpan
	Children []*Node

	parent    *Node
	tree      *Tree
	startByte uint32
	endByte   uint32
	removed   bool
}

// Tree is a disposable, independently owned syntax tree.
type Tree struct {
	lang   domain.Language
	source []byte
	root   *Node
	edits  []edit
}

type edit struct {
	start       uint32
	end         uint32
	replacement []byte
}

// Parse parses source into a fresh Tree.
// Sources containing syntax errors are rejected with ErrSyntax.
func Parse(ctx context.Context, lang domain.Language, source []byte) (*Tree, error) {
	tsTree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, err
	}
	defer tsTree.Close()

	tsRoot := tsTree.RootNode()
	if tsRoot.HasError() {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, firstErrorPosition(tsRoot))
	}

	src := make([]byte, len(source))
	copy(src, source)

	t := &Tree{lang: lang, source: src}
	t.root = t.build(tsRoot, nil, 0)

	return t, nil
}

func firstErrorPosition(root *sitter.Node) string {
	pos := "unknown position"
	found := false
	parser.WalkTree(root, func(n *sitter.Node) bool {
		if found {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			p := n.StartPoint()
			pos = fmt.Sprintf("line %d, column %d", p.Row+1, p.Column)
			found = true
			return false
		}
		return true
	})
	return pos
}

func (t *Tree) build(tsNode *sitter.Node, parent *Node, depth int) *Node {
	n := &Node{
		Kind:      kindOf(tsNode.Type()),
		Type:      tsNode.Type(),
		Span:      parser.GetSpan(tsNode),
		parent:    parent,
		tree:      t,
		startByte: tsNode.StartByte(),
		endByte:   tsNode.EndByte(),
	}

	if n.Kind == KindCall {
		t.describeCall(n, tsNode)
	}

	if depth >= tspool.MaxTreeDepth {
		return n
	}

	count := int(tsNode.NamedChildCount())
	if count > 0 {
		n.Children = make([]*Node, 0, count)
	}
	for i := 0; i < count; i++ {
		n.Children = append(n.Children, t.build(tsNode.NamedChild(i), n, depth+1))
	}

	return n
}

func (t *Tree) describeCall(n *Node, tsNode *sitter.Node) {
	if fn := tsNode.ChildByFieldName("function"); fn != nil {
		n.Callee = calleeName(fn, t.source)
	}

	args := tsNode.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		return
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() == "comment" {
			continue
		}
		if label, ok := literalValue(arg, t.source); ok {
			n.Label = label
			n.HasLabel = true
		}
		return
	}
}

// calleeName renders identifiers and member chains as dotted names.
// A call in callee position, as in describe.each(table)('name', fn),
// is named after its own callee.
func calleeName(node *sitter.Node, source []byte) string {
	if node.Type() == "call_expression" {
		if fn := node.ChildByFieldName("function"); fn != nil {
			return dottedName(fn, source)
		}
		return ""
	}
	return dottedName(node, source)
}

func dottedName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "identifier":
		return parser.GetNodeText(node, source)
	case "member_expression":
		obj := node.ChildByFieldName("object")
		prop := node.ChildByFieldName("property")
		if obj == nil || prop == nil {
			return ""
		}
		base := dottedName(obj, source)
		if base == "" {
			return ""
		}
		return base + "." + parser.GetNodeText(prop, source)
	default:
		return ""
	}
}

// literalValue returns the value of string literals and substitution-free templates.
func literalValue(node *sitter.Node, source []byte) (string, bool) {
	switch node.Type() {
	case "string":
		return UnquoteString(parser.GetNodeText(node, source)), true
	case "template_string":
		if parser.FindChildByType(node, "template_substitution") != nil {
			return "", false
		}
		return UnquoteString(parser.GetNodeText(node, source)), true
	default:
		return "", false
	}
}

func kindOf(nodeType string) Kind {
	switch nodeType {
	case "program":
		return KindProgram
	case "statement_block":
		return KindBlock
	case "call_expression":
		return KindCall
	case "comment":
		return KindComment
	case "arrow_function", "function", "function_expression", "function_declaration",
		"generator_function", "generator_function_declaration", "method_definition":
		return KindFunction
	}
	if isStatementType(nodeType) {
		return KindStatement
	}
	return KindExpression
}

func isStatementType(nodeType string) bool {
	if nodeType == "statement_block" {
		return false
	}
	return strings.HasSuffix(nodeType, "_statement") || strings.HasSuffix(nodeType, "_declaration")
}

// Root returns the program node.
func (t *Tree) Root() *Node {
	return t.root
}

// Language returns the grammar the tree was parsed with.
func (t *Tree) Language() domain.Language {
	return t.lang
}

// Source returns the original text the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Parent returns the owning node, or nil for the root and detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Text returns the original source text of the node.
func (n *Node) Text() string {
	return string(n.tree.source[n.startByte:n.endByte])
}

// IsStatement reports whether the node is a statement or declaration.
func (n *Node) IsStatement() bool {
	return isStatementType(n.Type)
}

// Attached reports whether the node is still reachable from its tree's root.
func (n *Node) Attached() bool {
	cur := n
	for cur.parent != nil {
		if cur.removed {
			return false
		}
		cur = cur.parent
	}
	return cur == n.tree.root && !cur.removed
}

// Walk visits the node and its descendants in pre-order, left to right.
// The visitor returns false to skip a node's children.
func (n *Node) Walk(visitor func(*Node) bool) {
	n.walk(visitor, 0)
}

func (n *Node) walk(visitor func(*Node) bool, depth int) {
	if depth > tspool.MaxTreeDepth {
		return
	}
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.walk(visitor, depth+1)
	}
}

// Arguments returns the argument list of a call node, or nil.
func (n *Node) Arguments() *Node {
	if n.Kind != KindCall {
		return nil
	}
	for _, child := range n.Children {
		if child.Type == "arguments" {
			return child
		}
	}
	return nil
}

// Callback returns the first function argument of a call node, or nil.
func (n *Node) Callback() *Node {
	args := n.Arguments()
	if args == nil {
		return nil
	}
	for _, arg := range args.Children {
		if arg.Kind == KindFunction {
			return arg
		}
	}
	return nil
}

// Body returns the block body of the call's callback, or nil when the
// callback is missing or has an expression body.
func (n *Node) Body() *Node {
	callback := n.Callback()
	if callback == nil {
		return nil
	}
	for i := len(callback.Children) - 1; i >= 0; i-- {
		if callback.Children[i].Kind == KindBlock {
			return callback.Children[i]
		}
	}
	return nil
}

// Statements returns the non-comment children of a block or program node.
func (n *Node) Statements() []*Node {
	var stmts []*Node
	for _, child := range n.Children {
		if child.Kind != KindComment {
			stmts = append(stmts, child)
		}
	}
	return stmts
}

// Statement returns the nearest enclosing statement that sits directly in a
// statement list (program, block, switch case). The walk never crosses a
// function boundary: a call in an expression-bodied arrow function has no
// removable statement of its own.
func (n *Node) Statement() (*Node, error) {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.IsStatement() && cur.parent != nil && cur.parent.isStatementList() {
			return cur, nil
		}
		if cur != n && (cur.Kind == KindFunction || cur.Kind == KindBlock || cur.Kind == KindProgram) {
			break
		}
	}
	return nil, fmt.Errorf("%w: %s at %s", ErrNoStatement, n.Type, n.position())
}

func (n *Node) isStatementList() bool {
	switch n.Kind {
	case KindProgram, KindBlock:
		return true
	}
	return n.Type == "switch_case" || n.Type == "switch_default"
}

func (n *Node) position() string {
	if n.Span == nil {
		return "unknown position"
	}
	return fmt.Sprintf("line %d", n.Span.StartLine)
}

func (n *Node) indexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, child := range n.parent.Children {
		if child == n {
			return i
		}
	}
	return -1
}

// Remove deletes a statement from its parent's child list, together with the
// own-line comments directly above it. Printing drops the whole lines the
// statement occupied when nothing else shares them.
func (t *Tree) Remove(stmt *Node) error {
	if stmt.tree != t || !stmt.Attached() || stmt.parent == nil {
		return ErrDetached
	}

	parent := stmt.parent
	idx := stmt.indexInParent()
	if idx < 0 {
		return ErrDetached
	}

	first := idx
	for first > 0 && parent.Children[first-1].isLeadingCommentOf(parent.Children[first]) {
		first--
	}

	start, end := t.lineExtent(parent.Children[first].startByte, stmt.endByte)
	t.edits = append(t.edits, edit{start: start, end: end})

	for _, removed := range parent.Children[first : idx+1] {
		removed.removed = true
	}
	parent.Children = append(parent.Children[:first:first], parent.Children[idx+1:]...)

	return nil
}

// isLeadingCommentOf reports whether n is a comment on its own line(s)
// immediately above next.
func (n *Node) isLeadingCommentOf(next *Node) bool {
	if n.Kind != KindComment || n.Span == nil || next.Span == nil {
		return false
	}
	if next.Span.StartLine-n.Span.EndLine > 1 {
		return false
	}
	return n.tree.startsLine(n.startByte)
}

// Replace substitutes stmt with one of its descendants, re-indenting the
// descendant's text to the column stmt started at.
func (t *Tree) Replace(stmt, with *Node) error {
	if stmt.tree != t || with.tree != t || !stmt.Attached() || !with.Attached() || stmt.parent == nil {
		return ErrDetached
	}
	if with.startByte < stmt.startByte || with.endByte > stmt.endByte || with == stmt {
		return fmt.Errorf("jsast: replacement is not a descendant of the replaced statement")
	}

	idx := stmt.indexInParent()
	if idx < 0 {
		return ErrDetached
	}

	text := t.render(with.startByte, with.endByte)
	text = reindent(text, t.indentOf(with.startByte)-t.indentOf(stmt.startByte))

	t.edits = append(t.edits, edit{start: stmt.startByte, end: stmt.endByte, replacement: text})

	if with.parent != nil {
		if i := with.indexInParent(); i >= 0 {
			with.parent.Children = append(with.parent.Children[:i:i], with.parent.Children[i+1:]...)
		}
	}
	with.parent = stmt.parent
	stmt.parent.Children[idx] = with
	stmt.removed = true

	return nil
}
