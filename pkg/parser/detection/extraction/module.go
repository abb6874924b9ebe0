// Package extraction reads the parts of a script file that framework
// detection looks at: the modules it loads and its code without comments.
package extraction

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser"
	"github.com/specvital/splitter/pkg/parser/tspool"
)

// Module is the detection view of a script file.
type Module struct {
	// Sources lists the module specifiers loaded by import and export-from
	// statements, require calls and dynamic imports. Document order, no duplicates.
	Sources []string
	// Code is the file content with every comment removed.
	Code []byte
}

// ReadModule parses content as lang and collects its module sources and
// comment-free code. Statements may span any number of lines.
func ReadModule(ctx context.Context, lang domain.Language, content []byte) (*Module, error) {
	tree, err := tspool.Parse(ctx, lang, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	c := &collector{content: content, seen: make(map[string]bool)}
	parser.WalkTree(tree.RootNode(), c.visit)

	return &Module{
		Sources: c.sources,
		Code:    c.code(),
	}, nil
}

type collector struct {
	content  []byte
	sources  []string
	seen     map[string]bool
	comments [][2]uint32
}

func (c *collector) visit(node *sitter.Node) bool {
	switch node.Type() {
	case "comment":
		c.comments = append(c.comments, [2]uint32{node.StartByte(), node.EndByte()})
		return false
	case "import_statement", "export_statement":
		c.addSource(node.ChildByFieldName("source"))
	case "import_require_clause":
		// import fs = require('fs')
		c.addSource(parser.FindChildByType(node, "string"))
	case "call_expression":
		if c.isModuleCall(node.ChildByFieldName("function")) {
			c.addSource(firstArgument(node))
		}
	}
	return true
}

// isModuleCall reports whether fn is require or the dynamic import keyword.
func (c *collector) isModuleCall(fn *sitter.Node) bool {
	if fn == nil {
		return false
	}
	switch fn.Type() {
	case "import":
		return true
	case "identifier":
		return parser.GetNodeText(fn, c.content) == "require"
	}
	return false
}

func (c *collector) addSource(node *sitter.Node) {
	if node == nil || node.Type() != "string" {
		return
	}
	text := parser.GetNodeText(node, c.content)
	if len(text) < 2 {
		return
	}
	source := text[1 : len(text)-1]
	if source == "" || c.seen[source] {
		return
	}
	c.seen[source] = true
	c.sources = append(c.sources, source)
}

// code returns the content with the collected comment ranges cut out.
// Ranges arrive in document order and never overlap.
func (c *collector) code() []byte {
	if len(c.comments) == 0 {
		return c.content
	}

	out := make([]byte, 0, len(c.content))
	last := uint32(0)
	for _, r := range c.comments {
		out = append(out, c.content[last:r[0]]...)
		last = r[1]
	}
	return append(out, c.content[last:]...)
}

func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return nil
	}
	return args.NamedChild(0)
}
