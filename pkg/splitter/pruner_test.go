package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/splitter/pkg/parser/jsast"
	"github.com/specvital/splitter/pkg/parser/strategies/shared/jstest"
)

func TestPruneEmptyGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		hookOnly bool
		want     string
		pruned   int
	}{
		{
			name: "should cascade through nested empty groups",
			source: `describe('outer', () => {
  describe('inner', () => {
    const value = 1;
  });
});
`,
			want:   "",
			pruned: 2,
		},
		{
			name: "should keep groups holding test cases",
			source: `describe('outer', () => {
  describe('empty', () => {});
  it('kept', () => {});
});
`,
			want: `describe('outer', () => {
  it('kept', () => {});
});
`,
			pruned: 1,
		},
		{
			name: "should prune emptied table groups",
			source: `describe('outer', () => {
  describe.each([1, 2])('table %i', (n) => {
    const value = n;
  });
  it('kept', () => {});
});
`,
			want: `describe('outer', () => {
  it('kept', () => {});
});
`,
			pruned: 1,
		},
		{
			name:   "should prune emptied tagged-template table groups",
			source: "describe.each`\n  a    | b\n  ${1} | ${2}\n`('adds $a', ({ a }) => {\n  const x = a;\n});\nit('kept', () => {});\n",
			want:   "it('kept', () => {});\n",
			pruned: 1,
		},
		{
			name: "should keep hook-only groups by default",
			source: `describe('outer', () => {
  beforeEach(() => {});
});
`,
			want: `describe('outer', () => {
  beforeEach(() => {});
});
`,
			pruned: 0,
		},
		{
			name: "should prune hook-only groups when configured",
			source: `describe('outer', () => {
  beforeEach(() => {});
});
`,
			hookOnly: true,
			want:     "",
			pruned:   1,
		},
		{
			name:   "should leave groups with expression bodies alone",
			source: "describe('outer', () => undefined);\n",
			want:   "describe('outer', () => undefined);\n",
			pruned: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			markers := jstest.JasmineStyleMarkers()
			markers.PruneHookOnlyGroups = tt.hookOnly
			tree := mustParse(t, tt.source)

			assert.Equal(t, tt.pruned, PruneEmptyGroups(tree, markers))
			assert.Equal(t, tt.want, string(jsast.Print(tree)))
		})
	}

	t.Run("should not prune a group still holding a sibling sub-group", func(t *testing.T) {
		t.Parallel()

		markers := jstest.JasmineStyleMarkers()
		tree := mustParse(t, `describe('outer', () => {
  describe('first', () => {
    it('one', () => {});
  });
  describe('second', () => {
    it('two', () => {});
  });
});
`)
		stmt, err := leafNode(t, tree, "two").Statement()
		require.NoError(t, err)
		require.NoError(t, tree.Remove(stmt))

		assert.Equal(t, 1, PruneEmptyGroups(tree, markers))
		assert.Equal(t, `describe('outer', () => {
  describe('first', () => {
    it('one', () => {});
  });
});
`, string(jsast.Print(tree)))
	})
}

func leafNode(t *testing.T, tree *jsast.Tree, label string) *jsast.Node {
	t.Helper()
	leaves, nodes := locate(tree.Root(), jstest.JasmineStyleMarkers())
	for i, leaf := range leaves {
		if leaf.Label == label {
			return nodes[i]
		}
	}
	t.Fatalf("leaf %q not found", label)
	return nil
}
