package cypress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/splitter/pkg/parser/framework"
)

func TestNewDefinition(t *testing.T) {
	def := NewDefinition()

	assert.Equal(t, "cypress", def.Name)
	assert.Equal(t, framework.PriorityE2E, def.Priority)
	assert.Len(t, def.Matchers, 4)
	require.NoError(t, def.Markers.Validate())
	assert.True(t, def.Markers.IsGroup("context"))
}

func TestDefinition_FilenameMatcher(t *testing.T) {
	def := NewDefinition()

	tests := []struct {
		name     string
		filename string
		want     int
	}{
		{name: "should match .cy.ts", filename: "login.cy.ts", want: 20},
		{name: "should match .cy.jsx", filename: "button.cy.jsx", want: 20},
		{name: "should not match .spec.ts", filename: "login.spec.ts", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := framework.Signal{Type: framework.SignalFileName, Value: tt.filename}
			best := 0
			for _, m := range def.Matchers {
				if r := m.Match(context.Background(), signal); r.Confidence > best {
					best = r.Confidence
				}
			}
			assert.Equal(t, tt.want, best)
		})
	}
}
