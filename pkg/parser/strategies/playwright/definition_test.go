package playwright

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/splitter/pkg/parser/framework"
)

func TestNewDefinition(t *testing.T) {
	def := NewDefinition()

	assert.Equal(t, "playwright", def.Name)
	assert.Equal(t, framework.PriorityE2E, def.Priority)
	require.NoError(t, def.Markers.Validate())
}

func TestMarkers(t *testing.T) {
	markers := Markers()

	assert.Equal(t, []string{"test", "test.only", "test.skip", "test.fixme", "test.fail", "test.slow"}, markers.Tests)
	assert.Contains(t, markers.Groups, "test.describe.serial")
	assert.Contains(t, markers.Hooks, "test.beforeEach")
	assert.False(t, markers.IsTest("it"))
	assert.False(t, markers.IsGroup("describe"))
}

func TestDefinition_ContentMatcher(t *testing.T) {
	def := NewDefinition()
	signal := framework.Signal{
		Type:    framework.SignalFileContent,
		Context: []byte("test('home', async ({ page }) => {\n  await page.goto('/');\n});\n"),
	}

	best := 0
	for _, m := range def.Matchers {
		if r := m.Match(context.Background(), signal); r.Confidence > best {
			best = r.Confidence
		}
	}
	assert.Equal(t, 40, best)
}
