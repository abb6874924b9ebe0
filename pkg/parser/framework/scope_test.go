package framework

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigScope_Contains(t *testing.T) {
	t.Parallel()

	scope := NewConfigScope(filepath.Join("/repo", "web", "jest.config.js"), "jest")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "should contain files below the config directory", path: "/repo/web/src/a.test.ts", want: true},
		{name: "should contain files next to the config", path: "/repo/web/a.test.ts", want: true},
		{name: "should not contain sibling directories", path: "/repo/api/a.test.ts", want: false},
		{name: "should not contain directories sharing a prefix", path: "/repo/webapp/a.test.ts", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scope.Contains(filepath.FromSlash(tt.path)))
		})
	}

	t.Run("should not contain anything when nil", func(t *testing.T) {
		t.Parallel()

		var nilScope *ConfigScope
		assert.False(t, nilScope.Contains("/repo/a.test.ts"))
	})
}

func TestConfigScope_Depth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, NewConfigScope("/repo/jest.config.js", "jest").Depth())
	assert.Equal(t, 3, NewConfigScope("/repo/a/b/jest.config.js", "jest").Depth())
	assert.Equal(t, 0, (*ConfigScope)(nil).Depth())
}

func TestProjectScope_Nearest(t *testing.T) {
	t.Parallel()

	ps := NewProjectScope()
	ps.AddConfig("/repo/jest.config.js", NewConfigScope("/repo/jest.config.js", "jest"))
	ps.AddConfig("/repo/e2e/playwright.config.ts", NewConfigScope("/repo/e2e/playwright.config.ts", "playwright"))

	assert.Equal(t, "playwright", ps.Nearest("/repo/e2e/login.spec.ts").Framework)
	assert.Equal(t, "jest", ps.Nearest("/repo/src/login.spec.ts").Framework)
	assert.Nil(t, (*ProjectScope)(nil).Nearest("/repo/src/login.spec.ts"))
}
