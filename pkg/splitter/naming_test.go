package splitter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		wantBase string
		wantExt  string
	}{
		{name: "should keep the spec infix", filename: "login.spec.ts", wantBase: "login", wantExt: ".spec.ts"},
		{name: "should keep the test infix", filename: "user.service.test.js", wantBase: "user.service", wantExt: ".test.js"},
		{name: "should keep the cypress infix", filename: "checkout.cy.tsx", wantBase: "checkout", wantExt: ".cy.tsx"},
		{name: "should keep the e2e infix", filename: "app.e2e.ts", wantBase: "app", wantExt: ".e2e.ts"},
		{name: "should split plain files at the last dot", filename: "helpers.ts", wantBase: "helpers", wantExt: ".ts"},
		{name: "should not strip an infix that is the whole stem", filename: "spec.ts", wantBase: "spec", wantExt: ".ts"},
		{name: "should handle files without extension", filename: "Makefile", wantBase: "Makefile", wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base, ext := SplitName(tt.filename)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestOutputName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "login3.spec.ts", OutputName("login.spec.ts", "", 3))
	assert.Equal(t, "login-3.spec.ts", OutputName("login.spec.ts", "-", 3))
	assert.Equal(t, "helpers1.js", OutputName("helpers.js", "", 1))
}

func TestOutputDir(t *testing.T) {
	t.Parallel()

	root := filepath.Join("/repo", "tests")
	input := filepath.Join(root, "auth", "login.spec.ts")

	tests := []struct {
		name   string
		outDir string
		input  string
		want   string
	}{
		{
			name:  "should default to results next to the input",
			input: input,
			want:  filepath.Join(root, "auth", DefaultOutputDirName),
		},
		{
			name:   "should mirror the input tree under the output directory",
			outDir: filepath.Join("/out"),
			input:  input,
			want:   filepath.Join("/out", "auth"),
		},
		{
			name:   "should write inputs at the root directly into the output directory",
			outDir: filepath.Join("/out"),
			input:  filepath.Join(root, "login.spec.ts"),
			want:   filepath.Join("/out"),
		},
		{
			name:   "should fall back to the output directory for inputs outside root",
			outDir: filepath.Join("/out"),
			input:  filepath.Join("/elsewhere", "login.spec.ts"),
			want:   filepath.Join("/out"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, OutputDir(root, tt.input, tt.outDir))
		})
	}
}
