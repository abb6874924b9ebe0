package splitter_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/splitter"
)

const authSpec = `import { describe, it, expect } from 'vitest';

describe('auth', () => {
  it('login works', () => {
    expect(true).toBe(true);
  });

  it('logout works', () => {
    expect(true).toBe(true);
  });

  it('login fails', () => {
    expect(false).toBe(false);
  });
});
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func outputPaths(fr domain.FileReport) []string {
	paths := make([]string, 0, len(fr.Outputs))
	for _, out := range fr.Outputs {
		paths = append(paths, out.Path)
	}
	return paths
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("should return an empty report for an empty directory", func(t *testing.T) {
		t.Parallel()

		report, err := splitter.Run(context.Background(), t.TempDir())
		require.NoError(t, err)

		assert.Empty(t, report.Files)
		assert.Equal(t, 0, report.Stats.FilesProcessed)
		assert.False(t, report.HasFailures())
	})

	t.Run("should write one output per test case next to the input", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "auth.spec.ts"), authSpec)

		report, err := splitter.Run(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		fr := report.Files[0]
		assert.Equal(t, "auth.spec.ts", fr.Path)
		assert.Equal(t, "vitest", fr.Framework)
		assert.Equal(t, domain.FileStatusSplit, fr.Status)
		assert.Equal(t, 3, fr.Leaves)
		assert.Equal(t, []string{
			"results/auth1.spec.ts",
			"results/auth2.spec.ts",
			"results/auth3.spec.ts",
		}, outputPaths(fr))
		assert.Equal(t, "logout works", fr.Outputs[1].Label)

		assert.Equal(t, `import { describe, it, expect } from 'vitest';

describe('auth', () => {
  it('login works', () => {
    expect(true).toBe(true);
  });
});
`, readFile(t, filepath.Join(root, "results", "auth1.spec.ts")))

		assert.Equal(t, 1, report.Stats.FilesSplit)
		assert.Equal(t, 3, report.Stats.OutputsWritten)
	})

	t.Run("should skip files with a single test case", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "single.test.js"), "it('only one', () => {});\n")

		report, err := splitter.Run(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		assert.Equal(t, domain.FileStatusSkipped, report.Files[0].Status)
		assert.Equal(t, "nothing to split", report.Files[0].Reason)
		assert.Empty(t, report.Files[0].Outputs)
		assert.Equal(t, 1, report.Stats.FilesSkipped)

		_, err = os.Stat(filepath.Join(root, "results"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("should skip files whose labels are all computed", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "dynamic.test.js"), "for (const n of [1, 2]) {\n  it(`case ${n}`, () => {});\n}\n")

		report, err := splitter.Run(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		assert.Equal(t, 0, report.Files[0].Leaves)
		assert.Equal(t, domain.FileStatusSkipped, report.Files[0].Status)
	})

	t.Run("should plan outputs without writing in dry-run mode", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "auth.spec.ts"), authSpec)

		report, err := splitter.Run(context.Background(), root, splitter.WithDryRun(true))
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		assert.True(t, report.DryRun)
		assert.Len(t, report.Files[0].Outputs, 3)

		_, err = os.Stat(filepath.Join(root, "results"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("should mirror inputs under the output directory with a separator", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		out := t.TempDir()
		writeFile(t, filepath.Join(root, "nested", "auth.spec.ts"), authSpec)

		report, err := splitter.Run(context.Background(), root,
			splitter.WithOutputDir(out),
			splitter.WithSeparator("-"),
		)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)
		assert.Equal(t, "nested/auth.spec.ts", report.Files[0].Path)

		for _, name := range []string{"auth-1.spec.ts", "auth-2.spec.ts", "auth-3.spec.ts"} {
			_, err := os.Stat(filepath.Join(out, "nested", name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("should not rediscover its own outputs", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "auth.spec.ts"), authSpec)

		_, err := splitter.Run(context.Background(), root)
		require.NoError(t, err)

		report, err := splitter.Run(context.Background(), root)
		require.NoError(t, err)

		require.Len(t, report.Files, 1)
		assert.Equal(t, "auth.spec.ts", report.Files[0].Path)
	})

	t.Run("should respect include and exclude patterns", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "node_modules", "lib", "lib.spec.ts"), authSpec)
		writeFile(t, filepath.Join(root, "legacy", "old.spec.ts"), authSpec)
		writeFile(t, filepath.Join(root, "src", "new.spec.ts"), authSpec)
		writeFile(t, filepath.Join(root, "src", "helper.ts"), authSpec)

		report, err := splitter.Run(context.Background(), root,
			splitter.WithExcludePatterns([]string{"legacy"}),
			splitter.WithDryRun(true),
		)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)
		assert.Equal(t, "src/new.spec.ts", report.Files[0].Path)

		report, err = splitter.Run(context.Background(), root,
			splitter.WithIncludePatterns([]string{"src/*.ts"}),
			splitter.WithDryRun(true),
		)
		require.NoError(t, err)
		require.Len(t, report.Files, 2)
		assert.Equal(t, "src/helper.ts", report.Files[0].Path)
		assert.Equal(t, "src/new.spec.ts", report.Files[1].Path)
	})

	t.Run("should split a single file root regardless of include patterns", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		input := filepath.Join(root, "helper.ts")
		writeFile(t, input, authSpec)

		report, err := splitter.Run(context.Background(), input)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		assert.Equal(t, "helper.ts", report.Files[0].Path)
		assert.Equal(t, "results/helper1.ts", report.Files[0].Outputs[0].Path)
	})

	t.Run("should record unparsable files and keep going", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "auth.spec.ts"), authSpec)
		writeFile(t, filepath.Join(root, "broken.spec.ts"), "describe('a', () => {\n")

		report, err := splitter.Run(context.Background(), root, splitter.WithDryRun(true))
		require.NoError(t, err)
		require.Len(t, report.Files, 2)

		broken := report.Files[1]
		assert.Equal(t, "broken.spec.ts", broken.Path)
		assert.Equal(t, domain.FileStatusFailed, broken.Status)
		require.Len(t, broken.Errors, 1)
		assert.Equal(t, domain.PhaseParse, broken.Errors[0].Phase)
		assert.ErrorIs(t, &broken.Errors[0], domain.ErrUnparsable)

		assert.Equal(t, domain.FileStatusSplit, report.Files[0].Status)
		assert.Equal(t, 1, report.Stats.FilesFailed)
		assert.Equal(t, 1, report.Stats.Failures)
		assert.True(t, report.HasFailures())
	})

	t.Run("should record per-target failures without blocking other targets", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "odd.test.js"), `describe('a', () => it('inline', () => {}));
it('one', () => {});
it('two', () => {});
`)

		report, err := splitter.Run(context.Background(), root, splitter.WithDryRun(true))
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		fr := report.Files[0]
		assert.Equal(t, domain.FileStatusSplit, fr.Status)
		assert.Len(t, fr.Outputs, 1)
		assert.Equal(t, "inline", fr.Outputs[0].Label)
		require.Len(t, fr.Errors, 2)
		for _, e := range fr.Errors {
			assert.Equal(t, domain.PhaseRemove, e.Phase)
		}
	})

	t.Run("should restrict outputs to matching labels without renumbering", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "auth.spec.ts"), authSpec)

		report, err := splitter.Run(context.Background(), root,
			splitter.WithLabelFilter(glob.MustCompile("login*")),
			splitter.WithDryRun(true),
		)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		assert.Equal(t, []string{"results/auth1.spec.ts", "results/auth3.spec.ts"}, outputPaths(report.Files[0]))
	})

	t.Run("should use the selected framework preset", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "flow.cy.js"), `describe('flow', () => {
  context('step', () => {
    specify('first', () => {});
  });
  specify('second', () => {});
});
`)

		report, err := splitter.Run(context.Background(), root,
			splitter.WithFramework("mocha"),
			splitter.WithUnwrap("context"),
		)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)
		assert.Equal(t, "mocha", report.Files[0].Framework)
		require.Len(t, report.Files[0].Outputs, 2)

		assert.Equal(t, `describe('flow', () => {
  specify('first', () => {});
});
`, readFile(t, filepath.Join(root, "results", "flow1.cy.js")))
	})

	t.Run("should detect the framework from a multi-line import", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.spec.ts"), `import {
  describe,
  context,
  it,
} from 'mocha';

describe('a', () => {
  context('one', () => {
    it('first', () => {});
  });

  context('two', () => {
    it('second', () => {});
  });
});
`)

		report, err := splitter.Run(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, report.Files, 1)
		assert.Equal(t, "mocha", report.Files[0].Framework)
		assert.Equal(t, domain.FileStatusSplit, report.Files[0].Status)

		first := readFile(t, filepath.Join(root, "results", "a1.spec.ts"))
		assert.Contains(t, first, "context('one'")
		assert.NotContains(t, first, "context('two'")

		second := readFile(t, filepath.Join(root, "results", "a2.spec.ts"))
		assert.NotContains(t, second, "context('one'")
		assert.Contains(t, second, "context('two'")
	})

	t.Run("should record write failures and keep splitting other files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.spec.ts"), authSpec)
		writeFile(t, filepath.Join(root, "sub", "b.spec.ts"), authSpec)
		// A regular file where the output directory should go.
		writeFile(t, filepath.Join(root, "results"), "not a directory\n")

		report, err := splitter.Run(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, report.Files, 2)

		blocked := report.Files[0]
		assert.Equal(t, "a.spec.ts", blocked.Path)
		assert.Equal(t, domain.FileStatusFailed, blocked.Status)
		assert.Empty(t, blocked.Outputs)
		require.Len(t, blocked.Errors, 3)
		for i, e := range blocked.Errors {
			assert.Equal(t, domain.PhaseWrite, e.Phase)
			assert.Equal(t, i, e.Order)
			assert.Equal(t, "a.spec.ts", e.Path)
		}

		other := report.Files[1]
		assert.Equal(t, "sub/b.spec.ts", other.Path)
		assert.Equal(t, domain.FileStatusSplit, other.Status)
		assert.Equal(t, []string{
			"sub/results/b1.spec.ts",
			"sub/results/b2.spec.ts",
			"sub/results/b3.spec.ts",
		}, outputPaths(other))
		assert.FileExists(t, filepath.Join(root, "sub", "results", "b3.spec.ts"))

		assert.Equal(t, 1, report.Stats.FilesFailed)
		assert.Equal(t, 1, report.Stats.FilesSplit)
		assert.Equal(t, 3, report.Stats.Failures)
		assert.Equal(t, 3, report.Stats.OutputsWritten)
		assert.True(t, report.HasFailures())
	})

	t.Run("should reject unknown frameworks", func(t *testing.T) {
		t.Parallel()

		_, err := splitter.Run(context.Background(), t.TempDir(), splitter.WithFramework("ava"))
		assert.ErrorIs(t, err, splitter.ErrUnknownFramework)
	})

	t.Run("should fail when the root does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := splitter.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("should report cancellation", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "auth.spec.ts"), authSpec)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := splitter.Run(ctx, root)
		assert.ErrorIs(t, err, splitter.ErrRunCancelled)
		assert.NotNil(t, report)
	})

	t.Run("should call progress once per file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		for _, name := range []string{"a.spec.ts", "b.spec.ts", "c.spec.ts"} {
			writeFile(t, filepath.Join(root, name), authSpec)
		}

		var calls atomic.Int32
		report, err := splitter.Run(context.Background(), root,
			splitter.WithWorkers(2),
			splitter.WithDryRun(true),
			splitter.WithProgress(func(domain.FileReport) { calls.Add(1) }),
		)
		require.NoError(t, err)

		assert.Equal(t, int32(3), calls.Load())
		require.Len(t, report.Files, 3)
		assert.Equal(t, "a.spec.ts", report.Files[0].Path)
		assert.Equal(t, "c.spec.ts", report.Files[2].Path)
	})
}

func TestRunFiles(t *testing.T) {
	t.Parallel()

	t.Run("should split only the given files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.spec.ts"), authSpec)
		writeFile(t, filepath.Join(root, "b.spec.ts"), authSpec)

		report, err := splitter.New(splitter.WithDryRun(true)).RunFiles(context.Background(), root, []string{"b.spec.ts"})
		require.NoError(t, err)

		require.Len(t, report.Files, 1)
		assert.Equal(t, "b.spec.ts", report.Files[0].Path)
		assert.Equal(t, domain.FileStatusSplit, report.Files[0].Status)
	})

	t.Run("should record missing files as read failures", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()

		report, err := splitter.New().RunFiles(context.Background(), root, []string{"gone.spec.ts"})
		require.NoError(t, err)

		require.Len(t, report.Files, 1)
		assert.Equal(t, domain.FileStatusFailed, report.Files[0].Status)
		assert.Equal(t, domain.PhaseRead, report.Files[0].Errors[0].Phase)
	})

	t.Run("should return an empty report for no files", func(t *testing.T) {
		t.Parallel()

		report, err := splitter.New().RunFiles(context.Background(), t.TempDir(), nil)
		require.NoError(t, err)
		assert.Empty(t, report.Files)
	})
}

func TestOptions(t *testing.T) {
	t.Run("WithWorkers sets worker count", func(t *testing.T) {
		opts := &splitter.Options{}
		splitter.WithWorkers(4)(opts)
		assert.Equal(t, 4, opts.Workers)
	})

	t.Run("WithWorkers ignores negative values", func(t *testing.T) {
		opts := &splitter.Options{Workers: 4}
		splitter.WithWorkers(-1)(opts)
		assert.Equal(t, 4, opts.Workers)
	})

	t.Run("WithTimeout ignores negative values", func(t *testing.T) {
		opts := &splitter.Options{Timeout: time.Minute}
		splitter.WithTimeout(-1)(opts)
		assert.Equal(t, time.Minute, opts.Timeout)
	})

	t.Run("WithMaxFileSize ignores negative values", func(t *testing.T) {
		opts := &splitter.Options{MaxFileSize: 100}
		splitter.WithMaxFileSize(-1)(opts)
		assert.Equal(t, int64(100), opts.MaxFileSize)
	})

	t.Run("WithMarkers copies the marker sets", func(t *testing.T) {
		markers := domain.MarkerConfig{Tests: []string{"scenario"}}
		opts := &splitter.Options{}
		splitter.WithMarkers(markers)(opts)
		markers.Tests[0] = "changed"
		assert.Equal(t, []string{"scenario"}, opts.Markers.Tests)
	})

	t.Run("CompileLabelFilter returns nil for an empty pattern", func(t *testing.T) {
		filter, err := splitter.CompileLabelFilter("")
		require.NoError(t, err)
		assert.Nil(t, filter)
	})

	t.Run("CompileLabelFilter matches labels", func(t *testing.T) {
		filter, err := splitter.CompileLabelFilter("login*")
		require.NoError(t, err)
		assert.True(t, filter.Match("login works"))
		assert.False(t, filter.Match("logout works"))
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("should report every leaf without writing outputs", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "auth.spec.ts"), authSpec)
		writeFile(t, filepath.Join(root, "single.test.js"), "it('only one', () => {});\n")

		files, err := splitter.New().List(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, files, 2)

		assert.Equal(t, "auth.spec.ts", files[0].Path)
		require.Len(t, files[0].Leaves, 3)
		assert.Equal(t, "logout works", files[0].Leaves[1].Label)
		assert.Equal(t, 1, files[0].Leaves[1].Order)
		assert.Nil(t, files[0].Err)

		assert.Equal(t, "single.test.js", files[1].Path)
		assert.Len(t, files[1].Leaves, 1)

		assert.NoDirExists(t, filepath.Join(root, splitter.DefaultOutputDirName))
	})

	t.Run("should record parse failures per file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "broken.spec.js"), "describe('a', () => {\n")

		files, err := splitter.New().List(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.NotNil(t, files[0].Err)
		assert.Equal(t, domain.PhaseParse, files[0].Err.Phase)
		assert.ErrorIs(t, files[0].Err, domain.ErrUnparsable)
	})

	t.Run("should reject unknown frameworks", func(t *testing.T) {
		t.Parallel()

		_, err := splitter.New(splitter.WithFramework("nope")).List(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, splitter.ErrUnknownFramework)
	})
}
