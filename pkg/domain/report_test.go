package domain

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *SplitError
		want string
	}{
		{
			name: "should format run-level errors with phase only",
			err:  &SplitError{Err: os.ErrPermission, Order: -1, Phase: PhaseDiscovery},
			want: "[discovery] permission denied",
		},
		{
			name: "should format file-level errors with path",
			err:  NewFileError("a.spec.ts", PhaseRead, os.ErrNotExist),
			want: "[read] a.spec.ts: file does not exist",
		},
		{
			name: "should format target errors with number and label",
			err:  NewTargetError("a.spec.ts", LeafRecord{Label: "adds", Order: 1}, PhaseRelocate, ErrNotRelocatable),
			want: `[relocate] a.spec.ts #2 "adds": splitter: target leaf not relocatable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	t.Run("should unwrap to the underlying error", func(t *testing.T) {
		t.Parallel()

		var err error = NewTargetError("a.spec.ts", LeafRecord{}, PhaseRemove, ErrMalformedRemovalSite)
		assert.True(t, errors.Is(err, ErrMalformedRemovalSite))

		var splitErr *SplitError
		require.True(t, errors.As(err, &splitErr))
		assert.Equal(t, PhaseRemove, splitErr.Phase)
	})

	t.Run("should marshal the message instead of the error value", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(NewTargetError("a.spec.ts", LeafRecord{Label: "adds", Order: 0}, PhaseWrite, os.ErrPermission))
		require.NoError(t, err)

		assert.JSONEq(t, `{"path":"a.spec.ts","label":"adds","order":0,"phase":"write","message":"permission denied"}`, string(data))
	})
}

func TestRunReport_Tally(t *testing.T) {
	t.Parallel()

	report := &RunReport{
		Files: []FileReport{
			{Path: "a.spec.ts", Status: FileStatusSplit, Outputs: []OutputFile{{Path: "results/a1.spec.ts"}, {Path: "results/a2.spec.ts"}}},
			{Path: "b.spec.ts", Status: FileStatusSplit, Outputs: []OutputFile{{Path: "results/b1.spec.ts"}}, Errors: []SplitError{{Phase: PhaseRelocate}}},
			{Path: "c.spec.ts", Status: FileStatusSkipped},
			{Path: "d.spec.ts", Status: FileStatusFailed, Errors: []SplitError{{Phase: PhaseParse}}},
		},
		Errors: []SplitError{{Phase: PhaseDiscovery}},
		Stats:  RunStats{Duration: 42},
	}

	report.Tally()

	assert.Equal(t, RunStats{
		FilesProcessed: 4,
		FilesSplit:     2,
		FilesSkipped:   1,
		FilesFailed:    1,
		OutputsWritten: 3,
		Failures:       3,
		Duration:       42,
	}, report.Stats)
	assert.True(t, report.HasFailures())
}
