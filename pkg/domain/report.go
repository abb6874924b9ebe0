package domain

import "time"

// FileStatus is the outcome of splitting one input file.
type FileStatus string

const (
	FileStatusSplit   FileStatus = "split"
	FileStatusSkipped FileStatus = "skipped"
	FileStatusFailed  FileStatus = "failed"
)

// OutputFile is one extracted file, written or (in dry-run mode) planned.
type OutputFile struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// FileReport is the outcome for a single input file.
type FileReport struct {
	Path      string       `json:"path"`
	Framework string       `json:"framework,omitempty"`
	Status    FileStatus   `json:"status"`
	Reason    string       `json:"reason,omitempty"`
	Leaves    int          `json:"leaves"`
	Outputs   []OutputFile `json:"outputs,omitempty"`
	Errors    []SplitError `json:"errors,omitempty"`
}

// RunStats summarizes a run.
type RunStats struct {
	FilesProcessed int           `json:"filesProcessed"`
	FilesSplit     int           `json:"filesSplit"`
	FilesSkipped   int           `json:"filesSkipped"`
	FilesFailed    int           `json:"filesFailed"`
	OutputsWritten int           `json:"outputsWritten"`
	Failures       int           `json:"failures"`
	Duration       time.Duration `json:"duration"`
}

// RunReport is the complete outcome of a split run.
type RunReport struct {
	RootPath string       `json:"rootPath"`
	DryRun   bool         `json:"dryRun,omitempty"`
	Files    []FileReport `json:"files"`
	Errors   []SplitError `json:"errors,omitempty"`
	Stats    RunStats     `json:"stats"`
}

// HasFailures reports whether any file or target failed.
func (r *RunReport) HasFailures() bool {
	return r.Stats.Failures > 0
}

// Tally recomputes Stats from Files and run-level Errors, leaving Duration untouched.
func (r *RunReport) Tally() {
	stats := RunStats{Duration: r.Stats.Duration}
	for _, f := range r.Files {
		stats.FilesProcessed++
		switch f.Status {
		case FileStatusSplit:
			stats.FilesSplit++
		case FileStatusSkipped:
			stats.FilesSkipped++
		case FileStatusFailed:
			stats.FilesFailed++
		}
		stats.OutputsWritten += len(f.Outputs)
		stats.Failures += len(f.Errors)
	}
	stats.Failures += len(r.Errors)
	r.Stats = stats
}
