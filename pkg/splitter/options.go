package splitter

import (
	"log/slog"
	"time"

	"github.com/gobwas/glob"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/framework"
)

// Options configures splitter behavior.
type Options struct {
	// DryRun computes every output without writing any file.
	DryRun bool

	// ExcludePatterns specifies directory names (or doublestar globs over
	// root-relative paths) to skip during discovery.
	// These are combined with DefaultSkipPatterns.
	ExcludePatterns []string

	// Framework selects a registered marker preset. Empty or "auto" detects
	// the framework per file.
	Framework string

	// IncludePatterns are doublestar globs over root-relative, slash-separated paths.
	// Empty means DefaultIncludePatterns.
	IncludePatterns []string

	// LabelFilter restricts which test cases are written. Numbering is unaffected.
	LabelFilter glob.Glob

	// Logger receives per-file and per-target diagnostics. Nil discards them.
	Logger *slog.Logger

	// Markers overrides the non-empty marker sets of the selected preset.
	Markers domain.MarkerConfig

	// MaxFileSize is the maximum input size in bytes. Larger files are skipped.
	MaxFileSize int64

	// OutputDir is where outputs are written, mirroring the input tree.
	// Empty writes to DefaultOutputDirName next to each input.
	OutputDir string

	// Progress is called once per processed file, from worker goroutines.
	Progress func(domain.FileReport)

	// PruneHookOnlyGroups lets groups holding only hooks be pruned.
	PruneHookOnlyGroups bool

	// Registry is the framework registry used for presets and detection.
	// If nil, uses framework.DefaultRegistry().
	Registry *framework.Registry

	// Separator is placed between the file stem and the test case number.
	Separator string

	// Timeout is the maximum duration for a whole run.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Unwrap lists group callees that may be replaced by their only test case.
	Unwrap []string

	// Workers specifies the number of files processed concurrently.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring Splitter.
type Option func(*Options)

// WithWorkers sets the number of concurrent file workers.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the run timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithFramework selects a marker preset by name.
func WithFramework(name string) Option {
	return func(o *Options) {
		o.Framework = name
	}
}

// WithMarkers overrides the marker sets of the selected preset.
func WithMarkers(markers domain.MarkerConfig) Option {
	return func(o *Options) {
		o.Markers = markers.Clone()
	}
}

// WithPruneHookOnlyGroups switches the pruning policy for groups holding only hooks.
func WithPruneHookOnlyGroups(enabled bool) Option {
	return func(o *Options) {
		o.PruneHookOnlyGroups = enabled
	}
}

// WithUnwrap enables unwrapping for the given group callees.
func WithUnwrap(callees ...string) Option {
	return func(o *Options) {
		o.Unwrap = append([]string(nil), callees...)
	}
}

// WithLabelFilter restricts the written test cases to labels matching filter.
func WithLabelFilter(filter glob.Glob) Option {
	return func(o *Options) {
		o.LabelFilter = filter
	}
}

// WithOutputDir sets the directory outputs are written to.
func WithOutputDir(dir string) Option {
	return func(o *Options) {
		o.OutputDir = dir
	}
}

// WithSeparator sets the separator between file stem and test case number.
func WithSeparator(sep string) Option {
	return func(o *Options) {
		o.Separator = sep
	}
}

// WithDryRun enables or disables dry-run mode.
func WithDryRun(enabled bool) Option {
	return func(o *Options) {
		o.DryRun = enabled
	}
}

// WithIncludePatterns sets the doublestar globs selecting input files.
func WithIncludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.IncludePatterns = patterns
	}
}

// WithExcludePatterns adds directory patterns to skip during file discovery.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithMaxFileSize sets the maximum input size to process.
// Negative values are ignored.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

// WithProgress sets the per-file progress callback.
func WithProgress(fn func(domain.FileReport)) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

// WithRegistry sets the framework registry to use.
func WithRegistry(registry *framework.Registry) Option {
	return func(o *Options) {
		o.Registry = registry
	}
}

// CompileLabelFilter compiles a glob over test case labels.
// An empty pattern yields a nil filter that accepts every label.
func CompileLabelFilter(pattern string) (glob.Glob, error) {
	if pattern == "" {
		return nil, nil
	}
	return glob.Compile(pattern)
}

func applyDefaults(opts *Options) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Registry == nil {
		opts.Registry = framework.DefaultRegistry()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if len(opts.IncludePatterns) == 0 {
		opts.IncludePatterns = DefaultIncludePatterns
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
}
