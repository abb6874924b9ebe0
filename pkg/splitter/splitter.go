// Package splitter decomposes test files into one file per test case.
//
// Each output keeps the scaffolding of its input (imports, shared
// declarations, hooks and group nesting) and exactly one test case.
// Sibling test cases are removed and groups left without meaningful content
// are pruned. Every extraction parses its own tree, so the input is never
// mutated and extractions never observe each other's edits.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/detection"
	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/parser/jsast"

	// Register the built-in marker presets.
	_ "github.com/specvital/splitter/pkg/parser/strategies/all"
)

const (
	// DefaultWorkers indicates that the splitter should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default run timeout duration.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum input size (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

const (
	reasonNothingToSplit = "nothing to split"
	reasonFilteredOut    = "no test case matched the label filter"
)

var (
	// ErrRunCancelled is returned when a run is cancelled via context.
	ErrRunCancelled = errors.New("splitter: run cancelled")
	// ErrRunTimeout is returned when a run exceeds the timeout duration.
	ErrRunTimeout = errors.New("splitter: run timeout")
	// ErrUnknownFramework is returned when the selected preset is not registered.
	ErrUnknownFramework = errors.New("splitter: unknown framework")
)

// Splitter discovers test files and writes one output per test case.
type Splitter struct {
	logger  *slog.Logger
	options *Options
}

// run holds the state shared by the files of a single Run or RunFiles call.
type run struct {
	rootDir  string
	detector *detection.Detector
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Splitter{
		logger:  options.Logger,
		options: options,
	}
}

// Run splits every test file under root. Root may be a directory or a single
// file; a single file bypasses the include patterns.
//
// Per-file and per-target failures are recorded in the report and never abort
// the run. The returned error is non-nil only when the run itself could not
// start or was cut short, in which case the partial report is still returned.
func (s *Splitter) Run(ctx context.Context, root string) (*domain.RunReport, error) {
	startTime := time.Now()

	if err := s.checkFramework(); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	rootDir := absRoot
	if !info.IsDir() {
		rootDir = filepath.Dir(absRoot)
	}

	report := &domain.RunReport{
		RootPath: absRoot,
		DryRun:   s.options.DryRun,
		Files:    []domain.FileReport{},
	}

	var files []string
	if info.IsDir() {
		var errs []error
		files, errs = s.discoverInputs(ctx, rootDir)
		for _, err := range errs {
			report.Errors = append(report.Errors, domain.SplitError{
				Err:   err,
				Order: -1,
				Phase: domain.PhaseDiscovery,
			})
		}
	} else {
		files = []string{absRoot}
	}

	s.logger.Info("discovered test files", "root", absRoot, "count", len(files))

	report.Files = s.splitFilesParallel(ctx, s.newRun(ctx, rootDir), files)

	return s.finish(ctx, report, startTime)
}

// RunFiles splits the given files (for incremental/watch mode).
// Relative paths are resolved against root, which also anchors report paths
// and output directory mirroring. Discovery and include patterns are bypassed.
func (s *Splitter) RunFiles(ctx context.Context, root string, files []string) (*domain.RunReport, error) {
	startTime := time.Now()

	if err := s.checkFramework(); err != nil {
		return nil, err
	}

	rootDir, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(rootDir, f)
		}
		paths = append(paths, filepath.Clean(f))
	}

	report := &domain.RunReport{
		RootPath: rootDir,
		DryRun:   s.options.DryRun,
		Files:    []domain.FileReport{},
	}
	if len(paths) > 0 {
		report.Files = s.splitFilesParallel(ctx, s.newRun(ctx, rootDir), paths)
	}

	return s.finish(ctx, report, startTime)
}

// Run splits every test file under root with a splitter built from opts.
func Run(ctx context.Context, root string, opts ...Option) (*domain.RunReport, error) {
	return New(opts...).Run(ctx, root)
}

func (s *Splitter) checkFramework() error {
	name := s.options.Framework
	if name == "" || name == framework.FrameworkAuto {
		return nil
	}
	if s.options.Registry.Find(name) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownFramework, name)
	}
	return nil
}

func (s *Splitter) detecting() bool {
	return s.options.Framework == "" || s.options.Framework == framework.FrameworkAuto
}

func (s *Splitter) newRun(ctx context.Context, rootDir string) *run {
	r := &run{rootDir: rootDir}
	if s.detecting() {
		r.detector = detection.NewDetector(s.options.Registry)
		configs := s.discoverConfigFiles(ctx, rootDir)
		r.detector.SetProjectScope(s.options.Registry.BuildProjectScope(ctx, configs))
		s.logger.Debug("built project scope", "configs", len(configs))
	}
	return r
}

func (s *Splitter) finish(ctx context.Context, report *domain.RunReport, startTime time.Time) (*domain.RunReport, error) {
	report.Stats.Duration = time.Since(startTime)
	report.Tally()

	s.logger.Info("split finished",
		"files", report.Stats.FilesProcessed,
		"split", report.Stats.FilesSplit,
		"skipped", report.Stats.FilesSkipped,
		"failed", report.Stats.FilesFailed,
		"outputs", report.Stats.OutputsWritten,
		"duration", report.Stats.Duration,
	)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return report, ErrRunTimeout
		}
		if errors.Is(err, context.Canceled) {
			return report, ErrRunCancelled
		}
	}

	return report, nil
}

func (s *Splitter) splitFilesParallel(ctx context.Context, r *run, files []string) []domain.FileReport {
	workers := s.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu      sync.Mutex
		reports = make([]domain.FileReport, 0, len(files))
	)

	for _, file := range files {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			fr := s.splitFile(gCtx, r, file)
			if s.options.Progress != nil {
				s.options.Progress(fr)
			}

			mu.Lock()
			reports = append(reports, fr)
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	// Workers finish in arbitrary order.
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})

	return reports
}

func (s *Splitter) splitFile(ctx context.Context, r *run, path string) domain.FileReport {
	relPath := r.relative(path)
	fr := domain.FileReport{
		Path:   relPath,
		Status: domain.FileStatusSkipped,
	}
	logger := s.logger.With("path", relPath)

	fail := func(phase domain.Phase, err error) domain.FileReport {
		logger.Warn("file failed", "phase", phase, "error", err)
		fr.Status = domain.FileStatusFailed
		fr.Errors = append(fr.Errors, *domain.NewFileError(relPath, phase, err))
		return fr
	}

	if err := ctx.Err(); err != nil {
		return fail(domain.PhaseRead, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fail(domain.PhaseRead, err)
	}

	markers, name, err := s.selectMarkers(ctx, r, path, content)
	fr.Framework = name
	if err != nil {
		return fail(domain.PhaseDiscovery, err)
	}

	lang := domain.DetectLanguage(path)
	tree, err := jsast.Parse(ctx, lang, content)
	if err != nil {
		if errors.Is(err, jsast.ErrSyntax) {
			err = fmt.Errorf("%w: %w", domain.ErrUnparsable, err)
		}
		return fail(domain.PhaseParse, err)
	}

	leaves := FindLeaves(tree.Root(), markers)
	fr.Leaves = len(leaves)
	if len(leaves) <= 1 {
		fr.Reason = reasonNothingToSplit
		logger.Debug("skipping file", "reason", fr.Reason, "leaves", len(leaves))
		return fr
	}

	outDir := OutputDir(r.rootDir, path, s.options.OutputDir)
	inputName := filepath.Base(path)

	for _, leaf := range leaves {
		if err := ctx.Err(); err != nil {
			fr.Errors = append(fr.Errors, *domain.NewTargetError(relPath, leaf, domain.PhaseParse, err))
			break
		}
		if s.options.LabelFilter != nil && !s.options.LabelFilter.Match(leaf.Label) {
			continue
		}

		result, err := ExtractOne(ctx, content, lang, leaf, markers)
		if err != nil {
			phase := classify(err)
			logger.Warn("test case not extracted", "label", leaf.Label, "order", leaf.Order, "phase", phase, "error", err)
			fr.Errors = append(fr.Errors, *domain.NewTargetError(relPath, leaf, phase, err))
			continue
		}

		outPath := filepath.Join(outDir, OutputName(inputName, s.options.Separator, leaf.Number()))
		if !s.options.DryRun {
			if err := writeFileAtomic(outPath, result.Source); err != nil {
				logger.Warn("test case not written", "label", leaf.Label, "order", leaf.Order, "error", err)
				fr.Errors = append(fr.Errors, *domain.NewTargetError(relPath, leaf, domain.PhaseWrite, err))
				continue
			}
		}

		fr.Outputs = append(fr.Outputs, domain.OutputFile{
			Path:  r.relative(outPath),
			Label: result.Label,
			Order: result.Order,
		})
	}

	switch {
	case len(fr.Outputs) > 0:
		fr.Status = domain.FileStatusSplit
	case len(fr.Errors) > 0:
		fr.Status = domain.FileStatusFailed
	default:
		fr.Reason = reasonFilteredOut
	}

	logger.Debug("file processed", "status", fr.Status, "outputs", len(fr.Outputs), "errors", len(fr.Errors))
	return fr
}

// selectMarkers resolves the marker configuration of one file: the explicit
// preset, or the detected one falling back to jest, with the configured
// overrides applied on top.
func (s *Splitter) selectMarkers(ctx context.Context, r *run, path string, content []byte) (domain.MarkerConfig, string, error) {
	name := s.options.Framework
	if s.detecting() {
		name = framework.FrameworkJest
		if r.detector != nil {
			if result := r.detector.Detect(ctx, path, content); result.IsDetected() {
				name = result.Framework
			}
		}
	}

	var markers domain.MarkerConfig
	if def := s.options.Registry.Find(name); def != nil {
		markers = def.Markers.Clone()
	}
	markers = markers.Merge(s.options.Markers)
	if s.options.PruneHookOnlyGroups {
		markers.PruneHookOnlyGroups = true
	}
	if len(s.options.Unwrap) > 0 {
		markers.Unwrap = slices.Clone(s.options.Unwrap)
	}

	if err := markers.Validate(); err != nil {
		return markers, name, err
	}
	return markers, name, nil
}

// classify maps an extraction error to the phase it occurred in.
func classify(err error) domain.Phase {
	switch {
	case errors.Is(err, domain.ErrUnparsable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return domain.PhaseParse
	case errors.Is(err, domain.ErrNotRelocatable):
		return domain.PhaseRelocate
	case errors.Is(err, domain.ErrMalformedRemovalSite):
		return domain.PhaseRemove
	default:
		return domain.PhasePrint
	}
}

// relative returns path relative to the run root, or path itself when it
// lies elsewhere.
func (r *run) relative(path string) string {
	rel, err := filepath.Rel(r.rootDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
