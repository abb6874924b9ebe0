package detection

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/detection/extraction"
	"github.com/specvital/splitter/pkg/parser/framework"
)

// Evidence sources and their weights.
const (
	SourceConfigScope = "config-scope"
	SourceImport      = "import"
	SourceContent     = "content"
	SourceFilename    = "filename"

	confidenceConfigScope = 80
	confidenceImport      = 60
	confidenceContent     = 40
	confidenceFilename    = 20
)

// Detector performs confidence-based framework detection.
// It uses a multi-stage detection algorithm that evaluates:
// 1. Config scope matches (highest confidence: 80 points)
// 2. Import statements (high confidence: 60 points)
// 3. Content patterns (moderate confidence: 40 points)
// 4. Filename patterns (low confidence: 20 points)
//
// Evidence is accumulated across all stages, and the framework
// with the highest total confidence (without negative evidence) is selected.
// Import evidence wins over any amount of evidence from the other stages.
type Detector struct {
	registry     *framework.Registry
	projectScope *framework.ProjectScope
}

// NewDetector creates a new confidence-based detector.
func NewDetector(registry *framework.Registry) *Detector {
	return &Detector{
		registry: registry,
	}
}

// SetProjectScope configures the detector with the config files found under the run root.
func (d *Detector) SetProjectScope(scope *framework.ProjectScope) {
	d.projectScope = scope
}

// Detect performs multi-stage framework detection on a test file.
func (d *Detector) Detect(ctx context.Context, filePath string, content []byte) Result {
	if !isScriptFile(filePath) {
		return Result{}
	}

	frameworks := d.registry.All()
	if len(frameworks) == 0 {
		return Result{}
	}

	module := readModule(ctx, filePath, content)
	results := make(map[string]*Result)

	d.detectFromScope(filePath, results)
	d.detectFromImports(ctx, module.Sources, frameworks, results)
	d.detectFromContent(ctx, module.Code, frameworks, results)
	d.detectFromFilename(ctx, filePath, frameworks, results)

	return d.selectBestMatch(frameworks, results)
}

func (d *Detector) detectFromScope(filePath string, results map[string]*Result) {
	scope := d.projectScope.Nearest(filePath)
	if scope == nil || d.registry.Find(scope.Framework) == nil {
		return
	}

	result := getOrCreate(results, scope.Framework)
	result.Scope = scope
	result.AddEvidence(Evidence{
		Source:      SourceConfigScope,
		Description: "File matches config scope: " + scope.ConfigPath,
		Confidence:  confidenceConfigScope,
	})
}

// readModule falls back to the raw content, with no imports, when the file
// cannot be parsed.
func readModule(ctx context.Context, filePath string, content []byte) *extraction.Module {
	module, err := extraction.ReadModule(ctx, domain.DetectLanguage(filePath), content)
	if err != nil {
		return &extraction.Module{Code: content}
	}
	return module
}

func (d *Detector) detectFromImports(ctx context.Context, imports []string, frameworks []*framework.Definition, results map[string]*Result) {
	if len(imports) == 0 {
		return
	}

	for _, fw := range frameworks {
		for _, matcher := range fw.Matchers {
			for _, imp := range imports {
				signal := framework.Signal{
					Type:  framework.SignalImport,
					Value: imp,
				}
				record(results, fw.Name, SourceImport, confidenceImport, matcher.Match(ctx, signal))
			}
		}
	}
}

func (d *Detector) detectFromContent(ctx context.Context, code []byte, frameworks []*framework.Definition, results map[string]*Result) {
	signal := framework.Signal{
		Type:    framework.SignalFileContent,
		Context: code,
	}

	for _, fw := range frameworks {
		for _, matcher := range fw.Matchers {
			record(results, fw.Name, SourceContent, confidenceContent, matcher.Match(ctx, signal))
		}
	}
}

func (d *Detector) detectFromFilename(ctx context.Context, filePath string, frameworks []*framework.Definition, results map[string]*Result) {
	signal := framework.Signal{
		Type:  framework.SignalFileName,
		Value: filepath.Base(filePath),
	}

	for _, fw := range frameworks {
		for _, matcher := range fw.Matchers {
			record(results, fw.Name, SourceFilename, confidenceFilename, matcher.Match(ctx, signal))
		}
	}
}

func record(results map[string]*Result, name, source string, confidence int, mr framework.MatchResult) {
	if mr.Confidence <= 0 && !mr.Negative {
		return
	}

	result := getOrCreate(results, name)
	for _, ev := range mr.Evidence {
		result.AddEvidence(Evidence{
			Source:      source,
			Description: ev,
			Confidence:  confidence,
			Negative:    mr.Negative,
		})
	}
}

// selectBestMatch walks frameworks in registry order so that equal scores
// resolve to the higher-priority definition.
func (d *Detector) selectBestMatch(frameworks []*framework.Definition, results map[string]*Result) Result {
	var best Result
	bestHasImport := false

	for _, fw := range frameworks {
		result, ok := results[fw.Name]
		if !ok {
			continue
		}

		total := 0
		negative := false
		hasImport := false
		for _, ev := range result.Evidence {
			if ev.Negative {
				negative = true
				continue
			}
			total += ev.Confidence
			if ev.Source == SourceImport {
				hasImport = true
			}
		}
		if negative || total == 0 {
			continue
		}

		if total > 100 {
			total = 100
		}

		result.Framework = fw.Name
		result.Confidence = total

		if hasImport && !bestHasImport {
			best = *result
			bestHasImport = true
		} else if hasImport == bestHasImport && total > best.Confidence {
			best = *result
		}
	}

	return best
}

func getOrCreate(results map[string]*Result, name string) *Result {
	if r, ok := results[name]; ok {
		return r
	}

	r := &Result{
		Framework: name,
		Evidence:  make([]Evidence, 0, 4),
	}
	results[name] = r
	return r
}

func isScriptFile(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs":
		return true
	default:
		return false
	}
}
