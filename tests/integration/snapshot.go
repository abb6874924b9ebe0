//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specvital/splitter/pkg/domain"
)

// Snapshot is the golden summary of a dry-run split of one repository.
type Snapshot struct {
	Repository        string         `json:"repository"`
	Ref               string         `json:"ref"`
	ExpectedFramework string         `json:"expectedFramework"`
	FileCount         int            `json:"fileCount"`
	OutputCount       int            `json:"outputCount"`
	FrameworkCounts   map[string]int `json:"frameworkCounts"`
	SampleFiles       []SnapshotFile `json:"sampleFiles"`
	Stats             SnapshotStats  `json:"stats"`
}

// SnapshotFile is one sampled input file of the snapshot.
type SnapshotFile struct {
	Path      string            `json:"path"`
	Framework string            `json:"framework"`
	Status    domain.FileStatus `json:"status"`
	Leaves    int               `json:"leaves"`
	Outputs   int               `json:"outputs"`
}

// SnapshotStats contains run statistics for comparison.
type SnapshotStats struct {
	FilesSplit   int `json:"filesSplit"`
	FilesSkipped int `json:"filesSkipped"`
	FilesFailed  int `json:"filesFailed"`
	Failures     int `json:"failures"`
}

// SnapshotFromReport creates a Snapshot from a run report.
func SnapshotFromReport(repo Repository, report *domain.RunReport) *Snapshot {
	frameworkCounts := make(map[string]int)
	for _, file := range report.Files {
		if file.Framework != "" {
			frameworkCounts[file.Framework]++
		}
	}

	return &Snapshot{
		Repository:        repo.Name,
		Ref:               repo.Ref,
		ExpectedFramework: repo.Framework,
		FileCount:         len(report.Files),
		OutputCount:       report.Stats.OutputsWritten,
		FrameworkCounts:   frameworkCounts,
		SampleFiles:       extractSampleFiles(report, 20),
		Stats: SnapshotStats{
			FilesSplit:   report.Stats.FilesSplit,
			FilesSkipped: report.Stats.FilesSkipped,
			FilesFailed:  report.Stats.FilesFailed,
			Failures:     report.Stats.Failures,
		},
	}
}

// extractSampleFiles extracts up to maxSamples files, sorted by path for determinism.
func extractSampleFiles(report *domain.RunReport, maxSamples int) []SnapshotFile {
	if len(report.Files) == 0 {
		return nil
	}

	sorted := make([]SnapshotFile, 0, len(report.Files))
	for _, f := range report.Files {
		sorted = append(sorted, SnapshotFile{
			Path:      f.Path,
			Framework: f.Framework,
			Status:    f.Status,
			Leaves:    f.Leaves,
			Outputs:   len(f.Outputs),
		})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	if len(sorted) > maxSamples {
		sorted = sorted[:maxSamples]
	}
	return sorted
}

// SaveSnapshot saves a snapshot to the golden directory.
func SaveSnapshot(snapshot *Snapshot) error {
	goldenDir, err := getGoldenDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(goldenDir, 0755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}

	path := filepath.Join(goldenDir, snapshotFilename(snapshot.Repository, snapshot.Ref))
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot loads a snapshot from the golden directory.
func LoadSnapshot(repoName, ref string) (*Snapshot, error) {
	goldenDir, err := getGoldenDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(goldenDir, snapshotFilename(repoName, ref))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot not found: %s (run with -update to create)", path)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// SnapshotDiff represents differences between expected and actual snapshots.
type SnapshotDiff struct {
	FileCountDiff       int
	OutputCountDiff     int
	FrameworkCountDiffs map[string]FrameworkDiff
	ChangedFiles        []string
	MissingFiles        []string
	ExtraFiles          []string
}

// FrameworkDiff represents the difference in file count for a framework.
type FrameworkDiff struct {
	Expected int
	Actual   int
}

// IsEmpty returns true if there are no differences.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.FileCountDiff == 0 &&
		d.OutputCountDiff == 0 &&
		len(d.FrameworkCountDiffs) == 0 &&
		len(d.ChangedFiles) == 0 &&
		len(d.MissingFiles) == 0 &&
		len(d.ExtraFiles) == 0
}

// String returns a human-readable diff summary.
func (d *SnapshotDiff) String() string {
	if d.IsEmpty() {
		return "no differences"
	}

	var sb strings.Builder

	if d.FileCountDiff != 0 {
		sb.WriteString(fmt.Sprintf("  file count: %+d\n", d.FileCountDiff))
	}
	if d.OutputCountDiff != 0 {
		sb.WriteString(fmt.Sprintf("  output count: %+d\n", d.OutputCountDiff))
	}

	frameworks := make([]string, 0, len(d.FrameworkCountDiffs))
	for fw := range d.FrameworkCountDiffs {
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)
	for _, fw := range frameworks {
		diff := d.FrameworkCountDiffs[fw]
		sb.WriteString(fmt.Sprintf("  framework %s: expected %d, got %d\n", fw, diff.Expected, diff.Actual))
	}

	writeList(&sb, "changed files", "~", d.ChangedFiles)
	writeList(&sb, "missing files", "-", d.MissingFiles)
	writeList(&sb, "extra files", "+", d.ExtraFiles)

	return sb.String()
}

func writeList(sb *strings.Builder, title, mark string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("  %s (%d):\n", title, len(items)))
	for i, item := range items {
		if i == 10 {
			sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(items)-10))
			break
		}
		sb.WriteString(fmt.Sprintf("    %s %s\n", mark, item))
	}
}

// CompareSnapshots compares an expected snapshot with an actual one.
func CompareSnapshots(expected *Snapshot, actual *Snapshot) *SnapshotDiff {
	diff := &SnapshotDiff{
		FileCountDiff:       actual.FileCount - expected.FileCount,
		OutputCountDiff:     actual.OutputCount - expected.OutputCount,
		FrameworkCountDiffs: make(map[string]FrameworkDiff),
	}

	allFrameworks := make(map[string]bool)
	for fw := range expected.FrameworkCounts {
		allFrameworks[fw] = true
	}
	for fw := range actual.FrameworkCounts {
		allFrameworks[fw] = true
	}

	for fw := range allFrameworks {
		expectedCount := expected.FrameworkCounts[fw]
		actualCount := actual.FrameworkCounts[fw]
		if expectedCount != actualCount {
			diff.FrameworkCountDiffs[fw] = FrameworkDiff{
				Expected: expectedCount,
				Actual:   actualCount,
			}
		}
	}

	expectedFiles := make(map[string]SnapshotFile)
	for _, f := range expected.SampleFiles {
		expectedFiles[f.Path] = f
	}

	actualFiles := make(map[string]SnapshotFile)
	for _, f := range actual.SampleFiles {
		actualFiles[f.Path] = f
	}

	for path, want := range expectedFiles {
		got, ok := actualFiles[path]
		if !ok {
			diff.MissingFiles = append(diff.MissingFiles, path)
			continue
		}
		if got != want {
			diff.ChangedFiles = append(diff.ChangedFiles, path)
		}
	}

	for path := range actualFiles {
		if _, ok := expectedFiles[path]; !ok {
			diff.ExtraFiles = append(diff.ExtraFiles, path)
		}
	}

	sort.Strings(diff.ChangedFiles)
	sort.Strings(diff.MissingFiles)
	sort.Strings(diff.ExtraFiles)

	return diff
}

func getGoldenDir() (string, error) {
	testDataDir, err := getTestDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(testDataDir, "golden"), nil
}

func snapshotFilename(repoName, ref string) string {
	safeName := unsafePathChars.ReplaceAllString(repoName, "_")
	safeRef := unsafePathChars.ReplaceAllString(ref, "_")
	return fmt.Sprintf("%s-%s.json", safeName, safeRef)
}
