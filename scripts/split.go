//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/splitter"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/split.go <path>\n")
		os.Exit(1)
	}

	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := splitter.Run(ctx, path, splitter.WithDryRun(true))
	if err != nil {
		fmt.Fprintf(os.Stderr, "split error: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"filesProcessed": report.Stats.FilesProcessed,
		"filesSplit":     report.Stats.FilesSplit,
		"outputs":        report.Stats.OutputsWritten,
		"failures":       report.Stats.Failures,
		"duration":       report.Stats.Duration.String(),
		"frameworks":     countFrameworks(report),
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

func countFrameworks(report *domain.RunReport) map[string]int {
	counts := make(map[string]int)
	for _, file := range report.Files {
		counts[file.Framework]++
	}
	return counts
}
