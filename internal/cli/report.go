package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/splitter"
)

// printer renders reports for humans or as JSON.
type printer struct {
	w       io.Writer
	json    bool
	verbose bool

	ok    *color.Color
	warn  *color.Color
	fail  *color.Color
	dim   *color.Color
	title *color.Color
}

func newPrinter(w io.Writer, jsonOut, verbose bool) *printer {
	return &printer{
		w:       w,
		json:    jsonOut,
		verbose: verbose,
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
		dim:     color.New(color.Faint),
		title:   color.New(color.FgCyan, color.Bold),
	}
}

// Report prints a run report.
func (p *printer) Report(report *domain.RunReport) error {
	if p.json {
		return p.encode(report)
	}

	for _, fr := range report.Files {
		p.file(fr)
	}
	for _, err := range report.Errors {
		p.fail.Fprint(p.w, "  error    ")
		fmt.Fprintln(p.w, err.Error())
	}

	p.summary(report)
	return nil
}

func (p *printer) file(fr domain.FileReport) {
	switch fr.Status {
	case domain.FileStatusSplit:
		p.ok.Fprint(p.w, "  split    ")
		fmt.Fprintf(p.w, "%s", fr.Path)
		p.dim.Fprintf(p.w, " (%s)", fr.Framework)
		fmt.Fprintf(p.w, " -> %d of %d test cases\n", len(fr.Outputs), fr.Leaves)
		if p.verbose {
			for _, out := range fr.Outputs {
				p.dim.Fprintf(p.w, "           %s  %q\n", out.Path, out.Label)
			}
		}
	case domain.FileStatusSkipped:
		if !p.verbose {
			return
		}
		p.warn.Fprint(p.w, "  skipped  ")
		fmt.Fprintf(p.w, "%s: %s\n", fr.Path, fr.Reason)
	case domain.FileStatusFailed:
		p.fail.Fprint(p.w, "  failed   ")
		fmt.Fprintln(p.w, fr.Path)
	}

	for _, err := range fr.Errors {
		target := "file"
		if err.Order >= 0 {
			target = fmt.Sprintf("#%d %q", err.Order+1, err.Label)
		}
		p.fail.Fprintf(p.w, "           %s %s: ", err.Phase, target)
		fmt.Fprintln(p.w, err.Err)
	}
}

func (p *printer) summary(report *domain.RunReport) {
	stats := report.Stats

	fmt.Fprintln(p.w)
	p.title.Fprint(p.w, "Summary: ")
	fmt.Fprintf(p.w, "%d files, ", stats.FilesProcessed)
	p.ok.Fprintf(p.w, "%d split", stats.FilesSplit)
	fmt.Fprint(p.w, ", ")
	p.warn.Fprintf(p.w, "%d skipped", stats.FilesSkipped)
	fmt.Fprint(p.w, ", ")
	if stats.FilesFailed > 0 || stats.Failures > 0 {
		p.fail.Fprintf(p.w, "%d failed (%d errors)", stats.FilesFailed, stats.Failures)
	} else {
		fmt.Fprint(p.w, "0 failed")
	}

	verb := "written"
	if report.DryRun {
		verb = "planned (dry run)"
	}
	fmt.Fprintf(p.w, "; %d outputs %s in %s\n", stats.OutputsWritten, verb, stats.Duration.Round(time.Millisecond))
}

// Inventory prints the leaves found by a discovery-only run.
func (p *printer) Inventory(files []splitter.FileLeaves) error {
	if p.json {
		return p.encode(files)
	}

	total := 0
	for _, fl := range files {
		p.title.Fprint(p.w, fl.Path)
		p.dim.Fprintf(p.w, " (%s)\n", fl.Framework)
		if fl.Err != nil {
			p.fail.Fprintf(p.w, "  %s: ", fl.Err.Phase)
			fmt.Fprintln(p.w, fl.Err.Err)
			continue
		}
		for _, leaf := range fl.Leaves {
			fmt.Fprintf(p.w, "  %3d  %s", leaf.Number(), leaf.Label)
			if leaf.Status != domain.TestStatusActive {
				p.warn.Fprintf(p.w, " [%s]", leaf.Status)
			}
			fmt.Fprintln(p.w)
		}
		total += len(fl.Leaves)
	}

	fmt.Fprintln(p.w)
	p.title.Fprint(p.w, "Summary: ")
	fmt.Fprintf(p.w, "%d test cases in %d files\n", total, len(files))
	return nil
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
