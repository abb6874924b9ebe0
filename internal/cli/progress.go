package cli

import (
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/specvital/splitter/pkg/domain"
)

// progressReporter shows a spinner with the number of files processed.
// A nil reporter is a no-op.
type progressReporter struct {
	bar *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer, enabled bool) *progressReporter {
	if !enabled {
		return nil
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString("Splitting")),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionEnableColorCodes(!color.NoColor),
		progressbar.OptionClearOnFinish(),
	)
	return &progressReporter{bar: bar}
}

// OnFile is the splitter progress callback; workers call it concurrently.
func (p *progressReporter) OnFile(domain.FileReport) {
	if p == nil {
		return
	}
	_ = p.bar.Add(1)
}

// Finish clears the spinner before the report is printed.
func (p *progressReporter) Finish() {
	if p == nil {
		return
	}
	_ = p.bar.Finish()
}
