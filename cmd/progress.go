package cmd

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
	"github.com/lakshaymaurya-felt/venvsweep/internal/ui"
)

// scanProgress is a spinner with a directory count shown while walking.
type scanProgress struct {
	bar  *progressbar.ProgressBar
	done bool
}

func newScanProgress(w io.Writer, visible bool) *scanProgress {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Scanning directories"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionClearOnFinish(),
	)
	return &scanProgress{bar: bar}
}

func (p *scanProgress) tick() {
	if !p.done {
		_ = p.bar.Add(1)
	}
}

func (p *scanProgress) finish() {
	if p.done {
		return
	}
	p.done = true
	_ = p.bar.Finish()
}

// showProgress reports whether the scan spinner should be drawn: only for
// batch modes at default verbosity, on a terminal.
func showProgress(cfg config.ScanConfig, w io.Writer) bool {
	if cfg.Mode == config.ModeInteractive || cfg.Verbosity > 0 {
		return false
	}
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}

// progressReporter clears the spinner before the first line of output.
type progressReporter struct {
	next     pipeline.Reporter
	progress *scanProgress
}

func (r *progressReporter) Found(res pipeline.Result) {
	r.progress.finish()
	if r.next != nil {
		r.next.Found(res)
	}
}

func (r *progressReporter) Acted(res pipeline.Result) {
	if r.next != nil {
		r.next.Acted(res)
	}
}
