package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
)

// PrintStatic prints a plain-text table of results. Used as a fallback
// when stdin or stdout is not a terminal and the bubbletea TUI cannot run.
func PrintStatic(w io.Writer, root string, results []pipeline.Result, now time.Time) {
	if len(results) == 0 {
		fmt.Fprintf(w, "  No virtual environments under %s\n", root)
		return
	}

	var total uint64
	for _, r := range results {
		total += r.Record.SizeBytes
	}

	fmt.Fprintf(w, "  Virtual environments: %s\n", root)
	fmt.Fprintln(w, "  "+strings.Repeat("-", 72))
	fmt.Fprintf(w, "  %10s  %-9s  %-14s  %s\n", "SIZE", "USED", "LAST USED", "PATH")

	for _, r := range results {
		mark := " "
		if r.Tier.Recommend {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %10s  %-9s  %-14s  %s\n", mark,
			core.FormatSize(r.Record.SizeBytes),
			r.Tier.Recency,
			core.FormatAge(r.Record.LastUsedAt, now),
			r.Record.Path)
	}

	fmt.Fprintln(w, "  "+strings.Repeat("-", 72))
	fmt.Fprintf(w, "  Total: %d found, %s   (* = cleanup candidate)\n", len(results), core.FormatSize(total))
}
