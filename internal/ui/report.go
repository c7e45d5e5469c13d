package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/gate"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
	"github.com/lakshaymaurya-felt/venvsweep/internal/tier"
)

// TextReporter prints results as they arrive. It implements
// pipeline.Reporter.
type TextReporter struct {
	w     io.Writer
	mode  config.Mode
	now   func() time.Time
	count int
}

// NewTextReporter creates a reporter writing to w.
func NewTextReporter(w io.Writer, mode config.Mode) *TextReporter {
	return &TextReporter{w: w, mode: mode, now: time.Now}
}

// Found prints one target block.
func (r *TextReporter) Found(res pipeline.Result) {
	r.count++
	fmt.Fprintln(r.w, RenderRecord(r.count, res, r.now()))
}

// Acted prints the outcome line for one target.
func (r *TextReporter) Acted(res pipeline.Result) {
	if res.Outcome == nil {
		return
	}
	fmt.Fprintln(r.w, "    "+RenderOutcome(*res.Outcome))
}

// RenderRecord renders a target as a header line plus a details line.
func RenderRecord(num int, res pipeline.Result, now time.Time) string {
	rec := res.Record

	numStr := lipgloss.NewStyle().Foreground(ColorMuted).Render(fmt.Sprintf("%3d.", num))
	name := lipgloss.NewStyle().Foreground(ColorCoral).Bold(true).Render(rec.ProjectName())
	path := lipgloss.NewStyle().Foreground(ColorTextDim).Render(rec.Path)
	header := fmt.Sprintf("%s %s%s  %s", numStr, IconFolder, name, path)
	if res.Tier.Recommend {
		header += "  " + TagWarningStyle().Render(" cleanup candidate ")
	}
	if !rec.LooksValid {
		header += "  " + lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render("(no venv layout)")
	}

	size := lipgloss.NewStyle().Foreground(SizeColor(res.Tier.Size)).
		Render(fmt.Sprintf("%s (%s)", core.FormatSize(rec.SizeBytes), res.Tier.Size))
	used := lipgloss.NewStyle().Foreground(RecencyColor(res.Tier.Recency)).
		Render(fmt.Sprintf("%s (%s)", core.FormatAge(rec.LastUsedAt, now), res.Tier.Recency))

	created := core.FormatTimestamp(rec.CreatedAt)
	if rec.CreatedApprox {
		created = "~" + created
	}
	dim := lipgloss.NewStyle().Foreground(ColorMuted)
	details := fmt.Sprintf("     size %s  %s last used %s  %s created %s",
		size, dim.Render(IconPipe), used, dim.Render(IconPipe), dim.Render(created))
	if rec.Skipped > 0 {
		details += "  " + WarningStyle().Render(fmt.Sprintf("%s %d unreadable entries", IconWarning, rec.Skipped))
	}
	return header + "\n" + details
}

// RenderOutcome renders a one-line description of an outcome.
func RenderOutcome(o gate.Outcome) string {
	switch o.Kind {
	case gate.Deleted:
		return SuccessStyle().Render(fmt.Sprintf("%s deleted, %s freed", IconCheck, core.FormatSize(o.Freed)))
	case gate.Simulated:
		return lipgloss.NewStyle().Foreground(ColorSecondary).
			Render(fmt.Sprintf("%s would delete, %s reclaimable", IconChevron, core.FormatSize(o.Freed)))
	case gate.Declined:
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(IconBullet + " kept")
	case gate.Partial:
		return ErrorStyle().Render(fmt.Sprintf("%s partially deleted: %v", IconError, o.Err))
	default:
		return WarningStyle().Render(fmt.Sprintf("%s %s: %v", IconWarning, o.Kind, o.Err))
	}
}

// ─── Summary ─────────────────────────────────────────────────────────────────

// maxListedWarnings caps the scan warnings printed in the summary.
const maxListedWarnings = 10

// RenderSummary renders the end-of-run totals, any problems, and in query
// mode the cleanup recommendations.
func RenderSummary(sum pipeline.Summary, now time.Time) string {
	var b strings.Builder
	title := TitleStyle().Render(IconDiamond + " Summary")
	b.WriteString(title + "\n")

	line := func(label, value string) {
		fmt.Fprintf(&b, "  %-12s %s\n", lipgloss.NewStyle().Foreground(ColorTextDim).Render(label), value)
	}

	if sum.Found == 0 {
		line("found", "no virtual environments")
	} else {
		line("found", fmt.Sprintf("%d (%s)", sum.Found, core.FormatSize(sum.BytesFound)))
	}

	switch sum.Mode {
	case config.ModeDryRun:
		line("would free", core.FormatSize(sum.BytesReclaimable))
	case config.ModeForce, config.ModeInteractive:
		line("deleted", fmt.Sprintf("%d (%s freed)", sum.Deleted, core.FormatSize(sum.BytesReclaimed)))
		if sum.Declined > 0 {
			line("kept", fmt.Sprintf("%d", sum.Declined))
		}
	}

	if problems := sum.Problems(); len(problems) > 0 {
		b.WriteString(ErrorStyle().Render(fmt.Sprintf("  %s %d not deleted:", IconWarning, len(problems))) + "\n")
		for _, p := range problems {
			fmt.Fprintf(&b, "    %s %s  %s\n", p.Outcome.Kind, p.Outcome.Path,
				lipgloss.NewStyle().Foreground(ColorMuted).Render(errText(p.Outcome.Err)))
		}
	}

	if n := len(sum.Warnings); n > 0 {
		b.WriteString(WarningStyle().Render(fmt.Sprintf("  %s %d path(s) skipped while scanning:", IconWarning, n)) + "\n")
		muted := lipgloss.NewStyle().Foreground(ColorMuted)
		for _, w := range sum.Warnings[:min(n, maxListedWarnings)] {
			b.WriteString("    " + muted.Render(w) + "\n")
		}
		if n > maxListedWarnings {
			b.WriteString("    " + muted.Render(fmt.Sprintf("... and %d more (use -v for all)", n-maxListedWarnings)) + "\n")
		}
	}
	if sum.Interrupted {
		b.WriteString(ErrorStyle().Render("  "+IconError+" interrupted, remaining targets left untouched") + "\n")
	} else if sum.Err != nil {
		b.WriteString(ErrorStyle().Render("  "+IconError+" "+sum.Err.Error()) + "\n")
	}

	if sum.Mode == config.ModeQuery {
		b.WriteString(RenderRecommendations(sum.Results, now))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRecommendations lists the cleanup candidates among results, how many
// are abandoned or large, and the space they would free. It returns "" when
// there are none.
func RenderRecommendations(results []pipeline.Result, now time.Time) string {
	var (
		picks            []pipeline.Result
		total            uint64
		abandoned, large int
	)
	for _, r := range results {
		if !r.Tier.Recommend {
			continue
		}
		picks = append(picks, r)
		total += r.Record.SizeBytes
		if r.Tier.Recency == tier.RecencyAbandoned {
			abandoned++
		}
		if r.Tier.Size == tier.SizeLarge {
			large++
		}
	}
	if len(picks) == 0 {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("%s Recommended for cleanup: %d abandoned, %d large (%s)",
		IconStar, abandoned, large, core.FormatSize(total))
	b.WriteString("\n" + TitleStyle().Render(title) + "\n")
	for _, r := range picks {
		var reasons []string
		if r.Tier.Size == tier.SizeLarge {
			reasons = append(reasons, "large")
		}
		if r.Tier.Recency == tier.RecencyAbandoned {
			reasons = append(reasons, "unused "+core.FormatAge(r.Record.LastUsedAt, now))
		}
		fmt.Fprintf(&b, "  %s %s  %s  %s\n", IconBullet, r.Record.Path,
			core.FormatSize(r.Record.SizeBytes),
			lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Join(reasons, ", ")))
	}
	b.WriteString(HintBarStyle().Render("  pick and delete them with 'venvsweep browse', or delete everything found with --force") + "\n")
	return b.String()
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
