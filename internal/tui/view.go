package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
	"github.com/lakshaymaurya-felt/venvsweep/internal/tier"
	"github.com/lakshaymaurya-felt/venvsweep/internal/ui"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

var (
	clrDim    = ui.ColorMuted
	clrName   = ui.ColorCoral
	clrPath   = ui.ColorTextDim
	clrCursor = ui.ColorPrimary
	clrPick   = ui.ColorSecondary
)

// ─── Top-level view ──────────────────────────────────────────────────────────

func (m Model) renderView() string {
	if m.quitting {
		return ""
	}
	w := max(m.width, 40)

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")
	s.WriteString(m.renderBody(w))
	if m.showDetails {
		s.WriteString("\n")
		s.WriteString(m.renderDetails(w))
	}
	s.WriteString("\n")
	s.WriteString(m.renderFooter(w))
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m Model) renderHeader(w int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorCoral).
		Render("  " + ui.IconDiamond + " Virtual environments")

	total, picked := m.totals()
	stats := fmt.Sprintf("  %s    %d found  %s", m.root, len(m.results), core.FormatSize(total))
	if n := m.selectedCount(); n > 0 {
		stats += fmt.Sprintf("    %d selected  %s", n, core.FormatSize(picked))
	}
	statsLine := lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(stats)

	var order string
	switch {
	case m.sortKey == config.SortPath && m.reverse:
		order = "z-a"
	case m.sortKey == config.SortPath:
		order = "a-z"
	case m.reverse:
		order = "smallest/oldest first"
	default:
		order = "largest/newest first"
	}
	sortLine := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render(fmt.Sprintf("  sort %s %s %s", ui.IconChevron, m.sortKey, order))

	inner := lipgloss.JoinVertical(lipgloss.Left, title, statsLine, sortLine)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorCoral).
		Width(w - 2).
		Render(inner)
}

// ─── Body (target list) ──────────────────────────────────────────────────────

func (m Model) renderBody(w int) string {
	if m.scanning {
		return lipgloss.NewStyle().
			Foreground(ui.ColorTextDim).
			Render("  " + m.spinner.View() + " Scanning " + m.root + "…")
	}
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  (no virtual environments found)")
	}

	vh := m.viewportHeight()
	barWidth := 16
	if w > 110 {
		barWidth = 24
	}

	total, _ := m.totals()
	var lines []string
	for i := m.offset; i < len(m.results) && i < m.offset+vh; i++ {
		lines = append(lines, m.renderEntry(m.results[i], total, barWidth, w, i == m.cursor))
	}

	if len(m.results) > vh {
		pct := float64(m.offset) / float64(len(m.results)-vh) * 100
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render(fmt.Sprintf("  ── %d/%d items  (%.0f%%) ──", min(m.offset+vh, len(m.results)), len(m.results), pct)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(r pipeline.Result, total uint64, barWidth, w int, cursor bool) string {
	var pct float64
	if total > 0 {
		pct = float64(r.Record.SizeBytes) / float64(total) * 100
	}
	bar := ui.GradientBar(pct, barWidth)

	check := "[ ]"
	if m.selected[r.Record.Path] {
		check = lipgloss.NewStyle().Foreground(clrPick).Bold(true).Render("[x]")
	}

	name := lipgloss.NewStyle().Foreground(clrName).Bold(true).Render(r.Record.ProjectName())

	maxPath := max(w-barWidth-60, 16)
	path := lipgloss.NewStyle().Foreground(clrPath).Render(truncateLeft(r.Record.Location(), maxPath))

	size := lipgloss.NewStyle().Foreground(ui.SizeColor(r.Tier.Size)).Render(fmt.Sprintf("%10s", core.FormatSize(r.Record.SizeBytes)))
	age := lipgloss.NewStyle().Foreground(ui.RecencyColor(r.Tier.Recency)).Render(fmt.Sprintf("%-9s", r.Tier.Recency))

	tag := ""
	if r.Tier.Recommend {
		tag = " " + ui.TagWarningStyle().Render(" " + ui.IconStar + " ")
	}

	line := fmt.Sprintf("  %s %s %s  %s %s  %s  %s%s", check, bar, size, age, ui.IconFolder+name, lipgloss.NewStyle().Foreground(clrDim).Render(ui.IconPipe), path, tag)

	if cursor {
		mark := lipgloss.NewStyle().Foreground(clrCursor).Bold(true).Render(ui.IconBlock)
		line = " " + mark + line[2:]
		if m.confirmDelete {
			n := len(m.targets())
			line += lipgloss.NewStyle().
				Foreground(ui.ColorError).
				Bold(true).
				Render(fmt.Sprintf("  %s Press Enter to delete %d", ui.IconWarning, n))
		}
	}
	return line
}

// ─── Details pane ────────────────────────────────────────────────────────────

func (m Model) renderDetails(w int) string {
	r, ok := m.current()
	if !ok {
		return ""
	}
	rec := r.Record
	now := m.now()

	created := core.FormatTimestamp(rec.CreatedAt)
	if rec.CreatedApprox {
		created += " (approximate)"
	}
	layout := "yes"
	if !rec.LooksValid {
		layout = "no"
	}
	recommend := "no"
	if r.Tier.Recommend {
		recommend = recommendReason(r)
	}

	label := lipgloss.NewStyle().Foreground(ui.ColorTextDim).Width(12)
	rows := []string{
		label.Render("path") + rec.Path,
		label.Render("size") + fmt.Sprintf("%s (%s)", core.FormatSize(rec.SizeBytes), r.Tier.Size),
		label.Render("last used") + fmt.Sprintf("%s, %s (%s)", core.FormatTimestamp(rec.LastUsedAt), core.FormatAge(rec.LastUsedAt, now), r.Tier.Recency),
		label.Render("created") + created,
		label.Render("venv layout") + layout,
		label.Render("cleanup") + recommend,
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(ui.ColorMuted).
		Width(w - 2).
		PaddingLeft(2).
		Render(strings.Join(rows, "\n"))
}

func recommendReason(r pipeline.Result) string {
	var why []string
	if r.Tier.Size == tier.SizeLarge {
		why = append(why, "large")
	}
	if r.Tier.Recency == tier.RecencyAbandoned {
		why = append(why, "abandoned")
	}
	return "recommended (" + strings.Join(why, ", ") + ")"
}

// ─── Footer ──────────────────────────────────────────────────────────────────

func (m Model) renderFooter(w int) string {
	var parts []string

	if m.err != nil {
		parts = append(parts,
			lipgloss.NewStyle().
				Foreground(ui.ColorError).
				Render("  "+ui.IconError+" "+m.err.Error()))
	}
	if len(m.warnings) > 0 {
		parts = append(parts,
			"  "+ui.TagWarningStyle().Render(fmt.Sprintf(" %d path(s) skipped ", len(m.warnings))))
	}
	if m.deleting {
		parts = append(parts, lipgloss.NewStyle().Foreground(ui.ColorWarning).Render("  "+m.spinner.View()+" Deleting…"))
	}
	if m.deletedCount > 0 {
		parts = append(parts, ui.SuccessStyle().Render(
			fmt.Sprintf("  %s %d deleted, %s freed", ui.IconCheck, m.deletedCount, core.FormatSize(m.freed))))
	}
	for _, o := range m.problems {
		parts = append(parts, ui.WarningStyle().Render(
			fmt.Sprintf("  %s %s %s", ui.IconWarning, o.Kind, truncateLeft(o.Path, w-16))))
	}

	var hints []string
	for _, b := range m.keys.hints() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	parts = append(parts, ui.HintBarStyle().Render("  "+strings.Join(hints, " "+ui.IconPipe+" ")))

	return strings.Join(parts, "\n")
}

func (m Model) selectedCount() int {
	return len(m.selected)
}

// truncateLeft shortens s to limit runes, keeping the tail.
func truncateLeft(s string, limit int) string {
	n := utf8.RuneCountInString(s)
	if limit < 2 || n <= limit {
		return s
	}
	runes := []rune(s)
	return "…" + string(runes[n-limit+1:])
}
