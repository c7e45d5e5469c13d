package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/ui"
)

// RenderVolume renders a usage bar for the volume after a run, with the
// free space gained since before.
func RenderVolume(before, after VolumeUsage, barW int) string {
	line := fmt.Sprintf("  %s  %5.1f%%  %s free of %s",
		colorBar(after.UsedPercent, barW), after.UsedPercent,
		core.FormatSize(after.Free), core.FormatSize(after.Total))

	if gained := Gained(before, after); gained > 0 {
		line += lipgloss.NewStyle().Foreground(ui.ColorSuccess).
			Render(fmt.Sprintf("  (+%s)", core.FormatSize(gained)))
	}
	return line
}

// colorBar renders a ████░░░░ bar colored by how full the volume is.
func colorBar(pct float64, width int) string {
	pct = max(0, min(100, pct))
	filled := min(int(pct/100*float64(width)), width)

	barColor := ui.ColorSuccess
	switch {
	case pct >= 90:
		barColor = ui.ColorError
	case pct >= 75:
		barColor = ui.ColorCoral
	case pct >= 50:
		barColor = ui.ColorWarning
	}

	fStr := lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled))
	eStr := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(strings.Repeat("░", width-filled))
	return fStr + eStr
}
