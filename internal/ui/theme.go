package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/tier"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#A78BFA"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#67E8F9"}
	ColorCoral     = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorText      = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	ColorTextDim   = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconDiamond = "◆"
	IconChevron = "›"
	IconBullet  = "•"
	IconFolder  = "▸ "
	IconBlock   = "▌"
	IconPipe    = "│"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconWarning = "⚠"
	IconError   = "✖"
	IconStar    = "★"
)

// ─── Styles ──────────────────────────────────────────────────────────────────

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorCoral)
}

func HintBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

func TagWarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")).Background(ColorWarning)
}

func TagDangerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(ColorError)
}

func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

// SizeColor picks the display color for a size tier.
func SizeColor(s tier.SizeTier) lipgloss.TerminalColor {
	switch s {
	case tier.SizeLarge:
		return ColorError
	case tier.SizeMedium:
		return ColorWarning
	default:
		return ColorText
	}
}

// RecencyColor picks the display color for a recency tier.
func RecencyColor(r tier.RecencyTier) lipgloss.TerminalColor {
	switch r {
	case tier.RecencyAbandoned:
		return ColorError
	case tier.RecencyStale:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// FormatSize renders a byte count for display.
func FormatSize(bytes uint64) string {
	return core.FormatSize(bytes)
}

// GradientBar renders a horizontal bar filled to pct (0-100), shading from
// green to red as it fills.
func GradientBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = max(0, min(100, pct))
	filled := int(pct / 100 * float64(width))

	stops := []lipgloss.TerminalColor{ColorSuccess, ColorWarning, ColorCoral, ColorError}
	var b strings.Builder
	for i := range width {
		if i >= filled {
			b.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).Render("░"))
			continue
		}
		c := stops[i*len(stops)/width]
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("█"))
	}
	return b.String()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
