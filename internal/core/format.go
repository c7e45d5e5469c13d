package core

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize returns a human-readable size using binary units (KiB, MiB, GiB).
func FormatSize(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// FormatAge returns a relative age such as "3 days ago" measured against now.
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatTimestamp renders a timestamp in local time, or "unknown" when zero.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// ShortenPath trims a path from the left so it fits in maxLen characters,
// keeping whole trailing components where possible.
func ShortenPath(path string, maxLen int) string {
	if maxLen <= 3 || len(path) <= maxLen {
		return path
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	result := ""
	for i := len(parts) - 1; i >= 0; i-- {
		candidate := ".../" + strings.Join(parts[i:], "/")
		if len(candidate) > maxLen {
			break
		}
		result = candidate
	}
	if result != "" {
		return filepath.FromSlash(result)
	}

	// A single trailing component is already too long; hard truncate.
	return "..." + path[len(path)-(maxLen-3):]
}
