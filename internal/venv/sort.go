package venv

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
)

// Compare orders two records by key. Size, created and last-used put the
// largest or newest first; path is alphabetical. Ties fall back to path so
// the order is deterministic.
func Compare(a, b TargetRecord, key config.SortKey) int {
	var c int
	switch key {
	case config.SortSize:
		c = cmp.Compare(b.SizeBytes, a.SizeBytes)
	case config.SortCreated:
		c = b.CreatedAt.Compare(a.CreatedAt)
	case config.SortLastUsed:
		c = b.LastUsedAt.Compare(a.LastUsedAt)
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.Path, b.Path)
}

// Sort orders records in place.
func Sort(records []TargetRecord, key config.SortKey, reverse bool) {
	slices.SortStableFunc(records, func(a, b TargetRecord) int {
		if reverse {
			return Compare(b, a, key)
		}
		return Compare(a, b, key)
	})
}

// NextSortKey cycles path → size → created → last-used → path.
func NextSortKey(key config.SortKey) config.SortKey {
	switch key {
	case config.SortPath, "":
		return config.SortSize
	case config.SortSize:
		return config.SortCreated
	case config.SortCreated:
		return config.SortLastUsed
	default:
		return config.SortPath
	}
}
