package venv

import (
	"path/filepath"
	"time"
)

// TargetRecord describes one discovered virtual environment directory. It
// lives for a single invocation and is never persisted.
//
// LastUsedAt is the newest file modification time inside the tree. It is a
// proxy for "last used": activating an environment does not touch its files,
// so a venv used read-only for months still looks stale.
type TargetRecord struct {
	Path       string    `json:"path"`
	SizeBytes  uint64    `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`

	// CreatedApprox is set when the filesystem had no creation time and
	// CreatedAt holds the oldest modification time seen instead.
	CreatedApprox bool `json:"created_approximate,omitempty"`

	// LooksValid is set when the directory has the usual venv layout.
	LooksValid bool `json:"looks_valid"`

	// Skipped counts entries that could not be read while measuring.
	Skipped int `json:"skipped_entries,omitempty"`
}

// Location returns the directory holding the venv.
func (r TargetRecord) Location() string {
	return filepath.Dir(r.Path)
}

// ProjectName returns the name of the directory holding the venv.
func (r TargetRecord) ProjectName() string {
	return filepath.Base(filepath.Dir(r.Path))
}

// AgeDays returns the whole days elapsed since LastUsedAt. Negative ages
// from clock skew are reported as zero.
func (r TargetRecord) AgeDays(now time.Time) int {
	d := now.Sub(r.LastUsedAt)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
