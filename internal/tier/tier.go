// Package tier classifies targets by size and recency.
package tier

import (
	"time"

	"github.com/lakshaymaurya-felt/venvsweep/internal/venv"
)

// Size and recency thresholds. Fixed, not configurable.
const (
	MediumSizeBytes uint64 = 100 * 1024 * 1024
	LargeSizeBytes  uint64 = 1024 * 1024 * 1024

	StaleAfter     = 30 * 24 * time.Hour
	AbandonedAfter = 90 * 24 * time.Hour
)

// SizeTier buckets a target by total size.
type SizeTier int

const (
	SizeSmall  SizeTier = iota // < 100 MiB
	SizeMedium                 // 100 MiB to 1 GiB inclusive
	SizeLarge                  // > 1 GiB
)

func (s SizeTier) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	}
	return "unknown"
}

// MarshalText renders the tier name in JSON output.
func (s SizeTier) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// RecencyTier buckets a target by time since last use.
type RecencyTier int

const (
	RecencyRecent    RecencyTier = iota // <= 30 days
	RecencyStale                        // 30 to 90 days
	RecencyAbandoned                    // > 90 days
)

func (r RecencyTier) String() string {
	switch r {
	case RecencyRecent:
		return "recent"
	case RecencyStale:
		return "stale"
	case RecencyAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// MarshalText renders the tier name in JSON output.
func (r RecencyTier) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Tier is the derived classification of one record. It is recomputed on
// demand and never stored.
type Tier struct {
	Size      SizeTier    `json:"size"`
	Recency   RecencyTier `json:"recency"`
	Recommend bool        `json:"recommend_cleanup"`
}

// ClassifySize returns the size tier for a byte count.
func ClassifySize(bytes uint64) SizeTier {
	switch {
	case bytes < MediumSizeBytes:
		return SizeSmall
	case bytes <= LargeSizeBytes:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// ClassifyRecency returns the recency tier for lastUsed measured at now.
// A lastUsed in the future (clock skew) counts as recent.
func ClassifyRecency(lastUsed, now time.Time) RecencyTier {
	elapsed := now.Sub(lastUsed)
	switch {
	case elapsed <= StaleAfter:
		return RecencyRecent
	case elapsed <= AbandonedAfter:
		return RecencyStale
	default:
		return RecencyAbandoned
	}
}

// Classify computes the tier of rec at now.
func Classify(rec venv.TargetRecord, now time.Time) Tier {
	t := Tier{
		Size:    ClassifySize(rec.SizeBytes),
		Recency: ClassifyRecency(rec.LastUsedAt, now),
	}
	t.Recommend = RecommendCleanup(t)
	return t
}

// RecommendCleanup is true for abandoned or large targets.
func RecommendCleanup(t Tier) bool {
	return t.Recency == RecencyAbandoned || t.Size == SizeLarge
}

// Classifier classifies against a clock read at classification time, so a
// long interactive session sees ages as of each decision.
type Classifier struct {
	Now func() time.Time
}

// NewClassifier returns a Classifier on the wall clock.
func NewClassifier() *Classifier {
	return &Classifier{Now: time.Now}
}

// Classify classifies rec against the classifier's clock.
func (c *Classifier) Classify(rec venv.TargetRecord) Tier {
	now := time.Now
	if c != nil && c.Now != nil {
		now = c.Now
	}
	return Classify(rec, now())
}
