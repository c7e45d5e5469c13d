package status

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// VolumeUsage is a snapshot of the filesystem holding a path.
type VolumeUsage struct {
	Path        string  `json:"path"`
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

type usageFunc func(ctx context.Context, path string) (*disk.UsageStat, error)

// Probe reads volume usage. The zero value queries the real filesystem.
type Probe struct {
	usage usageFunc
}

// Volume returns the usage of the volume holding path.
func (p Probe) Volume(ctx context.Context, path string) (VolumeUsage, error) {
	fn := p.usage
	if fn == nil {
		fn = disk.UsageWithContext
	}
	st, err := fn(ctx, path)
	if err != nil {
		return VolumeUsage{}, fmt.Errorf("volume usage for %s: %w", path, err)
	}
	return VolumeUsage{
		Path:        path,
		Total:       st.Total,
		Free:        st.Free,
		Used:        st.Used,
		UsedPercent: st.UsedPercent,
	}, nil
}

// Volume reads the usage of the volume holding path.
func Volume(ctx context.Context, path string) (VolumeUsage, error) {
	return Probe{}.Volume(ctx, path)
}

// Gained returns how much free space grew from before to after, or 0.
func Gained(before, after VolumeUsage) uint64 {
	if after.Free <= before.Free {
		return 0
	}
	return after.Free - before.Free
}
