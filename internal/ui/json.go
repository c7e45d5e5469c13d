package ui

import (
	"encoding/json"
	"io"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
)

// Report is the machine-readable form of one run.
type Report struct {
	StartPath string             `json:"start_path"`
	Recursive bool               `json:"recursive"`
	Mode      string             `json:"mode"`
	Status    string             `json:"status"`
	Error     string             `json:"error,omitempty"`
	Summary   pipeline.Summary   `json:"summary"`
	Volume    *VolumeUsageReport `json:"volume,omitempty"`
}

// VolumeUsageReport carries the free space of the scanned volume before and
// after the run.
type VolumeUsageReport struct {
	Path        string `json:"path"`
	FreeBefore  uint64 `json:"free_before"`
	FreeAfter   uint64 `json:"free_after"`
	TotalVolume uint64 `json:"total"`
}

// NewReport assembles a Report from a finished run.
func NewReport(cfg config.ScanConfig, sum pipeline.Summary) Report {
	rep := Report{
		StartPath: cfg.StartPath,
		Recursive: cfg.Recursive,
		Mode:      cfg.Mode.String(),
		Status:    sum.Status().String(),
		Summary:   sum,
	}
	if sum.Err != nil {
		rep.Error = sum.Err.Error()
	}
	if rep.Summary.Results == nil {
		rep.Summary.Results = []pipeline.Result{}
	}
	return rep
}

// WriteJSON writes rep to w as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
