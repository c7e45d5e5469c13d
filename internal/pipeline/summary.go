package pipeline

import (
	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/gate"
	"github.com/lakshaymaurya-felt/venvsweep/internal/tier"
	"github.com/lakshaymaurya-felt/venvsweep/internal/venv"
)

// Result is one entry of the output contract: a record, its tier and, once
// the record reached the Acting state, its outcome.
type Result struct {
	Record  venv.TargetRecord `json:"record"`
	Tier    tier.Tier         `json:"tier"`
	Outcome *gate.Outcome     `json:"outcome,omitempty"`
}

// ExitStatus is the run's final classification, mapped to a process exit
// code by the CLI.
type ExitStatus int

const (
	StatusSuccess  ExitStatus = iota // possibly with zero targets
	StatusWarnings                   // something was skipped, denied or vanished
	StatusFatal                      // invalid start path, catastrophic I/O or interrupt
)

// Code returns the process exit code for the status.
func (s ExitStatus) Code() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusWarnings:
		return 2
	default:
		return 1
	}
}

func (s ExitStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusWarnings:
		return "completed with warnings"
	default:
		return "fatal"
	}
}

// Summary aggregates one run. It is available once the pipeline is Done.
type Summary struct {
	Mode    config.Mode `json:"-"`
	State   State       `json:"-"`
	Results []Result    `json:"results"`

	Found     int `json:"found"`
	Simulated int `json:"simulated"`
	Deleted   int `json:"deleted"`
	Declined  int `json:"declined"`
	Denied    int `json:"denied"`
	Vanished  int `json:"vanished"`
	Partial   int `json:"partial"`
	Failed    int `json:"failed"`

	BytesFound       uint64 `json:"bytes_found"`
	BytesReclaimed   uint64 `json:"bytes_reclaimed"`
	BytesReclaimable uint64 `json:"bytes_reclaimable"`

	Recommended int `json:"recommended"`

	Warnings    []string `json:"warnings,omitempty"`
	Interrupted bool     `json:"interrupted,omitempty"`
	Err         error    `json:"-"`
}

func (s *Summary) addFound(r Result) {
	s.Found++
	s.BytesFound += r.Record.SizeBytes
	if r.Tier.Recommend {
		s.Recommended++
	}
}

func (s *Summary) addOutcome(o gate.Outcome) {
	switch o.Kind {
	case gate.Simulated:
		s.Simulated++
		s.BytesReclaimable += o.Freed
	case gate.Deleted:
		s.Deleted++
		s.BytesReclaimed += o.Freed
	case gate.Declined:
		s.Declined++
	case gate.Denied:
		s.Denied++
	case gate.Vanished:
		s.Vanished++
	case gate.Partial:
		s.Partial++
	case gate.Failed, gate.Unset:
		s.Failed++
	}
}

// Problems returns every result whose outcome must be named to the user:
// denied, vanished, partial and failed targets.
func (s Summary) Problems() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Outcome != nil && r.Outcome.Kind.IsProblem() {
			out = append(out, r)
		}
	}
	return out
}

// Status maps the summary to an exit status.
func (s Summary) Status() ExitStatus {
	switch {
	case s.Err != nil:
		return StatusFatal
	case s.Denied+s.Vanished+s.Partial+s.Failed > 0, len(s.Warnings) > 0:
		return StatusWarnings
	default:
		return StatusSuccess
	}
}
