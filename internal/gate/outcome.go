package gate

import (
	"encoding/json"
	"fmt"
)

// Kind classifies what happened to one target.
type Kind int

const (
	// Unset: no decision was recorded. A gate never returns it.
	Unset Kind = iota
	// Simulated: dry-run, the target would have been deleted.
	Simulated
	// Deleted: the target is fully gone.
	Deleted
	// Declined: the user said no, or gave no clear answer.
	Declined
	// Denied: missing permission or a protected path; nothing was touched.
	Denied
	// Vanished: the target was removed or replaced since the scan.
	Vanished
	// Partial: removal stopped partway; the path needs manual checking.
	Partial
	// Failed: any other error before removal started; nothing was touched.
	Failed
)

var kindNames = []string{"unset", "simulated", "deleted", "declined", "denied", "vanished", "partial", "failed"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText renders the kind name in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsProblem reports whether the outcome must be named in the summary. An
// Unset kind counts, since nothing is known about the target.
func (k Kind) IsProblem() bool {
	switch k {
	case Unset, Denied, Vanished, Partial, Failed:
		return true
	}
	return false
}

// Outcome is the result of one gate invocation. The gate does no output
// formatting; callers aggregate and render outcomes.
type Outcome struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path"`

	// Freed is the bytes reclaimed (Deleted) or reclaimable (Simulated).
	Freed uint64 `json:"freed_bytes,omitempty"`

	Err error `json:"-"`
}

// Message returns the outcome's error text, or "".
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// MarshalJSON adds the error text to the encoded outcome.
func (o Outcome) MarshalJSON() ([]byte, error) {
	type plain Outcome
	return json.Marshal(struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain(o), o.Message()})
}

// DeclinedOutcome records a target the user chose to keep.
func DeclinedOutcome(path string) Outcome {
	return Outcome{Kind: Declined, Path: path}
}
