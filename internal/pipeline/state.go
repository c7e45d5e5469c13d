package pipeline

// State is a step of the per-invocation state machine:
// Scanning → Classifying → (Reporting | AwaitingConfirmation) → Acting → Done.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateClassifying
	StateReporting
	StateAwaitingConfirmation
	StateActing
	StateDone
)

var stateNames = []string{
	"idle", "scanning", "classifying", "reporting", "awaiting-confirmation", "acting", "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
