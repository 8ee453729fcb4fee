package mcqgen

// State is a step of a generation run.
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateExtracting
	StateValidating
	StateSucceeded
	StateFailed
	StateExhausted
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateGenerating: "generating",
	StateExtracting: "extracting",
	StateValidating: "validating",
	StateSucceeded:  "succeeded",
	StateFailed:     "failed",
	StateExhausted:  "exhausted",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateExhausted
}

// Transition describes one state change of a run. Err is set when To is
// StateFailed or StateExhausted.
type Transition struct {
	Attempt int
	From    State
	To      State
	Err     error
}
