package reconcile

// State is a step of one reconciliation attempt.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAuthenticating
	StateProfileLookup
	StateProfileCreate
	StateSessionPersist
	StateComplete
	StateFailed
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateValidating:     "validating",
	StateAuthenticating: "authenticating",
	StateProfileLookup:  "profile_lookup",
	StateProfileCreate:  "profile_create",
	StateSessionPersist: "session_persist",
	StateComplete:       "complete",
	StateFailed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is allowed from s.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:           {StateValidating},
	StateValidating:     {StateAuthenticating},
	StateAuthenticating: {StateProfileLookup},
	StateProfileLookup:  {StateProfileCreate, StateSessionPersist},
	StateProfileCreate:  {StateSessionPersist},
	StateSessionPersist: {StateComplete},
}

// CanTransition reports whether an attempt in from may move to to. Every
// non-terminal state may move to StateFailed.
func CanTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
