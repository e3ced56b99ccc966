package workflows

import "fmt"

// GenerationState is one stage of a certificate generation request.
type GenerationState string

const (
	StateRequested      GenerationState = "REQUESTED"
	StateRecordFetched  GenerationState = "RECORD_FETCHED"
	StateAssetsResolved GenerationState = "ASSETS_RESOLVED"
	StateModelBuilt     GenerationState = "MODEL_BUILT"
	StateRendered       GenerationState = "RENDERED"
	StateFailed         GenerationState = "FAILED"
)

// StateMachine enforces the generation lifecycle. Asset resolution never
// fails the machine: unavailable assets degrade in place and the pipeline
// proceeds. No state is retried.
type StateMachine struct {
	allowedTransitions map[GenerationState][]GenerationState
}

// NewStateMachine creates the generation state machine.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[GenerationState][]GenerationState{
			StateRequested:      {StateRecordFetched, StateFailed},
			StateRecordFetched:  {StateAssetsResolved, StateFailed},
			StateAssetsResolved: {StateModelBuilt, StateFailed},
			StateModelBuilt:     {StateRendered, StateFailed},
			StateRendered:       {},
			StateFailed:         {},
		},
	}
}

// CanTransition checks if a lifecycle transition is allowed.
func (sm *StateMachine) CanTransition(from, to GenerationState) bool {
	for _, allowedTo := range sm.allowedTransitions[from] {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next states for a given state.
func (sm *StateMachine) GetAllowedTransitions(from GenerationState) []GenerationState {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []GenerationState{}
	}
	return allowed
}

// Tracker carries the current state of one request through the pipeline.
type Tracker struct {
	machine *StateMachine
	current GenerationState
}

// NewTracker starts a tracker in the Requested state.
func NewTracker() *Tracker {
	return &Tracker{machine: NewStateMachine(), current: StateRequested}
}

// Current returns the tracker's state.
func (t *Tracker) Current() GenerationState { return t.current }

// Advance moves to the next state, rejecting transitions the machine does
// not allow.
func (t *Tracker) Advance(to GenerationState) error {
	if !t.machine.CanTransition(t.current, to) {
		return fmt.Errorf("invalid generation transition %s -> %s", t.current, to)
	}
	t.current = to
	return nil
}
