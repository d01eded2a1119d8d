package actorcritic

import (
	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
)

// StateTraces stores an eligibility trace for each state visited during
// an episode
type StateTraces struct {
	traces map[string]float64
}

// NewStateTraces returns a new, empty StateTraces
func NewStateTraces() *StateTraces {
	return &StateTraces{traces: make(map[string]float64)}
}

// Ensure registers state with a zero trace if it has no trace. It
// returns whether the state was newly registered.
func (s *StateTraces) Ensure(state string) bool {
	if _, ok := s.traces[state]; ok {
		return false
	}
	s.traces[state] = 0.0
	return true
}

// Set sets the trace of state
func (s *StateTraces) Set(state string, trace float64) {
	s.traces[state] = trace
}

// Get returns the trace of state, which is 0 for unregistered states
func (s *StateTraces) Get(state string) float64 {
	return s.traces[state]
}

// Decay multiplies the trace of state by factor
func (s *StateTraces) Decay(state string, factor float64) {
	if _, ok := s.traces[state]; ok {
		s.traces[state] *= factor
	}
}

// Reset forgets every state, so that all traces are zero
func (s *StateTraces) Reset() {
	s.traces = make(map[string]float64)
}

// Len returns the number of registered states
func (s *StateTraces) Len() int {
	return len(s.traces)
}

// StateMoveTraces stores an eligibility trace for each state-move pair
// visited during an episode
type StateMoveTraces struct {
	traces map[agent.StateMove]float64
}

// NewStateMoveTraces returns a new, empty StateMoveTraces
func NewStateMoveTraces() *StateMoveTraces {
	return &StateMoveTraces{traces: make(map[agent.StateMove]float64)}
}

// Ensure registers the pair (state, move) with a zero trace if it has
// no trace. It returns whether the pair was newly registered.
func (s *StateMoveTraces) Ensure(state string, move pegsolitaire.Move) bool {
	key := agent.StateMove{State: state, Move: move}
	if _, ok := s.traces[key]; ok {
		return false
	}
	s.traces[key] = 0.0
	return true
}

// Set sets the trace of (state, move)
func (s *StateMoveTraces) Set(state string, move pegsolitaire.Move,
	trace float64) {
	s.traces[agent.StateMove{State: state, Move: move}] = trace
}

// Get returns the trace of (state, move), which is 0 for unregistered
// pairs
func (s *StateMoveTraces) Get(state string, move pegsolitaire.Move) float64 {
	return s.traces[agent.StateMove{State: state, Move: move}]
}

// Decay multiplies the trace of (state, move) by factor
func (s *StateMoveTraces) Decay(state string, move pegsolitaire.Move,
	factor float64) {
	key := agent.StateMove{State: state, Move: move}
	if _, ok := s.traces[key]; ok {
		s.traces[key] *= factor
	}
}

// Reset forgets every state-move pair, so that all traces are zero
func (s *StateMoveTraces) Reset() {
	s.traces = make(map[agent.StateMove]float64)
}

// Len returns the number of registered state-move pairs
func (s *StateMoveTraces) Len() int {
	return len(s.traces)
}
