// Package agent defines the interfaces of the actor and critic that learn
// to play Peg Solitaire
package agent

import (
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"github.com/samuelfneumann/pegsolitaire/timestep"
)

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select moves. A Policy must always
// select one of the legal moves it is given.
type Policy interface {
	SelectMove(state string, legal []pegsolitaire.Move) pegsolitaire.Move
}

// Actor implements a Policy which learns move preferences from the TD
// errors computed by a Critic
type Actor interface {
	Policy

	// RegisterState ensures each legal move in state has a preference
	RegisterState(state string, legal []pegsolitaire.Move)

	// SetInitialTrace sets the eligibility of a state-move pair to 1
	// if it has not yet been visited this episode
	SetInitialTrace(state string, move pegsolitaire.Move)

	// Update adjusts the preference of every state-move pair in the
	// episode's history by the TD error
	Update(history []StateMove, tdError float64, current string)

	// DecayEpsilon decays the exploration rate at the end of an episode
	DecayEpsilon()

	ResetEligibilities()
	ResetEpsilon()
	SetEpsilonZero()
	Epsilon() float64
}

// Critic implements a state-value estimator which computes the TD error
// used to update both itself and an Actor.
//
// A Critic may be a table of state values or a function approximator;
// code using a Critic should never need to know which.
type Critic interface {
	// TdError returns the bootstrapped target value and current value
	// estimate of a transition. The TD error is target - estimate.
	TdError(t timestep.Transition) (target, estimate float64, err error)

	// Update performs a trace-weighted update of the value estimates
	// for all states in the episode's history
	Update(history []string, target, estimate float64) error

	// SetInitialTrace sets the eligibility of state to 1 if it has not
	// yet been visited this episode
	SetInitialTrace(state string)

	// ResetEligibilities zeroes all eligibility traces
	ResetEligibilities()
}

// StateMove is a single state-move pair visited during an episode
type StateMove struct {
	State string
	Move  pegsolitaire.Move
}
