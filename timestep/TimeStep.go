// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment.
//
// State is the canonical state key of the board and Observation is the
// same occupancy as a feature vector. LegalMoves lists the moves that
// may be taken from this timestep; it is empty on the last timestep of
// an episode unless the episode ended in a win with moves remaining.
type TimeStep struct {
	stepType    StepType
	Reward      float64
	Discount    float64
	State       string
	Observation mat.Vector
	LegalMoves  []pegsolitaire.Move
	Number      int
}

// New returns a new TimeStep. The discount of a Last TimeStep is always
// 0 so that no value is bootstrapped from a terminal state.
func New(t StepType, r, d float64, state string, o mat.Vector,
	legal []pegsolitaire.Move, n int) TimeStep {
	if t == Last {
		d = 0.0
	}
	return TimeStep{t, r, d, state, o, legal, n}
}

// StepType returns the type of the TimeStep
func (t TimeStep) StepType() StepType {
	return t.stepType
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  State: %v"

	return fmt.Sprintf(str, t.stepType, t.Reward, t.Discount, t.Number,
		t.State)
}

// Transition is a single (s, a, r, s') transition between two
// consecutive TimeSteps
type Transition struct {
	State           string
	Observation     mat.Vector
	Move            pegsolitaire.Move
	Reward          float64
	Discount        float64
	NextState       string
	NextObservation mat.Vector
}

// NewTransition returns the Transition caused by taking move in step
// and arriving at next. The reward and discount are those of next.
func NewTransition(step TimeStep, move pegsolitaire.Move,
	next TimeStep) Transition {
	return Transition{
		State:           step.State,
		Observation:     step.Observation,
		Move:            move,
		Reward:          next.Reward,
		Discount:        next.Discount,
		NextState:       next.State,
		NextObservation: next.Observation,
	}
}
