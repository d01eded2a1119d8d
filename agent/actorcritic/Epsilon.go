package actorcritic

import (
	"fmt"
	"math"
)

// EpsilonSchedule decays an exploration rate multiplicatively towards a
// floor. The decay factor f is chosen once so that
//
//	floor = initial * f^episodes
//
// and so epsilon reaches the floor after the configured number of
// decays. Epsilon never drops below the floor.
type EpsilonSchedule struct {
	initial float64
	floor   float64
	factor  float64
	current float64
}

// NewEpsilonSchedule returns a new EpsilonSchedule which decays from
// initial to floor over episodes decays
func NewEpsilonSchedule(initial, floor float64,
	episodes int) (*EpsilonSchedule, error) {
	if initial < 0 || initial > 1 {
		return nil, fmt.Errorf("newEpsilonSchedule: initial epsilon must "+
			"be in [0, 1], got %v", initial)
	}
	if floor <= 0 || floor > 1 {
		return nil, fmt.Errorf("newEpsilonSchedule: goal epsilon must be "+
			"in (0, 1], got %v", floor)
	}
	if episodes <= 0 {
		return nil, fmt.Errorf("newEpsilonSchedule: episodes must be "+
			"positive, got %v", episodes)
	}

	// Epsilon never starts below the floor
	initial = math.Max(initial, floor)
	factor := math.Pow(floor/initial, 1.0/float64(episodes))

	return &EpsilonSchedule{
		initial: initial,
		floor:   floor,
		factor:  factor,
		current: initial,
	}, nil
}

// Epsilon returns the current exploration rate
func (e *EpsilonSchedule) Epsilon() float64 {
	return e.current
}

// Factor returns the multiplicative decay factor
func (e *EpsilonSchedule) Factor() float64 {
	return e.factor
}

// Decay decays the exploration rate once and returns the new rate
func (e *EpsilonSchedule) Decay() float64 {
	if e.current > e.floor {
		e.current = math.Max(e.floor, e.current*e.factor)
	}
	return e.current
}

// Reset restores the initial exploration rate
func (e *EpsilonSchedule) Reset() {
	e.current = e.initial
}

// Zero sets the exploration rate to zero until the next Reset
func (e *EpsilonSchedule) Zero() {
	e.current = 0.0
}
