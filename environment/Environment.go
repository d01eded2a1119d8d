// Package environment outlines the interfaces and structs needed to
// drive a Peg Solitaire game as a reinforcement learning environment
package environment

import (
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
)

// Environment implements a simulated episodic environment over a Peg
// Solitaire board
type Environment interface {
	// Reset starts a new episode on a fresh board and returns its first
	// timestep
	Reset() (ts.TimeStep, error)

	// Step takes a move in the environment, returning the next timestep
	// and whether the episode is over
	Step(pegsolitaire.Move) (ts.TimeStep, bool, error)

	// LastTimeStep returns the most recent timestep of the episode
	LastTimeStep() ts.TimeStep

	// Board returns a snapshot of the current board, safe to render
	Board() *pegsolitaire.Board

	// Features returns the length of each observation vector
	Features() int
}
