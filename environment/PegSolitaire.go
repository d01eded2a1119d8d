package environment

import (
	"fmt"

	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
	"gonum.org/v1/gonum/mat"
)

// PegSolitaire implements the Environment interface for a game of Peg
// Solitaire. A new Game is created on every call to Reset, with its
// empty cells chosen by the environment's Starter.
type PegSolitaire struct {
	pegsolitaire.Starter
	shape pegsolitaire.Shape
	size  int

	game        *pegsolitaire.Game
	currentStep ts.TimeStep
}

// NewPegSolitaire returns a new PegSolitaire environment and its first
// timestep
func NewPegSolitaire(shape pegsolitaire.Shape, size int,
	s pegsolitaire.Starter) (*PegSolitaire, ts.TimeStep, error) {
	p := &PegSolitaire{
		Starter: s,
		shape:   shape,
		size:    size,
	}

	step, err := p.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newPegSolitaire: %w", err)
	}
	return p, step, nil
}

// Reset implements the Environment interface
func (p *PegSolitaire) Reset() (ts.TimeStep, error) {
	game, err := pegsolitaire.NewGame(p.shape, p.size, p.Start())
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}
	p.game = game

	stepType := ts.First
	legal := game.LegalMoves()
	if game.IsTerminal() {
		// A board with no legal moves at the start is immediately over
		stepType = ts.Last
		legal = nil
	}

	p.currentStep = ts.New(stepType, 0.0, 1.0, game.State(),
		p.observation(), legal, 0)
	return p.currentStep, nil
}

// Step implements the Environment interface. Taking an illegal move
// returns a *pegsolitaire.IllegalMoveError and leaves the environment
// unchanged.
func (p *PegSolitaire) Step(m pegsolitaire.Move) (ts.TimeStep, bool, error) {
	if p.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode is over, " +
			"call Reset to start a new episode")
	}

	state, reward, done, legal, err := p.game.Step(m)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}

	stepType := ts.Mid
	if done {
		stepType = ts.Last
	}

	p.currentStep = ts.New(stepType, reward, 1.0, state, p.observation(),
		legal, p.currentStep.Number+1)
	return p.currentStep, done, nil
}

// LastTimeStep implements the Environment interface
func (p *PegSolitaire) LastTimeStep() ts.TimeStep {
	return p.currentStep
}

// Board implements the Environment interface
func (p *PegSolitaire) Board() *pegsolitaire.Board {
	return p.game.Board().Clone()
}

// Features implements the Environment interface
func (p *PegSolitaire) Features() int {
	return p.shape.NumCells(p.size)
}

// RemainingPegs returns the number of pegs left in the current episode
func (p *PegSolitaire) RemainingPegs() int {
	return p.game.RemainingPegs()
}

// IsWin returns whether the current episode has been won
func (p *PegSolitaire) IsWin() bool {
	return p.game.IsWin()
}

// observation returns the occupancy of the current board as a vector
func (p *PegSolitaire) observation() *mat.VecDense {
	obs := p.game.Board().Vector()
	return mat.NewVecDense(len(obs), obs)
}
