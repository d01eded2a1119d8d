// Package experiment implements functionality for training an actor and
// critic to play Peg Solitaire and for watching the trained actor play
package experiment

import (
	"context"
	"errors"

	"github.com/samuelfneumann/pegsolitaire/experiment/tracker"
	"github.com/samuelfneumann/pegsolitaire/render"
)

// ErrNoLegalMoves is returned when an episode starts on a board where
// no move can be made
var ErrNoLegalMoves = errors.New("no legal moves in the starting state")

// Experiment outlines structs that can run experiments.
//
// Experiments track environment TimeSteps, caching the data of each
// TimeStep in RAM to be later saved to disk. The Save() method will
// then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method runs
// all episodes, and RunEpisode() runs a single one.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. New Trackers can
// be registered with an Experiment through the constructor or through
// an Experiment's Register() method.
type Experiment interface {
	Run(ctx context.Context) error
	RunEpisode(i int) (Episode, error)
	Play(r render.Renderer) (int, error)

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment
	Register(t tracker.Tracker)

	// Save all tracked data to disk
	Save() error
}

// Episode summarizes a finished training episode
type Episode struct {
	Number        int
	Moves         int
	Return        float64
	RemainingPegs int
	Win           bool
	Epsilon       float64 // Exploration rate after the episode
}
