package trackers

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/pegsolitaire/experiment/tracker"
	"github.com/samuelfneumann/pegsolitaire/timestep"
)

// RemainingPegs tracks and saves the number of pegs left on the board
// at the end of each episode. A won game leaves one peg.
type RemainingPegs struct {
	pegs     []float64
	filename string
}

// NewRemainingPegs returns a new RemainingPegs tracker which will save
// its data at the specified location filename
func NewRemainingPegs(filename string) *RemainingPegs {
	return &RemainingPegs{filename: filename}
}

// Track counts the pegs of the state of the last timestep of an episode
func (r *RemainingPegs) Track(t timestep.TimeStep) {
	if t.Last() {
		r.pegs = append(r.pegs, float64(strings.Count(t.State, "1")))
	}
}

// Data returns the remaining pegs of each finished episode
func (r *RemainingPegs) Data() []float64 {
	return r.pegs
}

// Save saves the data tracked by the RemainingPegs Tracker to disk.
func (r *RemainingPegs) Save() error {
	if err := tracker.SaveData(r.filename, r.pegs); err != nil {
		return fmt.Errorf("save: could not save remaining pegs: %w", err)
	}
	return nil
}

var (
	_ tracker.Tracker = &Return{}
	_ tracker.Tracker = &EpisodeLength{}
	_ tracker.Tracker = &RemainingPegs{}
)
