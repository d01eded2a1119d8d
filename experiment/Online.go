package experiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samuelfneumann/pegsolitaire/agent"
	env "github.com/samuelfneumann/pegsolitaire/environment"
	"github.com/samuelfneumann/pegsolitaire/experiment/checkpointer"
	"github.com/samuelfneumann/pegsolitaire/experiment/metrics"
	"github.com/samuelfneumann/pegsolitaire/experiment/tracker"
	"github.com/samuelfneumann/pegsolitaire/render"
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
	"github.com/samuelfneumann/pegsolitaire/utils/progressbar"
)

// DefaultLogEvery is the default number of episodes between log lines
const DefaultLogEvery = 100

// Online is an Experiment that trains an actor and critic online, one
// episode after another, learning after every move.
type Online struct {
	env      env.Environment
	actor    agent.Actor
	critic   agent.Critic
	episodes int

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	metrics       *metrics.Metrics
	progress      *progressbar.ProgressBar

	// LogEvery is the number of episodes between log lines, no logging
	// is done if LogEvery <= 0
	LogEvery int
}

// NewOnline creates and returns a new online experiment which trains
// actor and critic on environment e for the given number of episodes.
// The t parameter is a slice of tracker.Tracker which determine what
// data is saved, and c determines what is checkpointed and when.
func NewOnline(e env.Environment, actor agent.Actor, critic agent.Critic,
	episodes int, t []tracker.Tracker,
	c []checkpointer.Checkpointer) (*Online, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("newOnline: episodes must be positive, got %v",
			episodes)
	}

	return &Online{
		env:           e,
		actor:         actor,
		critic:        critic,
		episodes:      episodes,
		trackers:      t,
		checkpointers: c,
		LogEvery:      DefaultLogEvery,
	}, nil
}

// SetMetrics sets the metrics updated after every episode
func (o *Online) SetMetrics(m *metrics.Metrics) {
	o.metrics = m
}

// SetProgressBar sets a progress bar which is displayed after every
// episode
func (o *Online) SetProgressBar(p *progressbar.ProgressBar) {
	o.progress = p
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Run runs all episodes of the experiment. Cancelling ctx stops the
// experiment before the next episode starts.
func (o *Online) Run(ctx context.Context) error {
	log.Info().Int("episodes", o.episodes).Msg("starting training")

	wins := 0
	for i := 0; i < o.episodes; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("episode", i).Msg("training cancelled")
			return fmt.Errorf("run: %w", err)
		}

		episode, err := o.RunEpisode(i)
		if err != nil {
			return fmt.Errorf("run: episode %v: %w", i, err)
		}
		if episode.Win {
			wins++
		}

		if o.progress != nil {
			o.progress.Increment()
			o.progress.Display(fmt.Sprintf("pegs: %v  ε: %.4f",
				episode.RemainingPegs, episode.Epsilon))
		}

		if o.LogEvery > 0 && (i+1)%o.LogEvery == 0 {
			log.Info().
				Int("episode", i+1).
				Int("remaining_pegs", episode.RemainingPegs).
				Float64("return", episode.Return).
				Float64("epsilon", episode.Epsilon).
				Int("wins", wins).
				Msg("training progress")
		}
	}

	if o.progress != nil {
		o.progress.Close()
	}
	log.Info().Int("episodes", o.episodes).Int("wins", wins).
		Msg("finished training")
	return nil
}

// RunEpisode runs a single training episode, numbered i from 0
func (o *Online) RunEpisode(i int) (Episode, error) {
	o.actor.ResetEligibilities()
	o.critic.ResetEligibilities()

	step, err := o.env.Reset()
	if err != nil {
		return Episode{}, fmt.Errorf("runEpisode: %w", err)
	}
	if step.Last() || len(step.LegalMoves) == 0 {
		return Episode{}, fmt.Errorf("runEpisode: %w", ErrNoLegalMoves)
	}
	o.track(step)

	var (
		history []agent.StateMove
		states  []string
		ret     float64
	)
	move := o.actor.SelectMove(step.State, step.LegalMoves)

	for !step.Last() {
		o.actor.RegisterState(step.State, step.LegalMoves)

		next, done, err := o.env.Step(move)
		if err != nil {
			return Episode{}, fmt.Errorf("runEpisode: %w", err)
		}
		o.track(next)
		ret += next.Reward

		nextMove := move
		if !done {
			nextMove = o.actor.SelectMove(next.State, next.LegalMoves)
		}

		o.actor.SetInitialTrace(step.State, move)
		o.critic.SetInitialTrace(step.State)

		target, estimate, err := o.critic.TdError(
			ts.NewTransition(step, move, next))
		if err != nil {
			return Episode{}, fmt.Errorf("runEpisode: %w", err)
		}
		tdError := target - estimate

		history = append(history, agent.StateMove{State: step.State,
			Move: move})
		states = append(states, step.State)

		if err := o.critic.Update(states, target, estimate); err != nil {
			return Episode{}, fmt.Errorf("runEpisode: %w", err)
		}
		o.actor.Update(history, tdError, step.State)

		if o.metrics != nil {
			o.metrics.ObserveTdError(tdError)
		}
		log.Debug().
			Str("state", step.State).
			Stringer("move", move).
			Float64("td_error", tdError).
			Msg("step")

		step, move = next, nextMove
	}

	o.actor.DecayEpsilon()

	pegs := strings.Count(step.State, "1")
	episode := Episode{
		Number:        i,
		Moves:         step.Number,
		Return:        ret,
		RemainingPegs: pegs,
		Win:           pegs == 1,
		Epsilon:       o.actor.Epsilon(),
	}

	if o.metrics != nil {
		o.metrics.ObserveEpisode(episode.RemainingPegs, episode.Win,
			episode.Epsilon)
	}
	if err := o.checkpoint(i); err != nil {
		return episode, fmt.Errorf("runEpisode: %w", err)
	}
	return episode, nil
}

// Play turns off exploration and plays a single game with the actor,
// without learning. The board is rendered at the start of the game and
// after every move. Play returns the number of pegs left at the end of
// the game. Exploration stays off after Play returns.
func (o *Online) Play(r render.Renderer) (int, error) {
	o.actor.SetEpsilonZero()

	step, err := o.env.Reset()
	if err != nil {
		return 0, fmt.Errorf("play: %w", err)
	}
	if step.Last() || len(step.LegalMoves) == 0 {
		return 0, fmt.Errorf("play: %w", ErrNoLegalMoves)
	}
	if err := r.Render(o.env.Board()); err != nil {
		return 0, fmt.Errorf("play: %w", err)
	}

	for !step.Last() {
		move := o.actor.SelectMove(step.State, step.LegalMoves)
		step, _, err = o.env.Step(move)
		if err != nil {
			return 0, fmt.Errorf("play: %w", err)
		}
		if err := r.Render(o.env.Board()); err != nil {
			return 0, fmt.Errorf("play: %w", err)
		}
	}

	pegs := strings.Count(step.State, "1")
	log.Info().Int("remaining_pegs", pegs).Bool("win", pegs == 1).
		Msg("finished game")
	return pegs, nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}

// checkpoint checkpoints after episode i with each Checkpointer
func (o *Online) checkpoint(i int) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(i); err != nil {
			return err
		}
	}
	return nil
}

var _ Experiment = &Online{}
