package experiment

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/agent/actorcritic"
	env "github.com/samuelfneumann/pegsolitaire/environment"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"github.com/samuelfneumann/pegsolitaire/experiment/checkpointer"
	"github.com/samuelfneumann/pegsolitaire/experiment/metrics"
	"github.com/samuelfneumann/pegsolitaire/experiment/tracker"
	"github.com/samuelfneumann/pegsolitaire/experiment/trackers"
	"github.com/samuelfneumann/pegsolitaire/render"
	"github.com/stretchr/testify/require"
)

const episodes = 30

func newLearners(t *testing.T, kind string, features int) (*actorcritic.Actor,
	agent.Critic) {
	t.Helper()

	actor, err := actorcritic.NewActor(actorcritic.ActorConfig{
		LearningRate: 0.1,
		Gamma:        0.9,
		Epsilon:      0.5,
		GoalEpsilon:  0.01,
		TraceDecay:   0.8,
	}, episodes, 1)
	require.NoError(t, err)

	critic, err := actorcritic.NewCritic(kind, actorcritic.CriticConfig{
		LearningRate: 0.01,
		Gamma:        0.9,
		TraceDecay:   0.8,
		Layers:       []int{8},
	}, features, 1)
	require.NoError(t, err)

	return actor, critic
}

func newEnv(t *testing.T, size int) *env.PegSolitaire {
	t.Helper()
	e, _, err := env.NewPegSolitaire(pegsolitaire.Triangle, size,
		pegsolitaire.FixedStarter{})
	require.NoError(t, err)
	return e
}

func TestOnlineRun(t *testing.T) {
	for _, kind := range []string{actorcritic.TableCritic,
		actorcritic.NNCritic} {
		t.Run(kind, func(t *testing.T) {
			e := newEnv(t, 4)
			actor, critic := newLearners(t, kind, e.Features())

			dir := t.TempDir()
			pegs := trackers.NewRemainingPegs(filepath.Join(dir, "pegs.bin"))
			returns := trackers.NewReturn(filepath.Join(dir, "returns.bin"))
			lengths := trackers.NewEpisodeLength(filepath.Join(dir,
				"lengths.bin"))

			check, err := checkpointer.NewNEpisode(10, actor,
				checkpointer.FilenameEnumerator(0,
					filepath.Join(dir, "actor"), ".bin"))
			require.NoError(t, err)

			o, err := NewOnline(e, actor, critic, episodes,
				[]tracker.Tracker{pegs, returns},
				[]checkpointer.Checkpointer{check})
			require.NoError(t, err)
			o.Register(lengths)
			m := metrics.New(e.Features())
			o.SetMetrics(m)

			require.NoError(t, o.Run(context.Background()))
			require.Len(t, pegs.Data(), episodes)
			require.Len(t, returns.Data(), episodes)
			require.Len(t, lengths.Data(), episodes)
			for i, p := range pegs.Data() {
				require.GreaterOrEqual(t, p, 1.0)
				require.Greater(t, lengths.Data()[i], 0.0)
			}
			require.Less(t, actor.Epsilon(), 0.5)

			require.NoError(t, o.Save())
			saved, err := tracker.LoadData(filepath.Join(dir, "pegs.bin"))
			require.NoError(t, err)
			require.Equal(t, pegs.Data(), saved)

			_, err = actorcritic.LoadActor(filepath.Join(dir, "actor3.bin"))
			require.NoError(t, err)

			var out bytes.Buffer
			left, err := o.Play(render.NewTerminal(&out, false))
			require.NoError(t, err)
			require.GreaterOrEqual(t, left, 1)
			require.Equal(t, 0.0, actor.Epsilon())
			require.NotEmpty(t, out.String())
		})
	}
}

func TestRunEpisodeSummary(t *testing.T) {
	e := newEnv(t, 5)
	actor, critic := newLearners(t, actorcritic.TableCritic, e.Features())
	o, err := NewOnline(e, actor, critic, episodes, nil, nil)
	require.NoError(t, err)

	episode, err := o.RunEpisode(0)
	require.NoError(t, err)
	require.Equal(t, 0, episode.Number)
	require.Equal(t, e.Features()-1-episode.Moves, episode.RemainingPegs)
	require.Equal(t, episode.RemainingPegs == 1, episode.Win)
	require.Greater(t, actor.States(), 0)
}

func TestRunEpisodeNoLegalMoves(t *testing.T) {
	e := newEnv(t, 2)
	actor, critic := newLearners(t, actorcritic.TableCritic, e.Features())
	o, err := NewOnline(e, actor, critic, episodes, nil, nil)
	require.NoError(t, err)

	_, err = o.RunEpisode(0)
	require.True(t, errors.Is(err, ErrNoLegalMoves))

	_, err = o.Play(render.Nop{})
	require.True(t, errors.Is(err, ErrNoLegalMoves))
}

func TestRunCancelled(t *testing.T) {
	e := newEnv(t, 4)
	actor, critic := newLearners(t, actorcritic.TableCritic, e.Features())
	lengths := trackers.NewEpisodeLength("")
	o, err := NewOnline(e, actor, critic, episodes,
		[]tracker.Tracker{lengths}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.True(t, errors.Is(o.Run(ctx), context.Canceled))
	require.Empty(t, lengths.Data())
}

func TestNewOnlineInvalid(t *testing.T) {
	e := newEnv(t, 4)
	actor, critic := newLearners(t, actorcritic.TableCritic, e.Features())
	_, err := NewOnline(e, actor, critic, 0, nil, nil)
	require.Error(t, err)
}
