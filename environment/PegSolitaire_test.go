package environment

import (
	"testing"

	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"github.com/stretchr/testify/require"
)

func TestPegSolitaireEpisode(t *testing.T) {
	env, first, err := NewPegSolitaire(pegsolitaire.Triangle, 5,
		pegsolitaire.FixedStarter{})
	require.NoError(t, err)

	require.True(t, first.First())
	require.Equal(t, "011111111111111", first.State)
	require.Equal(t, 15, first.Observation.Len())
	require.Equal(t, 15, env.Features())
	require.Len(t, first.LegalMoves, 2)
	require.Equal(t, 1.0, first.Discount)

	step := first
	for {
		next, done, err := env.Step(step.LegalMoves[0])
		require.NoError(t, err)
		require.Equal(t, step.Number+1, next.Number)
		require.Equal(t, next, env.LastTimeStep())
		require.Equal(t, env.Board().Serialize(), next.State)

		for i := 0; i < next.Observation.Len(); i++ {
			want := 0.0
			if next.State[i] == '1' {
				want = 1.0
			}
			require.Equal(t, want, next.Observation.AtVec(i))
		}

		if done {
			require.True(t, next.Last())
			require.Equal(t, 0.0, next.Discount)
			require.Empty(t, next.LegalMoves)
			break
		}
		require.True(t, next.Mid())
		step = next
	}

	// Stepping after the end of an episode is an error
	_, _, err = env.Step(pegsolitaire.Move{})
	require.Error(t, err)

	// Reset starts over on a fresh board
	step, err = env.Reset()
	require.NoError(t, err)
	require.Equal(t, first.State, step.State)
	require.Equal(t, 14, env.RemainingPegs())
}

func TestPegSolitaireIllegalMove(t *testing.T) {
	env, first, err := NewPegSolitaire(pegsolitaire.Diamond, 4,
		pegsolitaire.FixedStarter{{2, 1}})
	require.NoError(t, err)

	_, _, err = env.Step(pegsolitaire.Move{Origin: pegsolitaire.Coord{2, 1}})
	require.True(t, pegsolitaire.IsIllegalMove(err))
	require.Equal(t, first, env.LastTimeStep())
}

func TestPegSolitaireBoardIsSnapshot(t *testing.T) {
	env, first, err := NewPegSolitaire(pegsolitaire.Diamond, 5,
		pegsolitaire.FixedStarter{})
	require.NoError(t, err)

	b := env.Board()
	_, err = b.ApplyMove(first.LegalMoves[0])
	require.NoError(t, err)
	require.Equal(t, first.State, env.Board().Serialize())
}

func TestPegSolitaireBadStarter(t *testing.T) {
	_, _, err := NewPegSolitaire(pegsolitaire.Triangle, 4,
		pegsolitaire.FixedStarter{{0, 3}})
	require.True(t, pegsolitaire.IsConfigurationError(err))
}

func TestPegSolitaireTerminalStart(t *testing.T) {
	// Two pegs on a size 3 diamond with nothing to jump into
	empty := []pegsolitaire.Coord{{0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2},
		{2, 0}, {2, 1}}
	_, first, err := NewPegSolitaire(pegsolitaire.Diamond, 3,
		pegsolitaire.FixedStarter(empty))
	require.NoError(t, err)
	require.True(t, first.Last())
	require.Empty(t, first.LegalMoves)
}
