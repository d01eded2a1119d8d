package actorcritic

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"github.com/stretchr/testify/require"
)

var (
	moveA = pegsolitaire.Move{Origin: pegsolitaire.Coord{X: 2}, Direction: 0}
	moveB = pegsolitaire.Move{Origin: pegsolitaire.Coord{X: 2, Y: 2},
		Direction: 4}
	moveC = pegsolitaire.Move{Origin: pegsolitaire.Coord{X: 3, Y: 1},
		Direction: 0}
)

func newTestActor(t *testing.T, epsilon float64) *Actor {
	t.Helper()

	a, err := NewActor(ActorConfig{
		LearningRate: 0.1,
		Gamma:        0.9,
		Epsilon:      epsilon,
		GoalEpsilon:  0.001,
		TraceDecay:   0.8,
	}, 100, 42)
	require.NoError(t, err)

	// Epsilon starts no lower than the goal epsilon, so exploration is
	// turned off explicitly
	if epsilon == 0 {
		a.SetEpsilonZero()
	}
	return a
}

func TestNewActorInvalid(t *testing.T) {
	_, err := NewActor(ActorConfig{LearningRate: -1, GoalEpsilon: 0.1}, 10, 1)
	require.Error(t, err)

	_, err = NewActor(ActorConfig{LearningRate: 1, GoalEpsilon: 0.1}, 0, 1)
	require.Error(t, err)
}

func TestSelectMoveUnseenState(t *testing.T) {
	a := newTestActor(t, 0.0)
	legal := []pegsolitaire.Move{moveA, moveB, moveC}

	seen := map[pegsolitaire.Move]bool{}
	for i := 0; i < 200; i++ {
		seen[a.SelectMove("unseen", legal)] = true
	}
	require.Len(t, seen, 3)
	require.Equal(t, 0, a.States())
}

func TestSelectMoveAllZeroGreedy(t *testing.T) {
	a := newTestActor(t, 0.0)
	legal := []pegsolitaire.Move{moveB, moveA}
	a.RegisterState("s", legal)

	// With no exploration and all preferences zero the first registered
	// move is chosen
	for i := 0; i < 20; i++ {
		require.Equal(t, moveB, a.SelectMove("s", legal))
	}
}

func TestSelectMoveGreedyPrefersNonZero(t *testing.T) {
	a := newTestActor(t, 0.0)
	legal := []pegsolitaire.Move{moveA, moveB, moveC}
	a.RegisterState("s", legal)

	a.SetInitialTrace("s", moveC)
	a.Update([]agent.StateMove{{State: "s", Move: moveC}}, 5.0, "s")
	require.InDelta(t, 0.5, a.Preference("s", moveC), 1e-12)
	require.Equal(t, moveC, a.SelectMove("s", legal))

	// A negative preference still beats untried moves
	b := newTestActor(t, 0.0)
	b.RegisterState("s", legal)
	b.SetInitialTrace("s", moveB)
	b.Update([]agent.StateMove{{State: "s", Move: moveB}}, -5.0, "s")
	require.Equal(t, moveB, b.SelectMove("s", legal))
}

func TestSelectMoveExploresUntried(t *testing.T) {
	a := newTestActor(t, 1.0)
	legal := []pegsolitaire.Move{moveA, moveB, moveC}
	a.RegisterState("s", legal)
	a.SetInitialTrace("s", moveA)
	a.Update([]agent.StateMove{{State: "s", Move: moveA}}, 1.0, "s")

	seen := map[pegsolitaire.Move]bool{}
	for i := 0; i < 200; i++ {
		seen[a.SelectMove("s", legal)] = true
	}
	require.Equal(t, map[pegsolitaire.Move]bool{moveB: true, moveC: true},
		seen)
}

func TestSelectMoveAlwaysLegal(t *testing.T) {
	a := newTestActor(t, 0.0)
	a.RegisterState("s", []pegsolitaire.Move{moveA})
	a.SetInitialTrace("s", moveA)
	a.Update([]agent.StateMove{{State: "s", Move: moveA}}, 1.0, "s")

	// The policy prefers moveA but it is not legal here
	legal := []pegsolitaire.Move{moveB, moveC}
	for i := 0; i < 50; i++ {
		require.Contains(t, legal, a.SelectMove("s", legal))
	}

	require.Panics(t, func() { a.SelectMove("s", nil) })
}

func TestActorUpdateTraces(t *testing.T) {
	a := newTestActor(t, 0.0)
	a.RegisterState("s0", []pegsolitaire.Move{moveA})
	a.RegisterState("s1", []pegsolitaire.Move{moveB})

	history := []agent.StateMove{{State: "s0", Move: moveA}}
	a.SetInitialTrace("s0", moveA)
	a.Update(history, 1.0, "s0")
	require.InDelta(t, 0.1, a.Preference("s0", moveA), 1e-12)
	require.Equal(t, 1.0, a.Trace("s0", moveA))

	history = append(history, agent.StateMove{State: "s1", Move: moveB})
	a.SetInitialTrace("s1", moveB)
	a.Update(history, 2.0, "s1")

	// s0 was updated with its full trace then decayed by gamma*lambda
	require.InDelta(t, 0.1+0.1*2.0, a.Preference("s0", moveA), 1e-12)
	require.InDelta(t, 0.72, a.Trace("s0", moveA), 1e-12)
	require.InDelta(t, 0.2, a.Preference("s1", moveB), 1e-12)
	require.Equal(t, 1.0, a.Trace("s1", moveB))

	// An existing non-zero trace is not overwritten
	a.SetInitialTrace("s0", moveA)
	require.InDelta(t, 0.72, a.Trace("s0", moveA), 1e-12)

	a.ResetEligibilities()
	a.ResetEligibilities()
	require.Equal(t, 0.0, a.Trace("s0", moveA))
	require.Equal(t, 0.0, a.Trace("s1", moveB))
}

func TestActorPositiveTdErrorIncreasesPreference(t *testing.T) {
	a := newTestActor(t, 0.0)
	a.RegisterState("s", []pegsolitaire.Move{moveA})
	a.SetInitialTrace("s", moveA)

	// A win with V(s') = 0 gives target 100 > estimate
	target, estimate := 100.0, 0.05
	before := a.Preference("s", moveA)
	a.Update([]agent.StateMove{{State: "s", Move: moveA}}, target-estimate,
		"s")
	require.Greater(t, a.Preference("s", moveA), before)
}

func TestActorEpsilon(t *testing.T) {
	a := newTestActor(t, 0.5)
	require.Equal(t, 0.5, a.Epsilon())

	prev := a.Epsilon()
	for i := 0; i < 150; i++ {
		a.DecayEpsilon()
		require.LessOrEqual(t, a.Epsilon(), prev)
		require.GreaterOrEqual(t, a.Epsilon(), 0.001)
		prev = a.Epsilon()
	}

	a.SetEpsilonZero()
	require.Equal(t, 0.0, a.Epsilon())
	a.ResetEpsilon()
	require.Equal(t, 0.5, a.Epsilon())
}

func TestActorSaveLoad(t *testing.T) {
	a := newTestActor(t, 0.5)
	a.RegisterState("s0", []pegsolitaire.Move{moveB, moveA})
	a.RegisterState("s1", []pegsolitaire.Move{moveC})
	a.SetInitialTrace("s0", moveA)
	a.Update([]agent.StateMove{{State: "s0", Move: moveA}}, 3.0, "s0")
	a.DecayEpsilon()

	filename := filepath.Join(t.TempDir(), "actor.bin")
	require.NoError(t, a.Save(filename))

	loaded, err := LoadActor(filename)
	require.NoError(t, err)

	require.Equal(t, a.Config(), loaded.Config())
	require.Equal(t, a.Epsilon(), loaded.Epsilon())
	require.Equal(t, a.States(), loaded.States())
	require.Equal(t, a.Moves("s0"), loaded.Moves("s0"))
	require.Equal(t, a.Moves("s1"), loaded.Moves("s1"))
	require.Equal(t, a.Preference("s0", moveA), loaded.Preference("s0", moveA))

	// Traces are not saved
	require.Equal(t, 0.0, loaded.Trace("s0", moveA))

	// The loaded schedule still resets to the configured epsilon
	loaded.ResetEpsilon()
	require.Equal(t, 0.5, loaded.Epsilon())

	_, err = LoadActor(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}
