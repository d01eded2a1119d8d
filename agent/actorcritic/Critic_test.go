package actorcritic

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/pegsolitaire/initwfn"
	"github.com/samuelfneumann/pegsolitaire/solver"
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
	"github.com/stretchr/testify/require"
)

func criticConfig() CriticConfig {
	return CriticConfig{LearningRate: 0.1, Gamma: 0.9, TraceDecay: 0.5}
}

func TestNewCriticKinds(t *testing.T) {
	c, err := NewCritic("table", criticConfig(), 3, 1)
	require.NoError(t, err)
	require.IsType(t, &Tabular{}, c)

	c, err = NewCritic("ANN", criticConfig(), 3, 1)
	require.NoError(t, err)
	require.IsType(t, &NN{}, c)

	_, err = NewCritic("forest", criticConfig(), 3, 1)
	var kindErr *CriticKindError
	require.True(t, errors.As(err, &kindErr))
	require.Equal(t, "forest", kindErr.Kind)

	_, err = NewCritic("table", CriticConfig{LearningRate: 0}, 3, 1)
	require.Error(t, err)
}

func TestTabularInitialValues(t *testing.T) {
	c, err := NewTabular(criticConfig(), 7)
	require.NoError(t, err)

	for _, s := range []string{"000", "001", "010", "011", "100"} {
		v := c.Value(s)
		require.GreaterOrEqual(t, v, InitValueMin)
		require.Less(t, v, InitValueMax)

		// Values are stable once drawn
		require.Equal(t, v, c.Value(s))
	}
	require.Equal(t, 5, c.States())

	// The same seed draws the same values
	d, err := NewTabular(criticConfig(), 7)
	require.NoError(t, err)
	require.Equal(t, c.Value("000"), d.Value("000"))
}

func TestTabularTdError(t *testing.T) {
	c, err := NewTabular(criticConfig(), 1)
	require.NoError(t, err)

	tr := ts.Transition{State: "110", Reward: 0.5, Discount: 1.0,
		NextState: "001"}
	target, estimate, err := c.TdError(tr)
	require.NoError(t, err)
	require.InDelta(t, 0.5+0.9*c.Value("001"), target, 1e-12)
	require.Equal(t, c.Value("110"), estimate)

	// Terminal transitions do not bootstrap
	tr.Discount = 0.0
	target, _, err = c.TdError(tr)
	require.NoError(t, err)
	require.Equal(t, 0.5, target)
}

func TestTabularUpdateTraces(t *testing.T) {
	c, err := NewTabular(criticConfig(), 1)
	require.NoError(t, err)

	v0, v1 := c.Value("s0"), c.Value("s1")

	c.SetInitialTrace("s0")
	require.NoError(t, c.Update([]string{"s0"}, 2.0, 1.0))
	require.InDelta(t, v0+0.1, c.Value("s0"), 1e-12)
	require.Equal(t, 1.0, c.Trace("s0"))

	c.SetInitialTrace("s1")
	require.NoError(t, c.Update([]string{"s0", "s1"}, 1.0, 3.0))
	require.InDelta(t, v0+0.1-0.2, c.Value("s0"), 1e-12)
	require.InDelta(t, v1-0.2, c.Value("s1"), 1e-12)
	require.InDelta(t, 0.45, c.Trace("s0"), 1e-12)
	require.Equal(t, 1.0, c.Trace("s1"))

	c.ResetEligibilities()
	require.Equal(t, 0.0, c.Trace("s0"))
	require.Equal(t, 0.0, c.Trace("s1"))
}

func TestTabularSaveLoad(t *testing.T) {
	c, err := NewTabular(criticConfig(), 3)
	require.NoError(t, err)
	c.Value("101")
	c.SetInitialTrace("101")
	require.NoError(t, c.Update([]string{"101"}, 5.0, 0.0))

	filename := filepath.Join(t.TempDir(), "critic.bin")
	require.NoError(t, c.Save(filename))

	loaded, err := LoadCritic(TableCritic, filename)
	require.NoError(t, err)
	tab := loaded.(*Tabular)
	require.Equal(t, c.Value("101"), tab.Value("101"))
	require.Equal(t, 1, tab.States())
}

func linearNN(t *testing.T) *NN {
	t.Helper()

	ones, err := initwfn.NewOnes()
	require.NoError(t, err)
	vanilla, err := solver.NewVanilla(0.1, 1, -1)
	require.NoError(t, err)

	config := criticConfig()
	config.InitWFn = ones
	config.Solver = vanilla

	c, err := NewNN(config, 3)
	require.NoError(t, err)
	return c
}

func TestNNValue(t *testing.T) {
	c := linearNN(t)

	v, err := c.Value("101")
	require.NoError(t, err)
	require.InDelta(t, 2.0, v, 1e-12)

	v, err = c.Value("000")
	require.NoError(t, err)
	require.InDelta(t, 0.0, v, 1e-12)

	_, err = c.Value("10")
	require.Error(t, err)
	_, err = c.Value("1x1")
	require.Error(t, err)
}

func TestNNUpdate(t *testing.T) {
	c := linearNN(t)

	target, estimate, err := c.TdError(ts.Transition{State: "101",
		Reward: 1.0, Discount: 0.0, NextState: "001"})
	require.NoError(t, err)
	require.Equal(t, 1.0, target)
	require.InDelta(t, 2.0, estimate, 1e-12)

	// The gradient of a linear value is the input, plus 1 for the bias.
	// With a TD error of -1 each active weight and the bias drop by 0.1.
	require.NoError(t, c.Update([]string{"101"}, target, estimate))
	v, err := c.Value("101")
	require.NoError(t, err)
	require.InDelta(t, 2.0-0.3, v, 1e-9)

	v, err = c.Value("010")
	require.NoError(t, err)
	require.InDelta(t, 1.0-0.1, v, 1e-9)

	// Traces are decayed by γλ after each update
	require.InDelta(t, 0.45, c.traces[0].AtVec(0), 1e-12)
	require.InDelta(t, 0.0, c.traces[0].AtVec(1), 1e-12)

	c.ResetEligibilities()
	require.Equal(t, 0.0, c.traces[0].AtVec(0))
}

func TestNNUpdateAfterEvaluations(t *testing.T) {
	c := linearNN(t)

	// Evaluating the network must not leave gradients behind for the
	// next update
	for i := 0; i < 5; i++ {
		for _, s := range []string{"111", "110", "011"} {
			_, err := c.Value(s)
			require.NoError(t, err)
		}
		_, _, err := c.TdError(ts.Transition{State: "111", Reward: 1,
			Discount: 1, NextState: "010"})
		require.NoError(t, err)
	}

	// δ = 1, so each active weight and the bias grow by lr = 0.1
	require.NoError(t, c.Update([]string{"101"}, 3.0, 2.0))
	for state, want := range map[string]float64{
		"101": 2.3,
		"010": 1.1,
		"000": 0.1,
	} {
		v, err := c.Value(state)
		require.NoError(t, err)
		require.InDelta(t, want, v, 1e-9, state)
	}

	// A second update adds the trace of the first, decayed by γλ
	require.NoError(t, c.Update([]string{"101", "010"}, 1.0, 0.0))
	v, err := c.Value("000")
	require.NoError(t, err)
	require.InDelta(t, 0.1+0.1*(1+0.45), v, 1e-9)
}

func TestNNConvergesToTarget(t *testing.T) {
	tests := []struct {
		name       string
		layers     []int
		lr         float64
		iterations int
		delta      float64
	}{
		{"linear", nil, 0.05, 200, 1e-3},
		{"hidden", []int{4}, 0.01, 1000, 0.1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := criticConfig()
			config.LearningRate = test.lr
			config.Layers = test.layers

			// Default Momentum solver and GlorotU weights
			c, err := NewNN(config, 3)
			require.NoError(t, err)

			tr := ts.Transition{State: "101", Reward: 10, Discount: 0,
				NextState: "000"}
			for i := 0; i < test.iterations; i++ {
				c.ResetEligibilities()
				target, estimate, err := c.TdError(tr)
				require.NoError(t, err)
				require.False(t, math.IsNaN(estimate), "iteration %v", i)
				require.NoError(t, c.Update([]string{tr.State}, target,
					estimate))
			}

			v, err := c.Value(tr.State)
			require.NoError(t, err)
			require.InDelta(t, 10.0, v, test.delta)
		})
	}
}

func TestNNSaveLoad(t *testing.T) {
	c := linearNN(t)
	require.NoError(t, c.Update([]string{"110"}, 4.0, 2.0))
	want, err := c.Value("111")
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "critic.bin")
	require.NoError(t, c.Save(filename))

	loaded, err := LoadCritic(NNCritic, filename)
	require.NoError(t, err)
	got, err := loaded.(*NN).Value("111")
	require.NoError(t, err)
	require.InDelta(t, want, got, 1e-12)
}
