package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samuelfneumann/pegsolitaire/agent/actorcritic"
	"github.com/samuelfneumann/pegsolitaire/solver"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, c.NNCritic, c.CriticConfig())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
game:
  shape: diamond
  size: 4
  initial_empty: [[1, 1]]
episodes: 50
critic: table
critic_config:
  learning_rate: 0.5
  gamma: 0.95
  trace_decay: 0.9
nn_critic_config:
  learning_rate: 0.01
  gamma: 0.9
  layers: [10, 5]
  activation: tanh
  solver:
    type: Adam
    config:
      step_size: 0.001
display:
  renderer: png
  delay: 250ms
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "diamond", c.Game.Shape)
	require.Equal(t, [][]int{{1, 1}}, c.Game.InitialEmpty)
	require.Equal(t, 50, c.Episodes)
	require.Equal(t, 0.5, c.CriticConfig().LearningRate)
	require.Equal(t, []int{10, 5}, c.NNCritic.Layers)
	require.Equal(t, "tanh", c.NNCritic.Activation.String())
	require.Equal(t, solver.Adam, c.NNCritic.Solver.Type)
	require.Equal(t, 250*time.Millisecond, c.Display.Delay)

	// Unset fields keep their defaults
	require.Equal(t, Default().Actor, c.Actor)
	require.Equal(t, Default().Output, c.Output)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"critic kind":     "critic: forest\n",
		"episodes":        "episodes: 0\n",
		"board":           "game:\n  shape: hexagon\n",
		"empty cell":      "game:\n  initial_empty: [[9, 9]]\n",
		"actor":           "actor:\n  learning_rate: -1\n",
		"selected critic": "critic: table\ncritic_config:\n  learning_rate: 0\n",
		"renderer":        "display:\n  renderer: hologram\n",
		"syntax":          "episodes: [\n",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, contents))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestUnselectedCriticNotValidated(t *testing.T) {
	c := Default()
	c.Critic = actorcritic.NNCritic
	c.TableCritic = actorcritic.CriticConfig{}
	require.NoError(t, c.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	c := Default()
	c.Episodes = 12
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 12, loaded.Episodes)
	require.Equal(t, c.Display, loaded.Display)
}
