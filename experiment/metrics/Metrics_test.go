package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveEpisode(t *testing.T) {
	m := New(10)
	m.ObserveEpisode(1, true, 0.5)
	m.ObserveEpisode(4, false, 0.25)
	m.ObserveTdError(-3.0)

	require.Equal(t, 2.0, testutil.ToFloat64(m.episodes))
	require.Equal(t, 1.0, testutil.ToFloat64(m.wins))
	require.Equal(t, 0.25, testutil.ToFloat64(m.epsilon))
	count, err := testutil.GatherAndCount(m.Registry())
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestWriteTextfile(t *testing.T) {
	m := New(6)
	m.ObserveEpisode(2, false, 0.1)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, m.WriteTextfile(path))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(out), "pegsolitaire_episodes_total 1")
	require.Contains(t, string(out), "pegsolitaire_remaining_pegs_bucket")
}
