// Package metrics exports training statistics as Prometheus metrics
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pegsolitaire"

// Metrics holds the training metrics of a single run. Each Metrics has
// its own registry so that several runs in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	episodes      prometheus.Counter
	wins          prometheus.Counter
	epsilon       prometheus.Gauge
	remainingPegs prometheus.Histogram
	tdError       prometheus.Histogram
}

// New returns a new Metrics. The remaining pegs histogram has one bucket
// per possible peg count on a board with the given number of cells.
func New(cells int) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	if cells < 1 {
		cells = 1
	}

	return &Metrics{
		registry: reg,
		episodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_total",
			Help:      "Number of training episodes completed",
		}),
		wins: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wins_total",
			Help:      "Number of training episodes ending with a single peg",
		}),
		epsilon: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "epsilon",
			Help:      "Current exploration rate of the actor",
		}),
		remainingPegs: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remaining_pegs",
			Help:      "Pegs left on the board at the end of each episode",
			Buckets:   prometheus.LinearBuckets(1, 1, cells),
		}),
		tdError: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "td_error",
			Help:      "TD errors of all training steps",
			Buckets:   prometheus.LinearBuckets(-100, 20, 11),
		}),
	}
}

// ObserveEpisode records the outcome of a finished episode
func (m *Metrics) ObserveEpisode(remainingPegs int, win bool,
	epsilon float64) {
	m.episodes.Inc()
	if win {
		m.wins.Inc()
	}
	m.epsilon.Set(epsilon)
	m.remainingPegs.Observe(float64(remainingPegs))
}

// ObserveTdError records the TD error of a single step
func (m *Metrics) ObserveTdError(tdError float64) {
	m.tdError.Observe(tdError)
}

// Registry returns the registry holding the metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics to path in the Prometheus text
// format, e.g. for the node exporter's textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writeTextfile: %w", err)
	}
	return nil
}
