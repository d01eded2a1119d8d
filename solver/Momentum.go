package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// DefaultMomentum is the momentum used by NewDefaultMomentum
const DefaultMomentum float64 = 0.9

// MomentumConfig describes a configuration of the gradient descent
// with momentum solver. This is the solver used by the NN critic when
// none is configured.
type MomentumConfig struct {
	StepSize float64 `yaml:"step_size"`
	Momentum float64 `yaml:"momentum"`
	Batch    int     `yaml:"batch"`
	Clip     float64 `yaml:"clip"` // <= 0 if no clipping
}

// NewDefaultMomentum returns a new Momentum Solver with a momentum of
// DefaultMomentum and no gradient clipping
func NewDefaultMomentum(stepSize float64) (*Solver, error) {
	return NewMomentum(stepSize, DefaultMomentum, 1, -1.0)
}

// NewMomentum returns a new Momentum Solver
func NewMomentum(stepSize, momentum float64, batchSize int,
	clip float64) (*Solver, error) {
	return newSolver(Momentum, MomentumConfig{
		StepSize: stepSize,
		Momentum: momentum,
		Batch:    batchSize,
		Clip:     clip,
	})
}

// Create returns a new Gorgonia Momentum Solver as described by the
// MomentumConfig
func (m MomentumConfig) Create() G.Solver {
	opts := append(options(m.StepSize, m.Batch, m.Clip),
		G.WithMomentum(m.Momentum))
	return G.NewMomentum(opts...)
}

// Validate implements the Config interface
func (m MomentumConfig) Validate() error {
	if m.Momentum < 0 || m.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1), got %v", m.Momentum)
	}
	return validateStepSize(m.StepSize)
}

// ValidType returns if the given Solver type is a valid type to be
// created with this config.
func (m MomentumConfig) ValidType(t Type) bool {
	return t == Momentum
}
