package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// gorgoniaEta is the only η that Gorgonia's RMSProp solver supports
const gorgoniaEta = 0.001

// RMSPropConfig implements a specific configuration of the RMSProp
// solver
type RMSPropConfig struct {
	StepSize float64 `yaml:"step_size"`
	Epsilon  float64 `yaml:"epsilon"`
	Eta      float64 `yaml:"eta"` // 0 or 0.001
	Rho      float64 `yaml:"rho"`
	Batch    int     `yaml:"batch"`
	Clip     float64 `yaml:"clip"` // <= 0 if no clipping
}

// NewDefaultRMSProp returns a new RMSProp Solver with default
// hyperparameters
func NewDefaultRMSProp(stepSize float64, batchSize int) (*Solver, error) {
	return NewRMSProp(stepSize, 1e-8, gorgoniaEta, 0.999, batchSize, -1.0)
}

// NewRMSProp returns a new RMSProp Solver
func NewRMSProp(stepSize, epsilon, eta, rho float64, batchSize int,
	clip float64) (*Solver, error) {
	return newSolver(RMSProp, RMSPropConfig{
		StepSize: stepSize,
		Epsilon:  epsilon,
		Eta:      eta,
		Rho:      rho,
		Batch:    batchSize,
		Clip:     clip,
	})
}

// Create returns a new Gorgonia RMSProp Solver as described by the
// RMSPropConfig
func (r RMSPropConfig) Create() G.Solver {
	opts := append(options(r.StepSize, r.Batch, r.Clip),
		G.WithEps(r.Epsilon),
		G.WithRho(r.Rho),
	)
	return G.NewRMSPropSolver(opts...)
}

// Validate implements the Config interface
func (r RMSPropConfig) Validate() error {
	if r.Eta != 0 && r.Eta != gorgoniaEta {
		return fmt.Errorf("only η = %v is supported, got %v", gorgoniaEta,
			r.Eta)
	}
	return validateStepSize(r.StepSize)
}

// ValidType returns if the given Solver type is a valid type to be
// created with this config.
func (r RMSPropConfig) ValidType(t Type) bool {
	return t == RMSProp
}
