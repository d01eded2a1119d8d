package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// AdamConfig describes a configuration of the Adam solver
type AdamConfig struct {
	StepSize float64 `yaml:"step_size"`
	Epsilon  float64 `yaml:"epsilon"` // Smoothing factor
	Beta1    float64 `yaml:"beta1"`
	Beta2    float64 `yaml:"beta2"`
	Batch    int     `yaml:"batch"`
}

// NewDefaultAdam returns a new Adam Solver with default hyperparameters
func NewDefaultAdam(stepSize float64, batchSize int) (*Solver, error) {
	return NewAdam(stepSize, 1e-8, 0.9, 0.999, batchSize)
}

// NewAdam returns a new Adam Solver
func NewAdam(stepSize, epsilon, beta1, beta2 float64,
	batchSize int) (*Solver, error) {
	return newSolver(Adam, AdamConfig{
		StepSize: stepSize,
		Epsilon:  epsilon,
		Beta1:    beta1,
		Beta2:    beta2,
		Batch:    batchSize,
	})
}

// Create returns a new Gorgonia Adam Solver as described by the
// AdamConfig
func (a AdamConfig) Create() G.Solver {
	opts := append(options(a.StepSize, a.Batch, -1),
		G.WithEps(a.Epsilon),
		G.WithBeta1(a.Beta1),
		G.WithBeta2(a.Beta2),
	)
	return G.NewAdamSolver(opts...)
}

// Validate implements the Config interface
func (a AdamConfig) Validate() error {
	for name, beta := range map[string]float64{"beta1": a.Beta1,
		"beta2": a.Beta2} {
		if beta < 0 || beta >= 1 {
			return fmt.Errorf("%v must be in [0, 1), got %v", name, beta)
		}
	}
	return validateStepSize(a.StepSize)
}

// ValidType returns if the given Solver type is a valid type to be
// created with this config.
func (a AdamConfig) ValidType(t Type) bool {
	return t == Adam
}
