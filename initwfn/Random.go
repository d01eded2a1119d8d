package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// UniformConfig implements a configuration of a weight initializer that
// draws weights from U[Low, High)
type UniformConfig struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// NewUniform returns a new uniform weight initializer
func NewUniform(low, high float64) (*InitWFn, error) {
	return newInitWFn(UniformConfig{Low: low, High: high})
}

func (u UniformConfig) Type() Type {
	return Uniform
}

func (u UniformConfig) Create() G.InitWFn {
	return G.Uniform(u.Low, u.High)
}

// Validate implements the Config interface
func (u UniformConfig) Validate() error {
	if u.Low >= u.High {
		return fmt.Errorf("low (%v) must be less than high (%v)", u.Low,
			u.High)
	}
	return nil
}

// GaussianConfig implements a configuration of a weight initializer that
// draws weights from a gaussian distribution
type GaussianConfig struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
}

// NewGaussian returns a new gaussian weight initializer
func NewGaussian(mean, stddev float64) (*InitWFn, error) {
	return newInitWFn(GaussianConfig{Mean: mean, StdDev: stddev})
}

func (g GaussianConfig) Type() Type {
	return Gaussian
}

func (g GaussianConfig) Create() G.InitWFn {
	return G.Gaussian(g.Mean, g.StdDev)
}

// Validate implements the Config interface
func (g GaussianConfig) Validate() error {
	if g.StdDev <= 0 {
		return fmt.Errorf("standard deviation must be positive, got %v",
			g.StdDev)
	}
	return nil
}
