package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// FanConfig configures the initializers which scale weights by the fan
// in and fan out of a layer: GlorotU, GlorotN, HeU and HeN. The Kind is
// set from the type of the InitWFn and is not part of the YAML config.
type FanConfig struct {
	Kind Type    `yaml:"-"`
	Gain float64 `yaml:"gain"`
}

// NewGlorotU returns a new Glorot uniform weight initializer
func NewGlorotU(gain float64) (*InitWFn, error) {
	return newInitWFn(FanConfig{Kind: GlorotU, Gain: gain})
}

// NewGlorotN returns a new Glorot normal weight initializer
func NewGlorotN(gain float64) (*InitWFn, error) {
	return newInitWFn(FanConfig{Kind: GlorotN, Gain: gain})
}

// NewHeU returns a new He uniform weight initializer
func NewHeU(gain float64) (*InitWFn, error) {
	return newInitWFn(FanConfig{Kind: HeU, Gain: gain})
}

// NewHeN returns a new He normal weight initializer
func NewHeN(gain float64) (*InitWFn, error) {
	return newInitWFn(FanConfig{Kind: HeN, Gain: gain})
}

func (f FanConfig) Type() Type {
	return f.Kind
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (f FanConfig) Create() G.InitWFn {
	switch f.Kind {
	case GlorotN:
		return G.GlorotN(f.Gain)
	case HeU:
		return G.HeU(f.Gain)
	case HeN:
		return G.HeN(f.Gain)
	default:
		return G.GlorotU(f.Gain)
	}
}

// Validate implements the Config interface
func (f FanConfig) Validate() error {
	switch f.Kind {
	case GlorotU, GlorotN, HeU, HeN:
	default:
		return fmt.Errorf("%q is not a fan-scaled initializer", f.Kind)
	}
	if f.Gain <= 0 {
		return fmt.Errorf("gain must be positive, got %v", f.Gain)
	}
	return nil
}

func (f FanConfig) withType(t Type) Config {
	f.Kind = t
	return f
}
