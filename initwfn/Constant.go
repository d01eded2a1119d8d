package initwfn

import G "gorgonia.org/gorgonia"

// ConstantConfig implements a configuration of a weight initializer
// that sets all weights to Value. The Zeroes and Ones types are
// constant initializers with a fixed value.
type ConstantConfig struct {
	Kind  Type    `yaml:"-"`
	Value float64 `yaml:"value"`
}

// NewZeroes returns a new zeroes weight initializer
func NewZeroes() (*InitWFn, error) {
	return newInitWFn(ConstantConfig{Kind: Zeroes})
}

// NewOnes returns a new weight initializer that sets all weights to 1
func NewOnes() (*InitWFn, error) {
	return newInitWFn(ConstantConfig{Kind: Ones, Value: 1.0})
}

// NewConstant returns a new constant weight initializer
func NewConstant(value float64) (*InitWFn, error) {
	return newInitWFn(ConstantConfig{Kind: Constant, Value: value})
}

// Type returns the type of the weight initializer created using this
// config
func (c ConstantConfig) Type() Type {
	if c.Kind == "" {
		return Constant
	}
	return c.Kind
}

// Create creates the Gorgonia weight initializer from this
// initializer config
func (c ConstantConfig) Create() G.InitWFn {
	switch c.Kind {
	case Zeroes:
		return G.Zeroes()
	case Ones:
		return G.Ones()
	}
	return G.ValuesOf(c.Value)
}

func (c ConstantConfig) Validate() error { return nil }

func (c ConstantConfig) withType(t Type) Config {
	c.Kind = t
	return c
}
