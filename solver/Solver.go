// Package solver implements functionality to wrap Gorgonia Solvers
// so that they can be YAML serialized into configuration files.
package solver

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam     Type = "Adam"
	Vanilla  Type = "Vanilla"
	Momentum Type = "Momentum"
	RMSProp  Type = "RMSProp"
)

// configTypes maps each solver Type to the concrete type of its Config
var configTypes = map[string]reflect.Type{
	string(Vanilla):  reflect.TypeOf(VanillaConfig{}),
	string(Momentum): reflect.TypeOf(MomentumConfig{}),
	string(Adam):     reflect.TypeOf(AdamConfig{}),
	string(RMSProp):  reflect.TypeOf(RMSPropConfig{}),
}

// Solver wraps Gorgonia Solvers so that they can be YAML marshalled and
// unmarshalled.
type Solver struct {
	G.Solver `yaml:"-"`
	Type     `yaml:"type"`
	Config   `yaml:"config"`
}

// newSolver returns a new solver with the given type and configuration.
func newSolver(t Type, c Config) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newSolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newSolver: invalid %v configuration: %w", t,
			err)
	}
	solver := Solver{Type: t, Config: c}
	solver.Solver = solver.Config.Create()

	return &solver, nil
}

// Clone returns a new Solver with the same configuration and fresh
// internal state
func (s *Solver) Clone() (*Solver, error) {
	return newSolver(s.Type, s.Config)
}

// String implements the fmt.Stringer interface
func (s *Solver) String() string {
	return fmt.Sprintf("{%v Solver: %+v}", s.Type, s.Config)
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (s *Solver) UnmarshalYAML(value *yaml.Node) error {
	config, typeName, err := unmarshalConfig(value, configTypes)
	if err != nil {
		return err
	}

	if !config.ValidType(typeName) {
		return fmt.Errorf("line %d: invalid solver type %v for "+
			"configuration %T", value.Line, typeName, config)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("line %d: invalid %v configuration: %w",
			value.Line, typeName, err)
	}

	s.Type = typeName
	s.Config = config
	s.Solver = s.Config.Create()

	return nil
}

// unmarshalConfig uses reflection to unmarshal a Config into its
// concrete type. Both the Config and its Type are returned.
func unmarshalConfig(value *yaml.Node,
	customTypes map[string]reflect.Type) (Config, Type, error) {
	var raw struct {
		Type   string    `yaml:"type"`
		Config yaml.Node `yaml:"config"`
	}
	if err := value.Decode(&raw); err != nil {
		return nil, "", err
	}

	ty, found := customTypes[raw.Type]
	if !found {
		return nil, "", fmt.Errorf("line %d: unknown solver type %q",
			value.Line, raw.Type)
	}

	ptr := reflect.New(ty)
	if raw.Config.Kind != 0 {
		if err := raw.Config.Decode(ptr.Interface()); err != nil {
			return nil, "", err
		}
	}

	return ptr.Elem().Interface().(Config), Type(raw.Type), nil
}

// Config implements a Gorgonia Solver configuration and can be used to
// create Gorgonia Solvers they describe.
type Config interface {
	Create() G.Solver
	Validate() error

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool
}

// options returns the Gorgonia options shared by all solvers
func options(stepSize float64, batchSize int, clip float64) []G.SolverOpt {
	if batchSize <= 0 {
		batchSize = 1
	}
	opts := []G.SolverOpt{
		G.WithLearnRate(stepSize),
		G.WithBatchSize(float64(batchSize)),
	}
	if clip > 0 {
		opts = append(opts, G.WithClip(clip))
	}
	return opts
}

func validateStepSize(stepSize float64) error {
	if stepSize <= 0 {
		return fmt.Errorf("step size must be positive, got %v", stepSize)
	}
	return nil
}
