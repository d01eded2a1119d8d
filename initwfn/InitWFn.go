// Package initwfn implements functionality to wrap Gorgonia InitWFn
// so that they can be YAML serialized into configuration files.
package initwfn

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
	G "gorgonia.org/gorgonia"
)

// Type describes different types of InitWFn that are available.
// Type is used to implement a basic type system of InitWFn's.
type Type string

// Available InitWFn types
const (
	GlorotU  Type = "GlorotU"
	GlorotN  Type = "GlorotN"
	HeU      Type = "HeU"
	HeN      Type = "HeN"
	Zeroes   Type = "Zeroes"
	Ones     Type = "Ones"
	Constant Type = "Constant"
	Uniform  Type = "Uniform"
	Gaussian Type = "Gaussian"
)

// configTypes maps each InitWFn Type to the concrete type of its Config
var configTypes = map[string]reflect.Type{
	string(GlorotU):  reflect.TypeOf(FanConfig{}),
	string(GlorotN):  reflect.TypeOf(FanConfig{}),
	string(HeU):      reflect.TypeOf(FanConfig{}),
	string(HeN):      reflect.TypeOf(FanConfig{}),
	string(Zeroes):   reflect.TypeOf(ConstantConfig{}),
	string(Ones):     reflect.TypeOf(ConstantConfig{}),
	string(Constant): reflect.TypeOf(ConstantConfig{}),
	string(Uniform):  reflect.TypeOf(UniformConfig{}),
	string(Gaussian): reflect.TypeOf(GaussianConfig{}),
}

// InitWFn wraps Gorgonia InitWFn so that they can be YAML marshalled and
// unmarshalled.
type InitWFn struct {
	initWFn G.InitWFn
	Type    `yaml:"type"`
	Config  `yaml:"config"`
}

// newInitWFn returns a new InitWFn
func newInitWFn(c Config) (*InitWFn, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newInitWFn: invalid %v configuration: %w",
			c.Type(), err)
	}
	init := InitWFn{Type: c.Type(), Config: c}
	init.initWFn = init.Config.Create()

	return &init, nil
}

// InitWFn returns the wrapped Gorgonia InitWFn
func (i *InitWFn) InitWFn() G.InitWFn {
	return i.initWFn
}

// String implements the fmt.Stringer interface
func (i *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %v}", i.Type, i.Config)
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (i *InitWFn) UnmarshalYAML(value *yaml.Node) error {
	config, typeName, err := unmarshalConfig(value, configTypes)
	if err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("line %d: invalid %v configuration: %w",
			value.Line, typeName, err)
	}

	i.Type = typeName
	i.Config = config
	i.initWFn = i.Config.Create()

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
		return nil, "", fmt.Errorf("line %d: unknown InitWFn type %q",
			value.Line, raw.Type)
	}

	ptr := reflect.New(ty)
	if raw.Config.Kind != 0 {
		if err := raw.Config.Decode(ptr.Interface()); err != nil {
			return nil, "", err
		}
	}

	config := ptr.Elem().Interface().(Config)
	if t, ok := config.(typed); ok {
		config = t.withType(Type(raw.Type))
	}
	return config, Type(raw.Type), nil
}

// Config implements a Gorgonia InitWFn configuration and can be used to
// create the described Gorgonia InitWFn's.
type Config interface {
	// Create returns the Gorgonia InitWFn that the Config describes
	Create() G.InitWFn

	// Type returns the type of Gorgonia InitWFn that is returned
	Type() Type

	Validate() error
}

// typed is a Config which describes more than one Type of InitWFn
type typed interface {
	withType(Type) Config
}
