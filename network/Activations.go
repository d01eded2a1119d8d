package network

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	G "gorgonia.org/gorgonia"
)

// LeakyReLUAlpha is the slope of the LeakyReLU activation for negative
// inputs
const LeakyReLUAlpha float64 = 0.01

// activationFns maps the name of each available activation function to
// the Gorgonia operation it applies
var activationFns = map[string]func(x *G.Node) (*G.Node, error){
	"relu":     G.Rectify,
	"tanh":     G.Tanh,
	"sigmoid":  G.Sigmoid,
	"identity": func(x *G.Node) (*G.Node, error) { return x, nil },
	"leakyrelu": func(x *G.Node) (*G.Node, error) {
		return G.LeakyRelu(x, LeakyReLUAlpha)
	},
}

// Activation is a named activation function applied after a layer.
// Activations are encoded by name in both gob and YAML.
type Activation struct {
	name string
	f    func(x *G.Node) (*G.Node, error)
}

func (a *Activation) fwd(x *G.Node) (*G.Node, error) {
	return a.f(x)
}

// String implements the Stringer interface
func (a *Activation) String() string {
	return a.name
}

// IsIdentity returns whether or not the Activation is the identity
// function.
func (a *Activation) IsIdentity() bool {
	return a.name == "identity"
}

// ParseActivation returns the Activation with the given name. Names are
// case-insensitive.
func ParseActivation(name string) (*Activation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	f, ok := activationFns[key]
	if !ok {
		names := make([]string, 0, len(activationFns))
		for n := range activationFns {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("parseActivation: unknown activation %q, "+
			"want one of %v", name, names)
	}
	return &Activation{name: key, f: f}, nil
}

func mustActivation(name string) *Activation {
	a, err := ParseActivation(name)
	if err != nil {
		panic(err)
	}
	return a
}

// Identity returns an identity *Activation
func Identity() *Activation { return mustActivation("identity") }

// ReLU returns a ReLU *Activation
func ReLU() *Activation { return mustActivation("relu") }

// LeakyReLU returns a leaky ReLU *Activation with slope LeakyReLUAlpha
func LeakyReLU() *Activation { return mustActivation("leakyrelu") }

// TanH returns a tanh *Activation
func TanH() *Activation { return mustActivation("tanh") }

// Sigmoid returns a sigmoid *Activation
func Sigmoid() *Activation { return mustActivation("sigmoid") }

// GobEncode implements the GobEncoder interface
func (a *Activation) GobEncode() ([]byte, error) {
	return []byte(a.name), nil
}

// GobDecode implements the GobDecoder interface
func (a *Activation) GobDecode(encoded []byte) error {
	decoded, err := ParseActivation(string(encoded))
	if err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}
	*a = *decoded
	return nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (a *Activation) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	decoded, err := ParseActivation(name)
	if err != nil {
		return fmt.Errorf("line %d: %v", value.Line, err)
	}
	*a = *decoded
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface
func (a *Activation) MarshalYAML() (interface{}, error) {
	return a.name, nil
}
