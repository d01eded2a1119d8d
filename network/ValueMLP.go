package network

import (
	"bytes"
	"encoding/gob"
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// ValueMLP implements a multi-layered perceptron with a single output
// node, which predicts the value of a single input vector.
type ValueMLP struct {
	g         *G.ExprGraph
	layers    []Layer
	input     *G.Node
	numInputs int

	// Data needed for gobbing
	hiddenSizes []int
	biases      []bool
	activations []*Activation

	learnables G.Nodes
	model      []G.ValueGrad

	prediction *G.Node
	predVal    *G.Value
}

// NewValueMLP creates and returns a new multi-layered perceptron with
// a single output node. The graph parameter g is populated with the
// MLP.
//
// The MLP has number of layers equal to len(hiddenSizes) + 1. A final
// linear layer with a bias unit and no activation is always added so
// that the output is a 1 x 1 matrix. For index i, hiddenSizes[i] is the
// number of nodes in hidden layer i; biases[i] is true if the hidden
// layer will contain a bias unit and false otherwise; and
// activations[i] is the activation function for hidden layer i. The
// parameter init determines the weight initialization scheme.
func NewValueMLP(features int, g *G.ExprGraph, hiddenSizes []int,
	biases []bool, init G.InitWFn, activations []*Activation) (*ValueMLP,
	error) {
	if features <= 0 {
		return nil, fmt.Errorf("newValueMLP: features must be positive, "+
			"got %v", features)
	}

	// Ensure we have one activation per layer
	if len(hiddenSizes) != len(activations) {
		msg := "newValueMLP: invalid number of activations" +
			"\n\twant(%d)\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(activations))
	}

	// Ensure one bias bool per layer
	if len(hiddenSizes) != len(biases) {
		msg := "newValueMLP: invalid number of biases\n\twant(%d)" +
			"\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(biases))
	}

	for i, size := range hiddenSizes {
		if size <= 0 {
			return nil, fmt.Errorf("newValueMLP: hidden layer %v must have "+
				"a positive size, got %v", i, size)
		}
	}

	// Add the final linear output layer
	sizes := append(append([]int{}, hiddenSizes...), 1)
	b := append(append([]bool{}, biases...), true)
	acts := append(append([]*Activation{}, activations...), Identity())

	input := G.NewMatrix(g, tensor.Float64, G.WithShape(1, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	net := &ValueMLP{
		g:           g,
		layers:      addfcLayers(g, sizes, b, acts, init, features, ""),
		input:       input,
		numInputs:   features,
		hiddenSizes: sizes,
		biases:      b,
		activations: acts,
	}

	if _, err := net.fwd(input); err != nil {
		return nil, fmt.Errorf("newValueMLP: could not compute forward "+
			"pass: %v", err)
	}

	return net, nil
}

// Graph returns the computational graph of the ValueMLP.
func (v *ValueMLP) Graph() *G.ExprGraph {
	return v.g
}

// Features returns the number of features in a single observation
// vector that the network takes as input.
func (v *ValueMLP) Features() int {
	return v.numInputs
}

// Layers returns the layers of the network, ending with the output
// layer
func (v *ValueMLP) Layers() []Layer {
	return v.layers
}

// SetInput sets the value of the input node before running the forward
// pass.
func (v *ValueMLP) SetInput(input []float64) error {
	if len(input) != v.numInputs {
		return fmt.Errorf("setInput: invalid number of inputs\n\twant(%v)"+
			"\n\thave(%v)", v.numInputs, len(input))
	}

	inputTensor := tensor.New(
		tensor.WithBacking(input),
		tensor.WithShape(v.input.Shape()...),
	)
	return G.Let(v.input, inputTensor)
}

// Learnables returns the learnable nodes in a ValueMLP
func (v *ValueMLP) Learnables() G.Nodes {
	// Lazy instantiation
	if v.learnables == nil {
		v.learnables = v.computeLearnables()
	}
	return v.learnables
}

// computeLearnables computes all the learnables for the network
func (v *ValueMLP) computeLearnables() G.Nodes {
	learnables := make([]*G.Node, 0, 2*len(v.layers))

	for i := range v.layers {
		learnables = append(learnables, v.layers[i].Weights())
		if bias := v.layers[i].Bias(); bias != nil {
			learnables = append(learnables, bias)
		}
	}
	return G.Nodes(learnables)
}

// Model returns the learnables nodes with their gradients.
func (v *ValueMLP) Model() []G.ValueGrad {
	// Lazy instantiation
	if v.model == nil {
		model := make([]G.ValueGrad, 0, len(v.Learnables()))
		for _, node := range v.Learnables() {
			model = append(model, node)
		}
		v.model = model
	}
	return v.model
}

// ZeroGrad zeroes the gradients of all learnables. Gorgonia adds the
// gradients of each run to those already bound to the learnables, so
// they must be zeroed before the gradient of a single run is read.
func (v *ValueMLP) ZeroGrad() {
	for _, vg := range v.Model() {
		grad, err := vg.Grad()
		if err != nil {
			// Not yet computed
			continue
		}
		switch g := grad.(type) {
		case *tensor.Dense:
			g.Zero()
		case *G.F64:
			*g = 0
		}
	}
}

// fwd performs the forward pass of the ValueMLP on the input node
func (v *ValueMLP) fwd(input *G.Node) (*G.Node, error) {
	pred := input
	var err error
	for i, l := range v.layers {
		if pred, err = l.fwd(pred); err != nil {
			msg := "fwd: could not compute forward pass of layer %v: %v"
			return nil, fmt.Errorf(msg, i, err)
		}
	}

	v.prediction = pred
	v.predVal = new(G.Value)
	G.Read(v.prediction, v.predVal)

	return pred, nil
}

// Output returns the output of the ValueMLP after the computational
// graph has been run
func (v *ValueMLP) Output() G.Value {
	return *v.predVal
}

// Prediction returns the node of the computational graph the stores
// the output of the ValueMLP
func (v *ValueMLP) Prediction() *G.Node {
	return v.prediction
}

// GobEncode implements the gob.GobEncoder interface
func (v *ValueMLP) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	err := enc.Encode(v.numInputs)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not encode number of inputs")
	}

	err = enc.Encode(v.hiddenSizes)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not encode hidden sizes")
	}

	err = enc.Encode(v.biases)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not encode biases")
	}

	err = enc.Encode(v.activations)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not encode activations")
	}

	for i, layer := range v.layers {
		err := enc.Encode(layer.(*fcLayer))
		if err != nil {
			msg := "gobencode: could not encode layer %v: %v"
			return nil, fmt.Errorf(msg, i, err)
		}
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The decoded
// ValueMLP is built on a new computational graph.
func (v *ValueMLP) GobDecode(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var numInputs int
	err := dec.Decode(&numInputs)
	if err != nil {
		return fmt.Errorf("gobdecode: could not decode number of inputs")
	}

	var hiddenSizes []int
	err = dec.Decode(&hiddenSizes)
	if err != nil {
		return fmt.Errorf("gobdecode: could not decode hidden sizes")
	}
	hiddenSizes = hiddenSizes[:len(hiddenSizes)-1]

	var biases []bool
	err = dec.Decode(&biases)
	if err != nil {
		return fmt.Errorf("gobdecode: could not decode biases")
	}
	biases = biases[:len(biases)-1]

	var activations []*Activation
	err = dec.Decode(&activations)
	if err != nil {
		return fmt.Errorf("gobdecode: could not decode activations")
	}
	activations = activations[:len(activations)-1]

	// Create a new MLP
	g := G.NewGraph()
	newMLP, err := NewValueMLP(numInputs, g, hiddenSizes, biases,
		G.Zeroes(), activations)
	if err != nil {
		return fmt.Errorf("gobdecode: could not construct new MLP: %v", err)
	}

	// Fill new MLP's layers with fcLayer weights, equivalent to:
	// for i in 0, 1, 2, ... N:
	//     newMLP.layer[i].Weights().Value <- fcLayer[i].Weights.Value
	for i, layer := range newMLP.layers {
		err = dec.Decode(layer.(*fcLayer))
		if err != nil {
			return fmt.Errorf("gobdecode: could not decode layer %v: %v", i,
				err)
		}
	}

	*v = *newMLP
	return nil
}
