package network

import (
	"bytes"
	"encoding/gob"
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Layer is a single layer of a feed forward neural network
type Layer interface {
	fwd(*G.Node) (*G.Node, error)
	Weights() *G.Node
	Bias() *G.Node
	Activation() *Activation
}

// fcLayer implements a fully connected layer of a feed forward neural
// network
type fcLayer struct {
	weights *G.Node
	bias    *G.Node
	act     *Activation
}

// addfcLayers adds fully connected layers of the given sizes to the
// graph g. Layer i has a bias unit if biases[i] is true and applies
// activations[i] to its output. Weights are initialized with init and
// biases with zeroes.
func addfcLayers(g *G.ExprGraph, sizes []int, biases []bool,
	activations []*Activation, init G.InitWFn, features int,
	prefix string) []Layer {
	layers := make([]Layer, len(sizes))

	in := features
	for i, size := range sizes {
		weights := G.NewMatrix(
			g,
			tensor.Float64,
			G.WithShape(in, size),
			G.WithName(fmt.Sprintf("%sL%dW", prefix, i)),
			G.WithInit(init),
		)

		var bias *G.Node
		if biases[i] {
			bias = G.NewMatrix(
				g,
				tensor.Float64,
				G.WithShape(1, size),
				G.WithName(fmt.Sprintf("%sL%dB", prefix, i)),
				G.WithInit(G.Zeroes()),
			)
		}

		layers[i] = &fcLayer{
			weights: weights,
			bias:    bias,
			act:     activations[i],
		}
		in = size
	}

	return layers
}

// fwd adds the forward pass of the fcLayer to the computational graph.
// Inputs always have a batch size of 1, so the bias is added directly.
func (f *fcLayer) fwd(x *G.Node) (*G.Node, error) {
	x, err := G.Mul(x, f.Weights())
	if err != nil {
		return nil, fmt.Errorf("fwd: could not multiply weights: %v", err)
	}

	if f.Bias() != nil {
		if x, err = G.Add(x, f.Bias()); err != nil {
			return nil, fmt.Errorf("fwd: could not add bias: %v", err)
		}
	}

	if f.Activation() == nil {
		return x, nil
	}
	return f.Activation().fwd(x)
}

func (f *fcLayer) Activation() *Activation {
	return f.act
}

func (f *fcLayer) Bias() *G.Node {
	return f.bias
}

func (f *fcLayer) Weights() *G.Node {
	return f.weights
}

// GobEncode implements the gob.GobEncoder interface. Only the values
// of the weights and bias are encoded.
func (f *fcLayer) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(nodeData(f.weights)); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode weights: %v", err)
	}

	hasBias := f.bias != nil
	if err := enc.Encode(hasBias); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode bias flag: %v",
			err)
	}
	if hasBias {
		if err := enc.Encode(nodeData(f.bias)); err != nil {
			return nil, fmt.Errorf("gobencode: could not encode bias: %v",
				err)
		}
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The fcLayer must
// already exist on a graph with the same shape as the encoded layer;
// decoding sets the values of its weights and bias.
func (f *fcLayer) GobDecode(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var weights []float64
	if err := dec.Decode(&weights); err != nil {
		return fmt.Errorf("gobdecode: could not decode weights: %v", err)
	}
	if err := setNodeData(f.weights, weights); err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}

	var hasBias bool
	if err := dec.Decode(&hasBias); err != nil {
		return fmt.Errorf("gobdecode: could not decode bias flag: %v", err)
	}
	if hasBias != (f.bias != nil) {
		return fmt.Errorf("gobdecode: encoded layer bias does not match " +
			"layer")
	}
	if hasBias {
		var bias []float64
		if err := dec.Decode(&bias); err != nil {
			return fmt.Errorf("gobdecode: could not decode bias: %v", err)
		}
		if err := setNodeData(f.bias, bias); err != nil {
			return fmt.Errorf("gobdecode: %v", err)
		}
	}

	return nil
}

// nodeData returns a copy of the float64 backing data of a node
func nodeData(n *G.Node) []float64 {
	data := n.Value().Data().([]float64)
	out := make([]float64, len(data))
	copy(out, data)
	return out
}

// setNodeData sets the value of a node to data, keeping its shape
func setNodeData(n *G.Node, data []float64) error {
	if size := n.Shape().TotalSize(); size != len(data) {
		return fmt.Errorf("setNodeData: invalid data size for node %v"+
			"\n\twant(%v)\n\thave(%v)", n.Name(), size, len(data))
	}

	value := tensor.New(
		tensor.WithShape(n.Shape()...),
		tensor.WithBacking(data),
	)
	return G.Let(n, value)
}
