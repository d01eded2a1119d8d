// Package network implements neural networks on Gorgonia computational
// graphs
package network

import (
	G "gorgonia.org/gorgonia"
)

// NeuralNet is a neural network on a Gorgonia computational graph
// which predicts a single batch of values at a time. Model pairs each
// learnable with its gradient after the graph has been run.
type NeuralNet interface {
	Graph() *G.ExprGraph
	Features() int
	SetInput([]float64) error
	Learnables() G.Nodes
	Model() []G.ValueGrad
	ZeroGrad()
	Output() G.Value
	Prediction() *G.Node
}
