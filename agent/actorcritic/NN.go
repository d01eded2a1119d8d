package actorcritic

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/pegsolitaire/initwfn"
	"github.com/samuelfneumann/pegsolitaire/network"
	"github.com/samuelfneumann/pegsolitaire/solver"
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// NN implements a Critic which approximates state values with a
// multi-layered perceptron. The network input is the board state, with
// 1 for an occupied cell and 0 for an empty cell. Each learnable
// parameter of the network has an accumulating eligibility trace.
type NN struct {
	net    network.NeuralNet
	vm     G.VM
	solver *solver.Solver

	// One trace per learnable, flattened
	traces []*mat.VecDense

	config   CriticConfig
	features int
}

// NewNN returns a new NN critic for boards with the given number of
// cells
func NewNN(config CriticConfig, features int) (*NN, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newNN: %w", err)
	}

	act := config.Activation
	if act == nil {
		act = network.ReLU()
	}
	activations := make([]*network.Activation, len(config.Layers))
	biases := make([]bool, len(config.Layers))
	for i := range config.Layers {
		activations[i] = act
		biases[i] = true
	}

	init := config.InitWFn
	if init == nil {
		var err error
		init, err = initwfn.NewGlorotU(1.0)
		if err != nil {
			return nil, fmt.Errorf("newNN: could not create weight "+
				"initializer: %w", err)
		}
	}

	net, err := network.NewValueMLP(features, G.NewGraph(), config.Layers,
		biases, init.InitWFn(), activations)
	if err != nil {
		return nil, fmt.Errorf("newNN: could not create value network: %w",
			err)
	}

	return newNNFromNet(config, net)
}

// newNNFromNet returns a new NN critic which learns the value function
// with the given network
func newNNFromNet(config CriticConfig, net network.NeuralNet) (*NN, error) {
	s := config.Solver
	var err error
	if s == nil {
		s, err = solver.NewDefaultMomentum(config.LearningRate)
	} else {
		// Solvers hold per-parameter state, so each critic needs its own
		s, err = s.Clone()
	}
	if err != nil {
		return nil, fmt.Errorf("newNN: could not create solver: %w", err)
	}

	cost := G.Must(G.Sum(net.Prediction()))
	if _, err := G.Grad(cost, net.Learnables()...); err != nil {
		return nil, fmt.Errorf("newNN: could not compute gradient: %w", err)
	}
	vm := G.NewTapeMachine(net.Graph(),
		G.BindDualValues(net.Learnables()...))

	traces := make([]*mat.VecDense, len(net.Learnables()))
	for i, node := range net.Learnables() {
		traces[i] = mat.NewVecDense(node.Shape().TotalSize(), nil)
	}

	return &NN{
		net:      net,
		vm:       vm,
		solver:   s,
		traces:   traces,
		config:   config,
		features: net.Features(),
	}, nil
}

// Value returns the predicted value of state
func (n *NN) Value(state string) (float64, error) {
	v, err := n.forward(state)
	n.vm.Reset()
	if err != nil {
		return 0, fmt.Errorf("value: %w", err)
	}
	return v, nil
}

// forward runs the network on state. The gradient of the prediction
// at state, and only at state, is available in the network's model
// until the VM is reset.
func (n *NN) forward(state string) (float64, error) {
	obs, err := observation(state, n.features)
	if err != nil {
		return 0, err
	}
	if err := n.net.SetInput(obs); err != nil {
		return 0, err
	}
	n.net.ZeroGrad()
	if err := n.vm.RunAll(); err != nil {
		return 0, fmt.Errorf("could not run network: %w", err)
	}
	return scalar(n.net.Output())
}

// TdError implements the agent.Critic interface. The target is
// r + γ * d * V(s'), where d is the discount of the transition and is 0
// when s' is terminal.
func (n *NN) TdError(tr ts.Transition) (target, estimate float64,
	err error) {
	next, err := n.Value(tr.NextState)
	if err != nil {
		return 0, 0, fmt.Errorf("tdError: %w", err)
	}
	estimate, err = n.Value(tr.State)
	if err != nil {
		return 0, 0, fmt.Errorf("tdError: %w", err)
	}

	target = tr.Reward + n.config.Gamma*tr.Discount*next
	return target, estimate, nil
}

// Update implements the agent.Critic interface. The gradient of the
// value of the last state in history is added to the traces, the
// weights are moved along the traces in proportion to the TD error, and
// the traces are then decayed.
func (n *NN) Update(history []string, target, estimate float64) error {
	if len(history) == 0 {
		return nil
	}
	tdError := target - estimate

	_, err := n.forward(history[len(history)-1])
	if err != nil {
		n.vm.Reset()
		return fmt.Errorf("update: %w", err)
	}

	model := make([]G.ValueGrad, len(n.traces))
	for i, vg := range n.net.Model() {
		grad, err := vg.Grad()
		if err != nil {
			n.vm.Reset()
			return fmt.Errorf("update: could not get gradient of "+
				"learnable %v: %w", i, err)
		}
		gradData := grad.Data().([]float64)
		n.traces[i].AddVec(n.traces[i], mat.NewVecDense(len(gradData),
			gradData))

		// The solver descends its gradient, so the ascent direction is
		// negated
		step := make([]float64, n.traces[i].Len())
		for j := range step {
			step[j] = -tdError * n.traces[i].AtVec(j)
		}
		model[i] = traceGrad{
			value: vg.Value(),
			grad: tensor.New(
				tensor.WithShape(vg.Value().Shape()...),
				tensor.WithBacking(step),
			),
		}
	}
	n.net.ZeroGrad()
	n.vm.Reset()

	if err := n.solver.Step(model); err != nil {
		return fmt.Errorf("update: could not step solver: %w", err)
	}

	decay := n.config.Gamma * n.config.TraceDecay
	for _, trace := range n.traces {
		trace.ScaleVec(decay, trace)
	}
	return nil
}

// SetInitialTrace implements the agent.Critic interface. Traces of the
// NN critic are over weights rather than states, so this is a no-op.
func (n *NN) SetInitialTrace(string) {}

// ResetEligibilities implements the agent.Critic interface
func (n *NN) ResetEligibilities() {
	for _, trace := range n.traces {
		trace.Zero()
	}
}

// Save saves the NN critic to a file
func (n *NN) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(n); err != nil {
		return fmt.Errorf("save: could not encode critic: %w", err)
	}
	return nil
}

// GobEncode implements the gob.GobEncoder interface. The solver is
// encoded by its YAML configuration and restarts with fresh state.
func (n *NN) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(n.config.LearningRate); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode learning rate: %v",
			err)
	}
	if err := enc.Encode(n.config.Gamma); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode gamma: %v", err)
	}
	if err := enc.Encode(n.config.TraceDecay); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode trace decay: %v",
			err)
	}

	solverYAML, err := yaml.Marshal(n.solver)
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not marshal solver: %v", err)
	}
	if err := enc.Encode(solverYAML); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode solver: %v", err)
	}

	if err := enc.Encode(n.net); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode network: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (n *NN) GobDecode(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var config CriticConfig
	if err := dec.Decode(&config.LearningRate); err != nil {
		return fmt.Errorf("gobdecode: could not decode learning rate: %v", err)
	}
	if err := dec.Decode(&config.Gamma); err != nil {
		return fmt.Errorf("gobdecode: could not decode gamma: %v", err)
	}
	if err := dec.Decode(&config.TraceDecay); err != nil {
		return fmt.Errorf("gobdecode: could not decode trace decay: %v", err)
	}

	var solverYAML []byte
	if err := dec.Decode(&solverYAML); err != nil {
		return fmt.Errorf("gobdecode: could not decode solver: %v", err)
	}
	config.Solver = &solver.Solver{}
	if err := yaml.Unmarshal(solverYAML, config.Solver); err != nil {
		return fmt.Errorf("gobdecode: could not unmarshal solver: %v", err)
	}

	var net network.ValueMLP
	if err := dec.Decode(&net); err != nil {
		return fmt.Errorf("gobdecode: could not decode network: %v", err)
	}
	for _, l := range net.Layers()[:len(net.Layers())-1] {
		config.Layers = append(config.Layers, l.Weights().Shape()[1])
	}

	critic, err := newNNFromNet(config, &net)
	if err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}

	*n = *critic
	return nil
}

// traceGrad pairs a learnable's value with a gradient computed from its
// eligibility trace, so that a Gorgonia solver can step along it
type traceGrad struct {
	value G.Value
	grad  G.Value
}

func (t traceGrad) Value() G.Value { return t.value }
func (t traceGrad) Grad() (G.Value, error) { return t.grad, nil }

// observation converts a board state string into network input
func observation(state string, features int) ([]float64, error) {
	if len(state) != features {
		return nil, fmt.Errorf("observation: state %q has %v cells, want %v",
			state, len(state), features)
	}

	obs := make([]float64, features)
	for i := 0; i < len(state); i++ {
		switch state[i] {
		case '1':
			obs[i] = 1.0
		case '0':
		default:
			return nil, fmt.Errorf("observation: invalid cell %q in state %q",
				state[i], state)
		}
	}
	return obs, nil
}

// scalar returns the single float64 held by v
func scalar(v G.Value) (float64, error) {
	switch val := v.(type) {
	case *G.F64:
		return float64(*val), nil
	case *tensor.Dense:
		if f, ok := val.Data().(float64); ok {
			return f, nil
		}
		data, ok := val.Data().([]float64)
		if !ok || len(data) != 1 {
			return 0, fmt.Errorf("scalar: expected a single float64, got %v",
				val)
		}
		return data[0], nil
	}
	return 0, fmt.Errorf("scalar: unsupported value type %T", v)
}
