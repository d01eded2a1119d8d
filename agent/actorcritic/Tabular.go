package actorcritic

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/pegsolitaire/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initial state values are drawn uniformly from this range
const (
	InitValueMin float64 = 0.0
	InitValueMax float64 = 0.1
)

// Tabular implements a Critic which stores the value of each state in a
// table. States are given a small random value on their first visit.
type Tabular struct {
	values map[string]float64
	traces *StateTraces
	init   distuv.Uniform

	config CriticConfig
	seed   uint64
}

// NewTabular returns a new Tabular critic
func NewTabular(config CriticConfig, seed uint64) (*Tabular, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newTabular: %w", err)
	}

	return &Tabular{
		values: make(map[string]float64),
		traces: NewStateTraces(),
		init: distuv.Uniform{
			Min: InitValueMin,
			Max: InitValueMax,
			Src: rand.NewSource(seed),
		},
		config: config,
		seed:   seed,
	}, nil
}

// Value returns the value of state, initializing it if needed
func (t *Tabular) Value(state string) float64 {
	v, ok := t.values[state]
	if !ok {
		v = t.init.Rand()
		t.values[state] = v
	}
	return v
}

// States returns the number of states with a value
func (t *Tabular) States() int {
	return len(t.values)
}

// TdError implements the agent.Critic interface. The target is
// r + γ * d * V(s'), where d is the discount of the transition and is 0
// when s' is terminal.
func (t *Tabular) TdError(tr ts.Transition) (target, estimate float64,
	err error) {
	estimate = t.Value(tr.State)
	next := t.Value(tr.NextState)
	target = tr.Reward + t.config.Gamma*tr.Discount*next

	return target, estimate, nil
}

// Update implements the agent.Critic interface. Every state in history
// has its value adjusted by the TD error weighted by its eligibility.
// The eligibility of the last state in history is then set to 1 and all
// others are decayed.
func (t *Tabular) Update(history []string, target, estimate float64) error {
	if len(history) == 0 {
		return nil
	}

	tdError := target - estimate
	decay := t.config.Gamma * t.config.TraceDecay
	last := history[len(history)-1]

	for _, state := range history {
		t.traces.Ensure(state)
		t.values[state] = t.Value(state) +
			t.config.LearningRate*tdError*t.traces.Get(state)

		if state == last {
			t.traces.Set(state, 1.0)
		} else {
			t.traces.Decay(state, decay)
		}
	}
	return nil
}

// SetInitialTrace implements the agent.Critic interface
func (t *Tabular) SetInitialTrace(state string) {
	t.traces.Ensure(state)
	if t.traces.Get(state) == 0.0 {
		t.traces.Set(state, 1.0)
	}
}

// Trace returns the eligibility of state
func (t *Tabular) Trace(state string) float64 {
	return t.traces.Get(state)
}

// ResetEligibilities implements the agent.Critic interface
func (t *Tabular) ResetEligibilities() {
	t.traces.Reset()
}

// Save saves the Tabular critic to a file
func (t *Tabular) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(t); err != nil {
		return fmt.Errorf("save: could not encode critic: %w", err)
	}
	return nil
}

// GobEncode implements the gob.GobEncoder interface
func (t *Tabular) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(t.config.LearningRate); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode learning rate: %v",
			err)
	}
	if err := enc.Encode(t.config.Gamma); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode gamma: %v", err)
	}
	if err := enc.Encode(t.config.TraceDecay); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode trace decay: %v",
			err)
	}
	if err := enc.Encode(t.seed); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode seed: %v", err)
	}
	if err := enc.Encode(t.values); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode values: %v", err)
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (t *Tabular) GobDecode(in []byte) error {
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

	var seed uint64
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("gobdecode: could not decode seed: %v", err)
	}

	values := make(map[string]float64)
	if err := dec.Decode(&values); err != nil {
		return fmt.Errorf("gobdecode: could not decode values: %v", err)
	}

	critic, err := NewTabular(config, seed)
	if err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}
	critic.values = values

	*t = *critic
	return nil
}
