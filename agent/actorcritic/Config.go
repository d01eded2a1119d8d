package actorcritic

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samuelfneumann/pegsolitaire/initwfn"
	"github.com/samuelfneumann/pegsolitaire/network"
	"github.com/samuelfneumann/pegsolitaire/solver"
)

var validate = validator.New()

// ActorConfig represents a configuration for an Actor
type ActorConfig struct {
	LearningRate float64 `yaml:"learning_rate" validate:"gt=0"`
	Gamma        float64 `yaml:"gamma" validate:"gte=0,lte=1"`

	// Epsilon decays from its initial value to GoalEpsilon over the
	// training episodes
	Epsilon     float64 `yaml:"epsilon" validate:"gte=0,lte=1"`
	GoalEpsilon float64 `yaml:"goal_epsilon" validate:"gt=0,lte=1"`

	TraceDecay float64 `yaml:"trace_decay" validate:"gte=0,lte=1"`
}

// Validate ensures that the Config is valid
func (c ActorConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate: invalid actor configuration: %w", err)
	}
	return nil
}

// CriticConfig represents a configuration for either kind of Critic.
// Layers, Activation, Solver and InitWFn are only used by the NN critic.
type CriticConfig struct {
	LearningRate float64 `yaml:"learning_rate" validate:"gt=0"`
	Gamma        float64 `yaml:"gamma" validate:"gte=0,lte=1"`
	TraceDecay   float64 `yaml:"trace_decay" validate:"gte=0,lte=1"`

	// Hidden layer sizes of the value network
	Layers     []int               `yaml:"layers" validate:"dive,gt=0"`
	Activation *network.Activation `yaml:"activation" validate:"-"` // ReLU if nil
	Solver     *solver.Solver      `yaml:"solver" validate:"-"`     // Momentum if nil
	InitWFn    *initwfn.InitWFn    `yaml:"init" validate:"-"`       // GlorotU if nil
}

// Validate ensures that the Config is valid
func (c CriticConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate: invalid critic configuration: %w", err)
	}
	return nil
}
