// Package config implements the YAML configuration of a training run:
// the board, the actor and critic hyperparameters, and what is written
// to disk
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samuelfneumann/pegsolitaire/agent/actorcritic"
	"github.com/samuelfneumann/pegsolitaire/environment/envconfig"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the configuration of a training run.
//
// Critic selects the critic, "table" or "nn" ("ann" is also accepted).
// The tabular critic is configured by TableCritic and the NN critic by
// NNCritic; only the selected one is validated.
type Config struct {
	Game     envconfig.Config `yaml:"game"`
	Episodes int              `yaml:"episodes" validate:"gt=0"`
	Seed     uint64           `yaml:"seed"`
	Critic   string           `yaml:"critic" validate:"oneof=table nn ann"`

	Actor       actorcritic.ActorConfig  `yaml:"actor"`
	TableCritic actorcritic.CriticConfig `yaml:"critic_config" validate:"-"`
	NNCritic    actorcritic.CriticConfig `yaml:"nn_critic_config" validate:"-"`

	Output  Output  `yaml:"output"`
	Display Display `yaml:"display"`
}

// Output configures what a training run writes to disk. Each run writes
// into its own sub-directory of Dir.
type Output struct {
	Dir string `yaml:"dir" validate:"required"`

	// Actor and critic are saved every CheckpointEvery episodes, never
	// if 0. They are always saved at the end of training.
	CheckpointEvery int `yaml:"checkpoint_every" validate:"gte=0"`
	LogEvery        int `yaml:"log_every" validate:"gte=0"`

	Metrics     bool `yaml:"metrics"`
	Plot        bool `yaml:"plot"`
	ProgressBar bool `yaml:"progress_bar"`
}

// Display configures how the trained actor's game is shown
type Display struct {
	Renderer string        `yaml:"renderer" validate:"oneof=terminal png none"`
	Delay    time.Duration `yaml:"delay" validate:"gte=0"`
	Colors   bool          `yaml:"colors"`
}

// Default returns the default configuration: a size 5 triangle learned
// with the NN critic
func Default() Config {
	return Config{
		Game:     envconfig.NewConfig("triangle", 5, nil, false),
		Episodes: 1000,
		Seed:     1,
		Critic:   actorcritic.NNCritic,
		Actor: actorcritic.ActorConfig{
			LearningRate: 0.1,
			Gamma:        0.9,
			Epsilon:      1.0,
			GoalEpsilon:  0.001,
			TraceDecay:   0.99,
		},
		TableCritic: actorcritic.CriticConfig{
			LearningRate: 0.1,
			Gamma:        0.9,
			TraceDecay:   0.99,
		},
		NNCritic: actorcritic.CriticConfig{
			LearningRate: 1e-3,
			Gamma:        0.9,
			TraceDecay:   0.99,
			Layers:       []int{25},
		},
		Output: Output{
			Dir:             "runs",
			CheckpointEvery: 0,
			LogEvery:        100,
			Plot:            true,
			ProgressBar:     true,
		},
		Display: Display{
			Renderer: "terminal",
			Delay:    100 * time.Millisecond,
			Colors:   true,
		},
	}
}

// Load reads a Config from a YAML file. Fields missing from the file
// keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("load: could not parse config %v: %w",
			path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}

// Validate checks the Config and the board it describes
func (c Config) Validate() error {
	c.Critic = strings.ToLower(c.Critic)
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate: invalid configuration: %w", err)
	}
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := c.CriticConfig().Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// CriticConfig returns the configuration of the selected critic
func (c Config) CriticConfig() actorcritic.CriticConfig {
	if strings.ToLower(c.Critic) == actorcritic.TableCritic {
		return c.TableCritic
	}
	return c.NNCritic
}

// String returns the Config as YAML
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", c)
	}
	return string(out)
}

// Save writes the Config as YAML to path
func (c Config) Save(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("save: could not marshal config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
