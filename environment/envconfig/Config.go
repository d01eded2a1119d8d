// Package envconfig provides configuration structs for configuring
// Peg Solitaire environments. Environment configurations in this package
// are YAML serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/pegsolitaire/environment"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
)

// Config implements a specific configuration of a Peg Solitaire board.
//
// Shape is one of "diamond" or "triangle" (or their first letters).
// InitialEmpty lists the cells that start without a peg as [x, y]
// pairs; if it is empty the board's default cell is used. If
// RandomCentre is set, InitialEmpty must be empty and the start cell is
// chosen by a pegsolitaire.CentreStarter.
type Config struct {
	Shape        string  `yaml:"shape" validate:"required"`
	Size         int     `yaml:"size" validate:"gt=0"`
	InitialEmpty [][]int `yaml:"initial_empty" validate:"dive,len=2"`
	RandomCentre bool    `yaml:"random_centre"`
}

// NewConfig returns a new environment Config
func NewConfig(shape string, size int, initialEmpty [][]int,
	randomCentre bool) Config {
	return Config{
		Shape:        shape,
		Size:         size,
		InitialEmpty: initialEmpty,
		RandomCentre: randomCentre,
	}
}

// Validate checks that the Config describes a constructible board. Any
// error returned wraps a *pegsolitaire.ConfigurationError.
func (c Config) Validate() error {
	_, err := c.board()
	return err
}

// Coords returns the initially empty cells as coordinates
func (c Config) Coords() ([]pegsolitaire.Coord, error) {
	coords := make([]pegsolitaire.Coord, 0, len(c.InitialEmpty))
	for _, pair := range c.InitialEmpty {
		if len(pair) != 2 {
			return nil, &pegsolitaire.ConfigurationError{
				Field: "initial_empty",
				Reason: fmt.Sprintf("coordinate %v must have exactly 2 "+
					"elements", pair),
			}
		}
		coords = append(coords, pegsolitaire.Coord{X: pair[0], Y: pair[1]})
	}
	return coords, nil
}

// board returns the shape of the board and checks that it can be built
func (c Config) board() (pegsolitaire.Shape, error) {
	shape, err := pegsolitaire.ParseShape(c.Shape)
	if err != nil {
		return 0, fmt.Errorf("validate: %w", err)
	}

	empty, err := c.Coords()
	if err != nil {
		return 0, fmt.Errorf("validate: %w", err)
	}
	if c.RandomCentre && len(empty) > 0 {
		return 0, fmt.Errorf("validate: %w", &pegsolitaire.ConfigurationError{
			Field:  "random_centre",
			Reason: "cannot be used together with initial_empty",
		})
	}

	if _, err := pegsolitaire.NewBoard(shape, c.Size, empty); err != nil {
		return 0, fmt.Errorf("validate: %w", err)
	}
	return shape, nil
}

// Starter returns the Starter that chooses the empty cells of each new
// board
func (c Config) Starter(seed uint64) (pegsolitaire.Starter, error) {
	shape, err := c.board()
	if err != nil {
		return nil, fmt.Errorf("starter: %w", err)
	}

	if c.RandomCentre {
		return pegsolitaire.NewCentreStarter(shape, c.Size, seed), nil
	}

	// board() has already checked the coordinates
	empty, _ := c.Coords()
	return pegsolitaire.FixedStarter(empty), nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	s, err := c.Starter(seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	// Starter has already parsed the shape
	shape, _ := pegsolitaire.ParseShape(c.Shape)

	e, step, err := env.NewPegSolitaire(shape, c.Size, s)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}
	return e, step, nil
}
