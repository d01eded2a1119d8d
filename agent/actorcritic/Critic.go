package actorcritic

import (
	"encoding/gob"
	"fmt"
	"os"
	"strings"

	"github.com/samuelfneumann/pegsolitaire/agent"
)

// Available critic kinds
const (
	TableCritic = "table"
	NNCritic    = "nn"
)

// CriticKindError is returned when a critic of an unknown kind is
// requested
type CriticKindError struct {
	Kind string
}

func (c *CriticKindError) Error() string {
	return fmt.Sprintf("unknown critic kind %q, want one of %q or %q", c.Kind,
		TableCritic, NNCritic)
}

// NewCritic returns a new critic of the given kind. The kind "ann" is
// accepted as an alias for "nn". Features is the number of cells on the
// board and is only used by the NN critic, while seed is only used by
// the tabular critic.
func NewCritic(kind string, config CriticConfig, features int,
	seed uint64) (agent.Critic, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case TableCritic:
		critic, err := NewTabular(config, seed)
		if err != nil {
			return nil, fmt.Errorf("newCritic: %w", err)
		}
		return critic, nil

	case NNCritic, "ann":
		critic, err := NewNN(config, features)
		if err != nil {
			return nil, fmt.Errorf("newCritic: %w", err)
		}
		return critic, nil
	}

	return nil, fmt.Errorf("newCritic: %w", &CriticKindError{Kind: kind})
}

// LoadCritic loads a critic of the given kind saved with its Save method
func LoadCritic(kind, filename string) (agent.Critic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadCritic: could not open file: %w", err)
	}
	defer file.Close()

	var critic agent.Critic
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case TableCritic:
		critic = &Tabular{}

	case NNCritic, "ann":
		critic = &NN{}

	default:
		return nil, fmt.Errorf("loadCritic: %w", &CriticKindError{Kind: kind})
	}

	if err := gob.NewDecoder(file).Decode(critic); err != nil {
		return nil, fmt.Errorf("loadCritic: could not decode critic: %w", err)
	}
	return critic, nil
}
