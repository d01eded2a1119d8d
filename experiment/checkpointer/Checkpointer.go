// Package checkpointer implements Checkpointers, which periodically save
// learners during training
package checkpointer

import (
	"encoding/gob"
)

// Serializable is an object that can be saved/serialized
type Serializable interface {
	gob.GobEncoder
	gob.GobDecoder
	Save(filename string) error
}

// Checkpointer checkpoints/saves serializable objects at the end of
// training episodes
type Checkpointer interface {
	Checkpoint(episode int) error
}
