package checkpointer

import "fmt"

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	object   Serializable // Object to save

	// filename returns the filename of the next checkpoint.
	//
	// If each serialized object should be saved in a separate file with
	// each file having an incremented number as a suffix (e.g.
	// actor1.bin, actor2.bin, ..., actorK.bin), then simply use
	// FilenameEnumerator, which will return a function that will
	// enumerate filenames. To overwrite a single file, return a
	// constant.
	filename func() string
}

// NewNEpisode returns a checkpointer that checkpoints object after
// every n episodes.
func NewNEpisode(n int, object Serializable,
	filename func() string) (Checkpointer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newNEpisode: checkpoint interval must be "+
			"positive, got %v", n)
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint checkpoints the Checkpointer's tracked object by calling
// its Save() method. Episodes are counted from 0.
func (n *nEpisode) Checkpoint(episode int) error {
	if (episode+1)%n.interval == 0 {
		if err := n.object.Save(n.filename()); err != nil {
			return fmt.Errorf("checkpoint: episode %v: %w", episode, err)
		}
	}
	return nil
}
