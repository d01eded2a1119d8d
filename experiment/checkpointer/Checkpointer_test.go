package checkpointer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// counter records the files it is saved to
type counter struct {
	saved []string
}

func (c *counter) GobEncode() ([]byte, error) { return nil, nil }
func (c *counter) GobDecode([]byte) error { return nil }
func (c *counter) Save(filename string) error {
	c.saved = append(c.saved, filename)
	return nil
}

func TestFilenameEnumerator(t *testing.T) {
	next := FilenameEnumerator(0, "actor", ".bin")
	require.Equal(t, "actor1.bin", next())
	require.Equal(t, "actor2.bin", next())
}

func TestNEpisode(t *testing.T) {
	obj := &counter{}
	c, err := NewNEpisode(3, obj, FilenameEnumerator(0, "critic", ".bin"))
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		require.NoError(t, c.Checkpoint(i))
	}
	require.Equal(t, []string{"critic1.bin", "critic2.bin"}, obj.saved)

	_, err = NewNEpisode(0, obj, nil)
	require.Error(t, err)
}

