package pegsolitaire

import (
	"golang.org/x/exp/rand"
)

// Starter chooses the cells that start empty on a new board
type Starter interface {
	Start() []Coord
}

// FixedStarter always starts with the same empty cells. An empty
// FixedStarter uses the board's default empty cell.
type FixedStarter []Coord

// Start implements the Starter interface
func (f FixedStarter) Start() []Coord {
	start := make([]Coord, len(f))
	copy(start, f)
	return start
}

// CentreStarter leaves the centre of the board empty. Diamonds of even
// size have four cells around their centre; CentreStarter picks either
// the one above and to the left of the centre or the one below and to
// the right, uniformly at random.
type CentreStarter struct {
	shape Shape
	size  int
	rng   *rand.Rand
}

// NewCentreStarter returns a new CentreStarter
func NewCentreStarter(shape Shape, size int, seed uint64) *CentreStarter {
	return &CentreStarter{
		shape: shape,
		size:  size,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Start implements the Starter interface
func (c *CentreStarter) Start() []Coord {
	centre := c.shape.DefaultEmpty(c.size)
	if c.shape == Diamond && c.size%2 == 0 && c.rng.Intn(2) == 1 {
		centre = Coord{c.size / 2, c.size / 2}
	}
	return []Coord{centre}
}
