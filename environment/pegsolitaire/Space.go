package pegsolitaire

// NoNeighbour marks a direction in which a Space has no neighbour
const NoNeighbour = -1

// Space is a single cell of a Board. Neighbours are stored as indices
// into the Board's arena of Spaces and never change after the Board is
// constructed.
type Space struct {
	Occupied   bool
	Coord      Coord
	neighbours [NumDirections]int
}

// newSpace returns an occupied Space with no neighbours
func newSpace(c Coord) Space {
	s := Space{Occupied: true, Coord: c}
	for d := range s.neighbours {
		s.neighbours[d] = NoNeighbour
	}
	return s
}

// Neighbour returns the arena index of the neighbour in direction d, or
// NoNeighbour if the neighbour would be off the board.
func (s Space) Neighbour(d Direction) int {
	if d < 0 || int(d) >= NumDirections {
		return NoNeighbour
	}
	return s.neighbours[d]
}

// Neighbours returns the arena indices of all six neighbours in
// direction order.
func (s Space) Neighbours() [NumDirections]int {
	return s.neighbours
}
