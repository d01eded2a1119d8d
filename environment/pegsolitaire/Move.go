package pegsolitaire

import "fmt"

// NumDirections is the number of neighbours of a cell on a hexagonal grid
const NumDirections = 6

// Direction indexes one of the six neighbours of a Space. Direction
// indices are the same for every cell of a board.
type Direction int

// Coord is the (row, column) coordinate of a cell
type Coord struct {
	X, Y int
}

// String implements the fmt.Stringer interface
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Add returns the coordinate c offset by o
func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y}
}

// Move is a single jump: the peg at Origin jumps over its neighbour in
// Direction and lands on the cell beyond it. Moves are comparable and
// can be used as map keys.
type Move struct {
	Origin    Coord
	Direction Direction
}

// NewMove returns a new Move
func NewMove(origin Coord, d Direction) Move {
	return Move{Origin: origin, Direction: d}
}

// String implements the fmt.Stringer interface
func (m Move) String() string {
	return fmt.Sprintf("%v -> %d", m.Origin, m.Direction)
}
