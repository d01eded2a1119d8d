package pegsolitaire

import (
	"fmt"
	"strings"
)

// Board is a Peg Solitaire board of a given Shape and size.
//
// The Board owns all of its Spaces in a flat arena ordered row-major by
// coordinate (X, then Y). This traversal order is used for every
// enumeration the Board performs: serialization, observation vectors
// and legal move listings. Neighbour links are computed once at
// construction; afterwards only the occupancy of Spaces changes.
type Board struct {
	shape  Shape
	size   int
	spaces []Space
	index  []int // size*size lookup of coordinate -> arena index

	// Arena indices touched by the last applied move, -1 if none
	lastOrigin, lastJumped, lastLanding int
}

// NewBoard constructs a new Board of the given shape and size. The
// cells in empty start without a peg, all other cells start with one.
// If empty has no elements, a single default cell is left empty: the
// apex (0, 0) of a triangle or the centre of a diamond.
//
// NewBoard returns a *ConfigurationError if the shape is unknown, the
// size is not positive, or any empty coordinate lies off the board.
func NewBoard(shape Shape, size int, empty []Coord) (*Board, error) {
	if !shape.valid() {
		return nil, &ConfigurationError{
			Field:  "shape",
			Reason: fmt.Sprintf("unknown board shape %v", shape),
		}
	}
	if size <= 0 {
		return nil, &ConfigurationError{
			Field:  "size",
			Reason: fmt.Sprintf("board size must be positive, got %d", size),
		}
	}
	for _, c := range empty {
		if c.X < 0 || c.X >= size {
			return nil, &ConfigurationError{
				Field: "empty",
				Reason: fmt.Sprintf("invalid x-value in coordinate %v, want "+
					"0 <= x < %d", c, size),
			}
		}
		if c.Y < 0 || c.Y >= size {
			return nil, &ConfigurationError{
				Field: "empty",
				Reason: fmt.Sprintf("invalid y-value in coordinate %v, want "+
					"0 <= y < %d", c, size),
			}
		}
		if !shape.Contains(size, c) {
			return nil, &ConfigurationError{
				Field: "empty",
				Reason: fmt.Sprintf("invalid coordinate %v for shape %v, x "+
					"must be greater than or equal to y", c, shape),
			}
		}
	}

	b := &Board{
		shape:       shape,
		size:        size,
		spaces:      make([]Space, 0, shape.NumCells(size)),
		index:       make([]int, size*size),
		lastOrigin:  -1,
		lastJumped:  -1,
		lastLanding: -1,
	}

	// Allocate the arena in traversal order
	for i := range b.index {
		b.index[i] = NoNeighbour
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			c := Coord{x, y}
			if !shape.Contains(size, c) {
				continue
			}
			b.index[x*size+y] = len(b.spaces)
			b.spaces = append(b.spaces, newSpace(c))
		}
	}

	if len(empty) == 0 {
		empty = []Coord{shape.DefaultEmpty(size)}
	}
	for _, c := range empty {
		b.spaces[b.indexOf(c)].Occupied = false
	}

	b.link()
	return b, nil
}

// link computes the neighbour indices of every Space
func (b *Board) link() {
	offsets := b.shape.offsets()
	for i := range b.spaces {
		for d, o := range offsets {
			b.spaces[i].neighbours[d] = b.indexOf(b.spaces[i].Coord.Add(o))
		}
	}
}

// indexOf returns the arena index of c, or NoNeighbour if c is not on
// the board
func (b *Board) indexOf(c Coord) int {
	if !b.shape.Contains(b.size, c) {
		return NoNeighbour
	}
	return b.index[c.X*b.size+c.Y]
}

// Shape returns the shape of the board
func (b *Board) Shape() Shape {
	return b.shape
}

// Size returns the side length of the board
func (b *Board) Size() int {
	return b.size
}

// Len returns the number of cells on the board
func (b *Board) Len() int {
	return len(b.spaces)
}

// Contains returns whether c is a cell of the board
func (b *Board) Contains(c Coord) bool {
	return b.indexOf(c) != NoNeighbour
}

// Space returns the Space at coordinate c
func (b *Board) Space(c Coord) (Space, bool) {
	i := b.indexOf(c)
	if i == NoNeighbour {
		return Space{}, false
	}
	return b.spaces[i], true
}

// At returns the Space with arena index i
func (b *Board) At(i int) Space {
	return b.spaces[i]
}

// Spaces returns a copy of all Spaces in traversal order
func (b *Board) Spaces() []Space {
	spaces := make([]Space, len(b.spaces))
	copy(spaces, b.spaces)
	return spaces
}

// Occupied returns the number of cells holding a peg
func (b *Board) Occupied() int {
	n := 0
	for i := range b.spaces {
		if b.spaces[i].Occupied {
			n++
		}
	}
	return n
}

// Empty returns the number of cells without a peg
func (b *Board) Empty() int {
	return len(b.spaces) - b.Occupied()
}

// jump returns the arena indices of the jumped and landing cells of m,
// and whether m is legal
func (b *Board) jump(m Move) (origin, jumped, landing int, legal bool) {
	origin = b.indexOf(m.Origin)
	if origin == NoNeighbour || !b.spaces[origin].Occupied {
		return origin, NoNeighbour, NoNeighbour, false
	}

	jumped = b.spaces[origin].Neighbour(m.Direction)
	if jumped == NoNeighbour || !b.spaces[jumped].Occupied {
		return origin, jumped, NoNeighbour, false
	}

	landing = b.spaces[jumped].Neighbour(m.Direction)
	if landing == NoNeighbour || b.spaces[landing].Occupied {
		return origin, jumped, landing, false
	}
	return origin, jumped, landing, true
}

// IsLegalMove returns whether m is legal: the origin holds a peg, its
// neighbour in the move direction holds a peg, and the cell beyond that
// neighbour exists and is empty.
func (b *Board) IsLegalMove(m Move) bool {
	_, _, _, legal := b.jump(m)
	return legal
}

// ApplyMove applies m to the board in place and returns the serialized
// state after the move. If m is not legal, an *IllegalMoveError is
// returned and the board is left unchanged.
func (b *Board) ApplyMove(m Move) (string, error) {
	origin, jumped, landing, legal := b.jump(m)
	if !legal {
		return "", &IllegalMoveError{Move: m, State: b.Serialize()}
	}

	b.spaces[origin].Occupied = false
	b.spaces[jumped].Occupied = false
	b.spaces[landing].Occupied = true
	b.lastOrigin, b.lastJumped, b.lastLanding = origin, jumped, landing

	return b.Serialize(), nil
}

// LastMove returns the coordinates of the origin, jumped, and landing
// cells of the most recently applied move. The boolean is false if no
// move has been applied yet.
func (b *Board) LastMove() (origin, jumped, landing Coord, ok bool) {
	if b.lastOrigin == NoNeighbour {
		return Coord{}, Coord{}, Coord{}, false
	}
	return b.spaces[b.lastOrigin].Coord, b.spaces[b.lastJumped].Coord,
		b.spaces[b.lastLanding].Coord, true
}

// LegalMovesFrom returns the legal moves of the peg at c in direction
// order. If c is empty or off the board, no moves are returned.
func (b *Board) LegalMovesFrom(c Coord) []Move {
	var moves []Move
	for d := Direction(0); d < NumDirections; d++ {
		m := Move{Origin: c, Direction: d}
		if b.IsLegalMove(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// AllLegalMoves returns every legal move on the board in traversal
// order, and by direction for moves from the same cell.
func (b *Board) AllLegalMoves() []Move {
	var moves []Move
	for i := range b.spaces {
		if !b.spaces[i].Occupied {
			continue
		}
		moves = append(moves, b.LegalMovesFrom(b.spaces[i].Coord)...)
	}
	return moves
}

// HasLegalMove returns whether at least one legal move exists
func (b *Board) HasLegalMove() bool {
	for i := range b.spaces {
		if !b.spaces[i].Occupied {
			continue
		}
		for d := Direction(0); d < NumDirections; d++ {
			if b.IsLegalMove(Move{Origin: b.spaces[i].Coord, Direction: d}) {
				return true
			}
		}
	}
	return false
}

// Serialize returns the state key of the board: one '1' per occupied
// cell and one '0' per empty cell, in traversal order. Two boards of the
// same shape and size with the same occupancy serialize identically.
func (b *Board) Serialize() string {
	var sb strings.Builder
	sb.Grow(len(b.spaces))
	for i := range b.spaces {
		if b.spaces[i].Occupied {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Vector returns the occupancy of the board as a feature vector with
// one element per cell in traversal order: 1.0 for a peg, 0.0 for an
// empty cell.
func (b *Board) Vector() []float64 {
	v := make([]float64, len(b.spaces))
	for i := range b.spaces {
		if b.spaces[i].Occupied {
			v[i] = 1.0
		}
	}
	return v
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	clone := *b
	clone.spaces = b.Spaces()
	clone.index = make([]int, len(b.index))
	copy(clone.index, b.index)
	return &clone
}

// String implements the fmt.Stringer interface, drawing one row of the
// board per line.
func (b *Board) String() string {
	var sb strings.Builder
	for x := 0; x < b.size; x++ {
		for y := 0; y < b.size; y++ {
			i := b.indexOf(Coord{x, y})
			if i == NoNeighbour {
				continue
			}
			if y > 0 {
				sb.WriteByte(' ')
			}
			if b.spaces[i].Occupied {
				sb.WriteByte('o')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
