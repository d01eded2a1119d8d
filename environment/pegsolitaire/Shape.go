// Package pegsolitaire implements the rules of Peg Solitaire on diamond
// and triangle boards.
//
// A Board owns every Space of the game in a single flat slice. Spaces
// refer to their neighbours by index into that slice, so the board graph
// has no pointer cycles and can be copied or serialized trivially.
package pegsolitaire

import (
	"fmt"
	"strings"
)

// Shape denotes the layout of a Board
type Shape int

const (
	Diamond Shape = iota
	Triangle
)

// ParseShape parses a textual board shape. Both the long names and the
// single letter abbreviations ("d", "t") are accepted, ignoring case.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "diamond":
		return Diamond, nil
	case "t", "triangle":
		return Triangle, nil
	}
	return 0, &ConfigurationError{
		Field:  "shape",
		Reason: fmt.Sprintf("unknown board shape %q, want diamond or triangle", s),
	}
}

// String implements the fmt.Stringer interface
func (s Shape) String() string {
	switch s {
	case Diamond:
		return "Diamond"
	case Triangle:
		return "Triangle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// valid returns whether s is one of the supported shapes
func (s Shape) valid() bool {
	return s == Diamond || s == Triangle
}

// NumCells returns the number of cells on a board of shape s and the
// given size. A diamond of size n has n*n cells while a triangle of size
// n has n*(n+1)/2 cells.
func (s Shape) NumCells(size int) int {
	if size <= 0 {
		return 0
	}
	if s == Triangle {
		return size * (size + 1) / 2
	}
	return size * size
}

// Contains returns whether coordinate c lies on a board of shape s and
// the given size.
func (s Shape) Contains(size int, c Coord) bool {
	if c.X < 0 || c.Y < 0 || c.X >= size || c.Y >= size {
		return false
	}
	if s == Triangle {
		return c.X >= c.Y
	}
	return true
}

// DefaultEmpty returns the cell left empty when no initial empty cells
// are given: the apex of a triangle or the centre of a diamond. For
// diamonds of even size there is no true centre and the cell above and
// to the left of it is used.
func (s Shape) DefaultEmpty(size int) Coord {
	if s == Triangle {
		return Coord{0, 0}
	}
	c := (size - 1) / 2
	return Coord{c, c}
}

// offsets returns the neighbour offsets for each Direction. Rows are
// indexed by X and columns by Y. Diamonds and triangles are both
// hexagonal grids drawn on a square array, but they are skewed in
// opposite ways, so the two diagonal directions differ.
func (s Shape) offsets() [NumDirections]Coord {
	if s == Triangle {
		return triangleOffsets
	}
	return diamondOffsets
}

var diamondOffsets = [NumDirections]Coord{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, 1}, {1, -1},
}

var triangleOffsets = [NumDirections]Coord{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, 1},
}
