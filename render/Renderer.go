// Package render draws Peg Solitaire boards, either as coloured text in
// a terminal or as PNG images
package render

import (
	"time"

	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
)

// Renderer draws a board. Render is called once per completed move
// while watching a game.
type Renderer interface {
	Render(b *pegsolitaire.Board) error
}

// Nop is a Renderer which draws nothing
type Nop struct{}

// Render implements the Renderer interface
func (Nop) Render(*pegsolitaire.Board) error { return nil }

// Delayed wraps a Renderer, pausing after each board it draws so that a
// game can be followed move by move
type Delayed struct {
	Renderer
	Delay time.Duration
}

// Render implements the Renderer interface
func (d Delayed) Render(b *pegsolitaire.Board) error {
	if err := d.Renderer.Render(b); err != nil {
		return err
	}
	time.Sleep(d.Delay)
	return nil
}

// cellKind classifies a cell for drawing
type cellKind int

const (
	peg cellKind = iota
	empty
	lastOrigin
	lastLanding
)

// kinds returns the kind of each cell of b in traversal order
func kinds(b *pegsolitaire.Board) []cellKind {
	origin, _, landing, moved := b.LastMove()

	out := make([]cellKind, b.Len())
	for i, s := range b.Spaces() {
		switch {
		case moved && s.Coord == origin:
			out[i] = lastOrigin
		case moved && s.Coord == landing:
			out[i] = lastLanding
		case s.Occupied:
			out[i] = peg
		default:
			out[i] = empty
		}
	}
	return out
}

// position returns the layout position of c in board units, with y
// increasing downwards. Triangles are drawn apex up and diamonds with
// (0, 0) at the top.
func position(shape pegsolitaire.Shape, c pegsolitaire.Coord) (float64,
	float64) {
	if shape == pegsolitaire.Triangle {
		return float64(2*c.Y - c.X), float64(c.X)
	}
	return float64(c.Y - c.X), float64(c.X + c.Y)
}
