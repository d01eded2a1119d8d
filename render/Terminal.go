package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
)

// orange is the 256-colour palette index used for the last landing cell
const orange uint8 = 208

// Terminal draws boards as text: pegs in blue, empty cells in grey, the
// origin of the last move in red and its landing cell in orange
type Terminal struct {
	out io.Writer
	au  aurora.Aurora
}

// NewTerminal returns a Terminal renderer writing to out. Colours are
// only written if colors is true.
func NewTerminal(out io.Writer, colors bool) *Terminal {
	return &Terminal{out: out, au: aurora.NewAurora(colors)}
}

// Render implements the Renderer interface
func (t *Terminal) Render(b *pegsolitaire.Board) error {
	if _, err := io.WriteString(t.out, t.Draw(b)); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Draw returns the board as lines of text, followed by a blank line
func (t *Terminal) Draw(b *pegsolitaire.Board) string {
	spaces := b.Spaces()
	cells := kinds(b)

	minX, minY := 0.0, 0.0
	maxX, maxY := 0.0, 0.0
	for i, s := range spaces {
		x, y := position(b.Shape(), s.Coord)
		if i == 0 || x < minX {
			minX = x
		}
		if i == 0 || x > maxX {
			maxX = x
		}
		if i == 0 || y < minY {
			minY = y
		}
		if i == 0 || y > maxY {
			maxY = y
		}
	}

	rows := int(maxY-minY) + 1
	cols := int(maxX-minX) + 1
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	for i, s := range spaces {
		x, y := position(b.Shape(), s.Coord)
		grid[int(y-minY)][int(x-minX)] = t.cell(cells[i])
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.TrimRight(strings.Join(row, ""), " "))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// cell returns the coloured text of a single cell
func (t *Terminal) cell(k cellKind) string {
	switch k {
	case peg:
		return t.au.Blue("o").String()
	case lastOrigin:
		return t.au.Red(".").String()
	case lastLanding:
		return t.au.Index(orange, "o").String()
	}
	return t.au.Gray(12, ".").String()
}
