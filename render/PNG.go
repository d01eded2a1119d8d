package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
)

// Drawing constants of the PNG renderer, in pixels
const (
	CellSpacing float64 = 40.0
	CellRadius  float64 = 12.0
	Margin      float64 = 30.0
)

var (
	edgeColour    = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	pegColour     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	emptyColour   = color.Black
	originColour  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	landingColour = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// PNG draws each board it renders as a graph of cells and neighbour
// links into its own numbered image file in a directory
type PNG struct {
	dir    string
	prefix string
	frame  int
}

// NewPNG returns a PNG renderer writing to dir, creating the directory
// if needed. Files are named prefix0.png, prefix1.png, ...
func NewPNG(dir, prefix string) (*PNG, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("newPNG: could not create directory: %w", err)
	}
	return &PNG{dir: dir, prefix: prefix}, nil
}

// Render implements the Renderer interface
func (p *PNG) Render(b *pegsolitaire.Board) error {
	filename := filepath.Join(p.dir, fmt.Sprintf("%v%v.png", p.prefix,
		p.frame))
	if err := Draw(b).SavePNG(filename); err != nil {
		return fmt.Errorf("render: could not save %v: %w", filename, err)
	}
	p.frame++
	return nil
}

// Frames returns the number of images written so far
func (p *PNG) Frames() int {
	return p.frame
}

// Draw draws b onto a new gg context sized to fit the board
func Draw(b *pegsolitaire.Board) *gg.Context {
	spaces := b.Spaces()
	cells := kinds(b)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	xs := make([]float64, len(spaces))
	ys := make([]float64, len(spaces))
	for i, s := range spaces {
		xs[i], ys[i] = position(b.Shape(), s.Coord)
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	// Triangle columns are half a cell apart
	scaleX := CellSpacing
	if b.Shape() == pegsolitaire.Triangle {
		scaleX /= 2
	}
	pixel := func(i int) (float64, float64) {
		return Margin + (xs[i]-minX)*scaleX, Margin + (ys[i]-minY)*CellSpacing
	}

	width := int(2*Margin + (maxX-minX)*scaleX)
	height := int(2*Margin + (maxY-minY)*CellSpacing)
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	// Each link is drawn from both of its ends
	dc.SetColor(edgeColour)
	dc.SetLineWidth(2.0)
	for i, s := range spaces {
		x1, y1 := pixel(i)
		for _, n := range s.Neighbours() {
			if n == pegsolitaire.NoNeighbour {
				continue
			}
			x2, y2 := pixel(n)
			dc.DrawLine(x1, y1, x2, y2)
		}
	}
	dc.Stroke()

	for i := range spaces {
		x, y := pixel(i)
		dc.DrawCircle(x, y, CellRadius)
		switch cells[i] {
		case peg:
			dc.SetColor(pegColour)
		case lastOrigin:
			dc.SetColor(originColour)
		case lastLanding:
			dc.SetColor(landingColour)
		default:
			dc.SetColor(emptyColour)
		}
		dc.Fill()
	}

	return dc
}
