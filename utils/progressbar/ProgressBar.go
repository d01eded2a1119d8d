// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar implements a progress bar that must be manually managed.
// That is, the Display() function must be called whenever an updated
// progress bar should be printed. Each Display overwrites the previous
// one on the same line.
type ProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// NewProgressBar returns a new ProgressBar that is width characters
// wide and reaches 100% after max calls to Increment
func NewProgressBar(out io.Writer, width, max int) *ProgressBar {
	if max < 1 {
		max = 1
	}
	return &ProgressBar{
		out:         out,
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the fraction of iterations completed
func (p *ProgressBar) Progress() float64 {
	return p.currentProgress / p.maxProgress
}

// String returns the progress bar followed by status
func (p *ProgressBar) String(status string) string {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.Progress() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	fmt.Fprintf(&p.bar, "| [%.2f%% | elapsed: %v]", p.Progress()*100,
		time.Since(p.startTime).Truncate(time.Second))

	if status != "" {
		p.bar.WriteString(" ")
		p.bar.WriteString(status)
	}
	return p.bar.String()
}

// Display displays the progress bar, replacing the current line
func (p *ProgressBar) Display(status string) {
	fmt.Fprintf(p.out, "\r\033[K%v", p.String(status))
}

// Close ends the line of the progress bar
func (p *ProgressBar) Close() {
	fmt.Fprintln(p.out)
}
