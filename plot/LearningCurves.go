// Package plot draws learning curves of training runs as HTML pages
package plot

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LearningCurves writes an HTML page to path with one line chart of the
// pegs remaining after each episode and one of the return of each
// episode. Either series may be empty, in which case its chart is
// omitted.
func LearningCurves(path string, pegs, returns []float64) error {
	page := components.NewPage()
	page.PageTitle = "Peg Solitaire learning curves"

	if len(pegs) > 0 {
		page.AddCharts(line("Remaining pegs", "pegs", pegs))
	}
	if len(returns) > 0 {
		page.AddCharts(line("Episodic return", "return", returns))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("learningCurves: could not create file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("learningCurves: could not render page: %w", err)
	}
	return nil
}

// line returns a line chart of data against the episode number
func line(title, series string, data []float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	episodes := make([]string, len(data))
	items := make([]opts.LineData, len(data))
	for i, v := range data {
		episodes[i] = strconv.Itoa(i)
		items[i] = opts.LineData{Value: v}
	}

	chart.SetXAxis(episodes).AddSeries(series, items)
	return chart
}
