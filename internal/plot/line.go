package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/termpane/termpane/internal/dataset"
)

// renderLinePNG draws a rank-1 slab as a line chart against its
// dimension's coordinate values. A display limit fixes the x-axis
// range; the chart backend draws axes low-to-high, so an inverted
// limit selects the same window with the ends normalized.
func renderLinePNG(slab *dataset.Slab, opts Options) ([]byte, error) {
	d := slab.Dims[0]
	w, h := opts.size()

	style := chart.Style{
		StrokeWidth: 1.5,
		StrokeColor: chart.ColorBlue,
	}
	if d.Len() == 1 {
		style.DotWidth = 4
		style.DotColor = chart.ColorBlue
	}

	ch := chart.Chart{
		Title:  opts.Title,
		Width:  w,
		Height: h,
		Background: chart.Style{
			Padding: chart.Box{Top: 28, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: axisLabel(d)},
		YAxis: chart.YAxis{Name: slab.Var},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    slab.Var,
				XValues: d.Coords,
				YValues: slab.Values,
				Style:   style,
			},
		},
	}

	if lim := slab.Limits[0]; lim != nil {
		ch.XAxis.Range = &chart.ContinuousRange{
			Min: math.Min(lim.From, lim.To),
			Max: math.Max(lim.From, lim.To),
		}
	} else if lo, hi := valueRange(d.Coords); lo == hi {
		ch.XAxis.Range = &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}
	}
	if lo, hi := valueRange(slab.Values); lo == hi {
		ch.YAxis.Range = &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("plot: rendering line chart: %w", err)
	}
	return buf.Bytes(), nil
}
