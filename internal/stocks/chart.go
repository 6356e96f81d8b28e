package stocks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorCyan,
	chart.ColorOrange,
}

// Chart renders the series as one PNG line chart with a legend, one
// line per symbol.
func Chart(series []*Series, title string, width, height int) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	if title == "" {
		title = fmt.Sprintf("daily close: %s", symbolList(series))
	}

	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 8}},
		XAxis:      chart.XAxis{Name: "date"},
		YAxis:      chart.YAxis{Name: "close"},
	}
	for i, s := range series {
		ch.Series = append(ch.Series, chart.TimeSeries{
			Name:    s.Symbol,
			XValues: s.Dates,
			YValues: s.Closes,
			Style: chart.Style{
				StrokeWidth: 1.6,
				StrokeColor: seriesColors[i%len(seriesColors)],
			},
		})
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("stocks: render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Terminal renders the series as an ANSI line chart for plain
// terminals. The caption lists the symbols in series-color order.
func Terminal(series []*Series, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	if width <= 0 {
		width = 72
	}
	if height <= 0 {
		height = 16
	}
	data := make([][]float64, len(series))
	for i, s := range series {
		data[i] = s.Closes
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("daily close: %s", symbolList(series))),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green, asciigraph.Red, asciigraph.Cyan, asciigraph.Orange),
	)
}

func symbolList(series []*Series) string {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Symbol
	}
	return strings.Join(names, ", ")
}
