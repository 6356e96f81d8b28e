package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/termpane/termpane/internal/dataset"
)

// RenderSVG draws a slab as a standalone SVG document: rank 1 as a
// polyline over its coordinate axis, rank 2 as a colored cell grid
// with the same band palette as the raster renderer. Scalars render
// as a single centered annotation.
func RenderSVG(slab *dataset.Slab, opts Options) (*Figure, error) {
	w, h := opts.size()
	var doc string
	switch slab.Rank() {
	case 0:
		doc = scalarSVG(slab, opts, w, h)
	case 1:
		doc = lineSVG(slab, opts, w, h)
	case 2:
		doc = contourSVG(slab, opts, w, h)
	default:
		return nil, fmt.Errorf("plot: cannot draw %d plot dimensions, at most 2 supported", slab.Rank())
	}
	return &Figure{Title: opts.Title, Image: []byte(doc)}, nil
}

func svgOpen(b *strings.Builder, w, h int) {
	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, w, h, w, h)
}

func svgTitle(b *strings.Builder, title string, w int) {
	if title == "" {
		return
	}
	fmt.Fprintf(b, `<text x="%d" y="18" text-anchor="middle" font-family="monospace" font-size="13">%s</text>
`, w/2, escapeSVG(title))
}

func scalarSVG(slab *dataset.Slab, opts Options, w, h int) string {
	var b strings.Builder
	svgOpen(&b, w, h)
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-family="monospace" font-size="16">%s</text>
</svg>`, w/2, h/2, escapeSVG(Annotation(slab, opts.Title)))
	return b.String()
}

func lineSVG(slab *dataset.Slab, opts Options, w, h int) string {
	d := slab.Dims[0]
	inner := innerRect(w, h)
	xa := newAxis(d.Coords, slab.Limits[0], float64(inner.dx))
	lo, hi := padRange(valueRange(slab.Values))
	ya := newAxis([]float64{lo, hi}, nil, float64(inner.dy))

	var b strings.Builder
	svgOpen(&b, w, h)
	svgTitle(&b, opts.Title, w)
	svgFrame(&b, inner)

	var path strings.Builder
	for i, c := range d.Coords {
		x := float64(inner.x0) + xa.pos(c)
		y := float64(inner.y1) - ya.pos(slab.Values[i])
		if i == 0 {
			fmt.Fprintf(&path, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&path, " L%.1f,%.1f", x, y)
		}
	}
	fmt.Fprintf(&b, `<path fill="none" stroke="#1565c0" stroke-width="1.5" d="%s"/>
`, path.String())

	svgAxisLabels(&b, xa, ya, inner, axisLabel(d), slab.Var)
	b.WriteString("</svg>")
	return b.String()
}

func contourSVG(slab *dataset.Slab, opts Options, w, h int) string {
	ys := slab.Dims[0].Coords
	xs := slab.Dims[1].Coords
	inner := innerRect(w, h)
	xa := newAxis(xs, slab.Limits[1], float64(inner.dx))
	ya := newAxis(ys, slab.Limits[0], float64(inner.dy))
	vmin, vmax := padRange(valueRange(slab.Values))
	bounds := levelBounds(vmin, vmax, ContourLevels)
	bands := palette(ContourLevels, opts.Palette)

	var b strings.Builder
	svgOpen(&b, w, h)
	svgTitle(&b, opts.Title, w)

	for i := 0; i+1 < len(ys); i++ {
		for j := 0; j+1 < len(xs); j++ {
			mean := (slab.At(i, j) + slab.At(i, j+1) + slab.At(i+1, j) + slab.At(i+1, j+1)) / 4
			if math.IsNaN(mean) {
				continue
			}
			k := int((mean - vmin) / (vmax - vmin) * ContourLevels)
			if k < 0 {
				k = 0
			}
			if k >= ContourLevels {
				k = ContourLevels - 1
			}
			x0 := float64(inner.x0) + xa.pos(xs[j])
			x1 := float64(inner.x0) + xa.pos(xs[j+1])
			y0 := float64(inner.y1) - ya.pos(ys[i])
			y1 := float64(inner.y1) - ya.pos(ys[i+1])
			fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#%02x%02x%02x"/>
`, math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0), bands[k].R, bands[k].G, bands[k].B)
		}
	}

	if opts.Labels {
		for _, level := range bounds[1 : len(bounds)-1] {
			for _, s := range isoSegments(slab, level) {
				fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#282828" stroke-width="1"/>
`,
					float64(inner.x0)+xa.pos(s.x1), float64(inner.y1)-ya.pos(s.y1),
					float64(inner.x0)+xa.pos(s.x2), float64(inner.y1)-ya.pos(s.y2))
			}
		}
	}

	svgFrame(&b, inner)
	svgAxisLabels(&b, xa, ya, inner, axisLabel(slab.Dims[1]), axisLabel(slab.Dims[0]))

	// Horizontal color scale under the plot.
	barY := inner.y1 + 34
	n := len(bands)
	for k := 0; k < n; k++ {
		x0 := inner.x0 + k*inner.dx/n
		x1 := inner.x0 + (k+1)*inner.dx/n
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="12" fill="#%02x%02x%02x" stroke="#505050" stroke-width="0.5"/>
`, x0, barY, x1-x0, bands[k].R, bands[k].G, bands[k].B)
	}
	for i := 0; i < len(bounds); i += 2 {
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-family="monospace" font-size="10">%.3g</text>
`, inner.x0+i*inner.dx/n, barY+24, bounds[i])
	}

	b.WriteString("</svg>")
	return b.String()
}

// innerBox is the plot area within the figure margins.
type innerBox struct {
	x0, y0, x1, y1 int
	dx, dy         int
}

func innerRect(w, h int) innerBox {
	b := innerBox{x0: 56, y0: 28, x1: w - 16, y1: h - 64}
	b.dx, b.dy = b.x1-b.x0, b.y1-b.y0
	return b
}

func svgFrame(b *strings.Builder, r innerBox) {
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#505050"/>
`, r.x0, r.y0, r.dx, r.dy)
}

func svgAxisLabels(b *strings.Builder, xa, ya axis, r innerBox, xName, yName string) {
	fmt.Fprintf(b, `<text x="%d" y="%d" font-family="monospace" font-size="10">%.4g</text>
`, r.x0, r.y1+14, xa.from)
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="end" font-family="monospace" font-size="10">%.4g</text>
`, r.x1, r.y1+14, xa.to)
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="end" font-family="monospace" font-size="10">%.4g</text>
`, r.x0-6, r.y1+4, ya.from)
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="end" font-family="monospace" font-size="10">%.4g</text>
`, r.x0-6, r.y0+10, ya.to)
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="middle" font-family="monospace" font-size="11">%s</text>
`, r.x0+r.dx/2, r.y1+28, escapeSVG(xName))
	fmt.Fprintf(b, `<text x="%d" y="%d" font-family="monospace" font-size="11">%s</text>
`, 4, r.y0-8, escapeSVG(yName))
}

func escapeSVG(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
