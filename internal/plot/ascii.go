package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/termpane/termpane/internal/dataset"
)

// Terminal sketch geometry in characters.
const (
	asciiWidth  = 72
	asciiHeight = 16
)

// renderLineASCII draws a rank-1 slab with asciigraph. A display
// limit narrows the plotted window to the coordinates it covers.
func renderLineASCII(slab *dataset.Slab, opts Options) string {
	d := slab.Dims[0]
	values := slab.Values
	coords := d.Coords
	if lim := slab.Limits[0]; lim != nil {
		lo := math.Min(lim.From, lim.To)
		hi := math.Max(lim.From, lim.To)
		var fv, fc []float64
		for i, c := range coords {
			if c >= lo && c <= hi {
				fv = append(fv, values[i])
				fc = append(fc, c)
			}
		}
		if len(fv) > 0 {
			values, coords = fv, fc
		}
	}
	if len(values) < 2 {
		title := opts.Title
		if title == "" {
			title = slab.Var
		}
		return fmt.Sprintf("%s = %.6g (single sample at %s=%.4g)\n", title, values[0], d.Name, coords[0])
	}
	caption := fmt.Sprintf("%s  [%s: %.4g to %.4g]", opts.Title, axisLabel(d), coords[0], coords[len(coords)-1])
	return asciigraph.Plot(values,
		asciigraph.Height(asciiHeight),
		asciigraph.Width(asciiWidth),
		asciigraph.Caption(caption),
	) + "\n"
}

// renderContourASCII sketches the interior contour lines of a rank-2
// slab on a braille canvas, with a legend listing the level values.
func renderContourASCII(slab *dataset.Slab, opts Options) string {
	c := NewCanvas(asciiWidth, asciiHeight)
	c.Box()

	vmin, vmax := padRange(valueRange(slab.Values))
	bounds := levelBounds(vmin, vmax, ContourLevels)
	xa := newAxis(slab.Dims[1].Coords, slab.Limits[1], float64(c.DotWidth()-1))
	ya := newAxis(slab.Dims[0].Coords, slab.Limits[0], float64(c.DotHeight()-1))
	maxY := c.DotHeight() - 1

	for _, level := range bounds[1 : len(bounds)-1] {
		for _, s := range isoSegments(slab, level) {
			if !xa.contains(s.x1) || !xa.contains(s.x2) || !ya.contains(s.y1) || !ya.contains(s.y2) {
				continue
			}
			c.Line(
				int(xa.pos(s.x1)+0.5), maxY-int(ya.pos(s.y1)+0.5),
				int(xa.pos(s.x2)+0.5), maxY-int(ya.pos(s.y2)+0.5),
			)
		}
	}

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(opts.Title)
		b.WriteByte('\n')
	}
	b.WriteString(c.String())
	b.WriteString(fmt.Sprintf("x %s: %.4g to %.4g   y %s: %.4g to %.4g\n",
		axisLabel(slab.Dims[1]), xa.from, xa.to,
		axisLabel(slab.Dims[0]), ya.from, ya.to))
	b.WriteString(fmt.Sprintf("levels: %.3g to %.3g step %.3g\n",
		bounds[0], bounds[len(bounds)-1], bounds[1]-bounds[0]))
	return b.String()
}
