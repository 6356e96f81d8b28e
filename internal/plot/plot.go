package plot

import (
	"fmt"
	"math"

	"github.com/termpane/termpane/internal/dataset"
)

// Default figure geometry in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ContourLevels is the fixed number of filled bands in a contour
// rendering.
const ContourLevels = 10

// Options control a single rendering pass.
type Options struct {
	Title  string
	Width  int
	Height int
	// Labels overlays contour lines with level annotations on 2D
	// renderings.
	Labels bool
	// Palette overrides the built-in contour band anchors with hex
	// colors. Needs at least two entries to take effect.
	Palette []string
}

func (o Options) size() (w, h int) {
	w, h = o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Figure is one rendered frame. Graphical renderings carry PNG bytes;
// scalar and terminal renderings carry text.
type Figure struct {
	Title string
	Image []byte
	Text  string
}

// Render draws a slab as a graphical figure, branching on its rank:
// scalars become a text annotation, rank 1 a line chart, rank 2 a
// filled contour plot with a horizontal color scale.
func Render(slab *dataset.Slab, opts Options) (*Figure, error) {
	switch slab.Rank() {
	case 0:
		return &Figure{Title: opts.Title, Text: Annotation(slab, opts.Title)}, nil
	case 1:
		img, err := renderLinePNG(slab, opts)
		if err != nil {
			return nil, err
		}
		return &Figure{Title: opts.Title, Image: img}, nil
	case 2:
		img, err := renderContourPNG(slab, opts)
		if err != nil {
			return nil, err
		}
		return &Figure{Title: opts.Title, Image: img}, nil
	default:
		return nil, fmt.Errorf("plot: cannot draw %d plot dimensions, at most 2 supported", slab.Rank())
	}
}

// RenderTerminal draws a slab for a character terminal: scalars as an
// annotation line, rank 1 via asciigraph, rank 2 as a braille contour
// sketch.
func RenderTerminal(slab *dataset.Slab, opts Options) (*Figure, error) {
	switch slab.Rank() {
	case 0:
		return &Figure{Title: opts.Title, Text: Annotation(slab, opts.Title)}, nil
	case 1:
		return &Figure{Title: opts.Title, Text: renderLineASCII(slab, opts)}, nil
	case 2:
		return &Figure{Title: opts.Title, Text: renderContourASCII(slab, opts)}, nil
	default:
		return nil, fmt.Errorf("plot: cannot draw %d plot dimensions, at most 2 supported", slab.Rank())
	}
}

// Annotation formats a rank-0 slab as a title plus value line.
func Annotation(slab *dataset.Slab, title string) string {
	if title == "" {
		title = slab.Var
	}
	return fmt.Sprintf("%s = %.6g", title, slab.Scalar())
}

// valueRange returns the finite minimum and maximum of vals, ignoring
// NaN and infinities. Returns (0, 1) when nothing finite remains.
func valueRange(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// padRange widens a degenerate range so level computation and axis
// mapping never divide by zero.
func padRange(lo, hi float64) (float64, float64) {
	if lo != hi {
		return lo, hi
	}
	pad := math.Abs(lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}

// levelBounds returns n+1 evenly spaced boundaries spanning [lo, hi].
func levelBounds(lo, hi float64, n int) []float64 {
	bounds := make([]float64, n+1)
	for i := range bounds {
		bounds[i] = lo + float64(i)*(hi-lo)/float64(n)
	}
	return bounds
}

// axisLabel names an axis after its dimension, with units when known.
func axisLabel(d dataset.Dimension) string {
	if d.Units != "" {
		return fmt.Sprintf("%s (%s)", d.Name, d.Units)
	}
	return d.Name
}

// axis maps between data coordinates and an output span. The span
// runs from the From end to the To end, so an inverted display limit
// flips the axis without special cases.
type axis struct {
	from, to float64
	lo, hi   float64
	span     float64
}

func newAxis(coords []float64, lim *dataset.Limit, span float64) axis {
	lo := math.Min(coords[0], coords[len(coords)-1])
	hi := math.Max(coords[0], coords[len(coords)-1])
	from, to := lo, hi
	if lim != nil {
		from, to = lim.From, lim.To
	}
	if from == to {
		from, to = from-0.5, to+0.5
	}
	return axis{from: from, to: to, lo: lo, hi: hi, span: span}
}

// pos projects a data coordinate onto the output span.
func (a axis) pos(v float64) float64 {
	return (v - a.from) / (a.to - a.from) * a.span
}

// value inverts pos.
func (a axis) value(p float64) float64 {
	return a.from + p/a.span*(a.to-a.from)
}

// contains reports whether v falls inside the data domain the
// coordinates actually cover.
func (a axis) contains(v float64) bool {
	return v >= a.lo && v <= a.hi
}

// segment locates v between two adjacent coordinates, returning the
// lower pair index and the fractional position within the pair.
// Coordinates may run in either direction.
func segment(coords []float64, v float64) (int, float64, bool) {
	n := len(coords)
	if n < 2 {
		if n == 1 && coords[0] == v {
			return 0, 0, true
		}
		return 0, 0, false
	}
	asc := coords[0] <= coords[n-1]
	for i := 0; i+1 < n; i++ {
		a, b := coords[i], coords[i+1]
		if asc {
			if v >= a && v <= b {
				if a == b {
					return i, 0, true
				}
				return i, (v - a) / (b - a), true
			}
		} else {
			if v <= a && v >= b {
				if a == b {
					return i, 0, true
				}
				return i, (a - v) / (a - b), true
			}
		}
	}
	return 0, 0, false
}

// sampler bilinearly interpolates a rank-2 slab at arbitrary
// coordinates. Rows follow the first plotted dimension (the y axis).
type sampler struct {
	slab *dataset.Slab
	ys   []float64
	xs   []float64
}

func newSampler(slab *dataset.Slab) sampler {
	return sampler{slab: slab, ys: slab.Dims[0].Coords, xs: slab.Dims[1].Coords}
}

// at returns the interpolated value at (xv, yv), or false when the
// point lies outside the grid.
func (s sampler) at(xv, yv float64) (float64, bool) {
	j, tx, ok := segment(s.xs, xv)
	if !ok {
		return 0, false
	}
	i, ty, ok := segment(s.ys, yv)
	if !ok {
		return 0, false
	}
	j1, i1 := j+1, i+1
	if j1 >= len(s.xs) {
		j1 = j
	}
	if i1 >= len(s.ys) {
		i1 = i
	}
	z00 := s.slab.At(i, j)
	z01 := s.slab.At(i, j1)
	z10 := s.slab.At(i1, j)
	z11 := s.slab.At(i1, j1)
	top := z00 + tx*(z01-z00)
	bot := z10 + tx*(z11-z10)
	return top + ty*(bot-top), true
}
