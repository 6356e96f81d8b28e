package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/termpane/termpane/internal/dataset"
)

// Contour figure layout in pixels.
const (
	marginLeft  = 64
	marginRight = 20
	marginTop   = 30
	xTickPad    = 16 // tick labels below the plot
	xNamePad    = 16 // axis name below the tick labels
	barHeight   = 14 // color scale swatch strip
	barLabelPad = 16 // boundary labels below the strip
	marginBot   = xTickPad + xNamePad + barHeight + barLabelPad + 8
)

// Diverging anchor colors interpolated into the filled-band palette.
var paletteAnchors = []string{"313695", "74add1", "ffffbf", "f46d43", "a50026"}

var (
	lineColor   = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	frameColor  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	textColor   = color.RGBA{A: 255}
	labelBoxCol = color.RGBA{R: 255, G: 255, B: 255, A: 230}
)

// palette interpolates n band colors across the anchor sequence.
// Fewer than two custom anchors falls back to the built-in ramp.
func palette(n int, custom []string) []color.RGBA {
	hexes := paletteAnchors
	if len(custom) >= 2 {
		hexes = custom
	}
	anchors := make([]drawing.Color, len(hexes))
	for i, hex := range hexes {
		anchors[i] = drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	}
	out := make([]color.RGBA, n)
	for k := range out {
		p := float64(k) / float64(n-1) * float64(len(anchors)-1)
		i := int(p)
		if i >= len(anchors)-1 {
			i = len(anchors) - 2
		}
		t := p - float64(i)
		a, b := anchors[i], anchors[i+1]
		out[k] = color.RGBA{
			R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
			G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
			B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
			A: 255,
		}
	}
	return out
}

// renderContourPNG draws a rank-2 slab as a filled contour plot with a
// fixed band count, optional labeled contour lines, and a horizontal
// color scale. The first plotted dimension runs up the y axis.
func renderContourPNG(slab *dataset.Slab, opts Options) ([]byte, error) {
	if slab.Dims[0].Len() < 2 || slab.Dims[1].Len() < 2 {
		return nil, fmt.Errorf("plot: contour needs at least 2 points per axis, got %dx%d",
			slab.Dims[0].Len(), slab.Dims[1].Len())
	}
	w, h := opts.size()
	if w < 320 {
		w = 320
	}
	if h < 240 {
		h = 240
	}

	plotRect := image.Rect(marginLeft, marginTop, w-marginRight, h-marginBot)
	plotW := float64(plotRect.Dx())
	plotH := float64(plotRect.Dy())

	vmin, vmax := padRange(valueRange(slab.Values))
	bounds := levelBounds(vmin, vmax, ContourLevels)
	bands := palette(ContourLevels, opts.Palette)

	xa := newAxis(slab.Dims[1].Coords, slab.Limits[1], plotW)
	ya := newAxis(slab.Dims[0].Coords, slab.Limits[0], plotH)
	smp := newSampler(slab)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Filled bands: sample the grid at every plot pixel.
	for py := plotRect.Min.Y; py < plotRect.Max.Y; py++ {
		yv := ya.value(float64(plotRect.Max.Y-py) - 0.5)
		for px := plotRect.Min.X; px < plotRect.Max.X; px++ {
			xv := xa.value(float64(px-plotRect.Min.X) + 0.5)
			if !xa.contains(xv) || !ya.contains(yv) {
				continue
			}
			z, ok := smp.at(xv, yv)
			if !ok || math.IsNaN(z) {
				continue
			}
			k := int((z - vmin) / (vmax - vmin) * ContourLevels)
			if k < 0 {
				k = 0
			}
			if k >= ContourLevels {
				k = ContourLevels - 1
			}
			img.SetRGBA(px, py, bands[k])
		}
	}

	if opts.Labels {
		drawIsolines(img, slab, bounds, xa, ya, plotRect)
	}

	drawFrame(img, plotRect)
	drawTicks(img, xa, ya, plotRect)
	drawText(img, plotRect.Min.X-textWidth(axisLabel(slab.Dims[0]))-8, plotRect.Min.Y-8, axisLabel(slab.Dims[0]), textColor)
	xName := axisLabel(slab.Dims[1])
	drawText(img, plotRect.Min.X+(plotRect.Dx()-textWidth(xName))/2, plotRect.Max.Y+xTickPad+xNamePad-2, xName, textColor)
	drawColorScale(img, bounds, bands, plotRect, h)

	if opts.Title != "" {
		drawText(img, (w-textWidth(opts.Title))/2, 18, opts.Title, textColor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("plot: encoding contour: %w", err)
	}
	return buf.Bytes(), nil
}

// segLine is one isoline segment in data coordinates.
type segLine struct {
	x1, y1, x2, y2 float64
}

// isoSegments walks every grid cell and collects the crossings of one
// level, pairing them into line segments.
func isoSegments(slab *dataset.Slab, level float64) []segLine {
	ys := slab.Dims[0].Coords
	xs := slab.Dims[1].Coords
	var segs []segLine
	for i := 0; i+1 < len(ys); i++ {
		for j := 0; j+1 < len(xs); j++ {
			z00 := slab.At(i, j)
			z01 := slab.At(i, j+1)
			z10 := slab.At(i+1, j)
			z11 := slab.At(i+1, j+1)
			if anyNaN(z00, z01, z10, z11) {
				continue
			}
			type pt struct{ x, y float64 }
			var pts []pt
			if t, ok := cross(level, z00, z01); ok {
				pts = append(pts, pt{lerp(xs[j], xs[j+1], t), ys[i]})
			}
			if t, ok := cross(level, z01, z11); ok {
				pts = append(pts, pt{xs[j+1], lerp(ys[i], ys[i+1], t)})
			}
			if t, ok := cross(level, z10, z11); ok {
				pts = append(pts, pt{lerp(xs[j], xs[j+1], t), ys[i+1]})
			}
			if t, ok := cross(level, z00, z10); ok {
				pts = append(pts, pt{xs[j], lerp(ys[i], ys[i+1], t)})
			}
			for k := 0; k+1 < len(pts); k += 2 {
				segs = append(segs, segLine{pts[k].x, pts[k].y, pts[k+1].x, pts[k+1].y})
			}
		}
	}
	return segs
}

func cross(level, va, vb float64) (float64, bool) {
	if (va < level) == (vb < level) || va == vb {
		return 0, false
	}
	return (level - va) / (vb - va), true
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// drawIsolines overlays the interior level lines, labeling each level
// once at the segment nearest the plot center.
func drawIsolines(img *image.RGBA, slab *dataset.Slab, bounds []float64, xa, ya axis, plotRect image.Rectangle) {
	cx := float64(plotRect.Min.X) + float64(plotRect.Dx())/2
	cy := float64(plotRect.Min.Y) + float64(plotRect.Dy())/2
	for _, level := range bounds[1 : len(bounds)-1] {
		segs := isoSegments(slab, level)
		bestDist := math.Inf(1)
		var bestX, bestY float64
		for _, s := range segs {
			x1 := float64(plotRect.Min.X) + xa.pos(s.x1)
			y1 := float64(plotRect.Max.Y) - ya.pos(s.y1)
			x2 := float64(plotRect.Min.X) + xa.pos(s.x2)
			y2 := float64(plotRect.Max.Y) - ya.pos(s.y2)
			drawSegment(img, x1, y1, x2, y2, plotRect, lineColor)
			mx, my := (x1+x2)/2, (y1+y2)/2
			if d := (mx-cx)*(mx-cx) + (my-cy)*(my-cy); d < bestDist {
				bestDist, bestX, bestY = d, mx, my
			}
		}
		if len(segs) == 0 {
			continue
		}
		label := fmt.Sprintf("%.3g", level)
		lw := textWidth(label)
		lx, ly := int(bestX)-lw/2, int(bestY)+5
		box := image.Rect(lx-2, ly-12, lx+lw+2, ly+2).Intersect(plotRect)
		draw.Draw(img, box, image.NewUniform(labelBoxCol), image.Point{}, draw.Over)
		drawText(img, lx, ly, label, textColor)
	}
}

// drawSegment rasterizes one line segment clipped to rect.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 float64, rect image.Rectangle, col color.RGBA) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(x0 + t*(x1-x0) + 0.5)
		y := int(y0 + t*(y1-y0) + 0.5)
		if image.Pt(x, y).In(rect) {
			img.SetRGBA(x, y, col)
		}
	}
}

func drawFrame(img *image.RGBA, r image.Rectangle) {
	for x := r.Min.X; x <= r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, frameColor)
		img.SetRGBA(x, r.Max.Y, frameColor)
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, frameColor)
		img.SetRGBA(r.Max.X, y, frameColor)
	}
}

// drawTicks places five evenly spaced labeled ticks on each axis.
func drawTicks(img *image.RGBA, xa, ya axis, plotRect image.Rectangle) {
	const n = 5
	for i := 0; i <= n; i++ {
		fx := float64(i) / n * xa.span
		px := plotRect.Min.X + int(fx)
		for dy := 1; dy <= 4; dy++ {
			img.SetRGBA(px, plotRect.Max.Y+dy, frameColor)
		}
		label := fmt.Sprintf("%.4g", xa.value(fx))
		drawText(img, px-textWidth(label)/2, plotRect.Max.Y+xTickPad-2, label, textColor)

		fy := float64(i) / n * ya.span
		py := plotRect.Max.Y - int(fy)
		for dx := 1; dx <= 4; dx++ {
			img.SetRGBA(plotRect.Min.X-dx, py, frameColor)
		}
		label = fmt.Sprintf("%.4g", ya.value(fy))
		drawText(img, plotRect.Min.X-textWidth(label)-8, py+5, label, textColor)
	}
}

// drawColorScale renders the horizontal band legend under the plot.
func drawColorScale(img *image.RGBA, bounds []float64, bands []color.RGBA, plotRect image.Rectangle, h int) {
	top := h - marginBot + xTickPad + xNamePad + 4
	bar := image.Rect(plotRect.Min.X, top, plotRect.Max.X, top+barHeight)
	n := len(bands)
	for k := 0; k < n; k++ {
		x0 := bar.Min.X + k*bar.Dx()/n
		x1 := bar.Min.X + (k+1)*bar.Dx()/n
		draw.Draw(img, image.Rect(x0, bar.Min.Y, x1, bar.Max.Y), image.NewUniform(bands[k]), image.Point{}, draw.Src)
	}
	drawFrame(img, bar)

	step := 1
	if bar.Dx() < 600 {
		step = 2
	}
	for i := 0; i < len(bounds); i += step {
		label := fmt.Sprintf("%.3g", bounds[i])
		px := bar.Min.X + i*bar.Dx()/n
		drawText(img, px-textWidth(label)/2, bar.Max.Y+12, label, textColor)
	}
}

// drawText renders s with the fixed 7x13 face, baseline at (x, y).
func drawText(img *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}
