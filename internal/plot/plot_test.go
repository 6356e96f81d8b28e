package plot

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/termpane/termpane/internal/dataset"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func lineSlab() *dataset.Slab {
	return &dataset.Slab{
		Var: "temp",
		Dims: []dataset.Dimension{
			{Name: "lon", Units: "degrees_east", Coords: []float64{0, 5, 10, 15, 20}},
		},
		Limits: []*dataset.Limit{nil},
		Values: []float64{280, 282, 285, 281, 279},
	}
}

func planeSlab() *dataset.Slab {
	ys := []float64{0, 10, 20, 30}
	xs := []float64{0, 5, 10, 15, 20}
	values := make([]float64, len(ys)*len(xs))
	for i, y := range ys {
		for j, x := range xs {
			values[i*len(xs)+j] = x + y
		}
	}
	return &dataset.Slab{
		Var: "temp",
		Dims: []dataset.Dimension{
			{Name: "lat", Coords: ys},
			{Name: "lon", Coords: xs},
		},
		Limits: []*dataset.Limit{nil, nil},
		Values: values,
	}
}

func TestValueRange(t *testing.T) {
	lo, hi := valueRange([]float64{3, math.NaN(), -2, 7, math.Inf(1)})
	if lo != -2 || hi != 7 {
		t.Errorf("valueRange = (%v, %v), want (-2, 7)", lo, hi)
	}
	lo, hi = valueRange(nil)
	if lo != 0 || hi != 1 {
		t.Errorf("empty valueRange = (%v, %v), want (0, 1)", lo, hi)
	}
}

func TestPadRange(t *testing.T) {
	lo, hi := padRange(4, 4)
	if lo >= hi {
		t.Errorf("padRange(4,4) = (%v, %v), want widened", lo, hi)
	}
	lo, hi = padRange(0, 0)
	if lo >= hi {
		t.Errorf("padRange(0,0) = (%v, %v), want widened", lo, hi)
	}
	lo, hi = padRange(1, 2)
	if lo != 1 || hi != 2 {
		t.Errorf("padRange(1,2) = (%v, %v), want unchanged", lo, hi)
	}
}

func TestLevelBounds(t *testing.T) {
	b := levelBounds(0, 10, ContourLevels)
	if len(b) != ContourLevels+1 {
		t.Fatalf("len(bounds) = %d, want %d", len(b), ContourLevels+1)
	}
	if b[0] != 0 || b[ContourLevels] != 10 {
		t.Errorf("bounds ends = %v, %v, want 0, 10", b[0], b[ContourLevels])
	}
	if b[5] != 5 {
		t.Errorf("bounds[5] = %v, want 5", b[5])
	}
}

func TestAxisMapping(t *testing.T) {
	coords := []float64{0, 5, 10, 15, 20}
	a := newAxis(coords, nil, 100)
	if got := a.pos(0); got != 0 {
		t.Errorf("pos(0) = %v, want 0", got)
	}
	if got := a.pos(20); got != 100 {
		t.Errorf("pos(20) = %v, want 100", got)
	}
	if got := a.value(50); got != 10 {
		t.Errorf("value(50) = %v, want 10", got)
	}
}

// An inverted display limit flips the axis direction.
func TestAxisInvertedLimit(t *testing.T) {
	coords := []float64{0, 5, 10, 15, 20}
	a := newAxis(coords, &dataset.Limit{From: 10, To: 5}, 100)
	if got := a.pos(10); got != 0 {
		t.Errorf("pos(10) = %v, want 0 (From end)", got)
	}
	if got := a.pos(5); got != 100 {
		t.Errorf("pos(5) = %v, want 100 (To end)", got)
	}
	if !a.contains(7) || a.contains(25) {
		t.Error("contains should track the data domain, not the limit window")
	}
}

func TestSegmentLookup(t *testing.T) {
	asc := []float64{0, 5, 10, 15, 20}
	if i, tt, ok := segment(asc, 7.5); !ok || i != 1 || tt != 0.5 {
		t.Errorf("segment(asc, 7.5) = (%d, %v, %v), want (1, 0.5, true)", i, tt, ok)
	}
	desc := []float64{1000, 850, 700, 500}
	if i, tt, ok := segment(desc, 775); !ok || i != 1 || tt != 0.5 {
		t.Errorf("segment(desc, 775) = (%d, %v, %v), want (1, 0.5, true)", i, tt, ok)
	}
	if _, _, ok := segment(asc, 25); ok {
		t.Error("segment outside domain should report false")
	}
}

func TestSamplerBilinear(t *testing.T) {
	slab := planeSlab()
	s := newSampler(slab)
	tests := []struct {
		x, y, want float64
	}{
		{0, 0, 0},
		{20, 30, 50},
		{10, 10, 20},
		{7.5, 5, 12.5},
	}
	for _, tt := range tests {
		got, ok := s.at(tt.x, tt.y)
		if !ok {
			t.Errorf("at(%v, %v) outside domain", tt.x, tt.y)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("at(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if _, ok := s.at(-1, 0); ok {
		t.Error("sampling outside the grid should fail")
	}
}

// For z = x + y, the isoline at a level is the straight line
// x + y = level, so every collected segment endpoint must satisfy it.
func TestIsoSegmentsOnPlane(t *testing.T) {
	slab := planeSlab()
	level := 17.0
	segs := isoSegments(slab, level)
	if len(segs) == 0 {
		t.Fatal("expected isoline segments for interior level")
	}
	for _, s := range segs {
		for _, pt := range [][2]float64{{s.x1, s.y1}, {s.x2, s.y2}} {
			if math.Abs(pt[0]+pt[1]-level) > 1e-9 {
				t.Errorf("segment endpoint (%v, %v) off the x+y=%v line", pt[0], pt[1], level)
			}
		}
	}
}

func TestRenderScalar(t *testing.T) {
	slab := &dataset.Slab{Var: "temp", Values: []float64{281.25}}
	fig, err := Render(slab, Options{Title: "temp now"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fig.Image != nil {
		t.Error("scalar figure should carry no image")
	}
	if !strings.Contains(fig.Text, "temp now") || !strings.Contains(fig.Text, "281.25") {
		t.Errorf("annotation = %q, want title and value", fig.Text)
	}
}

func TestRenderLinePNG(t *testing.T) {
	fig, err := Render(lineSlab(), Options{Title: "temp by lon", Width: 400, Height: 300})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(fig.Image, pngMagic) {
		t.Error("line figure should be PNG encoded")
	}
}

func TestRenderContourPNG(t *testing.T) {
	fig, err := Render(planeSlab(), Options{Title: "temp field", Width: 480, Height: 360, Labels: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(fig.Image, pngMagic) {
		t.Error("contour figure should be PNG encoded")
	}
}

func TestRenderContourTooSmall(t *testing.T) {
	slab := planeSlab()
	slab.Dims[1].Coords = []float64{0}
	slab.Values = slab.Values[:4]
	if _, err := Render(slab, Options{}); err == nil {
		t.Error("expected error for a single-point contour axis")
	}
}

func TestRenderTerminalLine(t *testing.T) {
	fig, err := RenderTerminal(lineSlab(), Options{Title: "temp by lon"})
	if err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	if !strings.Contains(fig.Text, "temp by lon") {
		t.Errorf("terminal line plot should carry its caption: %q", fig.Text)
	}
}

func TestRenderTerminalContour(t *testing.T) {
	fig, err := RenderTerminal(planeSlab(), Options{Title: "temp field"})
	if err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	if !strings.Contains(fig.Text, "levels:") {
		t.Errorf("terminal contour should list its levels: %q", fig.Text)
	}
	found := false
	for _, r := range fig.Text {
		if r > 0x2800 && r <= 0x28ff {
			found = true
			break
		}
	}
	if !found {
		t.Error("terminal contour should contain set braille cells")
	}
}

func TestRenderSVG(t *testing.T) {
	fig, err := RenderSVG(planeSlab(), Options{Title: "temp field", Labels: true})
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	doc := string(fig.Image)
	if !strings.HasPrefix(doc, "<?xml") || !strings.Contains(doc, "<svg") {
		t.Error("SVG output missing document header")
	}
	if !strings.Contains(doc, "<rect") || !strings.Contains(doc, "<line") {
		t.Error("SVG contour should contain cell rects and isolines")
	}

	fig, err = RenderSVG(lineSlab(), Options{Title: "temp by lon"})
	if err != nil {
		t.Fatalf("RenderSVG line: %v", err)
	}
	if !strings.Contains(string(fig.Image), "<path") {
		t.Error("SVG line plot should contain a path")
	}
}

func TestPalette(t *testing.T) {
	p := palette(ContourLevels, nil)
	if len(p) != ContourLevels {
		t.Fatalf("palette size = %d, want %d", len(p), ContourLevels)
	}
	first, last := p[0], p[len(p)-1]
	if first.B <= first.R {
		t.Errorf("palette should start blue-ish, got %+v", first)
	}
	if last.R <= last.B {
		t.Errorf("palette should end red-ish, got %+v", last)
	}
}

func TestPaletteCustomAnchors(t *testing.T) {
	p := palette(4, []string{"#000000", "#ffffff"})
	if p[0].R != 0 || p[0].G != 0 || p[0].B != 0 {
		t.Errorf("first band = %+v, want black", p[0])
	}
	last := p[len(p)-1]
	if last.R != 255 || last.G != 255 || last.B != 255 {
		t.Errorf("last band = %+v, want white", last)
	}

	// A single anchor cannot span a ramp and falls back.
	q := palette(ContourLevels, []string{"ff0000"})
	if q[0].B <= q[0].R {
		t.Errorf("fallback palette should start blue-ish, got %+v", q[0])
	}
}
