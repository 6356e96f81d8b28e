package dataset

import (
	"errors"
	"math"
	"testing"
)

// grid3 builds a 3D dataset whose values encode their own indices as
// 100*i + 10*j + k, which makes extraction mistakes visible.
func grid3(t *testing.T) *Dataset {
	t.Helper()
	ds := &Dataset{
		Name: "grid",
		Dims: []Dimension{
			{Name: "z", Coords: []float64{0, 1}},
			{Name: "y", Coords: []float64{0, 10, 20}},
			{Name: "x", Coords: []float64{0, 5, 10, 15}},
		},
	}
	data := make([]float64, 2*3*4)
	n := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				data[n] = float64(100*i + 10*j + k)
				n++
			}
		}
	}
	ds.Vars = []Variable{{Name: "v", Dims: []string{"z", "y", "x"}, Data: data}}
	if err := ds.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return ds
}

func TestExtractScalar(t *testing.T) {
	ds := grid3(t)
	v, _ := ds.Var("v")
	sel := Selection{Entries: []Entry{
		{Dim: "z", Index: 1},
		{Dim: "y", Index: 2},
		{Dim: "x", Index: 3},
	}}
	slab, err := ds.Extract(v, sel)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if slab.Rank() != 0 {
		t.Fatalf("Rank() = %d, want 0", slab.Rank())
	}
	if got := slab.Scalar(); got != 123 {
		t.Errorf("Scalar() = %v, want 123", got)
	}
}

func TestExtractLine(t *testing.T) {
	ds := grid3(t)
	v, _ := ds.Var("v")
	sel := Selection{Entries: []Entry{
		{Dim: "z", Index: 0},
		{Dim: "y", Index: 1},
		{Dim: "x", Range: &Range{1, 4}},
	}}
	slab, err := ds.Extract(v, sel)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if slab.Rank() != 1 {
		t.Fatalf("Rank() = %d, want 1", slab.Rank())
	}
	wantCoords := []float64{5, 10, 15}
	for i, c := range slab.Dims[0].Coords {
		if c != wantCoords[i] {
			t.Errorf("coord[%d] = %v, want %v", i, c, wantCoords[i])
		}
	}
	want := []float64{11, 12, 13}
	for i, val := range slab.Values {
		if val != want[i] {
			t.Errorf("value[%d] = %v, want %v", i, val, want[i])
		}
	}
}

func TestExtractPlane(t *testing.T) {
	ds := grid3(t)
	v, _ := ds.Var("v")
	lim := &Limit{From: 20, To: 0}
	sel := Selection{Entries: []Entry{
		{Dim: "z", Index: 1},
		{Dim: "y", Range: &Range{0, 3}, Limit: lim},
		{Dim: "x", Range: &Range{1, 3}},
	}}
	slab, err := ds.Extract(v, sel)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if slab.Rank() != 2 {
		t.Fatalf("Rank() = %d, want 2", slab.Rank())
	}
	if slab.Dims[0].Name != "y" || slab.Dims[1].Name != "x" {
		t.Errorf("plot dims = %s,%s, want y,x", slab.Dims[0].Name, slab.Dims[1].Name)
	}
	if slab.Limits[0] != lim || slab.Limits[1] != nil {
		t.Errorf("limits not carried through: %+v", slab.Limits)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			want := float64(100 + 10*i + (j + 1))
			if got := slab.At(i, j); got != want {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestExtractBounds(t *testing.T) {
	ds := grid3(t)
	v, _ := ds.Var("v")
	tests := []struct {
		name string
		sel  Selection
	}{
		{"indexPastEnd", Selection{Entries: []Entry{
			{Dim: "z", Index: 2},
			{Dim: "y", Index: 0},
			{Dim: "x", Index: 0},
		}}},
		{"negativeIndex", Selection{Entries: []Entry{
			{Dim: "z", Index: -1},
			{Dim: "y", Index: 0},
			{Dim: "x", Index: 0},
		}}},
		{"rangePastEnd", Selection{Entries: []Entry{
			{Dim: "z", Index: 0},
			{Dim: "y", Index: 0},
			{Dim: "x", Range: &Range{2, 5}},
		}}},
		{"emptyRange", Selection{Entries: []Entry{
			{Dim: "z", Index: 0},
			{Dim: "y", Index: 0},
			{Dim: "x", Range: &Range{2, 2}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ds.Extract(v, tt.sel)
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Extract error = %v, want ErrOutOfRange", err)
			}
			var re *RangeError
			if !errors.As(err, &re) {
				t.Errorf("error should expose RangeError detail: %v", err)
			}
		})
	}
}

func TestSaveOpenRoundTrip(t *testing.T) {
	ds := grid3(t)
	store := NewMemoryStore()
	if err := ds.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Open(store)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.Name != ds.Name {
		t.Errorf("Name = %q, want %q", got.Name, ds.Name)
	}
	v, ok := got.Var("v")
	if !ok {
		t.Fatal("variable v missing after round trip")
	}
	orig, _ := ds.Var("v")
	if len(v.Data) != len(orig.Data) {
		t.Fatalf("data length = %d, want %d", len(v.Data), len(orig.Data))
	}
	for i := range v.Data {
		if v.Data[i] != orig.Data[i] {
			t.Fatalf("data[%d] = %v, want %v", i, v.Data[i], orig.Data[i])
		}
	}
}

func TestSaveOpenLocalStore(t *testing.T) {
	ds := grid3(t)
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	if err := ds.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Open(store)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	v, _ := got.Var("v")
	if v.Data[13] != 101 {
		t.Errorf("data[13] = %v, want 101", v.Data[13])
	}
	if math.IsNaN(v.Data[0]) {
		t.Error("unexpected NaN after round trip")
	}
}

func TestOpenMissingMetadata(t *testing.T) {
	_, err := Open(NewMemoryStore())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Open on empty store = %v, want ErrNotFound", err)
	}
}

// A dimension declaring only a length adopts the values of a 1-D
// variable with its own name, and synthesizes index coordinates when
// no such variable exists.
func TestOpenCoordinateVariableConvention(t *testing.T) {
	store := NewMemoryStore()
	src := &Dataset{
		Name: "conv",
		Dims: []Dimension{
			{Name: "level", Coords: []float64{1000, 850, 700}},
			{Name: "cell", Coords: []float64{0, 1, 2, 3}},
		},
		Vars: []Variable{
			{Name: "level", Dims: []string{"level"}, Data: []float64{1000, 850, 700}},
			{Name: "rho", Dims: []string{"level", "cell"}, Data: make([]float64, 12)},
		},
	}
	if err := src.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Rewrite metadata so the dims declare only lengths.
	meta := *src
	meta.Dims = []Dimension{
		{Name: "level", Length: 3},
		{Name: "cell", Length: 4},
	}
	if err := meta.Save(store); err != nil {
		t.Fatalf("Save stripped metadata: %v", err)
	}

	got, err := Open(store)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	level, _ := got.Dim("level")
	if len(level.Coords) != 3 || level.Coords[1] != 850 {
		t.Errorf("level coords = %v, want values from coordinate variable", level.Coords)
	}
	cell, _ := got.Dim("cell")
	want := []float64{0, 1, 2, 3}
	for i, c := range cell.Coords {
		if c != want[i] {
			t.Errorf("cell coords = %v, want synthesized indices %v", cell.Coords, want)
			break
		}
	}
}
