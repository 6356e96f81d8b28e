package dataset

import (
	"fmt"
)

// Dimension is a named axis with an ordered coordinate sequence.
// Coordinates are monotonic, ascending or descending. Metadata may
// carry coordinates inline or declare only a length, deferring the
// values to a coordinate variable of the same name.
type Dimension struct {
	Name   string    `json:"name"`
	Length int       `json:"length,omitempty"`
	Units  string    `json:"units,omitempty"`
	Coords []float64 `json:"coords,omitempty"`
}

// Len returns the number of coordinate values along the dimension.
func (d Dimension) Len() int {
	if len(d.Coords) > 0 {
		return len(d.Coords)
	}
	return d.Length
}

// Variable is a multi-dimensional array stored row-major over its
// dimensions. Data is loaded by the store layer; a nil Data slice
// means the values have not been read yet.
type Variable struct {
	Name  string            `json:"name"`
	Dims  []string          `json:"dims"`
	File  string            `json:"file,omitempty"`
	Codec string            `json:"codec,omitempty"`
	Attrs map[string]string `json:"attrs,omitempty"`

	Data []float64 `json:"-"`
}

// Dataset is a collection of named dimensions and the variables
// defined over them. Read-only once opened.
type Dataset struct {
	Name string      `json:"name"`
	Dims []Dimension `json:"dimensions"`
	Vars []Variable  `json:"variables"`
}

// Dim looks up a dimension by name.
func (ds *Dataset) Dim(name string) (Dimension, bool) {
	for _, d := range ds.Dims {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// Var looks up a variable by name.
func (ds *Dataset) Var(name string) (*Variable, bool) {
	for i := range ds.Vars {
		if ds.Vars[i].Name == name {
			return &ds.Vars[i], true
		}
	}
	return nil, false
}

// Shape returns the per-dimension lengths of a variable in storage
// order.
func (ds *Dataset) Shape(v *Variable) ([]int, error) {
	shape := make([]int, len(v.Dims))
	for i, name := range v.Dims {
		d, ok := ds.Dim(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s (variable %s)", ErrUnknownDimension, name, v.Name)
		}
		shape[i] = d.Len()
	}
	return shape, nil
}

// Size returns the element count implied by a shape.
func Size(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// Validate checks that every dimension has a usable length and that
// every variable references known dimensions and, when loaded,
// carries data matching its shape.
func (ds *Dataset) Validate() error {
	for _, d := range ds.Dims {
		if d.Len() == 0 {
			return fmt.Errorf("dataset: dimension %s has neither coordinates nor a length", d.Name)
		}
		if d.Length > 0 && len(d.Coords) > 0 && d.Length != len(d.Coords) {
			return fmt.Errorf("%w: dimension %s declares length %d but carries %d coordinates", ErrShapeMismatch, d.Name, d.Length, len(d.Coords))
		}
	}
	for i := range ds.Vars {
		v := &ds.Vars[i]
		shape, err := ds.Shape(v)
		if err != nil {
			return err
		}
		if v.Data != nil && len(v.Data) != Size(shape) {
			return fmt.Errorf("%w: variable %s has %d values for shape %v", ErrShapeMismatch, v.Name, len(v.Data), shape)
		}
	}
	return nil
}

// Slab is the sub-array extracted by a selection. Fixed-index
// dimensions are dropped; the surviving (plotted) dimensions keep
// their sliced coordinate arrays in storage order, alongside any raw
// display limits carried over from the selection.
type Slab struct {
	Var    string
	Dims   []Dimension
	Limits []*Limit
	Values []float64
}

// Rank returns the number of plotted dimensions.
func (s *Slab) Rank() int { return len(s.Dims) }

// Scalar returns the single value of a rank-0 slab.
func (s *Slab) Scalar() float64 { return s.Values[0] }

// At returns the value at row i, column j of a rank-2 slab, where
// rows follow the first plotted dimension.
func (s *Slab) At(i, j int) float64 {
	return s.Values[i*s.Dims[1].Len()+j]
}

// Extract resolves a selection against a variable and copies out the
// selected sub-array. The variable's data must already be loaded.
func (ds *Dataset) Extract(v *Variable, sel Selection) (*Slab, error) {
	shape, err := ds.Shape(v)
	if err != nil {
		return nil, err
	}
	if len(sel.Entries) != len(v.Dims) {
		return nil, fmt.Errorf("dataset: selection covers %d dimensions, variable %s has %d", len(sel.Entries), v.Name, len(v.Dims))
	}
	if v.Data == nil {
		return nil, fmt.Errorf("dataset: variable %s has no data loaded", v.Name)
	}
	if len(v.Data) != Size(shape) {
		return nil, fmt.Errorf("%w: variable %s has %d values for shape %v", ErrShapeMismatch, v.Name, len(v.Data), shape)
	}

	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	base := 0
	var plot []int
	for i, e := range sel.Entries {
		if e.Dim != v.Dims[i] {
			return nil, fmt.Errorf("dataset: selection entry %d is for dimension %s, want %s", i, e.Dim, v.Dims[i])
		}
		if e.IsRange() {
			r := *e.Range
			if r.Start < 0 || r.Stop > shape[i] || r.Start >= r.Stop {
				return nil, &RangeError{Dim: e.Dim, Start: r.Start, Stop: r.Stop, Len: shape[i]}
			}
			plot = append(plot, i)
			continue
		}
		if e.Index < 0 || e.Index >= shape[i] {
			return nil, &RangeError{Dim: e.Dim, Start: e.Index, Stop: e.Index + 1, Len: shape[i]}
		}
		base += e.Index * strides[i]
	}

	slab := &Slab{Var: v.Name}
	total := 1
	lengths := make([]int, len(plot))
	for j, i := range plot {
		e := sel.Entries[i]
		d, _ := ds.Dim(e.Dim)
		sliced := Dimension{
			Name:   d.Name,
			Units:  d.Units,
			Coords: append([]float64(nil), d.Coords[e.Range.Start:e.Range.Stop]...),
		}
		slab.Dims = append(slab.Dims, sliced)
		slab.Limits = append(slab.Limits, e.Limit)
		lengths[j] = e.Range.Len()
		total *= lengths[j]
	}

	slab.Values = make([]float64, total)
	odo := make([]int, len(plot))
	for k := range slab.Values {
		off := base
		for j, i := range plot {
			off += (sel.Entries[i].Range.Start + odo[j]) * strides[i]
		}
		slab.Values[k] = v.Data[off]
		for j := len(odo) - 1; j >= 0; j-- {
			odo[j]++
			if odo[j] < lengths[j] {
				break
			}
			odo[j] = 0
		}
	}
	return slab, nil
}
