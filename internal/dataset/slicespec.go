package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Range is a half-open [Start, Stop) index interval along a dimension.
type Range struct {
	Start, Stop int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int { return r.Stop - r.Start }

// Limit preserves the raw values of a two-value selection token for
// axis display. The pair keeps the user's order, which may run against
// the coordinate direction; the snapped index range used for data
// extraction is kept separately and the two must not be collapsed.
type Limit struct {
	From, To float64
}

// Entry resolves one dimension of a selection: either a fixed index or
// an index range. Range entries become plotted axes.
type Entry struct {
	Dim   string
	Index int
	Range *Range
	Limit *Limit
}

// IsRange reports whether the entry selects a range.
func (e Entry) IsRange() bool { return e.Range != nil }

// Selection maps every dimension of a variable, in storage order, to
// a fixed index or an index range.
type Selection struct {
	Entries []Entry
}

// Rank returns the number of range-valued (plotted) dimensions.
func (s Selection) Rank() int {
	n := 0
	for _, e := range s.Entries {
		if e.IsRange() {
			n++
		}
	}
	return n
}

// PlotDims returns the names of the range-valued dimensions in
// storage order.
func (s Selection) PlotDims() []string {
	var names []string
	for _, e := range s.Entries {
		if e.IsRange() {
			names = append(names, e.Dim)
		}
	}
	return names
}

// Entry looks up the selection entry for a dimension.
func (s Selection) Entry(dim string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Dim == dim {
			return e, true
		}
	}
	return Entry{}, false
}

// WithIndex returns a copy of the selection with the named dimension
// fixed at index. Used by the scroll loop to step one dimension while
// everything else stays put.
func (s Selection) WithIndex(dim string, index int) Selection {
	out := Selection{Entries: append([]Entry(nil), s.Entries...)}
	for i := range out.Entries {
		if out.Entries[i].Dim == dim {
			out.Entries[i] = Entry{Dim: dim, Index: index}
		}
	}
	return out
}

// BuildSelection resolves per-dimension selection tokens for a
// variable. Tokens are keyed by dimension name and take the form "v"
// (fix the dimension at the coordinate nearest v) or "v1,v2" (plot
// the dimension over the snapped index range covering both, recording
// the raw pair as the axis display limit). Dimensions without a token
// are plotted over their full range.
//
// Malformed tokens do not stop the walk; every bad token is reported
// in the returned error. At most two dimensions may resolve to
// ranges.
func BuildSelection(ds *Dataset, v *Variable, tokens map[string]string) (Selection, error) {
	var sel Selection
	var errs []error
	for _, name := range v.Dims {
		d, ok := ds.Dim(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownDimension, name))
			continue
		}
		tok := strings.TrimSpace(tokens[name])
		if tok == "" {
			sel.Entries = append(sel.Entries, Entry{Dim: name, Range: &Range{0, d.Len()}})
			continue
		}
		vals, err := parseToken(tok)
		if err != nil {
			errs = append(errs, &TokenError{Dim: name, Token: tok, Wrapped: err})
			continue
		}
		switch len(vals) {
		case 1:
			sel.Entries = append(sel.Entries, Entry{Dim: name, Index: d.Nearest(vals[0])})
		case 2:
			i1, i2 := d.Nearest(vals[0]), d.Nearest(vals[1])
			r := Range{Start: min(i1, i2), Stop: max(i1, i2) + 1}
			sel.Entries = append(sel.Entries, Entry{
				Dim:   name,
				Range: &r,
				Limit: &Limit{From: vals[0], To: vals[1]},
			})
		}
	}
	if len(errs) > 0 {
		return Selection{}, errors.Join(errs...)
	}
	if n := sel.Rank(); n > 2 {
		return Selection{}, fmt.Errorf("%w: %d selected, fix %d more with single values", ErrTooManyPlotDims, n, n-2)
	}
	return sel, nil
}

// parseToken splits a selection token into one or two float values.
func parseToken(tok string) ([]float64, error) {
	parts := strings.Split(tok, ",")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: want one or two comma-separated values, got %d", ErrBadToken, len(parts))
	}
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrBadToken, strings.TrimSpace(p))
		}
		vals = append(vals, f)
	}
	return vals, nil
}
