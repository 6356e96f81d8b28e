// Package dataset provides a coordinate-indexed view over
// multi-dimensional gridded data.
//
// A [Dataset] couples named dimensions (ordered, monotonic coordinate
// arrays) with row-major variables defined over them:
//
//   - [NearestIndex]: snap a coordinate value to its closest index
//   - [BuildSelection]: resolve per-dimension value tokens into fixed
//     indices and plotted ranges
//   - [Dataset.Extract]: copy out the selected sub-array as a [Slab]
//
// Datasets load from a [Store], a flat key/value layout holding a
// dataset.json metadata document plus one little-endian float64 chunk
// file per variable. Chunks may be compressed; codec ids resolve
// through the qri compression registry.
//
// # Selections
//
// Each dimension resolves to a single index or an index range. Range
// entries become plotted axes, so a selection may contain at most two
// of them. A two-value token keeps both the snapped index range used
// for extraction and the raw value pair used for axis display; the
// raw pair preserves user order even when it runs against the
// coordinate direction.
package dataset
