// Package plot renders extracted data slabs as figures.
//
// Rendering branches on the slab's rank: scalars become a text
// annotation, rank 1 a line chart, rank 2 a filled contour plot with
// ten bands and a horizontal color scale. Three backends share that
// contract:
//
//   - [Render]: PNG via go-chart (lines) and a raster sampler
//     (contours)
//   - [RenderTerminal]: asciigraph lines and braille contour sketches
//     on a [Canvas]
//   - [RenderSVG]: standalone SVG documents
//
// Axis display limits carried on the slab fix the plotted window and
// may invert an axis; the raster and SVG backends honor the
// inversion, the chart backend normalizes the ends.
package plot
