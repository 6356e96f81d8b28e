package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termpane/termpane/internal/dataset"
	"github.com/termpane/termpane/internal/plot"
)

// renderFlags are shared by every command that draws dataset slices.
type renderFlags struct {
	dims   []string
	size   string
	labels bool
	ascii  bool
	title  string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.dims, "dim", nil, "fix or bound a dimension, name=value or name=v1,v2 (repeatable)")
	cmd.Flags().StringVar(&f.size, "size", "", "figure size as WIDTHxHEIGHT or a preset name")
	cmd.Flags().BoolVar(&f.labels, "label", false, "draw level labels on contour lines")
	cmd.Flags().BoolVar(&f.ascii, "ascii", false, "render as text in the terminal instead of the pane")
	cmd.Flags().StringVar(&f.title, "title", "", "figure title (defaults to the variable name)")
}

// tokens turns the repeated --dim flags into per-dimension selection
// tokens.
func (f *renderFlags) tokens() (map[string]string, error) {
	tokens := make(map[string]string, len(f.dims))
	for _, arg := range f.dims {
		name, tok, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("bad --dim %q, want name=value or name=v1,v2", arg)
		}
		tokens[name] = tok
	}
	return tokens, nil
}

func (f *renderFlags) options(title string) (plot.Options, error) {
	w, h, err := chartSize(f.size)
	if err != nil {
		return plot.Options{}, err
	}
	if f.title != "" {
		title = f.title
	}
	return plot.Options{
		Title:   title,
		Width:   w,
		Height:  h,
		Labels:  f.labels,
		Palette: cfg.Chart.Palette,
	}, nil
}

var (
	viewFlags  renderFlags
	viewScroll string
	viewOut    string
	viewFull   bool
)

func newViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <store> <variable>",
		Short: "Plot a slice of a stored dataset variable",
		Long: `View extracts a slice of a dataset variable and draws it. Fix
dimensions with repeated --dim flags until at most two remain free;
one free dimension plots as a line, two as a filled contour. With
--scroll the named dimension is stepped interactively one keystroke at
a time (f/space forward, b back, r redraw, p blank, q quit).

Inside a connected pane the figure displays inline; elsewhere, and
with --ascii, it renders as terminal text. Use -o to write the figure
to a file instead (.png, .svg or .txt by extension).`,
		Args: cobra.ExactArgs(2),
		RunE: runView,
	}
	viewFlags.register(cmd)
	cmd.Flags().StringVar(&viewScroll, "scroll", "", "step this dimension interactively")
	cmd.Flags().StringVarP(&viewOut, "output", "o", "", "write the figure to a file instead of displaying it")
	cmd.Flags().BoolVar(&viewFull, "full", false, "replace the whole pane page with the figure")
	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	ds, err := dataset.OpenPath(args[0])
	if err != nil {
		return err
	}
	v, ok := ds.Var(args[1])
	if !ok {
		return fmt.Errorf("%w: %s", dataset.ErrUnknownVariable, args[1])
	}
	tokens, err := viewFlags.tokens()
	if err != nil {
		return err
	}
	if viewScroll != "" {
		if viewOut != "" {
			return fmt.Errorf("--scroll is interactive and cannot write to a file")
		}
		if err := pinScrollDim(ds, tokens, viewScroll); err != nil {
			return err
		}
	}
	sel, err := dataset.BuildSelection(ds, v, tokens)
	if err != nil {
		return err
	}
	opts, err := viewFlags.options(v.Name)
	if err != nil {
		return err
	}
	log.Debug("view %s/%s rank %d", ds.Name, v.Name, sel.Rank())

	if viewScroll != "" {
		return runScrollSession(cmd, ds, v, sel, viewScroll, opts, viewFlags.ascii)
	}

	slab, err := ds.Extract(v, sel)
	if err != nil {
		return err
	}
	if viewOut != "" {
		return renderToFile(slab, opts, viewOut)
	}
	return renderInline(cmd, slab, opts, viewFlags.ascii, viewFull)
}

// pinScrollDim fixes the scroll dimension to a single coordinate
// before the selection is built, so it does not count as a plot
// dimension. An untouched scroll dimension starts at its first
// coordinate; a range token is rejected because the scroll loop steps
// one index at a time.
func pinScrollDim(ds *dataset.Dataset, tokens map[string]string, name string) error {
	d, ok := ds.Dim(name)
	if !ok {
		return fmt.Errorf("%w: %s", dataset.ErrUnknownDimension, name)
	}
	tok := strings.TrimSpace(tokens[name])
	if strings.Contains(tok, ",") {
		return fmt.Errorf("scroll dimension %s cannot take a range selection", name)
	}
	if tok == "" && len(d.Coords) > 0 {
		tokens[name] = strconv.FormatFloat(d.Coords[0], 'g', -1, 64)
	}
	return nil
}
