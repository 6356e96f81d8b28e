package cli

import (
	"fmt"
	"html"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/termpane/termpane/internal/dataset"
	"github.com/termpane/termpane/internal/pane"
	"github.com/termpane/termpane/internal/plot"
	"github.com/termpane/termpane/internal/scroll"
)

// renderToFile writes one figure, picking the backend from the file
// extension: .svg renders vector output, .txt terminal text, anything
// else PNG.
func renderToFile(slab *dataset.Slab, opts plot.Options, path string) error {
	var fig *plot.Figure
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		fig, err = plot.RenderSVG(slab, opts)
	case ".txt":
		fig, err = plot.RenderTerminal(slab, opts)
	default:
		fig, err = plot.Render(slab, opts)
	}
	if err != nil {
		return err
	}
	data := fig.Image
	if data == nil {
		data = append([]byte(fig.Text), '\n')
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Debug("wrote %s (%d bytes)", path, len(data))
	return nil
}

// renderInline draws one figure into the pane, or as terminal text
// when asked for or when no pane is connected.
func renderInline(cmd *cobra.Command, slab *dataset.Slab, opts plot.Options, ascii, full bool) error {
	w := paneWriter()
	if ascii || cfg.Chart.Ascii || !w.Env().Active() {
		fig, err := plot.RenderTerminal(slab, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), fig.Text)
		return nil
	}
	fig, err := plot.Render(slab, opts)
	if err != nil {
		return err
	}
	return showFigure(w, fig, opts.Title, full, false)
}

// showFigure displays a rendered figure in the pane. Image figures go
// out as blobs, text figures as a preformatted pagelet.
func showFigure(w *pane.Writer, fig *plot.Figure, title string, fullPage, overwrite bool) error {
	if fig.Image == nil {
		markup := fmt.Sprintf(`<pre class="pane-text">%s</pre>`, html.EscapeString(fig.Text))
		opts := pane.PageletOpts{Overwrite: overwrite}
		if fullPage {
			opts.Display = "fullpage"
			opts.Overwrite = true
		}
		return w.Pagelet(markup, opts)
	}
	if fullPage {
		_, err := w.FullImage("image/png", fig.Image, title)
		return err
	}
	_, err := w.Image("image/png", fig.Image, title, overwrite)
	return err
}

// paneFrames shows scroll frames as full-page pane images, each frame
// overwriting the last.
type paneFrames struct {
	w      *pane.Writer
	render func(index int, title string) (*plot.Figure, error)
}

func (d *paneFrames) Show(index int, title string) error {
	fig, err := d.render(index, title)
	if err != nil {
		return err
	}
	return showFigure(d.w, fig, title, true, true)
}

func (d *paneFrames) Blank() error { return d.w.Blank(true) }

func (d *paneFrames) Close() error { return d.w.Blank(true) }

// termFrames shows scroll frames as plain text, clearing the screen
// between frames. The session holds the terminal in raw mode, where
// output post-processing is off, so every newline needs an explicit
// carriage return.
type termFrames struct {
	out    io.Writer
	render func(index int, title string) (*plot.Figure, error)
}

const clearScreen = "\x1b[2J\x1b[H"

func (d *termFrames) Show(index int, title string) error {
	fig, err := d.render(index, title)
	if err != nil {
		return err
	}
	text := strings.ReplaceAll(fig.Text+"\n", "\n", "\r\n")
	_, err = io.WriteString(d.out, clearScreen+text)
	return err
}

func (d *termFrames) Blank() error {
	_, err := io.WriteString(d.out, clearScreen)
	return err
}

func (d *termFrames) Close() error {
	_, err := io.WriteString(d.out, clearScreen)
	return err
}

// runScrollSession steps the named dimension of sel under
// single-keystroke control, re-extracting and redrawing the slice on
// every move. The selection must already pin the scroll dimension to
// its starting index.
func runScrollSession(cmd *cobra.Command, ds *dataset.Dataset, v *dataset.Variable, sel dataset.Selection, scrollDim string, opts plot.Options, ascii bool) error {
	dim, ok := ds.Dim(scrollDim)
	if !ok {
		return fmt.Errorf("%w: %s", dataset.ErrUnknownDimension, scrollDim)
	}
	entry, ok := sel.Entry(scrollDim)
	if !ok {
		return fmt.Errorf("variable %s has no dimension %s", v.Name, scrollDim)
	}
	if entry.IsRange() {
		return fmt.Errorf("scroll dimension %s did not resolve to a single index", scrollDim)
	}

	w := paneWriter()
	useTerm := ascii || cfg.Chart.Ascii || !w.Env().Active()

	render := func(index int, title string) (*plot.Figure, error) {
		slab, err := ds.Extract(v, sel.WithIndex(scrollDim, index))
		if err != nil {
			return nil, err
		}
		o := opts
		o.Title = title
		if useTerm {
			return plot.RenderTerminal(slab, o)
		}
		return plot.Render(slab, o)
	}

	var display scroll.Display
	if useTerm {
		display = &termFrames{out: cmd.OutOrStdout(), render: render}
	} else {
		display = &paneFrames{w: w, render: render}
	}

	tty, err := scroll.MakeRaw(os.Stdin)
	if err != nil {
		return err
	}
	defer tty.Restore()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		tty.Restore()
		os.Exit(1)
	}()

	ctrl, err := scroll.NewController(display, dim, opts.Title, cmd.InOrStdin(), entry.Index)
	if err != nil {
		return err
	}
	log.Debug("scrolling %s over %s (%d steps)", v.Name, dim.Name, dim.Len())
	return ctrl.Run()
}
