package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/termpane/termpane/internal/dataset"
	"github.com/termpane/termpane/internal/plot"
)

var (
	watchFlags    renderFlags
	watchDebounce int
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <store> <variable>",
		Short: "Redraw a variable whenever its store changes",
		Long: `Watch monitors a dataset store directory and redraws the selected
slice of a variable every time the store is rewritten. Each redraw
overwrites the previous figure, so a connected pane shows a live
updating plot. Press Ctrl+C to stop.

Slice selection works exactly as in the view command. Store writes are
debounced, so a save that touches several files draws once.`,
		Args: cobra.ExactArgs(2),
		RunE: runWatch,
	}
	watchFlags.register(cmd)
	cmd.Flags().IntVar(&watchDebounce, "debounce", 250, "quiet time in milliseconds before redrawing")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	storePath, varName := args[0], args[1]

	tokens, err := watchFlags.tokens()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Warn("closing watcher: %v", err)
		}
	}()
	if err := watcher.Add(storePath); err != nil {
		return fmt.Errorf("watching %s: %w", storePath, err)
	}

	// The first draw validates the variable and selection; a failure
	// here would repeat on every event, so it ends the command.
	if err := drawStoreSlice(cmd, storePath, varName, tokens); err != nil {
		return err
	}
	log.Info("watching %s for changes to %s", storePath, varName)

	return watchLoop(func() {
		// Stores are written file by file; a half-written store fails
		// to open and the next event retries.
		if err := drawStoreSlice(cmd, storePath, varName, tokens); err != nil {
			log.Warn("redraw failed: %v", err)
		}
	}, watcher)
}

func watchLoop(redraw func(), watcher *fsnotify.Watcher) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	wait := time.Duration(watchDebounce) * time.Millisecond
	if wait <= 0 {
		wait = time.Millisecond
	}
	debounce := time.NewTimer(wait)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-signals:
			log.Info("interrupted, stopping watch")
			return nil

		case <-debounce.C:
			redraw()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("store event: %s", event)
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(wait)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Warn("watcher error: %v", err)
		}
	}
}

// drawStoreSlice reopens the store and draws one slice of the named
// variable, overwriting any previous figure in the pane.
func drawStoreSlice(cmd *cobra.Command, storePath, varName string, tokens map[string]string) error {
	ds, err := dataset.OpenPath(storePath)
	if err != nil {
		return err
	}
	v, ok := ds.Var(varName)
	if !ok {
		return fmt.Errorf("%w: %s", dataset.ErrUnknownVariable, varName)
	}
	sel, err := dataset.BuildSelection(ds, v, tokens)
	if err != nil {
		return err
	}
	slab, err := ds.Extract(v, sel)
	if err != nil {
		return err
	}
	opts, err := watchFlags.options(v.Name)
	if err != nil {
		return err
	}

	w := paneWriter()
	if watchFlags.ascii || cfg.Chart.Ascii || !w.Env().Active() {
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
	return showFigure(w, fig, opts.Title, false, true)
}
