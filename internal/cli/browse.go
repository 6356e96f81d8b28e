package cli

import (
	"github.com/spf13/cobra"

	"github.com/termpane/termpane/internal/browse"
	"github.com/termpane/termpane/internal/dataset"
	"github.com/termpane/termpane/internal/plot"
)

func newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <store>",
		Short: "Pick a variable and slice interactively, then plot it",
		Long: `Browse opens a full-screen picker over the dataset's variables and
dimensions. Fix dimension values, optionally mark one dimension for
scrolling, and accept to render the slice with the same pipeline as
the view command. Quitting the picker renders nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ds, err := dataset.OpenPath(args[0])
	if err != nil {
		return err
	}
	choice, ok, err := browse.Run(ds)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	v, found := ds.Var(choice.Var)
	if !found {
		return dataset.ErrUnknownVariable
	}
	log.Debug("browse picked %s scroll=%q", choice.Var, choice.Scroll)

	tokens := choice.Tokens
	if tokens == nil {
		tokens = map[string]string{}
	}
	if choice.Scroll != "" {
		if err := pinScrollDim(ds, tokens, choice.Scroll); err != nil {
			return err
		}
	}
	sel, err := dataset.BuildSelection(ds, v, tokens)
	if err != nil {
		return err
	}
	opts := plot.Options{
		Title:   v.Name,
		Width:   cfg.Chart.Width,
		Height:  cfg.Chart.Height,
		Palette: cfg.Chart.Palette,
	}
	if choice.Scroll != "" {
		return runScrollSession(cmd, ds, v, sel, choice.Scroll, opts, cfg.Chart.Ascii)
	}
	slab, err := ds.Extract(v, sel)
	if err != nil {
		return err
	}
	return renderInline(cmd, slab, opts, cfg.Chart.Ascii, false)
}
