package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var openFrame string

func newOpenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <url-or-path>...",
		Short: "Open URLs or local files in the hosting browser",
		Long: `Ask the host terminal to open each argument. URLs pass through
unchanged; local paths become file:// URLs on the terminal's host.
Outside a pane terminal the resolved URLs are printed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runOpen,
	}

	cmd.Flags().StringVar(&openFrame, "frame", "", "open in a named frame instead of a new tab")

	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	w := paneWriter()
	env := w.Env()
	out := cmd.OutOrStdout()

	for _, arg := range args {
		target := arg
		if !strings.Contains(arg, "://") {
			abs, err := filepath.Abs(arg)
			if err != nil {
				return err
			}
			if _, err := os.Stat(abs); err != nil {
				return err
			}
			target = "file://" + env.Host() + abs
		}
		if !env.Active() {
			fmt.Fprintln(out, target)
			continue
		}
		if err := w.OpenURL(target, openFrame); err != nil {
			return err
		}
		log.Debug("open_url %s", target)
	}
	return nil
}
