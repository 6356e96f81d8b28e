package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/termpane/termpane/internal/listing"
)

var (
	lsAll   bool
	lsPlain bool
)

func newLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [dir...]",
		Short: "List directories as a clickable finder table",
		Long: `List directory contents. Inside a pane terminal each directory is
shown as an icon table whose entries open or descend when clicked;
-f forces the plain text table everywhere.`,
		RunE: runLs,
	}

	cmd.Flags().BoolVarP(&lsAll, "all", "a", false, "include dot files")
	cmd.Flags().BoolVarP(&lsPlain, "plain", "f", false, "plain text output even inside the pane")

	return cmd
}

func runLs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	w := paneWriter()
	out := cmd.OutOrStdout()

	for i, dir := range args {
		entries, err := listing.List(dir, lsAll)
		if err != nil {
			return err
		}
		if lsPlain || !w.Env().Active() {
			if len(args) > 1 {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s:\n", dir)
			}
			fmt.Fprint(out, listing.TextTable(entries))
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		if err := w.Finder("ls", abs, listing.FinderHTML(entries)); err != nil {
			return err
		}
		log.Debug("finder table for %s: %d entries", abs, len(entries))
	}
	return nil
}
