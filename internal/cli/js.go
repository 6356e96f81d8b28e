package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newJSCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "js <expression>...",
		Short: "Evaluate a JavaScript expression in the hosting page",
		Long: `Send a JavaScript expression to the host terminal for evaluation
in the page that renders this pane. Arguments are joined with spaces.
Outside a pane terminal the expression is printed and nothing runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			w := paneWriter()
			if !w.Env().Active() {
				fmt.Fprintln(cmd.OutOrStdout(), expr)
				return nil
			}
			return w.EvalJS(expr)
		},
	}
}
