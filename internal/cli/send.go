package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	sendTerm  string
	sendPaste bool
)

func newSendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <command>...",
		Short: "Paste a command line into a terminal session",
		Long: `Dispatch a command line to another session of the same host, or to
this session when --term is omitted. The command is pasted at the
target's prompt and run; --paste leaves it unexecuted for editing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSend,
	}

	cmd.Flags().StringVarP(&sendTerm, "term", "t", "", "target session as host/session")
	cmd.Flags().BoolVar(&sendPaste, "paste", false, "paste without running")

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	command := strings.Join(args, " ")
	w := paneWriter()
	if !w.Env().Active() {
		fmt.Fprintln(cmd.OutOrStdout(), command)
		return nil
	}
	if err := w.PasteCommand(command, sendTerm, !sendPaste); err != nil {
		return err
	}
	target := sendTerm
	if target == "" {
		target = w.Env().Path
	}
	log.Debug("paste_command to %s: %s", target, command)
	return nil
}
