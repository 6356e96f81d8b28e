package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/termpane/termpane/internal/archive"
)

var getZip bool

func newGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <path>...",
		Short: "Download files through the hosting browser",
		Long: `Send files to the browser as a download. A single file downloads
as-is; multiple paths, directories, or -z are packed into one zip
archive first. Outside a pane terminal the zip is written to the
current directory instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGet,
	}

	cmd.Flags().BoolVarP(&getZip, "zip", "z", false, "always pack into a zip archive")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	needZip := getZip || len(args) > 1
	if !needZip {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		needZip = info.IsDir()
	}

	w := paneWriter()
	out := cmd.OutOrStdout()

	if !needZip {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !w.Env().Active() {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, abs)
			return nil
		}
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return w.Download(filepath.Base(path), contentType, data)
	}

	data, err := archive.Bytes(args)
	if err != nil {
		return err
	}
	name := archive.Name(args)
	if !w.Env().Active() {
		if err := os.WriteFile(name, data, 0644); err != nil {
			return err
		}
		fmt.Fprintln(out, name)
		return nil
	}
	log.Debug("download %s: %d bytes", name, len(data))
	return w.Download(name, "application/zip", data)
}
