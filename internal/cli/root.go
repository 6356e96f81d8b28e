package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/termpane/termpane/internal/config"
	"github.com/termpane/termpane/internal/logger"
	"github.com/termpane/termpane/internal/pane"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	log     *logger.Logger
)

// NewRootCommand creates the tpane command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tpane",
		Short: "Helper commands for pane-capable terminals",
		Long: `tpane is a set of helpers for terminals that render HTML panes.

Inside such a terminal the commands emit structured payloads the host
picks up from the output stream: clickable directory listings, inline
charts, file downloads, remote command dispatch. In an ordinary
terminal every command degrades to plain text output.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newLsCommand())
	rootCmd.AddCommand(newOpenCommand())
	rootCmd.AddCommand(newJSCommand())
	rootCmd.AddCommand(newSendCommand())
	rootCmd.AddCommand(newGetCommand())
	rootCmd.AddCommand(newStocksCommand())
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newBrowseCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadConfig resolves the effective config: an explicit --config path
// must load, the default path is used when present, anything else
// falls back to the built-in defaults.
func loadConfig() error {
	log = logger.New("tpane", isVerbose)
	cfg = nil
	if cfgFile != "" {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
	} else if path := config.DefaultPath(); path != "" {
		c, err := config.Load(path)
		switch {
		case err == nil:
			cfg = c
		case !os.IsNotExist(err):
			return err
		}
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if cfg.Verbose {
		verbose = true
	}
	return nil
}

func isVerbose() bool {
	return verbose
}

// paneWriter binds a payload writer to the process environment and
// standard output.
func paneWriter() *pane.Writer {
	return pane.NewWriter(pane.FromOS(), nil)
}

// chartSize resolves an explicit size argument against the configured
// chart geometry.
func chartSize(size string) (w, h int, err error) {
	if size == "" {
		return cfg.Chart.Width, cfg.Chart.Height, nil
	}
	return config.ResolveSize(size)
}
