package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/termpane/termpane/internal/stocks"
)

var (
	stocksDays  int
	stocksOut   string
	stocksSize  string
	stocksAscii bool
	stocksTitle string
)

func newStocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stocks <symbol>...",
		Short: "Chart daily closing prices for stock symbols",
		Long: `Fetch daily closing prices for each symbol and draw them as one
line chart: inline in the pane, to a PNG file with -o, or as a
terminal chart outside the pane.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runStocks,
	}

	cmd.Flags().IntVarP(&stocksDays, "days", "d", 0, "trading days to chart (default from config)")
	cmd.Flags().StringVarP(&stocksOut, "output", "o", "", "write the chart to a PNG file")
	cmd.Flags().StringVar(&stocksSize, "size", "", "chart size WIDTHxHEIGHT or preset name")
	cmd.Flags().BoolVar(&stocksAscii, "ascii", false, "render in the terminal instead of the pane")
	cmd.Flags().StringVar(&stocksTitle, "title", "", "chart title")

	return cmd
}

func runStocks(cmd *cobra.Command, args []string) error {
	days := stocksDays
	if days <= 0 {
		days = cfg.Stocks.Days
	}
	client := stocks.NewClient(cfg.Stocks.Endpoint, days)
	if cfg.Stocks.TimeoutSeconds > 0 {
		client.HTTP.Timeout = time.Duration(cfg.Stocks.TimeoutSeconds) * time.Second
	}

	log.Info("fetching %d symbols, %d day window", len(args), days)
	series, err := client.FetchAll(cmd.Context(), args)
	if err != nil {
		return err
	}

	width, height, err := chartSize(stocksSize)
	if err != nil {
		return err
	}

	w := paneWriter()
	useTerminal := stocksAscii || cfg.Chart.Ascii || (stocksOut == "" && !w.Env().Active())
	if useTerminal && stocksOut == "" {
		fmt.Fprintln(cmd.OutOrStdout(), stocks.Terminal(series, 0, 0))
		return nil
	}

	img, err := stocks.Chart(series, stocksTitle, width, height)
	if err != nil {
		return err
	}
	if stocksOut != "" {
		if err := os.WriteFile(stocksOut, img, 0644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stocksOut)
		return nil
	}
	_, err = w.Image("image/png", img, stocksTitle, false)
	return err
}
