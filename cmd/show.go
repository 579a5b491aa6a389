package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/pipeline"
)

var flagShowJSON bool

var showCmd = &cobra.Command{
	Use:   "show LOCATION",
	Short: "Show price stats, history, and forecast for one location",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagShowJSON, "json", false, "Print stats and the combined series as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log, closer := newCLILogger(cfg)
	defer closer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	d, err := newClient(cfg).HousingData(ctx, args[0])
	if err != nil {
		log.Debug().Err(err).Str("location", args[0]).Msg("housing data fetch failed")
		return errors.New(pipeline.DatasetErrorMessage(err))
	}

	report := pipeline.BuildReport(d)

	if flagShowJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	s := pipeline.DeriveStats(d)
	if s == nil {
		return errors.New(pipeline.GenericFetchError)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HOUSING PRICES  %s", d.Location)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Forecast",
		Rows: [][]string{
			{"Current Price", cli.FormatPrice(s.CurrentPrice)},
			{"Predicted Price", cli.FormatPrice(s.PredictedPrice)},
			{"Change", cli.FormatChange(s.PriceChangePercent, s.ChangeDefined)},
		},
	}))
	fmt.Print(cli.RenderTable(cli.Table{
		Title: "History",
		Rows: [][]string{
			{"Average Price", cli.FormatPrice(s.AveragePrice)},
			{"Price Range", cli.FormatPriceRange(s.MinPrice, s.MaxPrice)},
		},
	}))
	fmt.Println()

	hist := make([]float64, len(d.PastData))
	for i, p := range d.PastData {
		hist[i] = p.Price
	}
	pred := make([]float64, len(d.ForecastedPrices))
	for i, p := range d.ForecastedPrices {
		pred[i] = p.PredictedPrice
	}
	fmt.Printf("  History   %s\n", cli.RenderSparkline(hist))
	fmt.Printf("  Forecast  %s  %s\n", cli.RenderSparkline(pred), cli.RenderChange(s.PriceChangePercent, s.ChangeDefined))
	fmt.Println()

	rows := make([][]string, 0, len(report.Series))
	for _, p := range report.Series {
		h, f := "-", "-"
		if p.Historical != nil {
			h = cli.FormatPrice(*p.Historical)
		}
		if p.Predicted != nil {
			f = cli.FormatPrice(*p.Predicted)
		}
		rows = append(rows, []string{p.Label, h, f})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Timeline",
		Headers: []string{"Date", "Historical Price", "Predicted Price"},
		Rows:    rows,
	}))

	return nil
}
