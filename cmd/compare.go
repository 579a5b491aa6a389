package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/pipeline"
)

var compareCmd = &cobra.Command{
	Use:   "compare LOCATION...",
	Short: "Compare current and forecast prices across locations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log, closer := newCLILogger(cfg)
	defer closer.Close()

	// One deadline covers the whole batch.
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout()+10*time.Second)
	defer cancel()

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Fetching %s", cli.RenderProgressBar(current, total, 20))
	}

	results := pipeline.LoadMany(ctx, newClient(cfg), args, progressFn)
	if !flagQuiet {
		fmt.Fprintln(os.Stderr)
	}

	rows := make([][]string, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil || r.Stats == nil {
			failed++
			log.Debug().Err(r.Err).Str("location", r.Location).Msg("compare fetch failed")
			rows = append(rows, []string{r.Location, "-", "-", "-", "-", "error: " + pipeline.DatasetErrorMessage(r.Err)})
			continue
		}
		s := r.Stats
		rows = append(rows, []string{
			r.Location,
			cli.FormatPrice(s.CurrentPrice),
			cli.FormatPrice(s.PredictedPrice),
			cli.FormatChange(s.PriceChangePercent, s.ChangeDefined),
			cli.FormatPriceRange(s.MinPrice, s.MaxPrice),
			"",
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COMPARE  %d locations", len(results))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Location", "Current", "Predicted", "Change", "Range", "Note"},
		Rows:    rows,
	}))

	if failed > 0 {
		fmt.Println()
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d of %d locations could not be fetched", failed, len(results))))
	}
	return nil
}
