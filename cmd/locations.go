package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/logging"
	"github.com/theirongolddev/housedash/internal/pipeline"
)

var locationsCmd = &cobra.Command{
	Use:   "locations [query]",
	Short: "List selectable locations, optionally filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLocations,
}

func init() {
	rootCmd.AddCommand(locationsCmd)
}

func runLocations(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log, closer := newCLILogger(cfg)
	defer closer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	catalog := pipeline.LoadCatalog(ctx, newClient(cfg), logging.Component(log, "catalog"))
	if len(catalog) == 0 {
		fmt.Println("\n  No locations available.")
		return nil
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	matches := pipeline.FilterCatalog(catalog, query)
	if len(matches) == 0 {
		fmt.Printf("\n  No locations match %q.\n", query)
		return nil
	}

	rows := make([][]string, len(matches))
	for i, e := range matches {
		rows[i] = []string{e.Display, e.Value}
	}

	title := fmt.Sprintf("LOCATIONS  %s", cli.FormatNumber(int64(len(catalog))))
	if query != "" {
		title = fmt.Sprintf("LOCATIONS  %d of %s matching %q",
			len(matches), cli.FormatNumber(int64(len(catalog))), query)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Location", "Key"},
		Rows:    rows,
	}))
	return nil
}
