package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-tf2-metrics/internal/logging"
	"github.com/pable/go-tf2-metrics/internal/parser"
	"github.com/pable/go-tf2-metrics/internal/report"
)

var (
	parseRows    int
	parseStreaks bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [console.log]",
	Short: "Print a one-shot report of your latest game",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().IntVar(&parseRows, "rows", report.DefaultRows, "players shown per side and rivals shown")
	parseCmd.Flags().BoolVar(&parseStreaks, "streaks", false, "also print every player's kill runs")
}

func runParse(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer logging.Closer(db)

	logPath := logPathArg(args)
	fmt.Fprintf(os.Stdout, "Parsing %s...\n", logPath)
	raw, snap, err := loadMatch(context.Background(), db, logPath)
	if err != nil {
		return err
	}

	report.PrintMatchHeader(os.Stdout, snap)
	report.PrintFocus(os.Stdout, snap)
	report.PrintTeams(os.Stdout, snap, parseRows)
	report.PrintRivals(os.Stdout, snap, parseRows)
	report.PrintDeathBreakdown(os.Stdout, snap.Focus)
	report.PrintScoreboard(os.Stdout, snap)
	if parseStreaks {
		report.PrintStreaks(os.Stdout, snap)
	}

	if unknown, err := db.UnknownWeapons(parser.Weapons(raw.Kills)); err == nil && len(unknown) > 0 {
		fmt.Fprintf(os.Stdout, "\n%d weapon(s) not categorised yet. Run 'tf2metrics weapons scan' to add them.\n", len(unknown))
	}
	return nil
}
