package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-tf2-metrics/internal/logging"
	"github.com/pable/go-tf2-metrics/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [console.log]",
	Short: "Export your latest game to an Excel workbook",
	Long: `Write the latest game's stats to an .xlsx workbook with Players, Rivals,
Deaths and Streaks sheets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "match.xlsx", "output workbook path")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer logging.Closer(db)

	_, snap, err := loadMatch(context.Background(), db, logPathArg(args))
	if err != nil {
		return err
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := report.WriteXLSX(f, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %d players to %s\n", len(snap.Players), exportOut)
	return nil
}
