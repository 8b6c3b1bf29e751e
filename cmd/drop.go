package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd deletes the weapon database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the weapon database",
	Long:  "Permanently delete the SQLite weapon database. Every categorised weapon will be lost. Run 'tf2metrics weapons scan -i' afterwards to rebuild it.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", cfg.DB)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(cfg.DB); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL side files; absent unless a connection is still open or crashed.
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(cfg.DB + suffix)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", cfg.DB)
	return nil
}
