package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-tf2-metrics/internal/parser"
	"github.com/pable/go-tf2-metrics/internal/segment"
)

var playersCmd = &cobra.Command{
	Use:   "players [console.log]",
	Short: "List every player seen connecting in the log",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlayers,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	logPath := logPathArg(args)
	lines, err := segment.FileSource{Path: logPath}.ReadLines(context.Background())
	if err != nil {
		return err
	}

	names := parser.ReadConnections(lines)
	if len(names) == 0 {
		fmt.Fprintln(os.Stdout, "No players seen yet. Is the game running with -condebug?")
		return nil
	}
	if addr, ok := parser.ServerAddress(lines); ok {
		fmt.Fprintf(os.Stdout, "Last server: %s\n\n", addr)
	}
	fmt.Fprintf(os.Stdout, "%-4s  %s\n", "#", "NAME")
	fmt.Fprintf(os.Stdout, "%-4s  %s\n", "────", "────────────────────────")
	for i, n := range names {
		fmt.Fprintf(os.Stdout, "%-4d  %s\n", i+1, n)
	}
	return nil
}
