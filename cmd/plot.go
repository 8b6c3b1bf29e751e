package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-tf2-metrics/internal/aggregator"
	"github.com/pable/go-tf2-metrics/internal/logging"
	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/report"
)

var (
	plotOut     string
	plotPlayers []string
	plotStreaks bool
)

var plotCmd = &cobra.Command{
	Use:   "plot [console.log]",
	Short: "Chart rating history or kill streaks of your latest game",
	Long: `Render a PNG line chart of each player's rating over the game. With --streaks,
render a bar chart of the kill runs of the first --player (default: you).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "rating.png", "output PNG path")
	plotCmd.Flags().StringSliceVarP(&plotPlayers, "player", "p", nil, "players to plot (default: everyone)")
	plotCmd.Flags().BoolVar(&plotStreaks, "streaks", false, "plot kill streak runs instead of rating")
}

func runPlot(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer logging.Closer(db)

	raw, snap, err := loadMatch(context.Background(), db, logPathArg(args))
	if err != nil {
		return err
	}

	players := make([]model.PlayerName, len(plotPlayers))
	for i, p := range plotPlayers {
		players[i] = model.PlayerName(p)
	}

	var buf bytes.Buffer
	if plotStreaks {
		name := snap.User
		if len(players) > 0 {
			name = players[0]
		}
		p, ok := snap.Player(name)
		if !ok {
			return fmt.Errorf("player %q not seen in the latest game", name)
		}
		err = report.RenderStreakChart(&buf, name, p.Streaks)
	} else {
		err = report.RenderRatingChart(&buf, aggregator.RatingHistory(raw.Kills), players)
	}
	if errors.Is(err, report.ErrNoChartData) {
		fmt.Fprintln(os.Stdout, "Nothing to plot yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	if err := os.WriteFile(plotOut, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", plotOut)
	return nil
}
