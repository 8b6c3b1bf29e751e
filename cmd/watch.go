package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-tf2-metrics/internal/config"
	"github.com/pable/go-tf2-metrics/internal/logging"
	"github.com/pable/go-tf2-metrics/internal/metrics"
	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch [console.log]",
	Short: "Show a live dashboard of the current match",
	Long: `Re-read the console log every refresh interval, and whenever the game writes
to it, and redraw the dashboard for your latest game. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.Duration("interval", config.DefaultRefreshInterval, "refresh interval")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9110)")
	f.Bool("roster", true, "query the game server for the player list")

	for key, flag := range map[string]string{
		"refresh_interval": "interval",
		"metrics.addr":     "metrics-addr",
		"roster.enabled":   "roster",
	} {
		if err := viper.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	logPath := logPathArg(args)
	c := cfg
	c.LogPath = logPath
	if err := c.RequireMatchInput(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer logging.Closer(db)

	r := newRefresher(db, logPath)
	r.WatchPath = logPath
	r.Metrics = metrics.New()
	r.Logger = slog.Default()

	slog.Info("Watching console log",
		slog.String("path", logPath),
		slog.String("user", cfg.User),
		slog.Duration("interval", cfg.RefreshInterval))

	out := cmd.OutOrStdout()
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Metrics.Addr != "" {
		slog.Info("Serving metrics", slog.String("addr", cfg.Metrics.Addr))
		g.Go(func() error {
			return r.Metrics.Serve(gctx, cfg.Metrics.Addr)
		})
	}
	g.Go(func() error {
		return r.Run(gctx, cfg.RefreshInterval, func(snap *model.MatchSnapshot, err error) {
			clearScreen(out)
			if err != nil {
				report.PrintStatus(out, cfg.User, err)
				return
			}
			report.PrintDashboard(out, snap)
		})
	})
	return g.Wait()
}

func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}
