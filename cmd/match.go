package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pable/go-tf2-metrics/internal/aggregator"
	"github.com/pable/go-tf2-metrics/internal/dashboard"
	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/registry"
	"github.com/pable/go-tf2-metrics/internal/roster"
	"github.com/pable/go-tf2-metrics/internal/segment"
	"github.com/pable/go-tf2-metrics/internal/storage"
)

func openDB() (*storage.DB, error) {
	if dir := filepath.Dir(cfg.DB); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// logPathArg returns the log given on the command line, or the configured one.
func logPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.LogPath
}

func newRefresher(db *storage.DB, logPath string) *dashboard.Refresher {
	r := dashboard.NewRefresher(model.PlayerName(cfg.User), segment.FileSource{Path: logPath}, registry.New())
	r.Weapons = db
	if cfg.Roster.Enabled {
		r.Roster = roster.NewA2SClient(cfg.Roster.Timeout)
	}
	return r
}

// loadMatch parses the user's latest game in logPath once.
func loadMatch(ctx context.Context, db *storage.DB, logPath string) (*model.RawMatch, *model.MatchSnapshot, error) {
	c := cfg
	c.LogPath = logPath
	if err := c.RequireMatchInput(); err != nil {
		return nil, nil, err
	}

	r := newRefresher(db, logPath)
	raw, err := r.ParseLatest(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log: %w", err)
	}
	snap, err := aggregator.Aggregate(r.User, raw, r.WeaponTable())
	if err != nil {
		return nil, nil, fmt.Errorf("aggregate: %w", err)
	}
	snap.UpdatedAt = time.Now()
	return raw, &snap, nil
}
