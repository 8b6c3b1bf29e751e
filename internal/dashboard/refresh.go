// Package dashboard runs the refresh cycle that turns the console log into a
// match snapshot, and the loop that repeats it while the game is running.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pable/go-tf2-metrics/internal/aggregator"
	"github.com/pable/go-tf2-metrics/internal/metrics"
	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/parser"
	"github.com/pable/go-tf2-metrics/internal/registry"
	"github.com/pable/go-tf2-metrics/internal/roster"
	"github.com/pable/go-tf2-metrics/internal/segment"
)

// WeaponLoader supplies the weapon table for one cycle.
type WeaponLoader interface {
	LoadWeaponTable() (model.WeaponTable, error)
}

// Refresher rebuilds the match snapshot from scratch on every call. Only the
// name registry outlives a cycle.
type Refresher struct {
	User      model.PlayerName
	Source    segment.Source
	Segmenter segment.Segmenter
	Registry  *registry.Registry

	// Optional collaborators.
	Roster  roster.Querier
	Weapons WeaponLoader
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// WatchPath is the file Run watches for writes; empty means ticker only.
	WatchPath string

	// RosterBackoff is how long a failed roster query is not retried.
	// Zero means DefaultRosterBackoff.
	RosterBackoff time.Duration

	rosterRetryAt time.Time
}

// DefaultRosterBackoff is the RosterBackoff used when none is set.
const DefaultRosterBackoff = 30 * time.Second

// NewRefresher returns a refresher for user reading src and selecting the
// latest game of user.
func NewRefresher(user model.PlayerName, src segment.Source, reg *registry.Registry) *Refresher {
	return &Refresher{
		User:      user,
		Source:    src,
		Segmenter: segment.LatestGame{User: string(user)},
		Registry:  reg,
	}
}

func (r *Refresher) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Refresh runs one cycle. It returns segment.ErrNoMatch (wrapped) when the log
// holds no game for the user yet. Roster and weapon table failures only
// degrade the result.
func (r *Refresher) Refresh(ctx context.Context) (*model.MatchSnapshot, error) {
	start := time.Now()
	snap, err := r.refresh(ctx)

	result := metrics.ResultOK
	switch {
	case errors.Is(err, segment.ErrNoMatch):
		result = metrics.ResultNoMatch
	case err != nil:
		result = metrics.ResultError
	}
	r.Metrics.ObserveRefresh(result, time.Since(start))
	return snap, err
}

func (r *Refresher) refresh(ctx context.Context) (*model.MatchSnapshot, error) {
	raw, err := r.ParseLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	snap, err := aggregator.Aggregate(r.User, raw, r.WeaponTable())
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	snap.UpdatedAt = time.Now()
	return &snap, nil
}

// ParseLatest reads the log, updates the registry and returns the event
// stream of the user's latest game.
func (r *Refresher) ParseLatest(ctx context.Context) (*model.RawMatch, error) {
	lines, err := r.Source.ReadLines(ctx)
	if err != nil {
		return nil, err
	}
	if n := r.Registry.AddAll(parser.ReadConnections(lines)); n > 0 {
		r.logger().Debug("Registered connected players", slog.Int("new", n))
	}

	game, err := r.Segmenter.Segment(lines)
	if err != nil {
		return nil, err
	}

	addr, _ := parser.ServerAddress(lines)
	r.mergeRoster(ctx, addr)
	r.Metrics.SetKnownPlayers(r.Registry.Len())

	raw := parser.ParseMatch(game, r.Registry.Snapshot())
	if raw.ServerAddr == "" {
		raw.ServerAddr = addr
	}
	r.Metrics.AddEvents("kill", len(raw.Kills))
	r.Metrics.AddEvents("objective", len(raw.Objectives))
	r.Metrics.AddEvents("suicide", len(raw.Suicides))
	r.logger().Debug("Parsed match",
		slog.Int("lines", raw.Lines),
		slog.Int("events", raw.Events()),
		slog.Int("skipped", raw.Lines-raw.Events()))
	return raw, nil
}

// mergeRoster adds the live player list to the registry. Failures keep the
// registry as it is.
func (r *Refresher) mergeRoster(ctx context.Context, addr string) {
	if r.Roster == nil || time.Now().Before(r.rosterRetryAt) {
		return
	}
	names, err := r.Roster.Players(ctx, addr)
	if err != nil {
		if errors.Is(err, roster.ErrNoServer) {
			return
		}
		backoff := r.RosterBackoff
		if backoff <= 0 {
			backoff = DefaultRosterBackoff
		}
		r.rosterRetryAt = time.Now().Add(backoff)
		r.Metrics.RosterFailed()
		r.logger().Warn("Roster query failed",
			slog.String("addr", addr),
			slog.String("error", err.Error()),
			slog.Duration("retry_in", backoff))
		return
	}
	if n := r.Registry.AddAll(names); n > 0 {
		r.logger().Debug("Registered roster players", slog.Int("new", n))
	}
}

// WeaponTable loads the weapon table, or returns nil when none is configured
// or it cannot be read.
func (r *Refresher) WeaponTable() model.WeaponTable {
	if r.Weapons == nil {
		return nil
	}
	t, err := r.Weapons.LoadWeaponTable()
	if err != nil {
		r.logger().Warn("Weapon table unavailable", slog.String("error", err.Error()))
		return nil
	}
	return t
}
