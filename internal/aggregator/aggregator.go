// Package aggregator derives per-player match statistics from the event stream
// of one match: team sides, ratings, streaks and points.
//
// Every function is a pure function of its inputs and is recomputed from the
// full event stream on each refresh.
package aggregator

import (
	"fmt"
	"sort"

	"github.com/pable/go-tf2-metrics/internal/model"
)

// Aggregate computes the match snapshot for user from a parsed match.
// Weapons without a row in weapons fall back to the sentinel categories.
func Aggregate(user model.PlayerName, raw *model.RawMatch, weapons model.WeaponLookup) (model.MatchSnapshot, error) {
	if raw == nil {
		return model.MatchSnapshot{}, fmt.Errorf("nil RawMatch")
	}
	if weapons == nil {
		weapons = model.WeaponTable(nil)
	}

	partition := InferTeams(user, raw.Kills)
	ratings := Ratings(raw.Kills)
	streaks := AllStreaks(raw.Kills)
	points := Points(raw.Kills, raw.Objectives)

	// ---- Pass 1: per-player counters. ----

	stats := make(map[model.PlayerName]*model.PlayerMatchStats)
	get := func(name model.PlayerName) *model.PlayerMatchStats {
		s, ok := stats[name]
		if !ok {
			s = &model.PlayerMatchStats{Name: name, Class: model.ClassUnknown}
			stats[name] = s
		}
		return s
	}
	get(user)

	for _, k := range raw.Kills {
		killer, victim := get(k.Killer), get(k.Victim)
		if k.Killer != k.Victim {
			killer.Kills++
		}
		victim.Deaths++

		// The class of the latest weapon with a single owning class wins.
		if c := weapons.Class(k.Weapon); c != model.ClassUnknown {
			killer.Class = c
		}
	}
	for _, p := range raw.Suicides {
		s := get(p)
		s.Suicides++
		s.Deaths++
	}
	for _, o := range raw.Objectives {
		for _, p := range o.Players {
			get(p)
		}
	}

	// ---- Pass 2: derived values. ----

	players := make([]model.PlayerMatchStats, 0, len(stats))
	for name, s := range stats {
		s.Side = partition.SideOf(name)
		s.Points = points[name]
		s.Rating = ratings.Get(name)
		s.CurrentStreak = CurrentStreak(name, raw.Kills)
		s.Streaks = streaks[name]
		if s.Streaks == nil {
			s.Streaks = []int{0}
		}
		s.BestStreak = BestStreak(s.Streaks)
		players = append(players, *s)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].Name < players[j].Name
	})

	return model.MatchSnapshot{
		User:       user,
		ServerAddr: raw.ServerAddr,
		Lines:      raw.Lines,
		Objectives: len(raw.Objectives),
		Players:    players,
		Focus:      focusStats(user, raw.Kills, partition, ratings, weapons),
		Partition:  partition,
		Ratings:    ratings,
	}, nil
}

// focusStats builds the dashboard view for user.
func focusStats(user model.PlayerName, kills []model.KillEvent, p model.TeamPartition, ratings model.RatingTable, weapons model.WeaponLookup) model.FocusStats {
	f := model.FocusStats{
		Name:               user,
		Rivals:             make(map[model.PlayerName]int),
		DeathsByClass:      make(map[string]int),
		DeathsByDamageType: make(map[string]int),
	}
	for _, k := range kills {
		switch p.SideOf(k.Killer) {
		case model.SideAlly:
			f.AllyKills++
		case model.SideEnemy:
			f.EnemyKills++
		}
		if k.Victim != user || k.Killer == user {
			continue
		}
		f.Rivals[k.Killer]++
		f.DeathsByClass[weapons.Class(k.Weapon)]++
		f.DeathsByDamageType[weapons.DamageType(k.Weapon)]++
	}

	allies, enemies := p.AllyNames(), p.EnemyNames()
	if len(allies) == 0 || len(enemies) == 0 {
		f.AllyAvgRating = model.DefaultRating
		f.EnemyAvgRating = model.DefaultRating
		return f
	}
	f.AllyAvgRating = meanRating(ratings, allies)
	f.EnemyAvgRating = meanRating(ratings, enemies)
	return f
}
