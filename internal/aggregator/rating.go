package aggregator

import (
	"math"

	"github.com/pable/go-tf2-metrics/internal/model"
)

// KFactor is the rating step used for every kill.
const KFactor = 30.0

// eloSpread is the rating difference at which the stronger player is expected
// to win ten times as often.
const eloSpread = 400.0

// Elo rates players by treating each kill as a won head-to-head game.
type Elo struct {
	K float64
}

// DefaultElo is the rating engine used for match stats.
var DefaultElo = Elo{K: KFactor}

// Expected returns the expected score of a player rated a against one rated b.
func Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/eloSpread))
}

// Apply updates table in place for one kill and returns it. A nil table is
// allocated. A self-kill leaves the table unchanged.
func (e Elo) Apply(table model.RatingTable, killer, victim model.PlayerName) model.RatingTable {
	if table == nil {
		table = make(model.RatingTable)
	}
	if killer == victim {
		return table
	}
	rk, rv := table.Get(killer), table.Get(victim)
	table[killer] = rk + e.K*(1-Expected(rk, rv))
	table[victim] = rv + e.K*(0-Expected(rv, rk))
	return table
}

// Ratings folds kills into a fresh rating table, in order.
func Ratings(kills []model.KillEvent) model.RatingTable {
	t := make(model.RatingTable)
	for _, k := range kills {
		DefaultElo.Apply(t, k.Killer, k.Victim)
	}
	return t
}

// RatingHistory returns each player's rating after every kill they took part
// in, starting from DefaultRating.
func RatingHistory(kills []model.KillEvent) map[model.PlayerName][]float64 {
	t := make(model.RatingTable)
	hist := make(map[model.PlayerName][]float64)
	for _, k := range kills {
		if k.Killer == k.Victim {
			continue
		}
		for _, p := range []model.PlayerName{k.Killer, k.Victim} {
			if _, ok := hist[p]; !ok {
				hist[p] = []float64{model.DefaultRating}
			}
		}
		DefaultElo.Apply(t, k.Killer, k.Victim)
		hist[k.Killer] = append(hist[k.Killer], t[k.Killer])
		hist[k.Victim] = append(hist[k.Victim], t[k.Victim])
	}
	return hist
}

// meanRating returns the average rating of names, or DefaultRating when empty.
func meanRating(t model.RatingTable, names []model.PlayerName) float64 {
	if len(names) == 0 {
		return model.DefaultRating
	}
	var sum float64
	for _, n := range names {
		sum += t.Get(n)
	}
	return sum / float64(len(names))
}
