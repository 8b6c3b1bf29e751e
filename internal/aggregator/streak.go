package aggregator

import "github.com/pable/go-tf2-metrics/internal/model"

// CurrentStreak counts user's kills since their most recent death.
func CurrentStreak(user model.PlayerName, kills []model.KillEvent) int {
	streak := 0
	for i := len(kills) - 1; i >= 0; i-- {
		switch {
		case kills[i].Killer == user && kills[i].Victim != user:
			streak++
		case kills[i].Victim == user:
			return streak
		}
	}
	return streak
}

// AllStreaks returns every player's kill runs in match order. Each player
// starts with an open run of 0; a kill extends the open run and a death opens a
// new one.
func AllStreaks(kills []model.KillEvent) map[model.PlayerName][]int {
	runs := make(map[model.PlayerName][]int)
	open := func(p model.PlayerName) {
		if _, ok := runs[p]; !ok {
			runs[p] = []int{0}
		}
	}
	for _, k := range kills {
		open(k.Killer)
		open(k.Victim)
		if k.Killer != k.Victim {
			r := runs[k.Killer]
			r[len(r)-1]++
		}
		runs[k.Victim] = append(runs[k.Victim], 0)
	}
	return runs
}

// BestStreak returns the longest run.
func BestStreak(runs []int) int {
	best := 0
	for _, r := range runs {
		best = max(best, r)
	}
	return best
}
