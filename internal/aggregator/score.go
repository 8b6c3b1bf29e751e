package aggregator

import "github.com/pable/go-tf2-metrics/internal/model"

// Points estimates the scoreboard: one point per kill to the killer and one per
// capture or defence to each player named on it. Self-kills score nothing. Assists, healing and cart
// pushing are not in the log and are not counted.
func Points(kills []model.KillEvent, objectives []model.ObjectiveEvent) map[model.PlayerName]int {
	pts := make(map[model.PlayerName]int)
	for _, k := range kills {
		if k.Killer != k.Victim {
			pts[k.Killer]++
		}
	}
	for _, o := range objectives {
		for _, p := range o.Players {
			pts[p]++
		}
	}
	return pts
}
