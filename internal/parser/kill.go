package parser

import (
	"strings"

	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/registry"
)

// Delimiters of the console kill line:
//
//	<killer> killed <victim> with <weapon>.[ (crit)]
const (
	killedSep  = " killed "
	withSep    = " with "
	critSuffix = " (crit)"
)

const trailingSpace = " \t\r\n"

// ParseKill returns the kill event carried by line, if any.
//
// When the text before the weapon splits on " killed " into exactly two pieces
// they are taken as killer and victim directly. Otherwise a player name contains
// the delimiter and the pair is resolved against names: the first known killer
// and known victim that rebuild the text exactly win. Lines whose names cannot
// be resolved are dropped.
func ParseKill(line string, names *registry.Snapshot) (model.KillEvent, bool) {
	body, crit := strings.CutSuffix(strings.TrimRight(line, trailingSpace), critSuffix)
	body = strings.TrimRight(body, trailingSpace)
	if !strings.Contains(body, killedSep) || !strings.Contains(body, withSep) {
		return model.KillEvent{}, false
	}
	if !strings.HasSuffix(body, ".") {
		return model.KillEvent{}, false
	}

	fields := strings.Fields(body)
	weapon := strings.TrimSuffix(fields[len(fields)-1], ".")
	if weapon == "" {
		return model.KillEvent{}, false
	}

	users := body[:strings.LastIndex(body, withSep)]

	if parts := strings.Split(users, killedSep); len(parts) == 2 {
		return model.KillEvent{
			Killer: model.PlayerName(parts[0]),
			Victim: model.PlayerName(parts[1]),
			Weapon: weapon,
			Crit:   crit,
		}, true
	}

	killer, victim, ok := resolveKillPair(users, names)
	if !ok {
		return model.KillEvent{}, false
	}
	return model.KillEvent{Killer: killer, Victim: victim, Weapon: weapon, Crit: crit}, true
}

// resolveKillPair finds the first (killer, victim) pair of known names such that
// killer + " killed " + victim == users.
func resolveKillPair(users string, names *registry.Snapshot) (model.PlayerName, model.PlayerName, bool) {
	var killers, victims []model.PlayerName
	for _, n := range names.Sorted() {
		if strings.HasPrefix(users, string(n)+killedSep) {
			killers = append(killers, n)
		}
		if strings.HasSuffix(users, killedSep+string(n)) {
			victims = append(victims, n)
		}
	}
	for _, k := range killers {
		for _, v := range victims {
			if len(k)+len(killedSep)+len(v) != len(users) {
				continue
			}
			if string(k)+killedSep+string(v) == users {
				return k, v, true
			}
		}
	}
	return "", "", false
}
