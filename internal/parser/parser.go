// Package parser turns TF2 console log lines into match events.
//
// Every function is total: a line that does not carry an event, or whose player
// names cannot be resolved against the known names, yields no event.
package parser

import (
	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/registry"
)

// ParseMatch runs the line parsers over the lines of one match and returns the
// event stream in log order. For each line the kill, objective and suicide
// parsers are tried in that order; the first match wins.
func ParseMatch(lines []string, names *registry.Snapshot) *model.RawMatch {
	raw := &model.RawMatch{Lines: len(lines)}
	if addr, ok := ServerAddress(lines); ok {
		raw.ServerAddr = addr
	}

	for _, line := range lines {
		if k, ok := ParseKill(line, names); ok {
			raw.Kills = append(raw.Kills, k)
			continue
		}
		if o, ok := ParseObjective(line, names); ok {
			raw.Objectives = append(raw.Objectives, o)
			continue
		}
		if p, ok := ParseSuicide(line, names); ok {
			raw.Suicides = append(raw.Suicides, p)
		}
	}
	return raw
}

// Weapons returns the distinct weapon names used in kills, in order of first use.
func Weapons(kills []model.KillEvent) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, k := range kills {
		if _, ok := seen[k.Weapon]; ok {
			continue
		}
		seen[k.Weapon] = struct{}{}
		out = append(out, k.Weapon)
	}
	return out
}
