package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/registry"
)

var objectiveRe = regexp.MustCompile(`^(?P<users>.*) (?P<action>defended|captured) (?P<objective>.*) for team #(?P<team>[23])\s*$`)

const listSep = ", "

// ParseObjective returns the capture/defence event carried by line, if any.
//
// The player list is joined with ", " without escaping, so it is split by
// matching known names from the left. If the list cannot be fully consumed the
// names matched before getting stuck are reported. A line where no name matches
// yields no event.
func ParseObjective(line string, names *registry.Snapshot) (model.ObjectiveEvent, bool) {
	m := objectiveRe.FindStringSubmatch(line)
	if m == nil {
		return model.ObjectiveEvent{}, false
	}
	users := m[objectiveRe.SubexpIndex("users")]

	players, _ := MatchNameList(users, names)
	if len(players) == 0 {
		return model.ObjectiveEvent{}, false
	}

	action := model.ActionCaptured
	if m[objectiveRe.SubexpIndex("action")] == "defended" {
		action = model.ActionDefended
	}
	return model.ObjectiveEvent{
		Players:   players,
		Objective: m[objectiveRe.SubexpIndex("objective")],
		Team:      model.TeamFromCode(m[objectiveRe.SubexpIndex("team")]),
		Action:    action,
	}, true
}

// MatchBudget bounds the number of name comparisons MatchNameList may make for
// a registry of nNames names and a list of listLen bytes.
func MatchBudget(nNames, listLen int) int {
	n := max(1, nNames)
	return n * n * max(1, listLen)
}

// MatchNameList splits a ", "-joined list of player names against the known
// names. It returns the matched names (sorted, unique) and whether the list
// was consumed entirely.
//
// Candidates are tried longest first and the search backtracks when a choice
// leaves an unmatchable remainder, up to MatchBudget comparisons. When no full
// split is found within the budget the partial split that consumed the most
// input is returned.
func MatchNameList(list string, names *registry.Snapshot) ([]model.PlayerName, bool) {
	if list == "" || names.Len() == 0 {
		return nil, false
	}
	lm := &listMatcher{
		names:  names.LongestFirst(),
		budget: MatchBudget(names.Len(), len(list)),
	}
	full := lm.match(list, 0, nil)
	return uniqueSorted(lm.best), full
}

type listMatcher struct {
	names  []model.PlayerName
	budget int

	best         []model.PlayerName
	bestConsumed int
}

func (lm *listMatcher) record(path []model.PlayerName, consumed int) {
	if consumed > lm.bestConsumed {
		lm.best = append([]model.PlayerName(nil), path...)
		lm.bestConsumed = consumed
	}
}

func (lm *listMatcher) match(rest string, consumed int, path []model.PlayerName) bool {
	for _, n := range lm.names {
		if lm.budget <= 0 {
			return false
		}
		lm.budget--

		name := string(n)
		if rest == name {
			lm.record(append(path, n), consumed+len(name))
			return true
		}
		if !strings.HasPrefix(rest, name+listSep) {
			continue
		}
		step := len(name) + len(listSep)
		next := append(path[:len(path):len(path)], n)
		lm.record(next, consumed+step)
		if lm.match(rest[step:], consumed+step, next) {
			return true
		}
	}
	return false
}

func uniqueSorted(in []model.PlayerName) []model.PlayerName {
	if len(in) == 0 {
		return nil
	}
	out := append([]model.PlayerName(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	w := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[w-1] {
			out[w] = out[i]
			w++
		}
	}
	return out[:w]
}
