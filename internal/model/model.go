package model

import (
	"sort"
	"time"
)

// PlayerName is the only identity key for a player. Names are compared by exact
// string equality; no case or whitespace folding is applied.
type PlayerName string

// Team is the side named by an objective line.
type Team int

const (
	TeamUnknown Team = 0
	TeamRed     Team = 2
	TeamBlue    Team = 3
)

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	default:
		return "?"
	}
}

// TeamFromCode maps the log's "team #N" code to a Team.
func TeamFromCode(code string) Team {
	switch code {
	case "2":
		return TeamRed
	case "3":
		return TeamBlue
	default:
		return TeamUnknown
	}
}

// ObjectiveAction is the verb of an objective line.
type ObjectiveAction int

const (
	ActionCaptured ObjectiveAction = iota
	ActionDefended
)

func (a ObjectiveAction) String() string {
	if a == ActionDefended {
		return "defended"
	}
	return "captured"
}

// ---- Events emitted by the parser ----

// KillEvent is one elimination read from a single log line.
type KillEvent struct {
	Killer PlayerName
	Victim PlayerName
	Weapon string
	Crit   bool // line carried the " (crit)" suffix
}

// ObjectiveEvent is one capture or defence credited to one or more players.
type ObjectiveEvent struct {
	Players   []PlayerName // sorted, unique
	Objective string
	Team      Team
	Action    ObjectiveAction
}

// Has reports whether name is credited on the event.
func (e ObjectiveEvent) Has(name PlayerName) bool {
	i := sort.Search(len(e.Players), func(i int) bool { return e.Players[i] >= name })
	return i < len(e.Players) && e.Players[i] == name
}

// RawMatch is the ordered event stream of one match.
type RawMatch struct {
	ServerAddr string
	Lines      int // lines scanned, including ones that produced no event
	Kills      []KillEvent
	Objectives []ObjectiveEvent
	Suicides   []PlayerName
}

// Events returns the number of events parsed from the match lines.
func (m *RawMatch) Events() int {
	return len(m.Kills) + len(m.Objectives) + len(m.Suicides)
}

// ---- Derived structures ----

// Side is a player's estimated side relative to a reference player.
type Side int

const (
	SideUnknown Side = iota
	SideAlly
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SideAlly:
		return "ally"
	case SideEnemy:
		return "enemy"
	default:
		return "?"
	}
}

// TeamPartition splits the players seen in a match into allies and enemies of
// a reference player. Players with no path to the reference are in neither set.
type TeamPartition struct {
	Reference PlayerName
	Allies    map[PlayerName]struct{}
	Enemies   map[PlayerName]struct{}
}

// SideOf returns the estimated side of name.
func (p TeamPartition) SideOf(name PlayerName) Side {
	if _, ok := p.Allies[name]; ok {
		return SideAlly
	}
	if _, ok := p.Enemies[name]; ok {
		return SideEnemy
	}
	return SideUnknown
}

// AllyNames returns the allies sorted by name.
func (p TeamPartition) AllyNames() []PlayerName { return sortedNames(p.Allies) }

// EnemyNames returns the enemies sorted by name.
func (p TeamPartition) EnemyNames() []PlayerName { return sortedNames(p.Enemies) }

func sortedNames(set map[PlayerName]struct{}) []PlayerName {
	out := make([]PlayerName, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultRating is the rating of a player not yet seen in the match.
const DefaultRating = 1600.0

// RatingTable maps a player to an Elo-style rating.
type RatingTable map[PlayerName]float64

// Get returns the player's rating, or DefaultRating for unseen names.
func (t RatingTable) Get(name PlayerName) float64 {
	if r, ok := t[name]; ok {
		return r
	}
	return DefaultRating
}

// ---- Aggregated metrics ----

type PlayerMatchStats struct {
	Name  PlayerName
	Side  Side
	Class string // inferred from the weapons used, "many" when unknown

	Kills    int
	Deaths   int // kills suffered plus suicides
	Suicides int
	Points   int

	Rating        float64
	CurrentStreak int
	BestStreak    int
	Streaks       []int // streak runs in chronological order
}

// KDRatio returns kills per death. With no deaths it returns the kill count,
// not 0, so an unbeaten player does not rank below one who died.
func (s *PlayerMatchStats) KDRatio() float64 {
	if s.Deaths == 0 {
		return float64(s.Kills)
	}
	return float64(s.Kills) / float64(s.Deaths)
}

// FocusStats holds the dashboard view for the user running the tool.
type FocusStats struct {
	Name PlayerName

	// Rivals counts how many times each player killed Name.
	Rivals             map[PlayerName]int
	DeathsByClass      map[string]int
	DeathsByDamageType map[string]int

	AllyKills      int
	EnemyKills     int
	AllyAvgRating  float64
	EnemyAvgRating float64
}

// Rival is one entry of FocusStats.TopRivals.
type Rival struct {
	Name   PlayerName
	Deaths int
}

// TopRivals returns up to n rivals ordered by deaths caused, then name.
func (f *FocusStats) TopRivals(n int) []Rival {
	out := make([]Rival, 0, len(f.Rivals))
	for name, c := range f.Rivals {
		out = append(out, Rival{Name: name, Deaths: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Deaths != out[j].Deaths {
			return out[i].Deaths > out[j].Deaths
		}
		return out[i].Name < out[j].Name
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MatchSnapshot is the published result of one refresh cycle.
type MatchSnapshot struct {
	User       PlayerName
	ServerAddr string
	UpdatedAt  time.Time
	Lines      int
	Objectives int

	Players   []PlayerMatchStats // sorted by rating desc, then name
	Focus     FocusStats
	Partition TeamPartition
	Ratings   RatingTable
}

// Player returns the stats row for name, if any.
func (s *MatchSnapshot) Player(name PlayerName) (PlayerMatchStats, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerMatchStats{}, false
}

// BySide returns the rows for one side, keeping the snapshot order.
func (s *MatchSnapshot) BySide(side Side) []PlayerMatchStats {
	var out []PlayerMatchStats
	for _, p := range s.Players {
		if p.Side == side {
			out = append(out, p)
		}
	}
	return out
}
