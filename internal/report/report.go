package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/segment"
)

var (
	cAhead  = color.New(color.FgGreen, color.Bold)
	cBehind = color.New(color.FgRed, color.Bold)
	cMuted  = color.New(color.Faint)
	cWarn   = color.New(color.FgYellow)
)

// DefaultRows is the number of players listed per side and rivals shown.
const DefaultRows = 6

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func fmtRating(r float64) string { return strconv.FormatFloat(r, 'f', 1, 64) }

// PrintMatchHeader prints a one-line summary header for the match.
func PrintMatchHeader(w io.Writer, s *model.MatchSnapshot) {
	server := s.ServerAddr
	if server == "" {
		server = "unknown"
	}
	fmt.Fprintf(w, "\nPlayer: %s  |  Server: %s  |  Players: %d  |  Lines: %d  |  Updated: %s\n\n",
		s.User, server, len(s.Players), s.Lines, s.UpdatedAt.Format("15:04:05"))
}

// PrintFocus prints the user's own line: kills, deaths, K/D, streak and rating.
func PrintFocus(w io.Writer, s *model.MatchSnapshot) {
	me, _ := s.Player(s.User)

	table := newTable(w)
	table.Header("KILLS", "DEATHS", "K/D", "STREAK", "BEST", "POINTS", "RATING")
	table.Append(
		strconv.Itoa(me.Kills),
		strconv.Itoa(me.Deaths),
		fmt.Sprintf("%.2f", me.KDRatio()),
		strconv.Itoa(me.CurrentStreak),
		strconv.Itoa(me.BestStreak),
		strconv.Itoa(me.Points),
		fmtRating(me.Rating),
	)
	table.Render()
}

// PrintTeams prints the top n allies and enemies by rating, then the team
// rating averages coloured by which side is ahead.
func PrintTeams(w io.Writer, s *model.MatchSnapshot, n int) {
	allies, enemies := s.BySide(model.SideAlly), s.BySide(model.SideEnemy)

	table := newTable(w)
	table.Header("ALLY", "RATING", "CLASS", "ENEMY", "RATING", "CLASS")
	rows := max(min(n, len(allies)), min(n, len(enemies)))
	for i := 0; i < rows; i++ {
		row := make([]any, 0, 6)
		row = append(row, sideCells(allies, i)...)
		row = append(row, sideCells(enemies, i)...)
		table.Append(row...)
	}
	table.Render()

	f := s.Focus
	ally, enemy := fmtRating(f.AllyAvgRating), fmtRating(f.EnemyAvgRating)
	switch {
	case f.AllyAvgRating > f.EnemyAvgRating:
		ally, enemy = cAhead.Sprint(ally), cBehind.Sprint(enemy)
	case f.AllyAvgRating < f.EnemyAvgRating:
		ally, enemy = cBehind.Sprint(ally), cAhead.Sprint(enemy)
	}
	fmt.Fprintf(w, "Team rating: allies %s vs enemies %s  |  Kills: allies %d, enemies %d\n\n",
		ally, enemy, f.AllyKills, f.EnemyKills)
}

func sideCells(rows []model.PlayerMatchStats, i int) []any {
	if i >= len(rows) {
		return []any{"", "", ""}
	}
	p := rows[i]
	return []any{string(p.Name), fmtRating(p.Rating), p.Class}
}

// PrintRivals prints the n players who killed the user most.
func PrintRivals(w io.Writer, s *model.MatchSnapshot, n int) {
	rivals := s.Focus.TopRivals(n)
	if len(rivals) == 0 {
		fmt.Fprintln(w, cMuted.Sprint("No rivals yet."))
		return
	}
	table := newTable(w)
	table.Header("RIVAL", "KILLED YOU", "RATING", "CLASS")
	for _, r := range rivals {
		p, _ := s.Player(r.Name)
		table.Append(string(r.Name), strconv.Itoa(r.Deaths), fmtRating(s.Ratings.Get(r.Name)), p.Class)
	}
	table.Render()
}

// PrintDeathBreakdown prints the user's deaths by killer class and by damage type.
func PrintDeathBreakdown(w io.Writer, f model.FocusStats) {
	printCounts(w, "CLASS", f.DeathsByClass)
	printCounts(w, "DAMAGE", f.DeathsByDamageType)
}

func printCounts(w io.Writer, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	table := newTable(w)
	table.Header(label, "DEATHS")
	for _, k := range keys {
		table.Append(k, strconv.Itoa(counts[k]))
	}
	table.Render()
}

// PrintScoreboard prints every player with estimated points.
// The user's row is marked with ">".
func PrintScoreboard(w io.Writer, s *model.MatchSnapshot) {
	table := newTable(w)
	table.Header(" ", "NAME", "SIDE", "CLASS", "K", "D", "K/D", "PTS", "STREAK", "BEST", "RATING")
	for i := range s.Players {
		p := &s.Players[i]
		marker := " "
		if p.Name == s.User {
			marker = ">"
		}
		table.Append(
			marker,
			string(p.Name),
			p.Side.String(),
			p.Class,
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			fmt.Sprintf("%.2f", p.KDRatio()),
			strconv.Itoa(p.Points),
			strconv.Itoa(p.CurrentStreak),
			strconv.Itoa(p.BestStreak),
			fmtRating(p.Rating),
		)
	}
	table.Render()
}

// PrintStreaks prints every player's kill runs in match order.
func PrintStreaks(w io.Writer, s *model.MatchSnapshot) {
	table := newTable(w)
	table.Header("NAME", "BEST", "RUNS")
	for _, p := range s.Players {
		runs := make([]string, len(p.Streaks))
		for i, r := range p.Streaks {
			runs[i] = strconv.Itoa(r)
		}
		table.Append(string(p.Name), strconv.Itoa(p.BestStreak), strings.Join(runs, " "))
	}
	table.Render()
}

// PrintDashboard prints the live view: header, own stats, teams, rivals and
// death breakdown.
func PrintDashboard(w io.Writer, s *model.MatchSnapshot) {
	PrintMatchHeader(w, s)
	PrintFocus(w, s)
	PrintTeams(w, s, DefaultRows)
	PrintRivals(w, s, DefaultRows)
	PrintDeathBreakdown(w, s.Focus)
}

// PrintStatus prints a refresh error in place of the dashboard.
func PrintStatus(w io.Writer, user string, err error) {
	if errors.Is(err, segment.ErrNoMatch) {
		fmt.Fprintln(w, cMuted.Sprintf("Waiting for %s to join a match...", user))
		return
	}
	fmt.Fprintln(w, cWarn.Sprintf("Refresh failed: %v", err))
}

// PrintWeapons prints the weapon categorisation table.
func PrintWeapons(w io.Writer, weapons []model.WeaponInfo) {
	table := newTable(w)
	table.Header("WEAPON", "CLASS", "DAMAGE")
	for _, wp := range weapons {
		table.Append(wp.Name, wp.Class, wp.DamageType)
	}
	table.Render()
}
