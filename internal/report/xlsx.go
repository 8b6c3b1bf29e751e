package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/pable/go-tf2-metrics/internal/model"
)

// Workbook sheet names.
const (
	SheetPlayers = "Players"
	SheetRivals  = "Rivals"
	SheetDeaths  = "Deaths"
	SheetStreaks = "Streaks"
)

// WriteXLSX writes the snapshot as a workbook with one sheet per table.
func WriteXLSX(w io.Writer, s *model.MatchSnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SheetPlayers); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetRivals, SheetDeaths, SheetStreaks} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	players := [][]any{{"Name", "Side", "Class", "Kills", "Deaths", "Suicides", "K/D", "Points", "Streak", "Best", "Rating"}}
	for _, p := range s.Players {
		players = append(players, []any{
			string(p.Name), p.Side.String(), p.Class,
			p.Kills, p.Deaths, p.Suicides, p.KDRatio(), p.Points,
			p.CurrentStreak, p.BestStreak, p.Rating,
		})
	}

	rivals := [][]any{{"Rival", "Killed " + string(s.User)}}
	for _, r := range s.Focus.TopRivals(-1) {
		rivals = append(rivals, []any{string(r.Name), r.Deaths})
	}

	deaths := [][]any{{"Category", "Value", "Deaths"}}
	deaths = appendCounts(deaths, "class", s.Focus.DeathsByClass)
	deaths = appendCounts(deaths, "damage", s.Focus.DeathsByDamageType)

	streaks := [][]any{{"Name", "Runs..."}}
	for _, p := range s.Players {
		row := []any{string(p.Name)}
		for _, r := range p.Streaks {
			row = append(row, r)
		}
		streaks = append(streaks, row)
	}

	for sheet, rows := range map[string][][]any{
		SheetPlayers: players,
		SheetRivals:  rivals,
		SheetDeaths:  deaths,
		SheetStreaks: streaks,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func appendCounts(rows [][]any, category string, counts map[string]int) [][]any {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, []any{category, k, counts[k]})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
