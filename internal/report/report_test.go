package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/pable/go-tf2-metrics/internal/aggregator"
	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/segment"
)

var testWeapons = model.WeaponTable{
	"scattergun":           {Name: "scattergun", Class: "scout", DamageType: "bullet"},
	"tf_projectile_rocket": {Name: "tf_projectile_rocket", Class: "soldier", DamageType: "explosive"},
}

func testRaw() *model.RawMatch {
	return &model.RawMatch{
		ServerAddr: "10.0.0.1:27015",
		Lines:      9,
		Kills: []model.KillEvent{
			{Killer: "me", Victim: "soldier guy", Weapon: "scattergun"},
			{Killer: "me", Victim: "soldier guy", Weapon: "scattergun"},
			{Killer: "soldier guy", Victim: "me", Weapon: "tf_projectile_rocket"},
			{Killer: "medic", Victim: "me", Weapon: "syringegun_medic"},
			{Killer: "me", Victim: "medic", Weapon: "scattergun"},
		},
		Objectives: []model.ObjectiveEvent{
			{Players: []model.PlayerName{"me"}, Objective: "cp", Team: model.TeamBlue, Action: model.ActionCaptured},
		},
	}
}

func testSnapshot(t *testing.T) *model.MatchSnapshot {
	t.Helper()
	snap, err := aggregator.Aggregate("me", testRaw(), testWeapons)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	return &snap
}

func TestPrintDashboard(t *testing.T) {
	snap := testSnapshot(t)
	var buf bytes.Buffer
	PrintDashboard(&buf, snap)
	out := buf.String()

	for _, want := range []string{"Player: me", "10.0.0.1:27015", "soldier guy", "medic", "RIVAL", "explosive", "Team rating"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}
}

func TestPrintScoreboardMarksUser(t *testing.T) {
	snap := testSnapshot(t)
	var buf bytes.Buffer
	PrintScoreboard(&buf, snap)

	var marked int
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, ">") {
			marked++
			if !strings.Contains(line, " me ") {
				t.Errorf("marker on wrong row: %q", line)
			}
		}
	}
	if marked != 1 {
		t.Errorf("want one marked row, got %d", marked)
	}
}

func TestPrintStreaks(t *testing.T) {
	snap := testSnapshot(t)
	var buf bytes.Buffer
	PrintStreaks(&buf, snap)
	// me: two kills, killed twice, then one more kill.
	if !strings.Contains(buf.String(), "2 0 0 1") {
		t.Errorf("streak runs missing:\n%s", buf.String())
	}
}

func TestPrintRivalsEmpty(t *testing.T) {
	snap, err := aggregator.Aggregate("me", &model.RawMatch{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	PrintRivals(&buf, &snap, DefaultRows)
	if !strings.Contains(buf.String(), "No rivals yet.") {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintStatus(&buf, "me", fmt.Errorf("segment: %w", segment.ErrNoMatch))
	if !strings.Contains(buf.String(), "Waiting for me") {
		t.Errorf("no match: got %q", buf.String())
	}

	buf.Reset()
	PrintStatus(&buf, "me", errors.New("disk on fire"))
	if !strings.Contains(buf.String(), "disk on fire") {
		t.Errorf("error: got %q", buf.String())
	}
}

func TestPrintWeapons(t *testing.T) {
	var buf bytes.Buffer
	PrintWeapons(&buf, []model.WeaponInfo{{Name: "minigun", Class: "heavyweapons", DamageType: "bullet"}})
	for _, want := range []string{"WEAPON", "minigun", "heavyweapons", "bullet"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q:\n%s", want, buf.String())
		}
	}
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderRatingChart(t *testing.T) {
	hist := aggregator.RatingHistory(testRaw().Kills)

	var buf bytes.Buffer
	if err := RenderRatingChart(&buf, hist, nil); err != nil {
		t.Fatalf("RenderRatingChart: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}

	buf.Reset()
	if err := RenderRatingChart(&buf, hist, []model.PlayerName{"nobody"}); !errors.Is(err, ErrNoChartData) {
		t.Errorf("want ErrNoChartData, got %v", err)
	}
}

func TestRenderStreakChart(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderStreakChart(&buf, "me", []int{2, 0, 1}); err != nil {
		t.Fatalf("RenderStreakChart: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}

	if err := RenderStreakChart(&buf, "me", []int{0, 0}); !errors.Is(err, ErrNoChartData) {
		t.Errorf("want ErrNoChartData, got %v", err)
	}
}

func TestWriteXLSX(t *testing.T) {
	snap := testSnapshot(t)
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, snap); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	want := []string{SheetPlayers, SheetRivals, SheetDeaths, SheetStreaks}
	if got := f.GetSheetList(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("sheets: want %v, got %v", want, got)
	}

	rows, err := f.GetRows(SheetPlayers)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != len(snap.Players)+1 {
		t.Fatalf("want %d rows, got %d", len(snap.Players)+1, len(rows))
	}
	if rows[0][0] != "Name" || rows[1][0] != string(snap.Players[0].Name) {
		t.Errorf("unexpected players sheet: %v", rows[:2])
	}

	rivals, err := f.GetRows(SheetRivals)
	if err != nil {
		t.Fatal(err)
	}
	if len(rivals) != 3 {
		t.Errorf("want header plus 2 rivals, got %v", rivals)
	}
}
