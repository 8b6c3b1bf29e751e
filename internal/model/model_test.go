package model

import (
	"errors"
	"testing"
)

func TestTeamFromCode(t *testing.T) {
	if got := TeamFromCode("2"); got != TeamRed {
		t.Errorf("code 2: want red, got %v", got)
	}
	if got := TeamFromCode("3"); got != TeamBlue {
		t.Errorf("code 3: want blue, got %v", got)
	}
	if got := TeamFromCode("4"); got != TeamUnknown {
		t.Errorf("code 4: want unknown, got %v", got)
	}
}

func TestRatingTableDefault(t *testing.T) {
	tbl := RatingTable{"foo": 1615}
	if tbl.Get("foo") != 1615 {
		t.Errorf("foo: want 1615, got %f", tbl.Get("foo"))
	}
	if tbl.Get("nobody") != DefaultRating {
		t.Errorf("unseen: want %f, got %f", DefaultRating, tbl.Get("nobody"))
	}
}

func TestWeaponTableFallback(t *testing.T) {
	tbl := WeaponTable{
		"scattergun": {Name: "scattergun", Class: "scout", DamageType: "bullet"},
	}
	if tbl.Class("scattergun") != "scout" || tbl.DamageType("scattergun") != "bullet" {
		t.Errorf("scattergun lookup mismatch: %s/%s", tbl.Class("scattergun"), tbl.DamageType("scattergun"))
	}
	if tbl.Class("unknown_weapon") != ClassUnknown {
		t.Errorf("unknown class: want %s, got %s", ClassUnknown, tbl.Class("unknown_weapon"))
	}
	if tbl.DamageType("unknown_weapon") != DamageTypeUnknown {
		t.Errorf("unknown dmg: want %s, got %s", DamageTypeUnknown, tbl.DamageType("unknown_weapon"))
	}
}

func TestWeaponInfoValidate(t *testing.T) {
	if err := (WeaponInfo{Name: "knife", Class: "spy", DamageType: "melee"}).Validate(); err != nil {
		t.Errorf("valid weapon rejected: %v", err)
	}
	err := WeaponInfo{Name: "knife", Class: "wizard", DamageType: "melee"}.Validate()
	if !errors.Is(err, ErrInvalidClass) {
		t.Errorf("want ErrInvalidClass, got %v", err)
	}
	err = WeaponInfo{Name: "knife", Class: "spy", DamageType: "psychic"}.Validate()
	if !errors.Is(err, ErrInvalidDamageType) {
		t.Errorf("want ErrInvalidDamageType, got %v", err)
	}
}

func TestObjectiveEventHas(t *testing.T) {
	e := ObjectiveEvent{Players: []PlayerName{"bar", "foo bar"}}
	if !e.Has("foo bar") || !e.Has("bar") {
		t.Error("expected both players credited")
	}
	if e.Has("foo") {
		t.Error("foo should not be credited")
	}
}

func TestTopRivals(t *testing.T) {
	f := FocusStats{Rivals: map[PlayerName]int{"a": 1, "b": 3, "c": 3}}
	got := f.TopRivals(2)
	if len(got) != 2 {
		t.Fatalf("want 2 rivals, got %d", len(got))
	}
	if got[0].Name != "b" || got[1].Name != "c" {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestKDRatio(t *testing.T) {
	s := PlayerMatchStats{Kills: 6, Deaths: 0}
	if s.KDRatio() != 6 {
		t.Errorf("no deaths: want 6, got %f", s.KDRatio())
	}
	s.Deaths = 4
	if s.KDRatio() != 1.5 {
		t.Errorf("want 1.5, got %f", s.KDRatio())
	}
}
