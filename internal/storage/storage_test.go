package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/pable/go-tf2-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWeaponUpsertAndGet(t *testing.T) {
	db := openMemDB(t)

	w := model.WeaponInfo{Name: "scattergun", Class: "scout", DamageType: "bullet"}
	if err := db.UpsertWeapon(w); err != nil {
		t.Fatalf("UpsertWeapon: %v", err)
	}
	got, err := db.GetWeapon("scattergun")
	if err != nil {
		t.Fatalf("GetWeapon: %v", err)
	}
	if got != w {
		t.Errorf("want %+v, got %+v", w, got)
	}

	// Replacing the row changes the category.
	w.DamageType = "critical"
	if err := db.UpsertWeapon(w); err != nil {
		t.Fatalf("UpsertWeapon replace: %v", err)
	}
	got, _ = db.GetWeapon("scattergun")
	if got.DamageType != "critical" {
		t.Errorf("replace: want critical, got %q", got.DamageType)
	}

	if _, err := db.GetWeapon("nope"); !errors.Is(err, ErrWeaponNotFound) {
		t.Errorf("want ErrWeaponNotFound, got %v", err)
	}
}

func TestWeaponValidation(t *testing.T) {
	db := openMemDB(t)

	err := db.UpsertWeapon(model.WeaponInfo{Name: "bat", Class: "batman", DamageType: "melee"})
	if !errors.Is(err, model.ErrInvalidClass) {
		t.Errorf("want ErrInvalidClass, got %v", err)
	}
	err = db.UpsertWeapon(model.WeaponInfo{Name: "bat", Class: "scout", DamageType: "laser"})
	if !errors.Is(err, model.ErrInvalidDamageType) {
		t.Errorf("want ErrInvalidDamageType, got %v", err)
	}

	batch := []model.WeaponInfo{
		{Name: "bat", Class: "scout", DamageType: "melee"},
		{Name: "wrench", Class: "engineer", DamageType: "sharp"},
	}
	if err := db.UpsertWeapons(batch); err == nil {
		t.Error("expected batch to be rejected")
	}
	if _, err := db.GetWeapon("bat"); !errors.Is(err, ErrWeaponNotFound) {
		t.Error("rejected batch must not write any row")
	}
}

func TestListAndLoadWeapons(t *testing.T) {
	db := openMemDB(t)

	batch := []model.WeaponInfo{
		{Name: "tf_projectile_rocket", Class: "soldier", DamageType: "explosive"},
		{Name: "scattergun", Class: "scout", DamageType: "bullet"},
		{Name: "shotgun_soldier", Class: "soldier", DamageType: "bullet"},
	}
	if err := db.UpsertWeapons(batch); err != nil {
		t.Fatalf("UpsertWeapons: %v", err)
	}

	list, err := db.ListWeapons()
	if err != nil {
		t.Fatalf("ListWeapons: %v", err)
	}
	want := []string{"scattergun", "shotgun_soldier", "tf_projectile_rocket"}
	if len(list) != len(want) {
		t.Fatalf("want %d rows, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("row %d: want %s, got %s", i, name, list[i].Name)
		}
	}

	table, err := db.LoadWeaponTable()
	if err != nil {
		t.Fatalf("LoadWeaponTable: %v", err)
	}
	if table.Class("tf_projectile_rocket") != "soldier" {
		t.Errorf("class lookup: got %q", table.Class("tf_projectile_rocket"))
	}
	if table.Class("unknown") != model.ClassUnknown || table.DamageType("unknown") != model.DamageTypeUnknown {
		t.Error("unknown weapon must fall back to the sentinel categories")
	}
}

func TestDeleteWeapon(t *testing.T) {
	db := openMemDB(t)
	if err := db.UpsertWeapon(model.WeaponInfo{Name: "knife", Class: "spy", DamageType: "melee"}); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteWeapon("knife"); err != nil {
		t.Fatalf("DeleteWeapon: %v", err)
	}
	if err := db.DeleteWeapon("knife"); !errors.Is(err, ErrWeaponNotFound) {
		t.Errorf("second delete: want ErrWeaponNotFound, got %v", err)
	}
}

func TestUnknownWeapons(t *testing.T) {
	db := openMemDB(t)
	if err := db.UpsertWeapon(model.WeaponInfo{Name: "minigun", Class: "heavyweapons", DamageType: "bullet"}); err != nil {
		t.Fatal(err)
	}
	got, err := db.UnknownWeapons([]string{"sniperrifle", "minigun", "world"})
	if err != nil {
		t.Fatalf("UnknownWeapons: %v", err)
	}
	if len(got) != 2 || got[0] != "sniperrifle" || got[1] != "world" {
		t.Errorf("want [sniperrifle world], got %v", got)
	}
	if got, _ := db.UnknownWeapons(nil); got != nil {
		t.Errorf("nil input: got %v", got)
	}
}

func TestOpenFileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tf2_weapons.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.UpsertWeapon(model.WeaponInfo{Name: "flamethrower", Class: "pyro", DamageType: "fire"}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if _, err := db.GetWeapon("flamethrower"); err != nil {
		t.Errorf("row lost across reopen: %v", err)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	if err := db.UpsertWeapon(model.WeaponInfo{Name: "knife", Class: "spy", DamageType: "melee"}); err != nil {
		t.Fatal(err)
	}

	cols, rows, err := db.QueryRaw("SELECT name, tf2_class, NULL AS extra, 2 AS n FROM weapon")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 4 || cols[0] != "name" || cols[3] != "n" {
		t.Errorf("columns: %v", cols)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	if rows[0][0] != "knife" || rows[0][1] != "spy" || rows[0][2] != "NULL" || rows[0][3] != "2" {
		t.Errorf("row: %v", rows[0])
	}

	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}
