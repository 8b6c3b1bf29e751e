package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pable/go-tf2-metrics/internal/model"
)

// ErrWeaponNotFound is returned when a weapon has no row in the table.
var ErrWeaponNotFound = errors.New("weapon not found")

// UpsertWeapon validates w and inserts or replaces its row.
func (db *DB) UpsertWeapon(w model.WeaponInfo) error {
	if err := w.Validate(); err != nil {
		return err
	}
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO weapon(name, tf2_class, damage_type)
		VALUES (?, ?, ?)`,
		w.Name, w.Class, w.DamageType,
	)
	return err
}

// UpsertWeapons bulk-inserts weapons in a transaction. Nothing is written if
// any row fails validation.
func (db *DB) UpsertWeapons(weapons []model.WeaponInfo) error {
	for _, w := range weapons {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("weapon %q: %w", w.Name, err)
		}
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO weapon(name, tf2_class, damage_type)
		VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range weapons {
		if _, err := stmt.Exec(w.Name, w.Class, w.DamageType); err != nil {
			return fmt.Errorf("insert weapon %q: %w", w.Name, err)
		}
	}
	return tx.Commit()
}

// GetWeapon returns the row for name, or ErrWeaponNotFound.
func (db *DB) GetWeapon(name string) (model.WeaponInfo, error) {
	var w model.WeaponInfo
	err := db.conn.QueryRow(
		"SELECT name, tf2_class, damage_type FROM weapon WHERE name = ?", name,
	).Scan(&w.Name, &w.Class, &w.DamageType)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WeaponInfo{}, fmt.Errorf("%w: %q", ErrWeaponNotFound, name)
	}
	if err != nil {
		return model.WeaponInfo{}, err
	}
	return w, nil
}

// ListWeapons returns every row ordered by class, then name.
func (db *DB) ListWeapons() ([]model.WeaponInfo, error) {
	rows, err := db.conn.Query(`
		SELECT name, tf2_class, damage_type FROM weapon
		ORDER BY tf2_class, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WeaponInfo
	for rows.Next() {
		var w model.WeaponInfo
		if err := rows.Scan(&w.Name, &w.Class, &w.DamageType); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteWeapon removes the row for name, or returns ErrWeaponNotFound.
func (db *DB) DeleteWeapon(name string) error {
	res, err := db.conn.Exec("DELETE FROM weapon WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrWeaponNotFound, name)
	}
	return nil
}

// LoadWeaponTable reads the whole table into memory for one refresh cycle.
func (db *DB) LoadWeaponTable() (model.WeaponTable, error) {
	list, err := db.ListWeapons()
	if err != nil {
		return nil, fmt.Errorf("load weapons: %w", err)
	}
	t := make(model.WeaponTable, len(list))
	for _, w := range list {
		t[w.Name] = w
	}
	return t, nil
}

// UnknownWeapons returns the names that have no row in the table, keeping the
// input order.
func (db *DB) UnknownWeapons(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	rows, err := db.conn.Query(
		"SELECT name FROM weapon WHERE name IN ("+placeholders(len(names))+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		known[n] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []string
	for _, n := range names {
		if _, ok := known[n]; !ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
