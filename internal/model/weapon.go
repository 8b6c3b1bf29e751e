package model

import (
	"errors"
	"fmt"
)

// Sentinel categories used when a weapon is missing from the weapon table.
const (
	ClassUnknown      = "many"
	DamageTypeUnknown = "melee"
)

var (
	ErrInvalidClass      = errors.New("invalid class")
	ErrInvalidDamageType = errors.New("invalid damage type")
)

// Classes lists the valid class categories, "many" meaning shared or unknown.
var Classes = []string{
	"scout", "soldier", "pyro", "demoman", "heavyweapons",
	"engineer", "medic", "sniper", "spy", ClassUnknown,
}

// DamageTypes lists the valid damage type categories.
var DamageTypes = []string{
	"bullet", "explosive", "fire", "bleed", "melee",
	"critical", "fall", "crush", "drowning",
}

// WeaponInfo is one row of the weapon categorisation table.
type WeaponInfo struct {
	Name       string
	Class      string
	DamageType string
}

// Validate checks the class and damage type against the known categories.
func (w WeaponInfo) Validate() error {
	if w.Name == "" {
		return errors.New("weapon name must not be empty")
	}
	if !contains(Classes, w.Class) {
		return fmt.Errorf("%w: %q", ErrInvalidClass, w.Class)
	}
	if !contains(DamageTypes, w.DamageType) {
		return fmt.Errorf("%w: %q", ErrInvalidDamageType, w.DamageType)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// WeaponLookup resolves a weapon name to its class and damage type.
// Implementations fall back to ClassUnknown and DamageTypeUnknown.
type WeaponLookup interface {
	Class(weapon string) string
	DamageType(weapon string) string
}

// WeaponTable is an in-memory snapshot of the weapon table.
type WeaponTable map[string]WeaponInfo

func (t WeaponTable) Class(weapon string) string {
	if w, ok := t[weapon]; ok && w.Class != "" {
		return w.Class
	}
	return ClassUnknown
}

func (t WeaponTable) DamageType(weapon string) string {
	if w, ok := t[weapon]; ok && w.DamageType != "" {
		return w.DamageType
	}
	return DamageTypeUnknown
}

// Known reports whether weapon has a row in the table.
func (t WeaponTable) Known(weapon string) bool {
	_, ok := t[weapon]
	return ok
}
