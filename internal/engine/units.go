package engine

import (
	"fmt"
	"strings"
)

// SqFtPerSqM converts square metres to square feet.
const SqFtPerSqM = 10.764

// Unit is the area unit the caller entered.
type Unit string

const (
	// UnitSqFt is square feet, the canonical pricing unit.
	UnitSqFt Unit = "ft2"

	// UnitSqM is square metres.
	UnitSqM Unit = "m2"
)

// ParseUnit accepts ft2, ft, sqft, sq.ft and m2, m, sqm, sq.m in any case.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ft2", "ft", "sqft", "sq.ft", "sq ft":
		return UnitSqFt, nil
	case "m2", "m", "sqm", "sq.m", "sq m":
		return UnitSqM, nil
	default:
		return "", fmt.Errorf("%w: %q (want ft2 or m2)", ErrUnknownUnit, s)
	}
}

// Valid reports whether u is one of the two supported units.
func (u Unit) Valid() bool {
	return u == UnitSqFt || u == UnitSqM
}

// ToSqFt converts an area in u to square feet. Anything other than m2 is
// treated as square feet.
func (u Unit) ToSqFt(area float64) float64 {
	if u == UnitSqM {
		return area * SqFtPerSqM
	}
	return area
}

// Label returns the display label used in quotes: "Sq.Ft" or "Sq.M".
func (u Unit) Label() string {
	if u == UnitSqM {
		return "Sq.M"
	}
	return "Sq.Ft"
}

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == UnitSqM {
		return UnitSqFt
	}
	return UnitSqM
}
