package greenops

import (
	"math"
	"strings"
)

// unitFactor maps a mass unit (optionally suffixed "CO2" or "CO2e") to its
// kilogram factor.
func unitFactor(unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, "co2e")
	u = strings.TrimSuffix(u, "co2")
	switch u {
	case "g":
		return GramsToKg, true
	case "kg":
		return KgToKg, true
	case "t":
		return TonsToKg, true
	case "lb":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a CO2 mass to kilograms.
// Recognized units (case-insensitive): g, kg, t, lb, each optionally with a
// "CO2" or "CO2e" suffix.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}
	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}
	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// IsRecognizedUnit reports whether NormalizeToKg accepts unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}
