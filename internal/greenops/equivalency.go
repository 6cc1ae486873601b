package greenops

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Calculate computes equivalencies for a yearly abatement in kilograms CO2.
//
// Values below MinEquivalencyThresholdKg yield an empty output and no error.
// Negative input returns ErrNegativeValue; NaN, infinite input or an
// overflowing quotient returns ErrCalculationOverflow.
//
// Results are ordered trees, miles, home-days, phones. DisplayText quotes the
// first two; CompactText is "(≈ {trees} trees, {miles} mi)".
func Calculate(kg float64) (EquivalencyOutput, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	factors := []struct {
		typ    EquivalencyType
		factor float64
		label  string
	}{
		{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years"},
		{EquivalencyMilesAvoided, EPAMilesDrivenFactor, "miles not driven"},
		{EquivalencyHomeDays, EPAHomeDayFactor, "days of home electricity"},
		{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged"},
	}

	results := make([]EquivalencyResult, 0, len(factors))
	for _, f := range factors {
		v := kg / f.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           f.typ,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          f.label,
		})
	}

	trees, miles := results[0].FormattedValue, results[1].FormattedValue
	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: fmt.Sprintf("Each year, like growing ~%s tree seedlings or not driving ~%s miles", trees, miles),
		CompactText: fmt.Sprintf("(≈ %s trees, %s mi)", trees, miles),
	}, nil
}

// CalculateIn normalizes value from unit to kilograms and calls Calculate.
func CalculateIn(value float64, unit string) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(value, unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	return Calculate(kg)
}

// Describe is Calculate for display paths: failures are logged and produce an
// empty output instead of an error.
func Describe(kg float64) EquivalencyOutput {
	out, err := Calculate(kg)
	if err != nil {
		log.Warn().Err(err).Float64("kg", kg).Msg("co2 equivalency calculation failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

// formatEquivalencyValue scales large values and otherwise rounds to a
// comma-separated integer.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
