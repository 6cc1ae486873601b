package greenops

// EPA equivalency factors (2024 edition), kg CO2 per unit of activity.
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
//	equivalency = kg_CO2 / factor
const (
	// EPATreeSeedlingFactor is kg CO2 absorbed per urban tree seedling over 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAMilesDrivenFactor is kg CO2 per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPAHomeDayFactor is kg CO2 per day of average home electricity.
	EPAHomeDayFactor = 18.3

	// EPASmartphoneChargeFactor is kg CO2 per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822
)

// Unit conversions to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest abatement that gets equivalencies;
	// below it the figures round to nothing.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches to "~X.X million" notation.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches to "~X.X billion" notation.
	BillionThreshold = 1_000_000_000
)
