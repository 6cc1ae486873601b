package engine

import (
	"fmt"
	"math"
)

// Params holds every rate the estimate uses. The defaults are demonstration
// proxies, not physical models; deployments override them through config.
type Params struct {
	// Solar canopy subsidy.
	SolarSubsidyThresholdSqFt float64 `json:"solarSubsidyThresholdSqFt" yaml:"solar_subsidy_threshold_sqft"`
	SolarSubsidyFlat          float64 `json:"solarSubsidyFlat"          yaml:"solar_subsidy_flat"`
	SolarSubsidyPer100SqFt    float64 `json:"solarSubsidyPer100SqFt"    yaml:"solar_subsidy_per_100_sqft"`

	// GreenSubsidyRate is the share of roof and garden cost refunded.
	GreenSubsidyRate float64 `json:"greenSubsidyRate" yaml:"green_subsidy_rate"`

	// Yearly savings per square foot.
	RoofSavingsPerSqFt      float64 `json:"roofSavingsPerSqFt"      yaml:"roof_savings_per_sqft"`
	GardenSavingsPerSqFt    float64 `json:"gardenSavingsPerSqFt"    yaml:"garden_savings_per_sqft"`
	CanopySavingsPerSqFt    float64 `json:"canopySavingsPerSqFt"    yaml:"canopy_savings_per_sqft"`
	PermeableSavingsPerSqFt float64 `json:"permeableSavingsPerSqFt" yaml:"permeable_savings_per_sqft"`

	// Cooling impact proxy.
	BaseTempC               float64 `json:"baseTempC"               yaml:"base_temp_c"`
	AlbedoTempFactor        float64 `json:"albedoTempFactor"        yaml:"albedo_temp_factor"`
	CoolingKWhPerSqFtDegree float64 `json:"coolingKWhPerSqFtDegree" yaml:"cooling_kwh_per_sqft_degree"`
	EnergyPricePerKWh       float64 `json:"energyPricePerKWh"       yaml:"energy_price_per_kwh"`
}

// Default rate values.
const (
	DefaultSolarSubsidyThresholdSqFt = 300.0
	DefaultSolarSubsidyFlat          = 78000.0
	DefaultSolarSubsidyPer100SqFt    = 30000.0
	DefaultGreenSubsidyRate          = 0.10

	DefaultRoofSavingsPerSqFt      = 12.0
	DefaultGardenSavingsPerSqFt    = 8.0
	DefaultCanopySavingsPerSqFt    = 90.0
	DefaultPermeableSavingsPerSqFt = 5.0

	// DefaultBaseTempC is the average summer peak land surface temperature.
	DefaultBaseTempC               = 42.5
	DefaultAlbedoTempFactor        = 12.5
	DefaultCoolingKWhPerSqFtDegree = 0.5
	DefaultEnergyPricePerKWh       = 8.5
)

// DefaultParams returns the built-in rates.
func DefaultParams() Params {
	return Params{
		SolarSubsidyThresholdSqFt: DefaultSolarSubsidyThresholdSqFt,
		SolarSubsidyFlat:          DefaultSolarSubsidyFlat,
		SolarSubsidyPer100SqFt:    DefaultSolarSubsidyPer100SqFt,
		GreenSubsidyRate:          DefaultGreenSubsidyRate,
		RoofSavingsPerSqFt:        DefaultRoofSavingsPerSqFt,
		GardenSavingsPerSqFt:      DefaultGardenSavingsPerSqFt,
		CanopySavingsPerSqFt:      DefaultCanopySavingsPerSqFt,
		PermeableSavingsPerSqFt:   DefaultPermeableSavingsPerSqFt,
		BaseTempC:                 DefaultBaseTempC,
		AlbedoTempFactor:          DefaultAlbedoTempFactor,
		CoolingKWhPerSqFtDegree:   DefaultCoolingKWhPerSqFtDegree,
		EnergyPricePerKWh:         DefaultEnergyPricePerKWh,
	}
}

// MaxRate bounds every rate in Params.
const MaxRate = 1e9

// Validate checks every rate is finite, non-negative and at most MaxRate.
// BaseTempC may be negative but must be finite and within ±MaxRate.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"solar_subsidy_threshold_sqft", p.SolarSubsidyThresholdSqFt},
		{"solar_subsidy_flat", p.SolarSubsidyFlat},
		{"solar_subsidy_per_100_sqft", p.SolarSubsidyPer100SqFt},
		{"green_subsidy_rate", p.GreenSubsidyRate},
		{"roof_savings_per_sqft", p.RoofSavingsPerSqFt},
		{"garden_savings_per_sqft", p.GardenSavingsPerSqFt},
		{"canopy_savings_per_sqft", p.CanopySavingsPerSqFt},
		{"permeable_savings_per_sqft", p.PermeableSavingsPerSqFt},
		{"albedo_temp_factor", p.AlbedoTempFactor},
		{"cooling_kwh_per_sqft_degree", p.CoolingKWhPerSqFtDegree},
		{"energy_price_per_kwh", p.EnergyPricePerKWh},
	}
	for _, f := range fields {
		if !isFinite(f.v) || f.v < 0 || f.v > MaxRate {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParams, f.name, f.v)
		}
	}
	if !isFinite(p.BaseTempC) || math.Abs(p.BaseTempC) > MaxRate {
		return fmt.Errorf("%w: base_temp_c = %v", ErrInvalidParams, p.BaseTempC)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
