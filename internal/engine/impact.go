package engine

import (
	"math"

	"github.com/rshade/albedo/internal/catalog"
)

// impact derives the cooling proxy from the priced lines.
//
//	albedoDelta = Σ selected albedo − Σ baseline albedo
//	tempDrop    = albedoDelta × AlbedoTempFactor
//	energy kWh  = roof sqft × CoolingKWhPerSqFtDegree × max(tempDrop, 0)
//	co2 kg      = Σ CO2OffsetKg × sqft over retrofitted surfaces
func (e *Estimator) impact(lines [3]LineItem) Impact {
	var imp Impact
	var roofSqFt float64

	for _, l := range lines {
		imp.AlbedoDelta += l.Option.Albedo - e.catalog.Baseline(l.Category).Albedo
		if !l.Option.IsBaseline() {
			imp.CO2AbatedKg += l.Option.CO2OffsetKg * l.AreaSqFt
		}
		if l.Category == catalog.CategoryRoof {
			roofSqFt = l.AreaSqFt
		}
	}

	imp.TempDropC = imp.AlbedoDelta * e.params.AlbedoTempFactor
	imp.NewTempC = e.params.BaseTempC - imp.TempDropC
	imp.EnergySavingsKWh = roofSqFt * e.params.CoolingKWhPerSqFtDegree * math.Max(imp.TempDropC, 0)
	imp.EnergySavingsValue = imp.EnergySavingsKWh * e.params.EnergyPricePerKWh

	return imp
}
