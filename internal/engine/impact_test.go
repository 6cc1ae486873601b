package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/albedo/internal/catalog"
)

func TestImpact(t *testing.T) {
	tests := []struct {
		name       string
		areas      AreaInputs
		selection  Selection
		wantDelta  float64
		wantDrop   float64
		wantNew    float64
		wantKWh    float64
		wantValue  float64
		wantCO2    float64
	}{
		{
			name:      "reflective paint roof",
			areas:     DefaultAreas(),
			selection: DefaultSelection(),
			wantDelta: 0.65,
			wantDrop:  8.125,
			wantNew:   34.375,
			wantKWh:   4062.5,
			wantValue: 34531.25,
			wantCO2:   12000,
		},
		{
			name:      "baseline everywhere",
			areas:     DefaultAreas(),
			selection: sel("none", "none", "none"),
			wantNew:   42.5,
		},
		{
			name:      "paint roof and pavers",
			areas:     AreaInputs{Roof: 1000, Ground: 400},
			selection: sel("paint", "none", "pavers"),
			wantDelta: 1.05,
			wantDrop:  13.125,
			wantNew:   29.375,
			wantKWh:   6562.5,
			wantValue: 55781.25,
			wantCO2:   14000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := Estimate(catalog.Default(), tt.areas, UnitSqFt, tt.selection).Impact
			assert.InDelta(t, tt.wantDelta, imp.AlbedoDelta, eps)
			assert.InDelta(t, tt.wantDrop, imp.TempDropC, eps)
			assert.InDelta(t, tt.wantNew, imp.NewTempC, eps)
			assert.InDelta(t, tt.wantKWh, imp.EnergySavingsKWh, 1e-6)
			assert.InDelta(t, tt.wantValue, imp.EnergySavingsValue, 1e-6)
			assert.InDelta(t, tt.wantCO2, imp.CO2AbatedKg, 1e-6)
		})
	}
}

func TestImpact_NegativeDropSavesNoEnergy(t *testing.T) {
	opts := catalog.DefaultOptions()
	opts = append(opts, catalog.MaterialOption{
		ID: "black", Category: catalog.CategoryRoof, Name: "Black Membrane",
		UnitPrice: 10, Class: catalog.ClassCoating, Albedo: 0.05,
	})
	cat, err := catalog.New(opts)
	assert.NoError(t, err)

	imp := Estimate(cat, AreaInputs{Roof: 1000}, UnitSqFt, sel("black", "none", "none")).Impact
	assert.Less(t, imp.TempDropC, 0.0)
	assert.Greater(t, imp.NewTempC, DefaultBaseTempC)
	assert.InDelta(t, 0.0, imp.EnergySavingsKWh, 0)
}
