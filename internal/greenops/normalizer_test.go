package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToKg(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		wantKg  float64
		wantErr error
	}{
		{name: "grams", value: 1000, unit: "g", wantKg: 1},
		{name: "kilograms", value: 150, unit: "kg", wantKg: 150},
		{name: "tons", value: 1, unit: "t", wantKg: 1000},
		{name: "pounds", value: 10, unit: "lb", wantKg: 4.53592},
		{name: "co2e suffix", value: 2, unit: "tCO2e", wantKg: 2000},
		{name: "co2 suffix upper case", value: 500, unit: "GCO2", wantKg: 0.5},
		{name: "unknown unit", value: 1, unit: "oz", wantErr: ErrInvalidUnit},
		{name: "negative", value: -1, unit: "kg", wantErr: ErrNegativeValue},
		{name: "nan", value: math.NaN(), unit: "kg", wantErr: ErrCalculationOverflow},
		{name: "overflow", value: math.MaxFloat64, unit: "t", wantErr: ErrCalculationOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeToKg(tt.value, tt.unit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKg, got, 1e-9)
		})
	}
}

func TestIsRecognizedUnit(t *testing.T) {
	assert.True(t, IsRecognizedUnit("kgCO2e"))
	assert.True(t, IsRecognizedUnit(" lb "))
	assert.False(t, IsRecognizedUnit("stone"))
	assert.False(t, IsRecognizedUnit(""))
}
