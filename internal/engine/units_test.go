package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"ft2", UnitSqFt, false},
		{"SQFT", UnitSqFt, false},
		{"sq.ft", UnitSqFt, false},
		{"m2", UnitSqM, false},
		{" sqm ", UnitSqM, false},
		{"acre", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnit_Conversions(t *testing.T) {
	assert.InDelta(t, 10.764, UnitSqM.ToSqFt(1), 0)
	assert.InDelta(t, 1.0, UnitSqFt.ToSqFt(1), 0)
	assert.Equal(t, "Sq.M", UnitSqM.Label())
	assert.Equal(t, "Sq.Ft", UnitSqFt.Label())
	assert.Equal(t, UnitSqM, UnitSqFt.Toggle())
	assert.Equal(t, UnitSqFt, UnitSqM.Toggle())
	assert.False(t, Unit("yd2").Valid())
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.CanopySavingsPerSqFt = -1
	require.ErrorIs(t, p.Validate(), ErrInvalidParams)

	p = DefaultParams()
	p.BaseTempC = -5
	require.NoError(t, p.Validate())

	p = DefaultParams()
	p.GreenSubsidyRate = 1e306
	require.ErrorIs(t, p.Validate(), ErrInvalidParams)

	p = DefaultParams()
	p.SolarSubsidyFlat = MaxRate
	require.NoError(t, p.Validate())
}

func TestAreaInputsAndSelection_With(t *testing.T) {
	a := DefaultAreas().With("ground", 50)
	assert.InDelta(t, 50.0, a.Ground, 0)
	assert.InDelta(t, 1000.0, a.Roof, 0)
	assert.InDelta(t, 0.0, a.Get("attic"), 0)

	s := DefaultSelection().With("garden", "hydro")
	assert.Equal(t, "hydro", string(s.Garden))
	assert.Equal(t, "paint", string(s.Roof))
}
