package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/albedo/internal/catalog"
)

func TestDefault_Contents(t *testing.T) {
	c := catalog.Default()
	require.NotNil(t, c)
	assert.Equal(t, 9, c.Len())

	tests := []struct {
		cat    catalog.Category
		ids    []catalog.OptionID
		prices []float64
	}{
		{catalog.CategoryRoof, []catalog.OptionID{"none", "paint", "tiles"}, []float64{0, 65, 120}},
		{catalog.CategoryGarden, []catalog.OptionID{"none", "pots", "hydro"}, []float64{0, 250, 800}},
		{catalog.CategoryGround, []catalog.OptionID{"none", "pavers", "canopy"}, []float64{0, 180, 1500}},
	}
	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			opts := c.Options(tt.cat)
			require.Len(t, opts, len(tt.ids))
			for i, opt := range opts {
				assert.Equal(t, tt.ids[i], opt.ID)
				assert.InDelta(t, tt.prices[i], opt.UnitPrice, 0)
				assert.Equal(t, tt.cat, opt.Category)
			}
			assert.True(t, opts[0].IsBaseline())
		})
	}
}

func TestDefault_CanopyClass(t *testing.T) {
	opt, ok := catalog.Default().Lookup(catalog.CategoryGround, catalog.GroundCanopy)
	require.True(t, ok)
	assert.Equal(t, catalog.ClassCanopy, opt.Class)
	assert.Equal(t, "Tata Power", opt.Partner)
	assert.Equal(t, "-10°C", opt.TemperatureLabel())

	asphalt := catalog.Default().Baseline(catalog.CategoryGround)
	assert.Equal(t, "+4°C", asphalt.TemperatureLabel())
}

func TestOptions_ReturnsCopy(t *testing.T) {
	c := catalog.Default()
	opts := c.Options(catalog.CategoryRoof)
	opts[1].UnitPrice = 9999

	again, ok := c.Lookup(catalog.CategoryRoof, catalog.RoofPaint)
	require.True(t, ok)
	assert.InDelta(t, 65.0, again.UnitPrice, 0)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := catalog.Default().Lookup(catalog.CategoryRoof, "gold")
	assert.False(t, ok)
	assert.Nil(t, catalog.Default().Options("basement"))
}

func TestNext_Wraps(t *testing.T) {
	c := catalog.Default()
	assert.Equal(t, catalog.RoofPaint, c.Next(catalog.CategoryRoof, catalog.BaselineID, 1).ID)
	assert.Equal(t, catalog.BaselineID, c.Next(catalog.CategoryRoof, catalog.RoofTiles, 1).ID)
	assert.Equal(t, catalog.RoofTiles, c.Next(catalog.CategoryRoof, catalog.BaselineID, -1).ID)
	assert.Equal(t, catalog.RoofPaint, c.Next(catalog.CategoryRoof, "bogus", 1).ID)
}

func TestNew_Validation(t *testing.T) {
	base := func() []catalog.MaterialOption { return catalog.DefaultOptions() }

	tests := []struct {
		name    string
		mutate  func([]catalog.MaterialOption) []catalog.MaterialOption
		wantErr error
	}{
		{
			name: "duplicate id",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				return append(o, o[1])
			},
			wantErr: catalog.ErrDuplicateOption,
		},
		{
			name: "missing baseline",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				return o[1:]
			},
			wantErr: catalog.ErrMissingBaseline,
		},
		{
			name: "priced baseline",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				o[0].UnitPrice = 10
				return o
			},
			wantErr: catalog.ErrBaselinePriced,
		},
		{
			name: "unknown category",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				o[1].Category = "basement"
				return o
			},
			wantErr: catalog.ErrUnknownCategory,
		},
		{
			name: "negative price",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				o[1].UnitPrice = -1
				return o
			},
			wantErr: catalog.ErrInvalidOption,
		},
		{
			name: "price beyond upper bound",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				o[1].UnitPrice = 1e306
				return o
			},
			wantErr: catalog.ErrInvalidOption,
		},
		{
			name: "co2 offset beyond upper bound",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				o[1].CO2OffsetKg = catalog.MaxCO2OffsetKg * 2
				return o
			},
			wantErr: catalog.ErrInvalidOption,
		},
		{
			name: "albedo above one",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				o[1].Albedo = 1.2
				return o
			},
			wantErr: catalog.ErrInvalidOption,
		},
		{
			name: "non-baseline uses baseline class",
			mutate: func(o []catalog.MaterialOption) []catalog.MaterialOption {
				o[1].Class = catalog.ClassBaseline
				return o
			},
			wantErr: catalog.ErrInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.mutate(base()))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_BaselineMovedFirst(t *testing.T) {
	opts := catalog.DefaultOptions()
	// Swap roof baseline behind paint.
	opts[0], opts[1] = opts[1], opts[0]

	c, err := catalog.New(opts)
	require.NoError(t, err)
	roof := c.Options(catalog.CategoryRoof)
	assert.Equal(t, catalog.BaselineID, roof[0].ID)
	assert.Equal(t, catalog.RoofPaint, roof[1].ID)
	assert.Equal(t, catalog.RoofTiles, roof[2].ID)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want catalog.Category
	}{
		{"roof", catalog.CategoryRoof},
		{"Facade", catalog.CategoryGarden},
		{"garden", catalog.CategoryGarden},
		{"parking", catalog.CategoryGround},
		{" ground ", catalog.CategoryGround},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := catalog.ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := catalog.ParseCategory("attic")
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)
}

const validCatalogYAML = `schema_version: "1.2.0"
options:
  - {id: none, category: roof, name: Slab, class: baseline}
  - {id: white, category: roof, name: White Coat, unit_price: 40, class: coating, albedo: 0.7, co2_offset_kg: 500, co2_offset_unit: g}
  - {id: none, category: garden, name: Bare}
  - {id: none, category: ground, name: Tar}
  - {id: solar, category: ground, name: Panels, unit_price: 1000, class: canopy}
`

func TestParse(t *testing.T) {
	c, err := catalog.Parse([]byte(validCatalogYAML))
	require.NoError(t, err)

	white, ok := c.Lookup(catalog.CategoryRoof, "white")
	require.True(t, ok)
	assert.InDelta(t, 0.5, white.CO2OffsetKg, 1e-12)

	garden := c.Baseline(catalog.CategoryGarden)
	assert.Equal(t, catalog.ClassBaseline, garden.Class)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"missing version", "options: []\n", catalog.ErrUnsupportedSchema},
		{"future version", "schema_version: \"2.0.0\"\noptions: []\n", catalog.ErrUnsupportedSchema},
		{"bad version", "schema_version: banana\n", catalog.ErrUnsupportedSchema},
		{"empty", "", catalog.ErrInvalidOption},
		{"no baseline", "schema_version: \"1.0\"\noptions: []\n", catalog.ErrMissingBaseline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		_, err := catalog.Parse([]byte("schema_version: \"1.0\"\ncolour: red\n"))
		require.Error(t, err)
	})
}

func TestLoadFile_RoundTripsMarshal(t *testing.T) {
	data, err := catalog.Default().Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Options(catalog.CategoryGround), c.Options(catalog.CategoryGround))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
