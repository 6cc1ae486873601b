package catalog

import "sync"

//nolint:gochecknoglobals // Built-in catalog is immutable and shared.
var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the built-in data fails
// validation, which can only happen through a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(DefaultOptions())
		if err != nil {
			panic("catalog: built-in catalog is invalid: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultSelectionIDs returns the option ids a fresh session starts with.
func DefaultSelectionIDs() map[Category]OptionID {
	return map[Category]OptionID{
		CategoryRoof:   RoofPaint,
		CategoryGarden: BaselineID,
		CategoryGround: BaselineID,
	}
}

// DefaultOptions returns a fresh copy of the built-in option table.
//
//nolint:funlen // Flat data table.
func DefaultOptions() []MaterialOption {
	return []MaterialOption{
		{
			ID: BaselineID, Category: CategoryRoof, Name: "Bare Concrete",
			UnitPrice: 0, Partner: "-", TemperatureEffect: 0,
			Description: "Standard Grey Slab. High heat absorption.",
			Class:       ClassBaseline, Albedo: 0.15, CO2OffsetKg: 0,
		},
		{
			ID: RoofPaint, Category: CategoryRoof, Name: "Reflective Paint",
			UnitPrice: 65, Partner: "Asian Paints", TemperatureEffect: -5,
			Description: "High-Albedo Coating. Re-coat every 5 years.",
			Class:       ClassCoating, Albedo: 0.80, CO2OffsetKg: 12,
		},
		{
			ID: RoofTiles, Category: CategoryRoof, Name: "Cool Tiles",
			UnitPrice: 120, Partner: "Johnson Endura", TemperatureEffect: -7,
			Description: "Ceramic Thermal Layer. Permanent solution.",
			Class:       ClassCoating, Albedo: 0.75, CO2OffsetKg: 15,
		},
		{
			ID: BaselineID, Category: CategoryGarden, Name: "No Vegetation",
			UnitPrice: 0, Partner: "-", TemperatureEffect: 0,
			Description: "Standard Wall/Floor. No active cooling.",
			Class:       ClassBaseline, Albedo: 0.25, CO2OffsetKg: 0,
		},
		{
			ID: GardenPots, Category: CategoryGarden, Name: "Potted Shrubs",
			UnitPrice: 250, Partner: "NurseryLive", TemperatureEffect: -3,
			Description: "Portable Containers. Flexible placement.",
			Class:       ClassVegetation, Albedo: 0.30, CO2OffsetKg: 8,
		},
		{
			ID: GardenHydro, Category: CategoryGarden, Name: "Bio-Wall",
			UnitPrice: 800, Partner: "Living Walls", TemperatureEffect: -6,
			Description: "Active Vertical System. Aesthetics + Cooling.",
			Class:       ClassVegetation, Albedo: 0.60, CO2OffsetKg: 25,
		},
		{
			ID: BaselineID, Category: CategoryGround, Name: "Asphalt Surface",
			UnitPrice: 0, Partner: "-", TemperatureEffect: 4,
			Description: "Impermeable Heat Island. Causes runoff.",
			Class:       ClassBaseline, Albedo: 0.05, CO2OffsetKg: 0,
		},
		{
			ID: GroundPavers, Category: CategoryGround, Name: "Grass Pavers",
			UnitPrice: 180, Partner: "UltraTech", TemperatureEffect: -8,
			Description: "Permeable Grid. Recharges groundwater.",
			Class:       ClassPermeable, Albedo: 0.45, CO2OffsetKg: 5,
		},
		{
			ID: GroundCanopy, Category: CategoryGround, Name: "Solar Canopy",
			UnitPrice: 1500, Partner: "Tata Power", TemperatureEffect: -10,
			Description: "Energy Generation. Maximum ROI.",
			Class:       ClassCanopy, Albedo: 0.30, CO2OffsetKg: 45,
		},
	}
}
