// Package catalog holds the static table of retrofit material options.
//
// A catalog is organised by surface category (roof, garden, ground). Each
// category lists its options in display order with the baseline option
// ("none") first. Catalogs are immutable once built: every accessor returns
// copies, so a *Catalog can be shared across goroutines without locking.
package catalog

import (
	"fmt"
	"strings"
)

// Category identifies one of the three retrofit surfaces.
type Category string

const (
	// CategoryRoof is the rooftop surface.
	CategoryRoof Category = "roof"

	// CategoryGarden is vertical or horizontal greenery, including facades.
	CategoryGarden Category = "garden"

	// CategoryGround is the ground-level paved surface, typically parking.
	CategoryGround Category = "ground"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryRoof, CategoryGarden, CategoryGround}
}

// Title returns the section heading used in rendered quotes.
func (c Category) Title() string {
	switch c {
	case CategoryRoof:
		return "Rooftop Strategy"
	case CategoryGarden:
		return "Greenery Integration"
	case CategoryGround:
		return "Ground & Parking"
	default:
		return string(c)
	}
}

// Label returns the short section label, e.g. "Rooftop".
func (c Category) Label() string {
	switch c {
	case CategoryRoof:
		return "Rooftop"
	case CategoryGarden:
		return "Garden"
	case CategoryGround:
		return "Parking"
	default:
		return string(c)
	}
}

// ParseCategory parses a category name. The aliases "facade" and "parking"
// are accepted for garden and ground.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "roof", "rooftop":
		return CategoryRoof, nil
	case "garden", "facade", "greenery":
		return CategoryGarden, nil
	case "ground", "parking":
		return CategoryGround, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// OptionID identifies a material option within its category.
type OptionID string

// BaselineID is the id of the no-retrofit option every category must carry.
const BaselineID OptionID = "none"

// Well-known option ids of the built-in catalog.
const (
	RoofPaint    OptionID = "paint"
	RoofTiles    OptionID = "tiles"
	GardenPots   OptionID = "pots"
	GardenHydro  OptionID = "hydro"
	GroundPavers OptionID = "pavers"
	GroundCanopy OptionID = "canopy"
)

// Class tags how an option participates in subsidy and savings rules,
// independent of its id.
type Class string

const (
	// ClassBaseline marks the no-retrofit option.
	ClassBaseline Class = "baseline"

	// ClassCoating is a reflective roof treatment (paint, tiles).
	ClassCoating Class = "coating"

	// ClassVegetation is planted greenery.
	ClassVegetation Class = "vegetation"

	// ClassPermeable is a permeable ground surface such as grass pavers.
	ClassPermeable Class = "permeable"

	// ClassCanopy is a solar canopy; it qualifies for the solar subsidy.
	ClassCanopy Class = "canopy"
)

func (c Class) valid() bool {
	switch c {
	case ClassBaseline, ClassCoating, ClassVegetation, ClassPermeable, ClassCanopy:
		return true
	default:
		return false
	}
}

// MaterialOption is one selectable retrofit option.
type MaterialOption struct {
	ID       OptionID `json:"id"       yaml:"id"`
	Category Category `json:"category" yaml:"category"`
	Name     string   `json:"name"     yaml:"name"`

	// UnitPrice is the installed cost per square foot.
	UnitPrice float64 `json:"unitPrice" yaml:"unit_price"`

	Partner string `json:"partner" yaml:"partner"`

	// TemperatureEffect is the advertised surface temperature change in °C.
	// It is informational and never enters cost arithmetic.
	TemperatureEffect float64 `json:"temperatureEffect" yaml:"temperature_effect"`

	Description string `json:"description" yaml:"description"`
	Class       Class  `json:"class"       yaml:"class"`

	// Albedo is the surface reflectance, 0..1.
	Albedo float64 `json:"albedo" yaml:"albedo"`

	// CO2OffsetKg is kg of CO2 abated per square foot per year.
	CO2OffsetKg float64 `json:"co2OffsetKg" yaml:"co2_offset_kg"`
}

// IsBaseline reports whether the option is the category's no-retrofit choice.
func (o MaterialOption) IsBaseline() bool {
	return o.ID == BaselineID
}

// TemperatureLabel renders the temperature effect the way the quote shows it,
// e.g. "-5°C", "+4°C" or "0°C".
func (o MaterialOption) TemperatureLabel() string {
	switch {
	case o.TemperatureEffect > 0:
		return fmt.Sprintf("+%g°C", o.TemperatureEffect)
	case o.TemperatureEffect < 0:
		return fmt.Sprintf("%g°C", o.TemperatureEffect)
	default:
		return "0°C"
	}
}
