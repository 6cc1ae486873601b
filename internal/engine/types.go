// Package engine computes retrofit estimates: per-surface cost, subsidies,
// net cost, yearly savings, payback and a cooling-impact proxy.
//
// Estimate is a pure function of its inputs. It never fails for well-typed
// input; anomalies such as negative areas or unknown option ids are
// corrected and reported as Adjustments on the Result.
package engine

import (
	"github.com/rshade/albedo/internal/catalog"
)

// AreaInputs holds the entered area per surface, in the caller's unit.
type AreaInputs struct {
	Roof   float64 `json:"roof"   yaml:"roof"`
	Garden float64 `json:"garden" yaml:"garden"`
	Ground float64 `json:"ground" yaml:"ground"`
}

// DefaultAreas returns the areas a fresh session starts with.
func DefaultAreas() AreaInputs {
	return AreaInputs{Roof: 1000, Garden: 200, Ground: 400}
}

// Get returns the area of a category.
func (a AreaInputs) Get(cat catalog.Category) float64 {
	switch cat {
	case catalog.CategoryRoof:
		return a.Roof
	case catalog.CategoryGarden:
		return a.Garden
	case catalog.CategoryGround:
		return a.Ground
	default:
		return 0
	}
}

// With returns a copy with the area of cat replaced.
func (a AreaInputs) With(cat catalog.Category, v float64) AreaInputs {
	switch cat {
	case catalog.CategoryRoof:
		a.Roof = v
	case catalog.CategoryGarden:
		a.Garden = v
	case catalog.CategoryGround:
		a.Ground = v
	}
	return a
}

// Selection holds the chosen option id per surface.
type Selection struct {
	Roof   catalog.OptionID `json:"roof"   yaml:"roof"`
	Garden catalog.OptionID `json:"garden" yaml:"garden"`
	Ground catalog.OptionID `json:"ground" yaml:"ground"`
}

// DefaultSelection returns the starting selection: reflective paint on the
// roof and no retrofit elsewhere.
func DefaultSelection() Selection {
	ids := catalog.DefaultSelectionIDs()
	return Selection{
		Roof:   ids[catalog.CategoryRoof],
		Garden: ids[catalog.CategoryGarden],
		Ground: ids[catalog.CategoryGround],
	}
}

// Get returns the option id for a category.
func (s Selection) Get(cat catalog.Category) catalog.OptionID {
	switch cat {
	case catalog.CategoryRoof:
		return s.Roof
	case catalog.CategoryGarden:
		return s.Garden
	case catalog.CategoryGround:
		return s.Ground
	default:
		return ""
	}
}

// With returns a copy with the option of cat replaced.
func (s Selection) With(cat catalog.Category, id catalog.OptionID) Selection {
	switch cat {
	case catalog.CategoryRoof:
		s.Roof = id
	case catalog.CategoryGarden:
		s.Garden = id
	case catalog.CategoryGround:
		s.Ground = id
	}
	return s
}

// LineItem is the priced result for one surface.
type LineItem struct {
	Category catalog.Category `json:"category"`

	// Option is the option actually priced, after any baseline fallback.
	Option catalog.MaterialOption `json:"option"`

	// DisplayArea is the sanitized area in the input unit.
	DisplayArea float64 `json:"displayArea"`
	AreaSqFt    float64 `json:"areaSqFt"`

	Cost    float64 `json:"cost"`
	Savings float64 `json:"yearlySavings"`
}

// Payback is the break-even period. When yearly savings are zero the period
// cannot be computed: Years is 0 and Computable is false.
type Payback struct {
	Years      float64 `json:"years"`
	Computable bool    `json:"computable"`
}

// Impact is the cooling and carbon proxy for a selection.
type Impact struct {
	AlbedoDelta        float64 `json:"albedoDelta"`
	TempDropC          float64 `json:"tempDropC"`
	NewTempC           float64 `json:"newTempC"`
	EnergySavingsKWh   float64 `json:"energySavingsKWh"`
	EnergySavingsValue float64 `json:"energySavingsValue"`
	CO2AbatedKg        float64 `json:"co2AbatedKg"`
}

// AdjustmentKind classifies a corrected input.
type AdjustmentKind string

const (
	// AdjustmentAreaClamped means a negative, non-finite or implausibly large
	// area was replaced with 0.
	AdjustmentAreaClamped AdjustmentKind = "area_clamped"

	// AdjustmentSelectionFallback means an unknown option id was priced as the
	// category baseline.
	AdjustmentSelectionFallback AdjustmentKind = "selection_fallback"

	// AdjustmentUnitFallback means an unknown unit was treated as ft2.
	AdjustmentUnitFallback AdjustmentKind = "unit_fallback"

	// AdjustmentValueOverflow means a computed total was not finite and was
	// replaced with 0.
	AdjustmentValueOverflow AdjustmentKind = "value_overflow"
)

// Adjustment records one input correction.
type Adjustment struct {
	Category catalog.Category `json:"category,omitempty"`
	Kind     AdjustmentKind   `json:"kind"`
	Detail   string           `json:"detail"`
}

// Result is the full output of one estimate.
type Result struct {
	Unit  Unit        `json:"unit"`
	Lines [3]LineItem `json:"lines"`

	CostRoof   float64 `json:"costRoof"`
	CostGarden float64 `json:"costGarden"`
	CostGround float64 `json:"costGround"`
	Subtotal   float64 `json:"subtotal"`

	SolarSubsidy float64 `json:"solarSubsidy"`
	GreenSubsidy float64 `json:"greenSubsidy"`
	TotalSubsidy float64 `json:"totalSubsidy"`
	NetTotal     float64 `json:"netTotal"`

	YearlySavings float64 `json:"yearlySavings"`

	// RecoveryYears mirrors Payback.Years; 0 when not computable.
	RecoveryYears float64 `json:"recoveryYears"`
	Payback       Payback `json:"payback"`

	Impact      Impact       `json:"impact"`
	Adjustments []Adjustment `json:"adjustments,omitempty"`
}

// Line returns the line item for a category.
func (r Result) Line(cat catalog.Category) LineItem {
	for _, l := range r.Lines {
		if l.Category == cat {
			return l
		}
	}
	return LineItem{}
}
