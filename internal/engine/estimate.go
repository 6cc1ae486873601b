package engine

import (
	"fmt"
	"math"

	"github.com/rshade/albedo/internal/catalog"
)

// MaxAreaSqFt bounds a single surface. Larger entries are treated like
// non-finite input so that no downstream product overflows.
const MaxAreaSqFt = 1e12

// Estimator prices selections against one catalog with one set of rates.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	catalog *catalog.Catalog
	params  Params
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithParams overrides the default rates.
func WithParams(p Params) Option {
	return func(e *Estimator) { e.params = p }
}

// NewEstimator returns an Estimator over cat. A nil catalog selects the
// built-in catalog.
func NewEstimator(cat *catalog.Catalog, opts ...Option) *Estimator {
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Estimator{catalog: cat, params: DefaultParams()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the estimator's catalog.
func (e *Estimator) Catalog() *catalog.Catalog { return e.catalog }

// Params returns the estimator's rates.
func (e *Estimator) Params() Params { return e.params }

// Estimate prices a selection with the built-in rates.
func Estimate(cat *catalog.Catalog, areas AreaInputs, unit Unit, sel Selection) Result {
	return NewEstimator(cat).Estimate(areas, unit, sel)
}

// Estimate computes the full result for areas entered in unit.
//
// Per surface the area is sanitized and converted to square feet; the
// baseline option costs nothing, any other option costs area × unit price.
// A solar canopy on the ground earns the flat subsidy above the threshold
// area and a per-100-sqft subsidy at or below it. Roof and garden retrofits
// earn the green subsidy on their cost. The net total never drops below
// zero. Payback is net total over yearly savings when savings are positive.
//
// No intermediate value is rounded.
func (e *Estimator) Estimate(areas AreaInputs, unit Unit, sel Selection) Result {
	var res Result

	if !unit.Valid() {
		res.Adjustments = append(res.Adjustments, Adjustment{
			Kind:   AdjustmentUnitFallback,
			Detail: fmt.Sprintf("unit %q treated as %s", unit, UnitSqFt),
		})
		unit = UnitSqFt
	}
	res.Unit = unit

	for i, cat := range catalog.Categories() {
		area, ok := SanitizeArea(areas.Get(cat), unit)
		if !ok {
			res.Adjustments = append(res.Adjustments, Adjustment{
				Category: cat,
				Kind:     AdjustmentAreaClamped,
				Detail:   fmt.Sprintf("area %v replaced with 0", areas.Get(cat)),
			})
		}

		opt, found := e.resolve(cat, sel.Get(cat))
		if !found {
			res.Adjustments = append(res.Adjustments, Adjustment{
				Category: cat,
				Kind:     AdjustmentSelectionFallback,
				Detail:   fmt.Sprintf("option %q not in catalog, priced as %s", sel.Get(cat), catalog.BaselineID),
			})
		}

		sqft := unit.ToSqFt(area)
		line := LineItem{
			Category:    cat,
			Option:      opt,
			DisplayArea: area,
			AreaSqFt:    sqft,
			Savings:     e.savingsRate(cat, opt) * sqft,
		}
		if !opt.IsBaseline() {
			line.Cost = sqft * opt.UnitPrice
		}
		res.Lines[i] = line
	}

	roof, garden, ground := res.Lines[0], res.Lines[1], res.Lines[2]
	res.CostRoof = roof.Cost
	res.CostGarden = garden.Cost
	res.CostGround = ground.Cost
	res.Subtotal = roof.Cost + garden.Cost + ground.Cost

	res.SolarSubsidy = e.solarSubsidy(ground)
	if !roof.Option.IsBaseline() {
		res.GreenSubsidy += roof.Cost * e.params.GreenSubsidyRate
	}
	if !garden.Option.IsBaseline() {
		res.GreenSubsidy += garden.Cost * e.params.GreenSubsidyRate
	}
	res.TotalSubsidy = res.SolarSubsidy + res.GreenSubsidy
	res.NetTotal = math.Max(0, res.Subtotal-res.TotalSubsidy)

	res.YearlySavings = roof.Savings + garden.Savings + ground.Savings
	if res.YearlySavings > 0 {
		res.Payback = Payback{Years: res.NetTotal / res.YearlySavings, Computable: true}
	}
	res.RecoveryYears = res.Payback.Years

	res.Impact = e.impact(res.Lines)
	clampNonFinite(&res)

	return res
}

// clampNonFinite replaces any value that left the float range with 0 and
// records an adjustment for it. An overflowed payback is not computable.
func clampNonFinite(res *Result) {
	type field struct {
		name string
		v    *float64
	}
	fields := []field{
		{"costRoof", &res.CostRoof},
		{"costGarden", &res.CostGarden},
		{"costGround", &res.CostGround},
		{"subtotal", &res.Subtotal},
		{"solarSubsidy", &res.SolarSubsidy},
		{"greenSubsidy", &res.GreenSubsidy},
		{"totalSubsidy", &res.TotalSubsidy},
		{"netTotal", &res.NetTotal},
		{"yearlySavings", &res.YearlySavings},
		{"payback", &res.Payback.Years},
		{"tempDropC", &res.Impact.TempDropC},
		{"newTempC", &res.Impact.NewTempC},
		{"energySavingsKWh", &res.Impact.EnergySavingsKWh},
		{"energySavingsValue", &res.Impact.EnergySavingsValue},
		{"co2AbatedKg", &res.Impact.CO2AbatedKg},
	}
	for i := range res.Lines {
		cat := string(res.Lines[i].Category)
		fields = append(fields,
			field{cat + ".cost", &res.Lines[i].Cost},
			field{cat + ".savings", &res.Lines[i].Savings},
		)
	}

	for _, f := range fields {
		if isFinite(*f.v) {
			continue
		}
		res.Adjustments = append(res.Adjustments, Adjustment{
			Kind:   AdjustmentValueOverflow,
			Detail: fmt.Sprintf("%s %v replaced with 0", f.name, *f.v),
		})
		*f.v = 0
		if f.v == &res.Payback.Years || f.v == &res.YearlySavings {
			res.Payback = Payback{}
		}
	}
	res.RecoveryYears = res.Payback.Years
}

// SanitizeArea returns a usable area and whether v was accepted as is.
// NaN, infinities, negatives and areas above MaxAreaSqFt become 0.
func SanitizeArea(v float64, unit Unit) (float64, bool) {
	if !isFinite(v) || v < 0 || unit.ToSqFt(v) > MaxAreaSqFt {
		return 0, false
	}
	return v, true
}

// resolve looks up id, falling back to the category baseline. An empty id
// selects the baseline without counting as a fallback.
func (e *Estimator) resolve(cat catalog.Category, id catalog.OptionID) (catalog.MaterialOption, bool) {
	if id == "" {
		return e.catalog.Baseline(cat), true
	}
	if opt, ok := e.catalog.Lookup(cat, id); ok {
		return opt, true
	}
	return e.catalog.Baseline(cat), false
}

// ResolveSelection returns the selection that Estimate would actually price,
// along with an adjustment per unknown id.
func (e *Estimator) ResolveSelection(sel Selection) (Selection, []Adjustment) {
	var adjustments []Adjustment
	for _, cat := range catalog.Categories() {
		if sel.Get(cat) == "" {
			sel = sel.With(cat, catalog.BaselineID)
			continue
		}
		if _, ok := e.catalog.Lookup(cat, sel.Get(cat)); !ok {
			adjustments = append(adjustments, Adjustment{
				Category: cat,
				Kind:     AdjustmentSelectionFallback,
				Detail:   fmt.Sprintf("option %q not in catalog, priced as %s", sel.Get(cat), catalog.BaselineID),
			})
			sel = sel.With(cat, catalog.BaselineID)
		}
	}
	return sel, adjustments
}

func (e *Estimator) savingsRate(cat catalog.Category, opt catalog.MaterialOption) float64 {
	if opt.IsBaseline() {
		return 0
	}
	switch cat {
	case catalog.CategoryRoof:
		return e.params.RoofSavingsPerSqFt
	case catalog.CategoryGarden:
		return e.params.GardenSavingsPerSqFt
	case catalog.CategoryGround:
		switch opt.Class {
		case catalog.ClassCanopy:
			return e.params.CanopySavingsPerSqFt
		case catalog.ClassPermeable:
			return e.params.PermeableSavingsPerSqFt
		}
	}
	return 0
}

// solarSubsidy applies only to a canopy on the ground surface. The threshold
// comparison is strict, so exactly-threshold areas take the proportional rate.
func (e *Estimator) solarSubsidy(ground LineItem) float64 {
	if ground.Option.Class != catalog.ClassCanopy {
		return 0
	}
	if ground.AreaSqFt > e.params.SolarSubsidyThresholdSqFt {
		return e.params.SolarSubsidyFlat
	}
	return (ground.AreaSqFt / 100) * e.params.SolarSubsidyPer100SqFt
}
