package catalog

import (
	"fmt"
	"math"
)

// Upper bounds for option values. With areas capped by the engine these keep
// every cost and offset product finite.
const (
	MaxUnitPrice   = 1e9
	MaxCO2OffsetKg = 1e6
)

// Catalog is a validated, read-only set of material options.
type Catalog struct {
	options map[Category][]MaterialOption
	index   map[Category]map[OptionID]int
}

// New validates options and builds a Catalog from them.
//
// Validation rules:
//   - every option names a known category and a non-empty id
//   - ids are unique within a category
//   - every category carries a baseline ("none") option that is free and
//     classed as baseline; no other option may use the baseline class
//   - prices, albedo and CO2 offsets are finite and non-negative, albedo <= 1
//   - prices stay within MaxUnitPrice and offsets within MaxCO2OffsetKg
//
// Within each category the baseline is moved to the front; the relative
// order of the remaining options is preserved.
func New(options []MaterialOption) (*Catalog, error) {
	c := &Catalog{
		options: make(map[Category][]MaterialOption, len(Categories())),
		index:   make(map[Category]map[OptionID]int, len(Categories())),
	}
	for _, cat := range Categories() {
		c.index[cat] = make(map[OptionID]int)
	}

	for i, opt := range options {
		if opt.Class == "" && opt.ID == BaselineID {
			opt.Class = ClassBaseline
		}
		if err := validateOption(opt); err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}
		if _, dup := c.index[opt.Category][opt.ID]; dup {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateOption, opt.Category, opt.ID)
		}
		c.index[opt.Category][opt.ID] = len(c.options[opt.Category])
		c.options[opt.Category] = append(c.options[opt.Category], opt)
	}

	for _, cat := range Categories() {
		pos, ok := c.index[cat][BaselineID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingBaseline, cat)
		}
		base := c.options[cat][pos]
		if base.UnitPrice != 0 || base.Class != ClassBaseline {
			return nil, fmt.Errorf("%w: %s", ErrBaselinePriced, cat)
		}
		c.moveBaselineFirst(cat, pos)
	}

	return c, nil
}

func validateOption(opt MaterialOption) error {
	switch opt.Category {
	case CategoryRoof, CategoryGarden, CategoryGround:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, opt.Category)
	}
	if opt.ID == "" {
		return fmt.Errorf("%w: empty id in %s", ErrInvalidOption, opt.Category)
	}
	if !opt.Class.valid() {
		return fmt.Errorf("%w: %s/%s has class %q", ErrInvalidOption, opt.Category, opt.ID, opt.Class)
	}
	if opt.Class == ClassBaseline && opt.ID != BaselineID {
		return fmt.Errorf("%w: %s/%s uses the baseline class", ErrInvalidOption, opt.Category, opt.ID)
	}
	if !nonNegative(opt.UnitPrice) || !nonNegative(opt.CO2OffsetKg) {
		return fmt.Errorf("%w: %s/%s has a negative or non-finite value", ErrInvalidOption, opt.Category, opt.ID)
	}
	if opt.UnitPrice > MaxUnitPrice || opt.CO2OffsetKg > MaxCO2OffsetKg {
		return fmt.Errorf("%w: %s/%s price or CO2 offset exceeds its upper bound", ErrInvalidOption, opt.Category, opt.ID)
	}
	if !nonNegative(opt.Albedo) || opt.Albedo > 1 {
		return fmt.Errorf("%w: %s/%s albedo %v outside [0,1]", ErrInvalidOption, opt.Category, opt.ID, opt.Albedo)
	}
	if math.IsNaN(opt.TemperatureEffect) || math.IsInf(opt.TemperatureEffect, 0) {
		return fmt.Errorf("%w: %s/%s temperature effect is not finite", ErrInvalidOption, opt.Category, opt.ID)
	}
	return nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func (c *Catalog) moveBaselineFirst(cat Category, pos int) {
	if pos == 0 {
		return
	}
	opts := c.options[cat]
	base := opts[pos]
	copy(opts[1:pos+1], opts[:pos])
	opts[0] = base
	for i, o := range opts {
		c.index[cat][o.ID] = i
	}
}

// Options returns the options of a category in display order, baseline first.
// An unknown category yields nil.
func (c *Catalog) Options(cat Category) []MaterialOption {
	opts := c.options[cat]
	if opts == nil {
		return nil
	}
	out := make([]MaterialOption, len(opts))
	copy(out, opts)
	return out
}

// Lookup returns the option with the given id in a category.
func (c *Catalog) Lookup(cat Category, id OptionID) (MaterialOption, bool) {
	pos, ok := c.index[cat][id]
	if !ok {
		return MaterialOption{}, false
	}
	return c.options[cat][pos], true
}

// Baseline returns the no-retrofit option of a category. It is always present
// for the three known categories.
func (c *Catalog) Baseline(cat Category) MaterialOption {
	opt, _ := c.Lookup(cat, BaselineID)
	return opt
}

// Len returns the total number of options across all categories.
func (c *Catalog) Len() int {
	n := 0
	for _, opts := range c.options {
		n += len(opts)
	}
	return n
}

// Next returns the option following id in display order, wrapping around.
// Unknown ids start from the baseline.
func (c *Catalog) Next(cat Category, id OptionID, step int) MaterialOption {
	opts := c.options[cat]
	if len(opts) == 0 {
		return MaterialOption{}
	}
	pos, ok := c.index[cat][id]
	if !ok {
		pos = 0
	}
	n := len(opts)
	return opts[((pos+step)%n+n)%n]
}
