package scenario

import "github.com/rshade/albedo/internal/engine"

// Summary aggregates a set of outcomes.
type Summary struct {
	Sites         int            `json:"sites"`
	Subtotal      float64        `json:"subtotal"`
	TotalSubsidy  float64        `json:"totalSubsidy"`
	NetTotal      float64        `json:"netTotal"`
	YearlySavings float64        `json:"yearlySavings"`
	Payback       engine.Payback `json:"payback"`
	CO2AbatedKg   float64        `json:"co2AbatedKg"`

	// Adjusted counts sites whose inputs needed correction.
	Adjusted int `json:"adjusted"`
}

// Summarize totals outcomes. Portfolio payback is summed net over summed
// savings, with the same not-computable rule as a single estimate.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Sites: len(outcomes)}
	for _, o := range outcomes {
		r := o.Result
		s.Subtotal += r.Subtotal
		s.TotalSubsidy += r.TotalSubsidy
		s.NetTotal += r.NetTotal
		s.YearlySavings += r.YearlySavings
		s.CO2AbatedKg += r.Impact.CO2AbatedKg
		if len(r.Adjustments) > 0 {
			s.Adjusted++
		}
	}
	if s.YearlySavings > 0 {
		s.Payback = engine.Payback{Years: s.NetTotal / s.YearlySavings, Computable: true}
	}
	return s
}
