// Package export renders estimates as quotes: text tables, markdown, JSON,
// NDJSON, CSV and PDF.
//
// Rendering is a projection of an engine.Result. Nothing here recomputes
// prices or subsidies; every figure comes straight from the result, and
// identical input renders identical bytes.
package export

import (
	"fmt"
	"math"
	"time"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/greenops"
)

// DefaultTitle is the quote heading.
const DefaultTitle = "Albedo Estimate"

// DefaultCurrency is the currency code printed before amounts.
const DefaultCurrency = "INR"

// Input is everything a quote is built from.
type Input struct {
	Result engine.Result

	// Areas and Selection are the inputs as entered, used to annotate rows
	// whose entry was corrected by the engine.
	Areas     engine.AreaInputs
	Selection engine.Selection
	Unit      engine.Unit

	Title       string
	Currency    string
	Precision   int
	GeneratedAt time.Time
}

// Row is one rendered section of a quote.
type Row struct {
	Category catalog.Category `json:"category"`
	Section  string           `json:"section"`
	Area     string           `json:"area"`
	Material string           `json:"material"`
	Partner  string           `json:"partner"`
	Temp     string           `json:"temperature"`
	Cost     string           `json:"cost"`
	Note     string           `json:"note,omitempty"`
}

// Document is the formatted form of a quote.
type Document struct {
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
	Unit  string `json:"unit"`
	Rows  []Row  `json:"rows"`

	Subtotal      string `json:"subtotal"`
	SolarSubsidy  string `json:"solarSubsidy"`
	GreenSubsidy  string `json:"greenSubsidy"`
	TotalSubsidy  string `json:"totalSubsidy"`
	NetTotal      string `json:"netTotal"`
	YearlySavings string `json:"yearlySavings"`
	Payback       string `json:"payback"`

	TempDrop    string `json:"tempDrop"`
	NewTemp     string `json:"newTemp"`
	Energy      string `json:"energy"`
	CO2         string `json:"co2"`
	Equivalency string `json:"equivalency,omitempty"`

	Notes []string `json:"notes,omitempty"`

	input Input
}

// NewDocument formats in. Zero Title and Currency take the defaults.
func NewDocument(in Input) Document {
	if in.Title == "" {
		in.Title = DefaultTitle
	}
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if in.Precision < 0 {
		in.Precision = 0
	}
	res := in.Result
	unit := res.Unit
	if unit == "" {
		unit = in.Unit
	}
	money := func(v float64) string { return greenops.FormatMoney(v, in.Currency, in.Precision) }

	doc := Document{
		Title:         in.Title,
		Unit:          unit.Label(),
		Subtotal:      money(res.Subtotal),
		SolarSubsidy:  money(res.SolarSubsidy),
		GreenSubsidy:  money(res.GreenSubsidy),
		TotalSubsidy:  money(res.TotalSubsidy),
		NetTotal:      money(res.NetTotal),
		YearlySavings: money(res.YearlySavings) + "/yr",
		Payback:       PaybackText(res.Payback),
		TempDrop:      greenops.FormatFloat(res.Impact.TempDropC, 1) + "°C",
		NewTemp:       greenops.FormatFloat(res.Impact.NewTempC, 1) + "°C",
		Energy:        greenops.FormatFloat(res.Impact.EnergySavingsKWh, 0) + " kWh/yr (" + money(res.Impact.EnergySavingsValue) + ")",
		CO2:           greenops.FormatFloat(res.Impact.CO2AbatedKg, 0) + " kg/yr",
		input:         in,
	}
	if !in.GeneratedAt.IsZero() {
		doc.Date = in.GeneratedAt.UTC().Format("2006-01-02")
	}
	if eq := greenops.Describe(res.Impact.CO2AbatedKg); !eq.IsEmpty {
		doc.Equivalency = eq.DisplayText
	}

	for _, line := range res.Lines {
		if line.Category == "" {
			continue
		}
		doc.Rows = append(doc.Rows, Row{
			Category: line.Category,
			Section:  line.Category.Label(),
			Area:     FormatArea(line.DisplayArea) + " " + unit.Label(),
			Material: line.Option.Name,
			Partner:  line.Option.Partner,
			Temp:     line.Option.TemperatureLabel(),
			Cost:     money(line.Cost),
			Note:     rowNote(in, line),
		})
	}
	for _, adj := range res.Adjustments {
		doc.Notes = append(doc.Notes, adj.Detail)
	}
	return doc
}

// rowNote explains a row whose entered value differs from what was priced.
func rowNote(in Input, line engine.LineItem) string {
	if want := in.Selection.Get(line.Category); want != "" && want != line.Option.ID {
		return fmt.Sprintf("requested %q, priced as %s", want, line.Option.ID)
	}
	if entered := in.Areas.Get(line.Category); entered != line.DisplayArea {
		return fmt.Sprintf("entered area %v replaced with %s", entered, FormatArea(line.DisplayArea))
	}
	return ""
}

// PaybackText renders a payback period, e.g. "4.9 Years", or "n/a" when it
// cannot be computed.
func PaybackText(p engine.Payback) string {
	if !p.Computable {
		return "n/a"
	}
	return greenops.FormatFloat(p.Years, 1) + " Years"
}

// FormatArea prints whole areas without decimals and others with one or
// two, e.g. "1,000", "12.5", "0.25".
func FormatArea(v float64) string {
	switch {
	case v == math.Trunc(v):
		return greenops.FormatFloat(v, 0)
	case v*10 == math.Trunc(v*10):
		return greenops.FormatFloat(v, 1)
	default:
		return greenops.FormatFloat(v, 2)
	}
}
