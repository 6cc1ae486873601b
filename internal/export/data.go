package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/engine"
)

// quotePayload is the JSON shape of a quote. Raw entered areas are left out:
// they may hold NaN, which JSON cannot carry; the sanitized areas are in the
// result lines.
type quotePayload struct {
	Title       string           `json:"title"`
	GeneratedAt string           `json:"generatedAt,omitempty"`
	Unit        engine.Unit      `json:"unit"`
	Selection   engine.Selection `json:"selection"`
	Result      engine.Result    `json:"result"`
	Quote       Document         `json:"quote"`
}

func payloadOf(doc Document) quotePayload {
	p := quotePayload{
		Title:     doc.Title,
		Unit:      doc.input.Result.Unit,
		Selection: doc.input.Selection,
		Result:    doc.input.Result,
		Quote:     doc,
	}
	if !doc.input.GeneratedAt.IsZero() {
		p.GeneratedAt = doc.input.GeneratedAt.UTC().Format(time.RFC3339)
	}
	return p
}

func renderJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payloadOf(doc))
}

// ndjsonLine is one line item record.
type ndjsonLine struct {
	Type     string           `json:"type"`
	Category catalog.Category `json:"category"`
	Option   catalog.OptionID `json:"option"`
	Material string           `json:"material"`
	AreaSqFt float64          `json:"areaSqFt"`
	Cost     float64          `json:"cost"`
	Savings  float64          `json:"yearlySavings"`
}

// ndjsonSummary is the closing record.
type ndjsonSummary struct {
	Type          string         `json:"type"`
	Unit          engine.Unit    `json:"unit"`
	Subtotal      float64        `json:"subtotal"`
	SolarSubsidy  float64        `json:"solarSubsidy"`
	GreenSubsidy  float64        `json:"greenSubsidy"`
	TotalSubsidy  float64        `json:"totalSubsidy"`
	NetTotal      float64        `json:"netTotal"`
	YearlySavings float64        `json:"yearlySavings"`
	Payback       engine.Payback `json:"payback"`
	Impact        engine.Impact  `json:"impact"`
}

// renderNDJSON writes one record per line item followed by a summary record.
func renderNDJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	res := doc.input.Result
	for _, l := range res.Lines {
		if l.Category == "" {
			continue
		}
		if err := enc.Encode(ndjsonLine{
			Type:     "line",
			Category: l.Category,
			Option:   l.Option.ID,
			Material: l.Option.Name,
			AreaSqFt: l.AreaSqFt,
			Cost:     l.Cost,
			Savings:  l.Savings,
		}); err != nil {
			return err
		}
	}
	return enc.Encode(ndjsonSummary{
		Type:          "summary",
		Unit:          res.Unit,
		Subtotal:      res.Subtotal,
		SolarSubsidy:  res.SolarSubsidy,
		GreenSubsidy:  res.GreenSubsidy,
		TotalSubsidy:  res.TotalSubsidy,
		NetTotal:      res.NetTotal,
		YearlySavings: res.YearlySavings,
		Payback:       res.Payback,
		Impact:        res.Impact,
	})
}

// csvHeader is shared by every CSV record so spreadsheet imports see a
// rectangular sheet.
//
//nolint:gochecknoglobals // Read-only header.
var csvHeader = []string{"section", "area", "unit", "material", "partner", "cost", "yearly_savings"}

// renderCSV writes line items then summary records. Amounts are printed
// with full precision.
func renderCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	res := doc.input.Result
	unit := string(res.Unit)

	records := [][]string{csvHeader}
	for _, l := range res.Lines {
		if l.Category == "" {
			continue
		}
		records = append(records, []string{
			l.Category.Label(), num(l.DisplayArea), unit, l.Option.Name, l.Option.Partner, num(l.Cost), num(l.Savings),
		})
	}
	summary := []struct {
		label string
		v     float64
	}{
		{"Subtotal", res.Subtotal},
		{"Solar Subsidy", res.SolarSubsidy},
		{"Green Subsidy", res.GreenSubsidy},
		{"Net Total", res.NetTotal},
	}
	for _, s := range summary {
		records = append(records, []string{s.label, "", "", "", "", num(s.v), ""})
	}
	records = append(records, []string{"Yearly Savings", "", "", "", "", "", num(res.YearlySavings)})
	payback := ""
	if res.Payback.Computable {
		payback = num(res.Payback.Years)
	}
	records = append(records, []string{"Payback Years", "", "", "", "", payback, ""})

	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
