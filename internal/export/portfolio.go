package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/greenops"
	"github.com/rshade/albedo/internal/scenario"
)

// Portfolio is a set of evaluated sites and their totals.
type Portfolio struct {
	RunID     string
	Outcomes  []scenario.Outcome
	Summary   scenario.Summary
	Currency  string
	Precision int
}

type portfolioSite struct {
	Name   string        `json:"name"`
	Result engine.Result `json:"result"`
}

// RenderPortfolio writes p in format. PDF is not offered for portfolios.
func RenderPortfolio(w io.Writer, format Format, p Portfolio) error {
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	switch format {
	case FormatTable, FormatMarkdown:
		return renderPortfolioTable(w, p, format == FormatMarkdown)
	case FormatJSON:
		sites := make([]portfolioSite, len(p.Outcomes))
		for i, o := range p.Outcomes {
			sites[i] = portfolioSite{Name: o.Site.Name, Result: o.Result}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			RunID   string           `json:"runId,omitempty"`
			Sites   []portfolioSite  `json:"sites"`
			Summary scenario.Summary `json:"summary"`
		}{p.RunID, sites, p.Summary})
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, o := range p.Outcomes {
			if err := enc.Encode(struct {
				Type   string        `json:"type"`
				Name   string        `json:"name"`
				Result engine.Result `json:"result"`
			}{"site", o.Site.Name, o.Result}); err != nil {
				return err
			}
		}
		return enc.Encode(struct {
			Type    string           `json:"type"`
			RunID   string           `json:"runId,omitempty"`
			Summary scenario.Summary `json:"summary"`
		}{"summary", p.RunID, p.Summary})
	case FormatCSV:
		return renderPortfolioCSV(w, p)
	default:
		return fmt.Errorf("%w: %q for batch output", ErrUnsupportedFormat, format)
	}
}

func renderPortfolioTable(w io.Writer, p Portfolio, markdown bool) error {
	money := func(v float64) string { return greenops.FormatMoney(v, p.Currency, p.Precision) }

	header := []string{"Site", "Net Total", "Subsidy", "Savings/yr", "Est. ROI", "CO2 kg/yr"}
	rows := make([][]string, 0, len(p.Outcomes)+1)
	for _, o := range p.Outcomes {
		r := o.Result
		name := o.Site.Name
		if len(r.Adjustments) > 0 {
			name += " *"
		}
		rows = append(rows, []string{
			name, money(r.NetTotal), money(r.TotalSubsidy), money(r.YearlySavings),
			PaybackText(r.Payback), greenops.FormatFloat(r.Impact.CO2AbatedKg, 0),
		})
	}
	s := p.Summary
	total := []string{
		fmt.Sprintf("TOTAL (%d sites)", s.Sites), money(s.NetTotal), money(s.TotalSubsidy),
		money(s.YearlySavings), PaybackText(s.Payback), greenops.FormatFloat(s.CO2AbatedKg, 0),
	}

	if markdown {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n", toAny(header)...)
		fmt.Fprintln(w, "|---|---:|---:|---:|---:|---:|")
		for _, r := range rows {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n", toAny(mdRow(r))...)
		}
		fmt.Fprintf(w, "| **%s** | **%s** | **%s** | **%s** | **%s** | **%s** |\n", toAny(total)...)
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", toAny(header)...)
		fmt.Fprintln(tw, "----\t---------\t-------\t----------\t--------\t---------")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", toAny(r)...)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", toAny(total)...)
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if s.Adjusted > 0 {
		fmt.Fprintf(w, "\n* %d site(s) had inputs corrected; use --output json for details.\n", s.Adjusted)
	}
	return nil
}

func renderPortfolioCSV(w io.Writer, p Portfolio) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"site", "subtotal", "total_subsidy", "net_total", "yearly_savings", "payback_years", "co2_kg"}}
	for _, o := range p.Outcomes {
		r := o.Result
		payback := ""
		if r.Payback.Computable {
			payback = num(r.Payback.Years)
		}
		records = append(records, []string{
			o.Site.Name, num(r.Subtotal), num(r.TotalSubsidy), num(r.NetTotal),
			num(r.YearlySavings), payback, num(r.Impact.CO2AbatedKg),
		})
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func mdRow(r []string) []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = mdEscape(c)
	}
	return out
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
