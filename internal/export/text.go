package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const tabPadding = 2

// renderTable writes the plain-text quote.
func renderTable(w io.Writer, doc Document) error {
	fmt.Fprintln(w, doc.Title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(doc.Title))))
	if doc.Date != "" {
		fmt.Fprintf(w, "Date: %s\n", doc.Date)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Section\tArea\tMaterial\tPartner\tTemp\tCost")
	fmt.Fprintln(tw, "-------\t----\t--------\t-------\t----\t----")
	for _, r := range doc.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Section, r.Area, r.Material, r.Partner, r.Temp, r.Cost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Subtotal:\t%s\n", doc.Subtotal)
	fmt.Fprintf(tw, "Solar Subsidy:\t-%s\n", doc.SolarSubsidy)
	fmt.Fprintf(tw, "Green Subsidy:\t-%s\n", doc.GreenSubsidy)
	fmt.Fprintf(tw, "Net Total:\t%s\n", doc.NetTotal)
	fmt.Fprintf(tw, "Yearly Savings:\t%s\n", doc.YearlySavings)
	fmt.Fprintf(tw, "Est. ROI:\t%s\n", doc.Payback)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Cooling: %s surface drop (peak %s)\n", doc.TempDrop, doc.NewTemp)
	fmt.Fprintf(w, "Energy:  %s\n", doc.Energy)
	fmt.Fprintf(w, "CO2:     %s\n", doc.CO2)
	if doc.Equivalency != "" {
		fmt.Fprintf(w, "         %s\n", doc.Equivalency)
	}

	writeNotes(w, doc, "  - ")
	return nil
}

// renderMarkdown writes the quote as a GitHub-flavoured markdown document.
func renderMarkdown(w io.Writer, doc Document) error {
	fmt.Fprintf(w, "# %s\n\n", doc.Title)
	if doc.Date != "" {
		fmt.Fprintf(w, "_Date: %s_\n\n", doc.Date)
	}

	fmt.Fprintln(w, "| Section | Area | Material | Partner | Temp | Cost |")
	fmt.Fprintln(w, "|---|---|---|---|---|---:|")
	for _, r := range doc.Rows {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			mdEscape(r.Section), mdEscape(r.Area), mdEscape(r.Material),
			mdEscape(r.Partner), mdEscape(r.Temp), mdEscape(r.Cost))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "- **Subtotal:** %s\n", doc.Subtotal)
	fmt.Fprintf(w, "- **Solar Subsidy:** %s\n", doc.SolarSubsidy)
	fmt.Fprintf(w, "- **Green Subsidy:** %s\n", doc.GreenSubsidy)
	fmt.Fprintf(w, "- **Net Total:** %s\n", doc.NetTotal)
	fmt.Fprintf(w, "- **Yearly Savings:** %s\n", doc.YearlySavings)
	fmt.Fprintf(w, "- **Est. ROI:** %s\n", doc.Payback)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Impact")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Surface temperature drop: %s (peak %s)\n", doc.TempDrop, doc.NewTemp)
	fmt.Fprintf(w, "- Cooling energy saved: %s\n", doc.Energy)
	fmt.Fprintf(w, "- CO2 abated: %s\n", doc.CO2)
	if doc.Equivalency != "" {
		fmt.Fprintf(w, "- %s\n", doc.Equivalency)
	}

	writeNotes(w, doc, "- ")
	return nil
}

func writeNotes(w io.Writer, doc Document, bullet string) {
	if len(doc.Notes) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	for _, n := range doc.Notes {
		fmt.Fprintf(w, "%s%s\n", bullet, n)
	}
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
