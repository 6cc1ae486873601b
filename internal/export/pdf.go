package export

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// pdfEpoch stamps documents rendered without a generation time, keeping the
// output reproducible.
//
//nolint:gochecknoglobals // Constant time value.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Column widths in millimetres for the A4 quote table.
//
//nolint:gochecknoglobals // Layout table.
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Section", 25, "L"},
	{"Area", 30, "L"},
	{"Material", 40, "L"},
	{"Partner", 35, "L"},
	{"Temp", 18, "C"},
	{"Cost", 42, "R"},
}

const (
	pdfLineHeight = 8.0
	pdfFont       = "Helvetica"
)

// renderPDF writes an A4 quote. The creation date comes from the document's
// generation time and catalogs are sorted, so identical documents produce
// identical bytes.
func renderPDF(w io.Writer, doc Document) error {
	stamp := doc.input.GeneratedAt
	if stamp.IsZero() {
		stamp = pdfEpoch
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(stamp.UTC())
	pdf.SetModificationDate(stamp.UTC())
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("albedo", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "B", 20)
	pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	if doc.Date != "" {
		pdf.CellFormat(0, 6, "Date: "+doc.Date, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(230, 236, 240)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, pdfLineHeight, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 10)
	for _, r := range doc.Rows {
		cells := []string{r.Section, r.Area, r.Material, r.Partner, r.Temp, r.Cost}
		for i, c := range pdfColumns {
			pdf.CellFormat(c.width, pdfLineHeight, tr(cells[i]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	totals := [][2]string{
		{"Subtotal", doc.Subtotal},
		{"Solar Subsidy", "-" + doc.SolarSubsidy},
		{"Green Subsidy", "-" + doc.GreenSubsidy},
	}
	for _, t := range totals {
		pdf.CellFormat(148, 6, t[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(42, 6, t[1], "", 1, "R", false, 0, "")
	}

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, "Net Total: "+doc.NetTotal, "", 1, "R", false, 0, "")
	pdf.SetFont(pdfFont, "", 11)
	pdf.CellFormat(0, 7, "Est. ROI: "+doc.Payback, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, "Yearly Savings: "+doc.YearlySavings, "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, "Impact", "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	impact := []string{
		"Surface temperature drop: " + doc.TempDrop + " (peak " + doc.NewTemp + ")",
		"Cooling energy saved: " + doc.Energy,
		"CO2 abated: " + doc.CO2,
	}
	if doc.Equivalency != "" {
		impact = append(impact, doc.Equivalency)
	}
	for _, line := range impact {
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}

	if len(doc.Notes) > 0 {
		pdf.Ln(4)
		pdf.SetFont(pdfFont, "I", 9)
		for _, n := range doc.Notes {
			pdf.MultiCell(0, 5, tr("Note: "+n), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
