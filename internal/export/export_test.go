package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/export"
	"github.com/rshade/albedo/internal/scenario"
)

var generatedAt = time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)

func defaultInput() export.Input {
	req := engine.DefaultRequest()
	return export.Input{
		Result:      engine.Estimate(nil, req.Areas, req.Unit, req.Selection),
		Areas:       req.Areas,
		Selection:   req.Selection,
		Unit:        req.Unit,
		Precision:   2,
		GeneratedAt: generatedAt,
	}
}

func render(t *testing.T, f export.Format, in export.Input) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, export.RenderResult(&buf, f, in))
	return buf.String()
}

func TestNewDocument(t *testing.T) {
	doc := export.NewDocument(defaultInput())

	assert.Equal(t, export.DefaultTitle, doc.Title)
	assert.Equal(t, "2026-10-17", doc.Date)
	require.Len(t, doc.Rows, 3)

	roof := doc.Rows[0]
	assert.Equal(t, "Rooftop", roof.Section)
	assert.Equal(t, "1,000 Sq.Ft", roof.Area)
	assert.Equal(t, "Reflective Paint", roof.Material)
	assert.Equal(t, "Asian Paints", roof.Partner)
	assert.Equal(t, "-5°C", roof.Temp)
	assert.Equal(t, "INR 65,000.00", roof.Cost)
	assert.Empty(t, roof.Note)

	assert.Equal(t, "Parking", doc.Rows[2].Section)
	assert.Equal(t, "+4°C", doc.Rows[2].Temp)

	assert.Equal(t, "INR 58,500.00", doc.NetTotal)
	assert.Equal(t, "INR 6,500.00", doc.GreenSubsidy)
	assert.Equal(t, "4.9 Years", doc.Payback)
	assert.Equal(t, "8.1°C", doc.TempDrop)
	assert.Equal(t, "12,000 kg/yr", doc.CO2)
	assert.Contains(t, doc.Equivalency, "~200 tree seedlings")
}

func TestNewDocument_DoesNotRecompute(t *testing.T) {
	in := defaultInput()
	// Deliberately inconsistent figures: the document must echo them.
	in.Result.Subtotal = 1
	in.Result.NetTotal = 2
	in.Result.Payback = engine.Payback{Years: 99, Computable: true}

	doc := export.NewDocument(in)
	assert.Equal(t, "INR 1.00", doc.Subtotal)
	assert.Equal(t, "INR 2.00", doc.NetTotal)
	assert.Equal(t, "99.0 Years", doc.Payback)
}

func TestNewDocument_Annotations(t *testing.T) {
	req := engine.Request{
		Areas:     engine.AreaInputs{Roof: -5, Garden: 10, Ground: 12.5},
		Unit:      engine.UnitSqM,
		Selection: engine.Selection{Roof: "paint", Garden: "gold", Ground: "pavers"},
	}
	in := export.Input{
		Result:    engine.Estimate(nil, req.Areas, req.Unit, req.Selection),
		Areas:     req.Areas,
		Selection: req.Selection,
		Unit:      req.Unit,
	}
	doc := export.NewDocument(in)

	assert.Equal(t, "entered area -5 replaced with 0", doc.Rows[0].Note)
	assert.Equal(t, `requested "gold", priced as none`, doc.Rows[1].Note)
	assert.Equal(t, "12.5 Sq.M", doc.Rows[2].Area)
	assert.Len(t, doc.Notes, 2)
	assert.Empty(t, doc.Date)
	assert.Equal(t, "INR 0", doc.Rows[0].Cost)
}

func TestPaybackText(t *testing.T) {
	assert.Equal(t, "n/a", export.PaybackText(engine.Payback{}))
	assert.Equal(t, "0.0 Years", export.PaybackText(engine.Payback{Computable: true}))
	assert.Equal(t, "14.5 Years", export.PaybackText(engine.Payback{Years: 14.5, Computable: true}))
}

func TestFormatArea(t *testing.T) {
	assert.Equal(t, "1,000", export.FormatArea(1000))
	assert.Equal(t, "12.5", export.FormatArea(12.5))
	assert.Equal(t, "0.25", export.FormatArea(0.25))
	assert.Equal(t, "0", export.FormatArea(0))
}

func TestRender_Table(t *testing.T) {
	out := render(t, export.FormatTable, defaultInput())

	assert.True(t, strings.HasPrefix(out, "Albedo Estimate\n===============\nDate: 2026-10-17\n"))
	assert.Contains(t, out, "Reflective Paint")
	assert.Contains(t, out, "Net Total:")
	assert.Contains(t, out, "INR 58,500.00")
	assert.Contains(t, out, "Est. ROI:")
	assert.Contains(t, out, "4.9 Years")
	assert.NotContains(t, out, "Notes:")
}

func TestRender_TableWithNotes(t *testing.T) {
	in := defaultInput()
	in.Result = engine.Estimate(nil, in.Areas, engine.Unit("acre"), in.Selection)
	out := render(t, export.FormatTable, in)
	assert.Contains(t, out, "Notes:")
	assert.Contains(t, out, `unit "acre" treated as ft2`)
}

func TestRender_Markdown(t *testing.T) {
	out := render(t, export.FormatMarkdown, defaultInput())
	assert.Contains(t, out, "# Albedo Estimate")
	assert.Contains(t, out, "| Rooftop | 1,000 Sq.Ft | Reflective Paint | Asian Paints | -5°C | INR 65,000.00 |")
	assert.Contains(t, out, "- **Net Total:** INR 58,500.00")
}

func TestRender_JSON(t *testing.T) {
	out := render(t, export.FormatJSON, defaultInput())

	var payload struct {
		Title       string        `json:"title"`
		GeneratedAt string        `json:"generatedAt"`
		Result      engine.Result `json:"result"`
		Quote       struct {
			NetTotal string `json:"netTotal"`
		} `json:"quote"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "2026-10-17T09:30:00Z", payload.GeneratedAt)
	assert.InDelta(t, 58500.0, payload.Result.NetTotal, 0)
	assert.True(t, payload.Result.Payback.Computable)
	assert.Equal(t, "INR 58,500.00", payload.Quote.NetTotal)
}

func TestRender_JSONAdjustments(t *testing.T) {
	in := defaultInput()
	in.Areas.Garden = -1
	in.Result = engine.Estimate(nil, in.Areas, engine.UnitSqFt, in.Selection)
	out := render(t, export.FormatJSON, in)
	assert.Contains(t, out, `"kind": "area_clamped"`)
	assert.Contains(t, out, `"note": "entered area -1 replaced with 0"`)
}

func TestRender_NDJSON(t *testing.T) {
	out := render(t, export.FormatNDJSON, defaultInput())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "line", first["type"])
	assert.Equal(t, "roof", first["category"])
	assert.InDelta(t, 65000.0, first["cost"], 0)

	var last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &last))
	assert.Equal(t, "summary", last["type"])
	assert.InDelta(t, 58500.0, last["netTotal"], 0)
}

func TestRender_CSV(t *testing.T) {
	out := render(t, export.FormatCSV, defaultInput())
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 10)

	assert.Equal(t, []string{"section", "area", "unit", "material", "partner", "cost", "yearly_savings"}, records[0])
	assert.Equal(t, []string{"Rooftop", "1000", "ft2", "Reflective Paint", "Asian Paints", "65000", "12000"}, records[1])
	assert.Equal(t, "Net Total", records[7][0])
	assert.Equal(t, "58500", records[7][5])
	assert.Equal(t, "4.875", records[9][5])
}

func TestRender_PDF(t *testing.T) {
	out := render(t, export.FormatPDF, defaultInput())
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
	assert.Greater(t, len(out), 500)
}

func TestRender_Deterministic(t *testing.T) {
	for _, f := range export.Formats() {
		t.Run(string(f), func(t *testing.T) {
			a := render(t, f, defaultInput())
			b := render(t, f, defaultInput())
			assert.Equal(t, a, b)
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := export.Render(&buf, export.Format("xml"), export.NewDocument(defaultInput()))
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
	}{
		{"table", export.FormatTable},
		{"JSON", export.FormatJSON},
		{"md", export.FormatMarkdown},
		{" pdf ", export.FormatPDF},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := export.ParseFormat("docx")
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)

	assert.True(t, export.FormatPDF.IsBinary())
	assert.Equal(t, "md", export.FormatMarkdown.Extension())
}

func portfolio() export.Portfolio {
	sites := []scenario.Site{
		{Name: "depot", Areas: engine.AreaInputs{Ground: 400}, Selection: engine.Selection{Roof: "none", Garden: "none", Ground: catalog.GroundCanopy}},
		{Name: "annex", Areas: engine.AreaInputs{Roof: -3}, Selection: engine.DefaultSelection()},
	}
	outs := make([]scenario.Outcome, len(sites))
	for i, s := range sites {
		outs[i] = scenario.Outcome{Site: s, Result: engine.Estimate(nil, s.Areas, engine.UnitSqFt, s.Selection)}
	}
	return export.Portfolio{RunID: "01TEST", Outcomes: outs, Summary: scenario.Summarize(outs)}
}

func TestRenderPortfolio(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export.RenderPortfolio(&buf, export.FormatTable, portfolio()))
		out := buf.String()
		assert.Contains(t, out, "depot")
		assert.Contains(t, out, "annex *")
		assert.Contains(t, out, "TOTAL (2 sites)")
		assert.Contains(t, out, "INR 522,000")
		assert.Contains(t, out, "1 site(s) had inputs corrected")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export.RenderPortfolio(&buf, export.FormatJSON, portfolio()))
		var got struct {
			RunID   string           `json:"runId"`
			Summary scenario.Summary `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "01TEST", got.RunID)
		assert.Equal(t, 2, got.Summary.Sites)
	})

	t.Run("ndjson", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export.RenderPortfolio(&buf, export.FormatNDJSON, portfolio()))
		assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 3)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export.RenderPortfolio(&buf, export.FormatCSV, portfolio()))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 3)
		assert.Equal(t, "14.5", records[1][5])
		assert.Empty(t, records[2][5])
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export.RenderPortfolio(&buf, export.FormatMarkdown, portfolio()))
		assert.Contains(t, buf.String(), "| **TOTAL (2 sites)** |")
	})

	t.Run("pdf unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		err := export.RenderPortfolio(&buf, export.FormatPDF, portfolio())
		require.ErrorIs(t, err, export.ErrUnsupportedFormat)
	})
}
