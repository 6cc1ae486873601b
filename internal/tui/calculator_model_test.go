package tui

import (
	"context"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/engine"
)

func newTestModel(t *testing.T) *CalculatorModel {
	t.Helper()
	return NewCalculatorModel(context.Background(), nil, engine.DefaultRequest(), CalculatorOptions{Precision: 0})
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(m *CalculatorModel, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestNewCalculatorModel(t *testing.T) {
	t.Run("starts from the request", func(t *testing.T) {
		m := newTestModel(t)
		require.NotNil(t, m)
		assert.Equal(t, CalculatorStateBrowsing, m.State())
		assert.Equal(t, catalog.CategoryRoof, m.Focused())
		assert.InDelta(t, 58500.0, m.GetResult().NetTotal, 1e-9)
		assert.Equal(t, engine.DefaultRequest(), m.GetInputs())
	})

	t.Run("unknown options start at the baseline", func(t *testing.T) {
		req := engine.DefaultRequest()
		req.Selection.Garden = "gold"
		req.Unit = "acre"
		m := NewCalculatorModel(nil, nil, req, CalculatorOptions{})
		assert.Equal(t, catalog.BaselineID, m.GetInputs().Selection.Garden)
		assert.Equal(t, engine.UnitSqFt, m.GetInputs().Unit)
		assert.Empty(t, m.GetResult().Adjustments)
	})
}

func TestCalculatorModel_Materials(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.Msg
		wantCat  catalog.Category
		wantID   catalog.OptionID
		wantCost float64
	}{
		{"right on roof", []tea.Msg{key(tea.KeyRight)}, catalog.CategoryRoof, catalog.RoofTiles, 120000},
		{"left wraps to baseline", []tea.Msg{key(tea.KeyLeft)}, catalog.CategoryRoof, catalog.BaselineID, 0},
		{"garden pots", []tea.Msg{key(tea.KeyDown), key(tea.KeyRight)}, catalog.CategoryGarden, catalog.GardenPots, 50000},
		{"vim keys", []tea.Msg{runes("j"), runes("j"), runes("h")}, catalog.CategoryGround, catalog.GroundCanopy, 600000},
		{"up wraps to ground", []tea.Msg{key(tea.KeyUp), runes("l")}, catalog.CategoryGround, catalog.GroundPavers, 72000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			send(m, tt.keys...)
			assert.Equal(t, tt.wantCat, m.Focused())
			assert.Equal(t, tt.wantID, m.GetInputs().Selection.Get(tt.wantCat))
			assert.InDelta(t, tt.wantCost, m.GetResult().Line(tt.wantCat).Cost, 1e-9)
		})
	}
}

func TestCalculatorModel_EditArea(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		m := newTestModel(t)
		send(m, key(tea.KeyEnter))
		require.Equal(t, CalculatorStateEditing, m.State())
		assert.Equal(t, "1000", m.input.Value())

		m.input.SetValue("500")
		send(m, key(tea.KeyEnter))
		assert.Equal(t, CalculatorStateBrowsing, m.State())
		assert.InDelta(t, 500.0, m.GetInputs().Areas.Roof, 0)
		assert.InDelta(t, 32500.0, m.GetResult().CostRoof, 1e-9)
	})

	t.Run("typing goes to the input", func(t *testing.T) {
		m := newTestModel(t)
		send(m, key(tea.KeyEnter), runes("0"))
		assert.Equal(t, "10000", m.input.Value())
		send(m, key(tea.KeyEnter))
		assert.InDelta(t, 10000.0, m.GetInputs().Areas.Roof, 0)
	})

	t.Run("invalid text is clamped", func(t *testing.T) {
		m := newTestModel(t)
		send(m, key(tea.KeyEnter))
		m.input.SetValue("lots")
		send(m, key(tea.KeyEnter))

		assert.True(t, math.IsNaN(m.GetInputs().Areas.Roof))
		res := m.GetResult()
		assert.InDelta(t, 0.0, res.CostRoof, 0)
		require.Len(t, res.Adjustments, 1)
		assert.Equal(t, engine.AdjustmentAreaClamped, res.Adjustments[0].Kind)
		assert.Contains(t, m.View(), "1 input(s) corrected")
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := newTestModel(t)
		send(m, key(tea.KeyEnter))
		m.input.SetValue("5")
		send(m, key(tea.KeyEsc))
		assert.Equal(t, CalculatorStateBrowsing, m.State())
		assert.InDelta(t, 1000.0, m.GetInputs().Areas.Roof, 0)
	})

	t.Run("q while editing is text", func(t *testing.T) {
		m := newTestModel(t)
		send(m, key(tea.KeyEnter), runes("q"))
		assert.Equal(t, CalculatorStateEditing, m.State())
	})
}

func TestCalculatorModel_ToggleUnit(t *testing.T) {
	m := newTestModel(t)
	send(m, runes("u"))

	in := m.GetInputs()
	assert.Equal(t, engine.UnitSqM, in.Unit)
	assert.InDelta(t, 1000.0, in.Areas.Roof, 0, "entered areas stay as typed")
	assert.InDelta(t, 1000*engine.SqFtPerSqM*65, m.GetResult().CostRoof, 1e-6)
	assert.Contains(t, m.View(), "Sq.M")

	send(m, runes("u"))
	assert.Equal(t, engine.UnitSqFt, m.GetInputs().Unit)
}

func TestCalculatorModel_Quit(t *testing.T) {
	for _, msg := range []tea.Msg{runes("q"), key(tea.KeyCtrlC)} {
		m := newTestModel(t)
		cmd := send(m, msg)
		require.NotNil(t, cmd)
		assert.Equal(t, CalculatorStateQuitting, m.State())
		assert.Empty(t, m.View())
	}
}

func TestCalculatorModel_View(t *testing.T) {
	m := newTestModel(t)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()

	for _, want := range []string{
		"Albedo Retrofit Calculator", "Rooftop Strategy", "Greenery Integration", "Ground & Parking",
		"Reflective Paint", "Net Total", "INR 58,500", "4.9 Years", "Rooftop Strategy options", "Cool Tiles",
	} {
		assert.Contains(t, view, want)
	}
	assert.Equal(t, 120, m.width)
}

func TestParseArea(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1000", 1000},
		{" 1,250.5 ", 1250.5},
		{"", 0},
		{"-3", -3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseArea(tt.in), 0)
		})
	}
	assert.True(t, math.IsNaN(ParseArea("ten")))
}

func TestRenderTempEffect(t *testing.T) {
	assert.Contains(t, RenderTempEffect(-5), "-5°C")
	assert.Contains(t, RenderTempEffect(-5), IconArrowDown)
	assert.Contains(t, RenderTempEffect(4), "+4°C")
	assert.Contains(t, RenderTempEffect(0), IconArrowRight)
}

func TestNewOptionsTable(t *testing.T) {
	tbl := NewOptionsTable(catalog.Default(), catalog.CategoryGround, catalog.GroundCanopy, "INR")
	assert.Len(t, tbl.Rows(), 3)
	assert.Equal(t, 2, tbl.Cursor())
	assert.Equal(t, "INR 1,500", tbl.SelectedRow()[3])
}
