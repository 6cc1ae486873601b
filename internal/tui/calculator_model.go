// Package tui is the interactive retrofit calculator.
package tui

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/export"
	"github.com/rshade/albedo/internal/greenops"
	"github.com/rshade/albedo/internal/logging"
)

// CalculatorState is the phase of the calculator.
type CalculatorState int

const (
	// CalculatorStateBrowsing is navigation between surfaces and materials.
	CalculatorStateBrowsing CalculatorState = iota
	// CalculatorStateEditing is entry of an area value.
	CalculatorStateEditing
	// CalculatorStateQuitting indicates the application is exiting.
	CalculatorStateQuitting
)

// Default dimensions.
const (
	calculatorDefaultWidth  = 100
	calculatorDefaultHeight = 30
	areaInputCharLimit      = 16
)

// CalculatorOptions configures display of amounts.
type CalculatorOptions struct {
	Currency  string
	Precision int
}

// CalculatorModel is the Bubble Tea model of the calculator. Every change of
// input re-runs the estimate synchronously.
type CalculatorModel struct {
	ctx       context.Context
	estimator *engine.Estimator
	opts      CalculatorOptions

	areas     engine.AreaInputs
	unit      engine.Unit
	selection engine.Selection
	result    engine.Result

	focused int
	state   CalculatorState
	input   textinput.Model
	options table.Model

	width  int
	height int
}

// NewCalculatorModel starts a calculator from req. A nil estimator uses the
// built-in catalog and rates. Unknown option ids in req are replaced by the
// baseline so that ←/→ cycle from a real option.
func NewCalculatorModel(
	ctx context.Context,
	est *engine.Estimator,
	req engine.Request,
	opts CalculatorOptions,
) *CalculatorModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if est == nil {
		est = engine.NewEstimator(nil)
	}
	if opts.Currency == "" {
		opts.Currency = export.DefaultCurrency
	}
	if !req.Unit.Valid() {
		req.Unit = engine.UnitSqFt
	}
	sel, _ := est.ResolveSelection(req.Selection)

	ti := textinput.New()
	ti.Placeholder = "area"
	ti.CharLimit = areaInputCharLimit
	ti.Prompt = ""

	m := &CalculatorModel{
		ctx:       ctx,
		estimator: est,
		opts:      opts,
		areas:     req.Areas,
		unit:      req.Unit,
		selection: sel,
		state:     CalculatorStateBrowsing,
		input:     ti,
		width:     calculatorDefaultWidth,
		height:    calculatorDefaultHeight,
	}
	m.recalculate()
	return m
}

// Init implements tea.Model.
func (m *CalculatorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.state == CalculatorStateEditing {
			return m.handleEditKey(msg)
		}
		return m.handleBrowseKey(msg)
	}
	return m, nil
}

// handleBrowseKey processes keys outside area entry.
//
//nolint:exhaustive // Only handling relevant key types for navigation.
func (m *CalculatorModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := catalog.Categories()

	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = CalculatorStateQuitting
		return m, tea.Quit
	case tea.KeyUp:
		m.moveFocus(-1)
	case tea.KeyDown:
		m.moveFocus(1)
	case tea.KeyLeft:
		m.cycleMaterial(-1)
	case tea.KeyRight:
		m.cycleMaterial(1)
	case tea.KeyEnter:
		m.state = CalculatorStateEditing
		m.input.SetValue(strconv.FormatFloat(m.areas.Get(cats[m.focused]), 'f', -1, 64))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = CalculatorStateQuitting
			return m, tea.Quit
		case "u":
			m.unit = m.unit.Toggle()
			m.recalculate()
		case "k":
			m.moveFocus(-1)
		case "j":
			m.moveFocus(1)
		case "h":
			m.cycleMaterial(-1)
		case "l":
			m.cycleMaterial(1)
		}
	}
	return m, nil
}

// handleEditKey processes keys while an area is being entered.
//
//nolint:exhaustive // Only handling relevant key types for text entry.
func (m *CalculatorModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = CalculatorStateQuitting
		return m, tea.Quit
	case tea.KeyEnter:
		cat := catalog.Categories()[m.focused]
		m.areas = m.areas.With(cat, ParseArea(m.input.Value()))
		m.stopEditing()
		m.recalculate()
		return m, nil
	case tea.KeyEsc:
		m.stopEditing()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ParseArea converts entered text to an area. Text that is not a number
// becomes NaN, which the estimate replaces with 0 and reports.
func ParseArea(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (m *CalculatorModel) stopEditing() {
	m.state = CalculatorStateBrowsing
	m.input.Blur()
	m.input.Reset()
}

func (m *CalculatorModel) moveFocus(step int) {
	n := len(catalog.Categories())
	m.focused = ((m.focused+step)%n + n) % n
	m.refreshOptions()
}

func (m *CalculatorModel) cycleMaterial(step int) {
	cat := catalog.Categories()[m.focused]
	next := m.estimator.Catalog().Next(cat, m.selection.Get(cat), step)
	m.selection = m.selection.With(cat, next.ID)
	m.recalculate()
}

// recalculate re-runs the estimate for the current inputs.
func (m *CalculatorModel) recalculate() {
	m.result = m.estimator.Estimate(m.areas, m.unit, m.selection)
	m.refreshOptions()

	log := logging.FromContext(m.ctx)
	log.Debug().
		Ctx(m.ctx).
		Str("component", "tui").
		Str("unit", string(m.unit)).
		Float64("net_total", m.result.NetTotal).
		Int("adjustments", len(m.result.Adjustments)).
		Msg("recalculated")
}

func (m *CalculatorModel) refreshOptions() {
	cat := catalog.Categories()[m.focused]
	m.options = NewOptionsTable(m.estimator.Catalog(), cat, m.selection.Get(cat), m.opts.Currency)
}

// View implements tea.Model.
func (m *CalculatorModel) View() string {
	if m.state == CalculatorStateQuitting {
		return ""
	}

	cats := catalog.Categories()
	rows := make([]SurfaceRow, len(cats))
	for i, cat := range cats {
		line := m.result.Line(cat)
		areaText := formatAreaInput(m.areas.Get(cat))
		if i == m.focused && m.state == CalculatorStateEditing {
			areaText = m.input.View()
		}
		rows[i] = SurfaceRow{
			Category: cat,
			AreaText: areaText,
			Option:   line.Option,
			Cost:     greenops.FormatMoney(line.Cost, m.opts.Currency, m.opts.Precision),
			Focused:  i == m.focused,
		}
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		RenderHeader(m.unit),
		"",
		RenderSurfaces(rows, m.unit),
		"",
		RenderImpact(m.result.Impact),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", RenderQuote(m.result, m.opts.Currency, m.opts.Precision))

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString("\n\n")
	sb.WriteString(HeaderStyle.Render(cats[m.focused].Title() + " options"))
	sb.WriteString("\n")
	sb.WriteString(m.options.View())
	sb.WriteString("\n\n")
	sb.WriteString(RenderHelp(m.state == CalculatorStateEditing))
	return sb.String()
}

// State returns the current phase.
func (m *CalculatorModel) State() CalculatorState {
	return m.state
}

// GetResult returns the estimate for the current inputs.
func (m *CalculatorModel) GetResult() engine.Result {
	return m.result
}

// GetInputs returns the current inputs.
func (m *CalculatorModel) GetInputs() engine.Request {
	return engine.Request{Areas: m.areas, Unit: m.unit, Selection: m.selection}
}

// Focused returns the focused surface.
func (m *CalculatorModel) Focused() catalog.Category {
	return catalog.Categories()[m.focused]
}
