package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/export"
	"github.com/rshade/albedo/internal/greenops"
)

// Column widths for the surface rows.
const (
	surfaceTitleWidth    = 22
	surfaceAreaWidth     = 16
	surfaceMaterialWidth = 22
	surfaceTempWidth     = 8
	quoteLabelWidth      = 16
)

// RenderTempEffect renders a temperature effect with a direction arrow:
// cooling in the OK colour, heating as a warning, no change muted.
func RenderTempEffect(celsius float64) string {
	var icon string
	var color lipgloss.Color

	switch {
	case celsius < 0:
		icon, color = IconArrowDown, ColorOK
	case celsius > 0:
		icon, color = IconArrowUp, ColorWarning
	default:
		icon, color = IconArrowRight, ColorMuted
	}

	label := catalog.MaterialOption{TemperatureEffect: celsius}.TemperatureLabel()
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(label + " " + icon)
}

// RenderHeader renders the calculator title and the active unit.
func RenderHeader(unit engine.Unit) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Albedo Retrofit Calculator"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Unit: "))
	sb.WriteString(ValueStyle.Render(unit.Label()))
	return sb.String()
}

// SurfaceRow is one surface as shown in the calculator.
type SurfaceRow struct {
	Category catalog.Category
	AreaText string
	Option   catalog.MaterialOption
	Cost     string
	Focused  bool
}

// RenderSurfaces renders one line per surface, marking the focused one.
func RenderSurfaces(rows []SurfaceRow, unit engine.Unit) string {
	var sb strings.Builder
	for i, r := range rows {
		marker := "  "
		titleStyle := LabelStyle
		if r.Focused {
			marker = FocusStyle.Render(IconFocus) + " "
			titleStyle = FocusStyle
		}
		sb.WriteString(marker)
		sb.WriteString(titleStyle.Width(surfaceTitleWidth).Render(r.Category.Title()))
		sb.WriteString(ValueStyle.Width(surfaceAreaWidth).Render(r.AreaText + " " + unit.Label()))
		sb.WriteString(ValueStyle.Width(surfaceMaterialWidth).Render("‹ " + r.Option.Name + " ›"))
		sb.WriteString(lipgloss.NewStyle().Width(surfaceTempWidth).Render(RenderTempEffect(r.Option.TemperatureEffect)))
		sb.WriteString(" ")
		sb.WriteString(ValueStyle.Render(r.Cost))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderQuote renders the running quote in a box.
func RenderQuote(res engine.Result, currency string, precision int) string {
	money := func(v float64) string { return greenops.FormatMoney(v, currency, precision) }
	line := func(label, value string, style lipgloss.Style) string {
		return LabelStyle.Width(quoteLabelWidth).Render(label) + style.Render(value)
	}

	lines := []string{
		HeaderStyle.Render("QUOTE"),
		line("Subtotal", money(res.Subtotal), ValueStyle),
		line("Solar Subsidy", "-"+money(res.SolarSubsidy), OKStyle),
		line("Green Subsidy", "-"+money(res.GreenSubsidy), OKStyle),
		line("Net Total", money(res.NetTotal), FocusStyle),
		line("Yearly Savings", money(res.YearlySavings), ValueStyle),
	}
	breakEven := export.PaybackText(res.Payback)
	if res.Payback.Computable {
		lines = append(lines, line("Break-even", breakEven, ValueStyle))
	} else {
		lines = append(lines, line("Break-even", breakEven, SubtleStyle))
	}
	if n := len(res.Adjustments); n > 0 {
		lines = append(lines, WarningStyle.Render(fmt.Sprintf("%d input(s) corrected", n)))
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

// RenderImpact renders the cooling and carbon proxy.
func RenderImpact(impact engine.Impact) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("IMPACT"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Surface temp: "))
	sb.WriteString(CoolStyle.Render(greenops.FormatFloat(impact.NewTempC, 1) + "°C"))
	sb.WriteString(SubtleStyle.Render(fmt.Sprintf(" (%s°C)", greenops.FormatFloat(-impact.TempDropC, 1))))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Energy saved: "))
	sb.WriteString(ValueStyle.Render(greenops.FormatFloat(impact.EnergySavingsKWh, 0) + " kWh/yr"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("CO2 abated:   "))
	sb.WriteString(ValueStyle.Render(greenops.FormatFloat(impact.CO2AbatedKg, 0) + " kg/yr"))
	if eq := greenops.Describe(impact.CO2AbatedKg); !eq.IsEmpty {
		sb.WriteString(" ")
		sb.WriteString(SubtleStyle.Render(eq.CompactText))
	}
	return sb.String()
}

// RenderHelp renders the key bindings.
func RenderHelp(editing bool) string {
	if editing {
		return SubtleStyle.Render("enter: apply • esc: cancel")
	}
	return SubtleStyle.Render("↑/↓: surface • ←/→: material • enter: edit area • u: toggle unit • q: quit")
}

// formatAreaInput renders an entered area for display, including values the
// engine will replace.
func formatAreaInput(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Sprintf("%v", v)
	}
	return export.FormatArea(v)
}
