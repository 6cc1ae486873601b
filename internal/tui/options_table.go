package tui

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/greenops"
)

// optionsTableHeight is the visible row count of the comparison table.
const optionsTableHeight = 4

// NewOptionsTable builds the comparison table for one surface, with the
// cursor on the selected option.
func NewOptionsTable(cat *catalog.Catalog, category catalog.Category, selected catalog.OptionID, currency string) table.Model {
	columns := []table.Column{
		{Title: "Material", Width: 20},   //nolint:mnd // Column width.
		{Title: "Partner", Width: 16},    //nolint:mnd // Column width.
		{Title: "Temp", Width: 6},        //nolint:mnd // Column width.
		{Title: "Price/sqft", Width: 14}, //nolint:mnd // Column width.
		{Title: "Notes", Width: 40},      //nolint:mnd // Column width.
	}

	opts := cat.Options(category)
	rows := make([]table.Row, len(opts))
	cursor := 0
	for i, o := range opts {
		rows[i] = table.Row{
			o.Name,
			o.Partner,
			o.TemperatureLabel(),
			greenops.FormatMoney(o.UnitPrice, currency, 0),
			o.Description,
		}
		if o.ID == selected {
			cursor = i
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(optionsTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	t.SetCursor(cursor)

	return t
}
