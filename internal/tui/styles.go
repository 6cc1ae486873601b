package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorHighlight = lipgloss.Color("212")
	ColorBorder    = lipgloss.Color("240")
	ColorMuted     = lipgloss.Color("241")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCool      = lipgloss.Color("45")
)

// Icons.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
	IconFocus      = "▶"
)

//nolint:gochecknoglobals // Shared, read-only styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	FocusStyle    = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	CoolStyle     = lipgloss.NewStyle().Foreground(ColorCool).Bold(true)

	BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorValue).Background(lipgloss.Color("57")).Bold(true)
)
