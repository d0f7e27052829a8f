package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jtsunne/coa-go/internal/model"
)

// Color constants: operations centre palette.
var (
	colorGreen      = lipgloss.Color("#10b981")
	colorYellow     = lipgloss.Color("#f59e0b")
	colorRed        = lipgloss.Color("#ef4444")
	colorGray       = lipgloss.Color("#6b7280")
	colorBlue       = lipgloss.Color("#3b82f6")
	colorCyan       = lipgloss.Color("#06b6d4")
	colorPurple     = lipgloss.Color("#8b5cf6")
	colorIndigo     = lipgloss.Color("#6366f1")
	colorOrange     = lipgloss.Color("#f97316")
	colorWhite      = lipgloss.Color("#f8fafc")
	colorDark       = lipgloss.Color("#1e293b")
	colorAlt        = lipgloss.Color("#0f172a")
	colorSelectedBg = lipgloss.Color("#334155")
)

// StyleHeader is the full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleOverviewCard is a card in the summary bar.
var StyleOverviewCard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1).
	Margin(0).
	Align(lipgloss.Center)

// StyleToast is the transient confirmation line shown after a forced refresh.
var StyleToast = lipgloss.NewStyle().
	Foreground(colorDark).
	Background(colorGreen).
	Bold(true).
	Padding(0, 1)

// StyleBanner is the blocking error box shown when no snapshot is available.
var StyleBanner = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorRed).
	Foreground(colorWhite).
	Padding(1, 2)

// Utility styles.
var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// Named color styles for table cell coloring.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(colorOrange)
	StyleBlue   = lipgloss.NewStyle().Foreground(colorBlue)
	StyleCyan   = lipgloss.NewStyle().Foreground(colorCyan)
	StylePurple = lipgloss.NewStyle().Foreground(colorPurple)
	StyleRed    = lipgloss.NewStyle().Foreground(colorRed)
)

// statusColor maps a unit status to its display color.
func statusColor(s model.UnitStatus) lipgloss.Color {
	switch s.Normalize() {
	case model.StatusOnline:
		return colorGreen
	case model.StatusWarning:
		return colorYellow
	case model.StatusFault:
		return colorRed
	case model.StatusOffline:
		return colorOrange
	case model.StatusMaintenance:
		return colorBlue
	default:
		return colorGray
	}
}

// StatusStyle returns the bold foreground style for a unit or plant status.
func StatusStyle(s model.UnitStatus) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(statusColor(s))
}

// severityColor maps an alert severity to its display color.
func severityColor(s model.AlertSeverity) lipgloss.Color {
	switch s.Rank() {
	case 2:
		return colorRed
	case 1:
		return colorYellow
	default:
		return colorCyan
	}
}
