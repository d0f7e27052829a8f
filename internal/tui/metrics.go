package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jtsunne/coa-go/internal/engine"
	"github.com/jtsunne/coa-go/internal/format"
)

// sparkFunc renders a sparkline of the given width.
type sparkFunc func(values []float64, width int, color lipgloss.Color) string

// renderMetricCard renders a single trend card with title, value, and sparkline.
//
// Layout (3 rows inside a rounded border):
//
//	╭──────────────────╮
//	│ Title            │
//	│ 12.50 MW         │
//	│ ▁▂▃▅▇█▇▅▃▂       │
//	╰──────────────────╯
func renderMetricCard(title, value string, sparkValues []float64, spark sparkFunc, cardWidth int, color lipgloss.Color, titleStyle lipgloss.Style) string {
	const minCardWidth = 8
	if cardWidth < minCardWidth {
		cardWidth = minCardWidth
	}

	// Content width = card width minus border (2) and padding (2), with
	// lipgloss Width() counting padding.
	innerWidth := cardWidth - 6
	if innerWidth < 1 {
		innerWidth = 1
	}

	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(color)

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Padding(0, 1).
		Width(cardWidth - 4)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		valueStyle.Render(value),
		spark(sparkValues, innerWidth, color),
	))
}

// renderTrendsRow renders the Output, Availability and Active Alerts trend
// cards under a "Trends" label, fed from the snapshot history.
// Narrow terminals (< 60 cols) stack the cards vertically.
// Returns empty string when no data is available.
func renderTrendsRow(app *App) string {
	if app.current == nil {
		return ""
	}

	avail := engine.Availability(app.current)
	availTitle := StyleDim
	if sev := availabilitySeverity(avail); sev != severityNormal {
		availTitle = severityToStyle(sev)
	}
	alertTitle := StyleDim
	if len(app.alertRows) > 0 {
		alertTitle = StyleYellow
	}

	type card struct {
		title  string
		value  string
		values []float64
		spark  sparkFunc
		color  lipgloss.Color
		style  lipgloss.Style
	}
	cards := []card{
		{"Output", format.FormatPower(app.current.Summary.TotalPowerKW), app.history.Values("power"), RenderSparkline, colorGreen, StyleDim},
		{"Availability", format.FormatPercent(avail), app.history.Values("availability"), RenderRangeSparkline, colorCyan, availTitle},
		{"Active Alerts", fmt.Sprintf("%d", len(app.alertRows)), app.history.Values("alerts"), RenderSparkline, colorOrange, alertTitle},
	}

	label := StyleDim.Render("Trends")

	if app.width > 0 && app.width < 60 {
		cardWidth := app.width + 2
		if cardWidth < 8 {
			return ""
		}
		rendered := []string{StyleDim.MaxWidth(app.width).Render("Trends")}
		for _, c := range cards {
			rendered = append(rendered, renderMetricCard(c.title, c.value, c.values, c.spark, cardWidth, c.color, c.style))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}

	// Each card renders at (cardWidth-2) chars wide, so three cards fill the
	// terminal at cardWidth=(width+6)/3.
	cardWidth := (app.width + 6) / 3
	if cardWidth < 20 {
		cardWidth = 20
	}
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, renderMetricCard(c.title, c.value, c.values, c.spark, cardWidth, c.color, c.style))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}
