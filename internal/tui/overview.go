package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jtsunne/coa-go/internal/engine"
	"github.com/jtsunne/coa-go/internal/format"
	"github.com/jtsunne/coa-go/internal/model"
)

// renderOverview renders the 6-card summary bar.
// Wide terminals (>= 80 cols): all cards in a single horizontal row.
// Narrow terminals (< 80 cols): cards stacked in rows of 2.
// Returns empty string if no snapshot is available yet.
func renderOverview(app *App) string {
	if app.current == nil {
		return ""
	}

	width := app.width
	if width <= 0 {
		width = 80
	}
	narrowMode := width < 80

	var cardWidth int
	if narrowMode {
		cardWidth = (width - 4) / 2
		if cardWidth < 10 {
			cardWidth = 10
		}
	} else {
		cardWidth = (width - 12) / 6
		if cardWidth < 8 {
			cardWidth = 8
		}
	}
	barWidth := cardWidth - 4
	if barWidth < 4 {
		barWidth = 4
	}

	sum := app.current.Summary

	// Card 1: Output with capacity bar.
	cf := engine.CapacityFactor(app.current)
	capLine := "of " + format.FormatPower(sum.CapacityKW)
	if sum.CapacityKW <= 0 {
		capLine = "capacity n/a"
	}
	card1 := StyleOverviewCard.
		Foreground(colorGreen).
		Width(cardWidth).
		Render(format.FormatPower(sum.TotalPowerKW) + "\n" + renderMiniBar(cf, barWidth) + "\n" + capLine + "\nOutput")

	// Card 2: Energy today.
	card2 := StyleOverviewCard.
		Foreground(colorCyan).
		Width(cardWidth).
		Render(format.FormatEnergy(sum.EnergyTodayKWh) + "\nEnergy Today")

	// Card 3: Plants, falling back to the decoded list when the backend
	// leaves the count out.
	plants := sum.PlantCount
	if plants == 0 {
		plants = len(app.current.Plants)
	}
	card3 := StyleOverviewCard.
		Foreground(colorPurple).
		Width(cardWidth).
		Render(fmt.Sprintf("%d", plants) + "\nPlants")

	// Card 4: Units online / total.
	online, total := sum.OnlineUnits, sum.UnitCount
	if total == 0 {
		total = len(app.unitRows)
		online = 0
		for _, u := range app.unitRows {
			if u.Status == model.StatusOnline {
				online++
			}
		}
	}
	card4 := StyleOverviewCard.
		Foreground(colorIndigo).
		Width(cardWidth).
		Render(fmt.Sprintf("%d/%d", online, total) + "\nUnits Online")

	// Card 5: Availability with severity coloring.
	avail := engine.Availability(app.current)
	availSev := availabilitySeverity(avail)
	availVal := format.FormatPercent(avail)
	if availSev == severityCritical {
		availVal += "!"
	}
	card5 := StyleOverviewCard.
		Foreground(severityFg(availSev)).
		Width(cardWidth).
		Render(availVal + "\n" + renderMiniBar(avail, barWidth) + "\nAvailability")

	// Card 6: Active alerts, red when any is critical.
	var critical int
	for _, a := range app.alertRows {
		if a.Severity.Rank() == model.SeverityCritical.Rank() {
			critical++
		}
	}
	alertCount := len(app.alertRows)
	if sum.ActiveAlerts > alertCount {
		alertCount = sum.ActiveAlerts
	}
	alertSev := alertCountSeverity(alertCount, critical)
	alertDetail := "none critical"
	if critical > 0 {
		alertDetail = fmt.Sprintf("%d critical", critical)
	}
	card6 := StyleOverviewCard.
		Foreground(severityFg(alertSev)).
		Width(cardWidth).
		Render(severityToStyle(alertSev).Bold(true).Render(fmt.Sprintf("%d", alertCount)) + "\n" + alertDetail + "\nAlerts")

	if narrowMode {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, card1, card2)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, card3, card4)
		row3 := lipgloss.JoinHorizontal(lipgloss.Top, card5, card6)
		return lipgloss.JoinVertical(lipgloss.Left, row1, row2, row3)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, card1, card2, card3, card4, card5, card6)
}

// renderMiniBar renders a mini progress bar using Unicode block characters.
// Fills proportionally using "█" (U+2588) for filled and "░" (U+2591) for empty cells.
func renderMiniBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
