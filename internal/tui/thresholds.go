package tui

import "github.com/charmbracelet/lipgloss"

// severity represents the alert level for a metric value.
type severity int

const (
	severityNormal   severity = iota
	severityWarning           // yellow
	severityCritical          // red
)

// availabilitySeverity returns Warning below 90% units online, Critical below 75%.
func availabilitySeverity(pct float64) severity {
	switch {
	case pct < 75:
		return severityCritical
	case pct < 90:
		return severityWarning
	default:
		return severityNormal
	}
}

// temperatureSeverity returns Warning at 70°C and Critical at 85°C.
func temperatureSeverity(c float64) severity {
	switch {
	case c >= 85:
		return severityCritical
	case c >= 70:
		return severityWarning
	default:
		return severityNormal
	}
}

// efficiencySeverity returns Warning below 90% and Critical below 80%.
// Zero means the unit does not report efficiency.
func efficiencySeverity(pct float64) severity {
	switch {
	case pct <= 0:
		return severityNormal
	case pct < 80:
		return severityCritical
	case pct < 90:
		return severityWarning
	default:
		return severityNormal
	}
}

// alertCountSeverity returns Critical when any critical alert is active and
// Warning when other alerts are.
func alertCountSeverity(total, critical int) severity {
	switch {
	case critical > 0:
		return severityCritical
	case total > 0:
		return severityWarning
	default:
		return severityNormal
	}
}

// severityToStyle maps a severity level to the appropriate lipgloss style.
func severityToStyle(s severity) lipgloss.Style {
	switch s {
	case severityWarning:
		return StyleYellow
	case severityCritical:
		return StyleRed
	default:
		return lipgloss.NewStyle()
	}
}

// severityFg returns the card foreground color for a severity level.
func severityFg(s severity) lipgloss.Color {
	switch s {
	case severityWarning:
		return colorYellow
	case severityCritical:
		return colorRed
	default:
		return colorGreen
	}
}
