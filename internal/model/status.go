package model

import "strings"

// UnitStatus is the operational state reported for a unit.
type UnitStatus string

const (
	StatusOnline      UnitStatus = "online"
	StatusWarning     UnitStatus = "warning"
	StatusFault       UnitStatus = "fault"
	StatusOffline     UnitStatus = "offline"
	StatusMaintenance UnitStatus = "maintenance"
	StatusUnknown     UnitStatus = "unknown"
)

// Normalize maps free-form backend values onto the known statuses.
func (s UnitStatus) Normalize() UnitStatus {
	switch UnitStatus(strings.ToLower(strings.TrimSpace(string(s)))) {
	case StatusOnline, "running", "ok":
		return StatusOnline
	case StatusWarning, "alarm":
		return StatusWarning
	case StatusFault, "error", "trip", "tripped":
		return StatusFault
	case StatusOffline, "stopped", "disconnected":
		return StatusOffline
	case StatusMaintenance:
		return StatusMaintenance
	default:
		return StatusUnknown
	}
}

// Rank orders statuses from healthy (0) to worst. Composite statuses such as
// a plant's overall state take the highest rank among their units.
func (s UnitStatus) Rank() int {
	switch s.Normalize() {
	case StatusOnline:
		return 0
	case StatusMaintenance:
		return 1
	case StatusUnknown:
		return 2
	case StatusWarning:
		return 3
	case StatusOffline:
		return 4
	case StatusFault:
		return 5
	default:
		return 2
	}
}

// WorstStatus returns the highest-ranked status, or StatusUnknown for none.
func WorstStatus(statuses ...UnitStatus) UnitStatus {
	if len(statuses) == 0 {
		return StatusUnknown
	}
	worst := statuses[0].Normalize()
	for _, s := range statuses[1:] {
		if s.Rank() > worst.Rank() {
			worst = s.Normalize()
		}
	}
	return worst
}

// UnitKind tags the equipment type; it selects the diagram symbol.
type UnitKind string

const (
	KindInverter    UnitKind = "inverter"
	KindTransformer UnitKind = "transformer"
	KindBreaker     UnitKind = "breaker"
	KindMeter       UnitKind = "meter"
	KindTracker     UnitKind = "tracker"
	KindPivot       UnitKind = "pivot"
)

// AlertSeverity is the urgency of an alert.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Rank orders severities: info 0, warning 1, critical 2.
func (s AlertSeverity) Rank() int {
	switch AlertSeverity(strings.ToLower(string(s))) {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}
