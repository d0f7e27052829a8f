package model

import "time"

// PlantRow holds display-ready data for a single plant.
type PlantRow struct {
	ID           string
	Name         string
	Status       UnitStatus // worst status among the plant's units
	Units        int
	Online       int
	Faulted      int
	Offline      int
	PowerKW      float64
	EnergyKWh    float64
	Availability float64 // percent of units online
}

// UnitRow holds display-ready data for a single unit table row.
type UnitRow struct {
	ID           string
	Name         string
	Plant        string
	Kind         UnitKind
	Status       UnitStatus
	PowerKW      float64
	EnergyKWh    float64
	Efficiency   float64
	TemperatureC float64
}

// AlertRow is an alert with its unit reference already resolved to a label.
type AlertRow struct {
	ID        string
	Severity  AlertSeverity
	Message   string
	UnitLabel string
	Timestamp time.Time
}

// AdvisoryCategory groups advisories in the analytics view.
type AdvisoryCategory string

const (
	CategoryAvailability AdvisoryCategory = "availability"
	CategoryThermal      AdvisoryCategory = "thermal"
	CategoryPerformance  AdvisoryCategory = "performance"
	CategoryAlerting     AdvisoryCategory = "alerting"
)

// Advisory is an operator hint derived from a snapshot. Severity reuses the
// alert scale.
type Advisory struct {
	Severity AlertSeverity
	Category AdvisoryCategory
	Title    string
	Detail   string
}
