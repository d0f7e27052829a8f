package model

import (
	"strings"
	"time"
)

// Snapshot is one aggregate dashboard payload for a scope. It is never
// mutated after decoding; a new fetch produces a new *Snapshot.
type Snapshot struct {
	CapturedAt time.Time `json:"timestamp"`
	Summary    Summary   `json:"summary"`
	Plants     []Plant   `json:"plants"`
	Alerts     []Alert   `json:"alerts"`
}

// Summary holds the numeric aggregates reported by the backend.
type Summary struct {
	TotalPowerKW   float64 `json:"totalPowerKw"`
	CapacityKW     float64 `json:"capacityKw"`
	EnergyTodayKWh float64 `json:"energyTodayKwh"`
	PlantCount     int     `json:"plantCount"`
	UnitCount      int     `json:"unitCount"`
	OnlineUnits    int     `json:"onlineUnits"`
	ActiveAlerts   int     `json:"activeAlerts"`
}

// Plant groups the supervised units of one site.
type Plant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Units []Unit `json:"units"`
}

// Unit is a single piece of supervised equipment.
type Unit struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Kind           UnitKind   `json:"kind"`
	Status         UnitStatus `json:"status"`
	PowerKW        float64    `json:"powerKw"`
	EnergyTodayKWh float64    `json:"energyTodayKwh"`
	Efficiency     float64    `json:"efficiency"`   // percent
	TemperatureC   float64    `json:"temperatureC"` // degrees Celsius
}

// Alert references its unit by id only. UnitName is carried so the alert can
// still be labelled when the id no longer resolves.
type Alert struct {
	ID        string        `json:"id"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	UnitID    string        `json:"unitId"`
	UnitName  string        `json:"unitName"`
	Timestamp time.Time     `json:"timestamp"`
}

// FindUnit looks up a unit by id across all plants.
func (s *Snapshot) FindUnit(id string) (Unit, Plant, bool) {
	if s == nil || id == "" {
		return Unit{}, Plant{}, false
	}
	for _, p := range s.Plants {
		for _, u := range p.Units {
			if u.ID == id {
				return u, p, true
			}
		}
	}
	return Unit{}, Plant{}, false
}

// AlertUnitLabel returns a display label for the unit an alert refers to.
// When the reference dangles, the label falls back to the name and id
// carried on the alert itself.
func (s *Snapshot) AlertUnitLabel(a Alert) string {
	if u, p, ok := s.FindUnit(a.UnitID); ok {
		return p.Name + " / " + u.Name
	}
	name := strings.TrimSpace(a.UnitName)
	switch {
	case name != "" && a.UnitID != "":
		return name + " (" + a.UnitID + ")"
	case name != "":
		return name
	case a.UnitID != "":
		return a.UnitID
	default:
		return "-"
	}
}
