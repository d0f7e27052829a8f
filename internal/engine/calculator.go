package engine

import (
	"sort"
	"strings"

	"github.com/jtsunne/coa-go/internal/model"
)

// safeDivide returns a/b, or 0 when b is zero.
func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Availability returns the percentage of units that are online across the
// whole snapshot. Returns 0 for a nil snapshot or one without units.
func Availability(snap *model.Snapshot) float64 {
	if snap == nil {
		return 0
	}
	var total, online int
	for _, p := range snap.Plants {
		for _, u := range p.Units {
			total++
			if u.Status.Normalize() == model.StatusOnline {
				online++
			}
		}
	}
	return safeDivide(float64(online), float64(total)) * 100
}

// CapacityFactor returns current output as a percentage of installed
// capacity, as reported in the snapshot summary.
func CapacityFactor(snap *model.Snapshot) float64 {
	if snap == nil {
		return 0
	}
	return safeDivide(snap.Summary.TotalPowerKW, snap.Summary.CapacityKW) * 100
}

// CalcPlantRows aggregates each plant's units into one display row, keeping
// the backend's plant order.
func CalcPlantRows(snap *model.Snapshot) []model.PlantRow {
	if snap == nil {
		return []model.PlantRow{}
	}
	rows := make([]model.PlantRow, 0, len(snap.Plants))
	for _, p := range snap.Plants {
		row := model.PlantRow{
			ID:     p.ID,
			Name:   p.Name,
			Units:  len(p.Units),
			Status: model.StatusUnknown,
		}
		statuses := make([]model.UnitStatus, 0, len(p.Units))
		for _, u := range p.Units {
			st := u.Status.Normalize()
			statuses = append(statuses, st)
			switch st {
			case model.StatusOnline:
				row.Online++
			case model.StatusFault:
				row.Faulted++
			case model.StatusOffline:
				row.Offline++
			}
			row.PowerKW += u.PowerKW
			row.EnergyKWh += u.EnergyTodayKWh
		}
		if len(statuses) > 0 {
			row.Status = model.WorstStatus(statuses...)
		}
		row.Availability = safeDivide(float64(row.Online), float64(row.Units)) * 100
		rows = append(rows, row)
	}
	return rows
}

// CalcUnitRows flattens all units into table rows tagged with their plant
// name. Statuses are normalized; rows keep snapshot order.
func CalcUnitRows(snap *model.Snapshot) []model.UnitRow {
	if snap == nil {
		return []model.UnitRow{}
	}
	var n int
	for _, p := range snap.Plants {
		n += len(p.Units)
	}
	rows := make([]model.UnitRow, 0, n)
	for _, p := range snap.Plants {
		for _, u := range p.Units {
			rows = append(rows, model.UnitRow{
				ID:           u.ID,
				Name:         u.Name,
				Plant:        p.Name,
				Kind:         model.UnitKind(strings.ToLower(string(u.Kind))),
				Status:       u.Status.Normalize(),
				PowerKW:      u.PowerKW,
				EnergyKWh:    u.EnergyTodayKWh,
				Efficiency:   u.Efficiency,
				TemperatureC: u.TemperatureC,
			})
		}
	}
	return rows
}

// CalcAlertRows resolves each alert's unit reference to a label and orders
// the result by severity (critical first), then newest first. Alerts whose
// unit no longer exists keep the name and id they carry.
func CalcAlertRows(snap *model.Snapshot) []model.AlertRow {
	if snap == nil {
		return []model.AlertRow{}
	}
	rows := make([]model.AlertRow, 0, len(snap.Alerts))
	for _, a := range snap.Alerts {
		rows = append(rows, model.AlertRow{
			ID:        a.ID,
			Severity:  model.AlertSeverity(strings.ToLower(string(a.Severity))),
			Message:   a.Message,
			UnitLabel: snap.AlertUnitLabel(a),
			Timestamp: a.Timestamp,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Severity.Rank(), rows[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
	return rows
}

// CalcHistoryPoint condenses a snapshot into one sparkline sample.
func CalcHistoryPoint(snap *model.Snapshot) model.HistoryPoint {
	if snap == nil {
		return model.HistoryPoint{}
	}
	return model.HistoryPoint{
		Timestamp:    snap.CapturedAt,
		PowerKW:      snap.Summary.TotalPowerKW,
		ActiveAlerts: float64(len(snap.Alerts)),
		Availability: Availability(snap),
	}
}
