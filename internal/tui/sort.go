package tui

import (
	"sort"
	"strings"

	"github.com/jtsunne/coa-go/internal/model"
)

// sortUnitRows returns a sorted copy of rows.
// Column mapping:
//
//	0=Name, 1=Plant, 2=Kind, 3=Status, 4=PowerKW, 5=EnergyKWh,
//	6=Efficiency, 7=TemperatureC
//
// col -1 means no sort (preserve order). Status sorts by severity rank.
// Ties are broken by Name ascending.
func sortUnitRows(rows []model.UnitRow, col int, desc bool) []model.UnitRow {
	out := make([]model.UnitRow, len(rows))
	copy(out, rows)

	if col < 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		nameLess := strings.ToLower(a.Name) < strings.ToLower(b.Name)
		var less bool
		switch col {
		case 0:
			less = nameLess
		case 1:
			if !strings.EqualFold(a.Plant, b.Plant) {
				less = strings.ToLower(a.Plant) < strings.ToLower(b.Plant)
			} else {
				return nameLess
			}
		case 2:
			if a.Kind != b.Kind {
				less = a.Kind < b.Kind
			} else {
				return nameLess
			}
		case 3:
			if a.Status.Rank() != b.Status.Rank() {
				less = a.Status.Rank() < b.Status.Rank()
			} else {
				return nameLess
			}
		case 4:
			if a.PowerKW != b.PowerKW {
				less = a.PowerKW < b.PowerKW
			} else {
				return nameLess
			}
		case 5:
			if a.EnergyKWh != b.EnergyKWh {
				less = a.EnergyKWh < b.EnergyKWh
			} else {
				return nameLess
			}
		case 6:
			if a.Efficiency != b.Efficiency {
				less = a.Efficiency < b.Efficiency
			} else {
				return nameLess
			}
		case 7:
			if a.TemperatureC != b.TemperatureC {
				less = a.TemperatureC < b.TemperatureC
			} else {
				return nameLess
			}
		default:
			less = nameLess
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

// sortAlertRows returns a sorted copy of rows.
// Column mapping:
//
//	0=Severity, 1=Timestamp, 2=UnitLabel, 3=Message
//
// col -1 keeps the incoming order (severity, then newest first).
// Ties are broken by Timestamp, newest first.
func sortAlertRows(rows []model.AlertRow, col int, desc bool) []model.AlertRow {
	out := make([]model.AlertRow, len(rows))
	copy(out, rows)

	if col < 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		newer := a.Timestamp.After(b.Timestamp)
		var less bool
		switch col {
		case 0:
			if a.Severity.Rank() != b.Severity.Rank() {
				less = a.Severity.Rank() < b.Severity.Rank()
			} else {
				return newer
			}
		case 1:
			if !a.Timestamp.Equal(b.Timestamp) {
				less = a.Timestamp.Before(b.Timestamp)
			} else {
				return strings.ToLower(a.UnitLabel) < strings.ToLower(b.UnitLabel)
			}
		case 2:
			if !strings.EqualFold(a.UnitLabel, b.UnitLabel) {
				less = strings.ToLower(a.UnitLabel) < strings.ToLower(b.UnitLabel)
			} else {
				return newer
			}
		case 3:
			if !strings.EqualFold(a.Message, b.Message) {
				less = strings.ToLower(a.Message) < strings.ToLower(b.Message)
			} else {
				return newer
			}
		default:
			return newer
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

// filterUnitRows returns rows whose Name, Plant, Kind or Status contains
// search (case-insensitive). Returns all rows when search is empty.
func filterUnitRows(rows []model.UnitRow, search string) []model.UnitRow {
	if search == "" {
		return rows
	}
	lower := strings.ToLower(search)
	out := rows[:0:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), lower) ||
			strings.Contains(strings.ToLower(r.Plant), lower) ||
			strings.Contains(strings.ToLower(string(r.Kind)), lower) ||
			strings.Contains(string(r.Status), lower) {
			out = append(out, r)
		}
	}
	return out
}

// filterAlertRows returns rows whose Message, UnitLabel or Severity contains
// search (case-insensitive). Returns all rows when search is empty.
func filterAlertRows(rows []model.AlertRow, search string) []model.AlertRow {
	if search == "" {
		return rows
	}
	lower := strings.ToLower(search)
	out := rows[:0:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Message), lower) ||
			strings.Contains(strings.ToLower(r.UnitLabel), lower) ||
			strings.Contains(strings.ToLower(string(r.Severity)), lower) {
			out = append(out, r)
		}
	}
	return out
}
