package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jtsunne/coa-go/internal/model"
)

// Advisory thresholds.
const (
	tempWarnC          = 70.0
	tempCritC          = 85.0
	efficiencyWarnPct  = 90.0
	efficiencyCritPct  = 80.0
	availabilityWarn   = 80.0
	availabilityCrit   = 50.0
	capacityLowPct     = 10.0
	maxNamesInDetail   = 5
	minPowerForEffKW   = 1.0 // units below this output are idle; efficiency is meaningless
	minCapacityForLowK = 1.0
)

// CalcAdvisories derives operator hints from the current snapshot and its
// computed rows. Critical advisories come first. Returns an empty (non-nil)
// slice when snap is nil.
func CalcAdvisories(snap *model.Snapshot, plantRows []model.PlantRow, unitRows []model.UnitRow) []model.Advisory {
	result := []model.Advisory{}
	if snap == nil {
		return result
	}

	result = append(result, availabilityAdvisories(plantRows)...)
	result = append(result, faultAdvisories(unitRows)...)
	result = append(result, thermalAdvisories(unitRows)...)
	result = append(result, efficiencyAdvisories(unitRows)...)

	// Unresolved critical alerts.
	var critical int
	for _, a := range snap.Alerts {
		if a.Severity.Rank() == model.SeverityCritical.Rank() {
			critical++
		}
	}
	if critical > 0 {
		result = append(result, model.Advisory{
			Severity: model.SeverityCritical,
			Category: model.CategoryAlerting,
			Title:    "Critical alerts active",
			Detail:   fmt.Sprintf("%d critical alert(s) are active. Review the alerts table and dispatch field crews where needed.", critical),
		})
	}

	// Output far below capacity while most units report online usually
	// means curtailment or a metering problem.
	if snap.Summary.CapacityKW >= minCapacityForLowK && len(unitRows) > 0 {
		cf := CapacityFactor(snap)
		avail := Availability(snap)
		if cf < capacityLowPct && avail >= availabilityWarn {
			result = append(result, model.Advisory{
				Severity: model.SeverityInfo,
				Category: model.CategoryPerformance,
				Title:    "Low output with units online",
				Detail: fmt.Sprintf(
					"Fleet output is %.1f%% of capacity while %.0f%% of units are online. Check for curtailment orders or meter communication.",
					cf, avail,
				),
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Severity.Rank() > result[j].Severity.Rank()
	})
	return result
}

func availabilityAdvisories(plantRows []model.PlantRow) []model.Advisory {
	var recs []model.Advisory
	for _, p := range plantRows {
		if p.Units == 0 {
			continue
		}
		switch {
		case p.Availability < availabilityCrit:
			recs = append(recs, model.Advisory{
				Severity: model.SeverityCritical,
				Category: model.CategoryAvailability,
				Title:    "Plant availability critical: " + p.Name,
				Detail: fmt.Sprintf(
					"%s has %d of %d units online (%.0f%%). %d faulted, %d offline.",
					p.Name, p.Online, p.Units, p.Availability, p.Faulted, p.Offline,
				),
			})
		case p.Availability < availabilityWarn:
			recs = append(recs, model.Advisory{
				Severity: model.SeverityWarning,
				Category: model.CategoryAvailability,
				Title:    "Plant availability low: " + p.Name,
				Detail: fmt.Sprintf(
					"%s has %d of %d units online (%.0f%%).",
					p.Name, p.Online, p.Units, p.Availability,
				),
			})
		}
	}
	return recs
}

func faultAdvisories(unitRows []model.UnitRow) []model.Advisory {
	var names []string
	for _, u := range unitRows {
		if u.Status == model.StatusFault {
			names = append(names, unitName(u))
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []model.Advisory{{
		Severity: model.SeverityCritical,
		Category: model.CategoryAvailability,
		Title:    fmt.Sprintf("%d unit(s) in fault", len(names)),
		Detail:   "Faulted: " + joinNames(names) + ". Inspect protection relays before reset.",
	}}
}

// thermalAdvisories returns one advisory per severity level listing the units
// running hot.
func thermalAdvisories(unitRows []model.UnitRow) []model.Advisory {
	var crit, warn []string
	for _, u := range unitRows {
		switch {
		case u.TemperatureC >= tempCritC:
			crit = append(crit, fmt.Sprintf("%s %.0f°C", unitName(u), u.TemperatureC))
		case u.TemperatureC >= tempWarnC:
			warn = append(warn, fmt.Sprintf("%s %.0f°C", unitName(u), u.TemperatureC))
		}
	}
	var recs []model.Advisory
	if len(crit) > 0 {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityCritical,
			Category: model.CategoryThermal,
			Title:    "Units overheating",
			Detail: fmt.Sprintf("%s at or above %.0f°C. Derate or shut down to avoid thermal trips.",
				joinNames(crit), tempCritC),
		})
	}
	if len(warn) > 0 {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityWarning,
			Category: model.CategoryThermal,
			Title:    "Units running hot",
			Detail: fmt.Sprintf("%s above %.0f°C. Check cooling and ventilation.",
				joinNames(warn), tempWarnC),
		})
	}
	return recs
}

// efficiencyAdvisories flags producing units whose conversion efficiency is
// low. Idle units and units that report no efficiency are ignored.
func efficiencyAdvisories(unitRows []model.UnitRow) []model.Advisory {
	var crit, warn []string
	for _, u := range unitRows {
		if u.Status != model.StatusOnline || u.PowerKW < minPowerForEffKW || u.Efficiency <= 0 {
			continue
		}
		switch {
		case u.Efficiency < efficiencyCritPct:
			crit = append(crit, fmt.Sprintf("%s %.1f%%", unitName(u), u.Efficiency))
		case u.Efficiency < efficiencyWarnPct:
			warn = append(warn, fmt.Sprintf("%s %.1f%%", unitName(u), u.Efficiency))
		}
	}
	var recs []model.Advisory
	if len(crit) > 0 {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityCritical,
			Category: model.CategoryPerformance,
			Title:    "Very low conversion efficiency",
			Detail:   joinNames(crit) + ". Schedule inspection of power electronics.",
		})
	}
	if len(warn) > 0 {
		recs = append(recs, model.Advisory{
			Severity: model.SeverityWarning,
			Category: model.CategoryPerformance,
			Title:    "Low conversion efficiency",
			Detail:   joinNames(warn) + ". Check for soiling or string mismatch.",
		})
	}
	return recs
}

func unitName(u model.UnitRow) string {
	name := u.Name
	if name == "" {
		name = u.ID
	}
	if u.Plant != "" {
		return u.Plant + "/" + name
	}
	return name
}

// joinNames lists at most maxNamesInDetail entries and summarizes the rest.
func joinNames(names []string) string {
	if len(names) <= maxNamesInDetail {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(names[:maxNamesInDetail], ", "), len(names)-maxNamesInDetail)
}
