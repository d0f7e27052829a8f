package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/jtsunne/coa-go/internal/engine"
	"github.com/jtsunne/coa-go/internal/format"
)

// writeReport prints one summary table per scope followed by its
// advisories, for --once runs.
func writeReport(w io.Writer, results []engine.ScopeSnapshot) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, renderScopeReport(r)); err != nil {
			return err
		}
	}
	return nil
}

func renderScopeReport(r engine.ScopeSnapshot) string {
	snap := r.Snapshot
	scope := r.Scope
	if scope == "" {
		scope = "default"
	}

	plantRows := engine.CalcPlantRows(snap)
	unitRows := engine.CalcUnitRows(snap)
	alertRows := engine.CalcAlertRows(snap)
	advisories := engine.CalcAdvisories(snap, plantRows, unitRows)

	bold := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  captured %s\n", bold.Render("scope: "+scope), snap.CapturedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "output %s of %s  energy %s  availability %s  alerts %d\n",
		format.FormatPower(snap.Summary.TotalPowerKW),
		format.FormatPower(snap.Summary.CapacityKW),
		format.FormatEnergy(snap.Summary.EnergyTodayKWh),
		format.FormatPercent(engine.Availability(snap)),
		len(alertRows))

	t := ltable.New().
		Headers("Plant", "Status", "Units", "Online", "Faulted", "Power", "Energy", "Avail").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return bold.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, p := range plantRows {
		t = t.Row(
			p.Name,
			string(p.Status),
			fmt.Sprintf("%d", p.Units),
			fmt.Sprintf("%d", p.Online),
			fmt.Sprintf("%d", p.Faulted),
			format.FormatPower(p.PowerKW),
			format.FormatEnergy(p.EnergyKWh),
			format.FormatPercent(p.Availability),
		)
	}
	b.WriteString(t.String())
	b.WriteString("\n")

	for _, a := range advisories {
		fmt.Fprintf(&b, "  [%s] %s", strings.ToUpper(string(a.Severity)), a.Title)
		if a.Detail != "" {
			fmt.Fprintf(&b, ": %s", a.Detail)
		}
		b.WriteString("\n")
	}
	return b.String()
}
