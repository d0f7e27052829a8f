package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsunne/coa-go/internal/model"
)

// unitRowFixtures returns a reproducible set of UnitRow test data.
func unitRowFixtures() []model.UnitRow {
	return []model.UnitRow{
		{Name: "INV-02", Plant: "North Solar", Kind: model.KindInverter, Status: model.StatusFault, PowerKW: 0, EnergyKWh: 100, Efficiency: 0, TemperatureC: 90},
		{Name: "inv-01", Plant: "North Solar", Kind: model.KindInverter, Status: model.StatusOnline, PowerKW: 500, EnergyKWh: 2000, Efficiency: 97, TemperatureC: 45},
		{Name: "MTR-1", Plant: "South Wind", Kind: model.KindMeter, Status: model.StatusOffline, PowerKW: 0, EnergyKWh: 0},
		{Name: "TX-1", Plant: "north solar", Kind: model.KindTransformer, Status: model.StatusWarning, PowerKW: 250, EnergyKWh: 900, Efficiency: 99, TemperatureC: 72},
	}
}

// alertRowFixtures returns a reproducible set of AlertRow test data.
func alertRowFixtures() []model.AlertRow {
	return []model.AlertRow{
		{ID: "a1", Severity: model.SeverityWarning, Message: "High temperature", UnitLabel: "North Solar / TX-1", Timestamp: fixtureTime},
		{ID: "a2", Severity: model.SeverityCritical, Message: "Inverter trip", UnitLabel: "North Solar / INV-02", Timestamp: fixtureTime.Add(time.Minute)},
		{ID: "a3", Severity: model.SeverityInfo, Message: "Comms restored", UnitLabel: "Old Unit (gone)", Timestamp: fixtureTime.Add(2 * time.Minute)},
		{ID: "a4", Severity: model.SeverityWarning, Message: "Breaker open", UnitLabel: "South Wind / BRK-1", Timestamp: fixtureTime.Add(3 * time.Minute)},
	}
}

func names(rows []model.UnitRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func alertIDs(rows []model.AlertRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

// ---------- sortUnitRows ----------

func TestSortUnitRows_Unsorted(t *testing.T) {
	rows := unitRowFixtures()
	sorted := sortUnitRows(rows, -1, false)
	assert.Equal(t, names(rows), names(sorted))
}

func TestSortUnitRows_ByNameCaseInsensitive(t *testing.T) {
	sorted := sortUnitRows(unitRowFixtures(), 0, false)
	assert.Equal(t, []string{"inv-01", "INV-02", "MTR-1", "TX-1"}, names(sorted))
}

func TestSortUnitRows_ByPlantTieBreaksOnName(t *testing.T) {
	sorted := sortUnitRows(unitRowFixtures(), 1, false)
	assert.Equal(t, []string{"inv-01", "INV-02", "TX-1", "MTR-1"}, names(sorted))
}

func TestSortUnitRows_ByStatusWorstFirst(t *testing.T) {
	sorted := sortUnitRows(unitRowFixtures(), 3, true)
	require.Len(t, sorted, 4)
	assert.Equal(t, []string{"INV-02", "MTR-1", "TX-1", "inv-01"}, names(sorted))
}

func TestSortUnitRows_ByPower(t *testing.T) {
	desc := sortUnitRows(unitRowFixtures(), 4, true)
	assert.Equal(t, "inv-01", desc[0].Name)
	assert.Equal(t, "TX-1", desc[1].Name)

	asc := sortUnitRows(unitRowFixtures(), 4, false)
	assert.Equal(t, []string{"INV-02", "MTR-1", "TX-1", "inv-01"}, names(asc), "zero-power tie broken by name")
}

func TestSortUnitRows_ByTemperature(t *testing.T) {
	sorted := sortUnitRows(unitRowFixtures(), 7, true)
	assert.Equal(t, "INV-02", sorted[0].Name)
	assert.Equal(t, "TX-1", sorted[1].Name)
}

func TestSortUnitRows_DoesNotMutateInput(t *testing.T) {
	rows := unitRowFixtures()
	before := names(rows)
	_ = sortUnitRows(rows, 4, true)
	assert.Equal(t, before, names(rows))
}

// ---------- sortAlertRows ----------

func TestSortAlertRows_UnsortedKeepsOrder(t *testing.T) {
	sorted := sortAlertRows(alertRowFixtures(), -1, false)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, alertIDs(sorted))
}

func TestSortAlertRows_BySeverityNewestFirstWithin(t *testing.T) {
	sorted := sortAlertRows(alertRowFixtures(), 0, true)
	assert.Equal(t, []string{"a2", "a4", "a1", "a3"}, alertIDs(sorted))
}

func TestSortAlertRows_ByTime(t *testing.T) {
	desc := sortAlertRows(alertRowFixtures(), 1, true)
	assert.Equal(t, []string{"a4", "a3", "a2", "a1"}, alertIDs(desc))

	asc := sortAlertRows(alertRowFixtures(), 1, false)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, alertIDs(asc))
}

func TestSortAlertRows_ByUnit(t *testing.T) {
	sorted := sortAlertRows(alertRowFixtures(), 2, false)
	assert.Equal(t, []string{"a2", "a1", "a3", "a4"}, alertIDs(sorted))
}

// ---------- filters ----------

func TestFilterUnitRows(t *testing.T) {
	rows := unitRowFixtures()

	assert.Len(t, filterUnitRows(rows, ""), 4)
	assert.Equal(t, []string{"INV-02", "inv-01"}, names(filterUnitRows(rows, "INV")))
	assert.Equal(t, []string{"INV-02", "inv-01", "TX-1"}, names(filterUnitRows(rows, "north")), "plant names match")
	assert.Equal(t, []string{"MTR-1"}, names(filterUnitRows(rows, "meter")), "kinds match")
	assert.Equal(t, []string{"INV-02"}, names(filterUnitRows(rows, "fault")), "statuses match")
	assert.Empty(t, filterUnitRows(rows, "nomatch"))
}

func TestFilterAlertRows(t *testing.T) {
	rows := alertRowFixtures()

	assert.Len(t, filterAlertRows(rows, ""), 4)
	assert.Equal(t, []string{"a2"}, alertIDs(filterAlertRows(rows, "TRIP")))
	assert.Equal(t, []string{"a1", "a2"}, alertIDs(filterAlertRows(rows, "north solar")))
	assert.Equal(t, []string{"a1", "a4"}, alertIDs(filterAlertRows(rows, "warning")))
	assert.Empty(t, filterAlertRows(rows, "nomatch"))
}
