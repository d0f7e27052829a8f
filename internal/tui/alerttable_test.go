package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsunne/coa-go/internal/model"
)

func TestNewAlertTable_KeepsIncomingOrder(t *testing.T) {
	m := NewAlertTable()
	assert.Equal(t, -1, m.sortCol)

	m.SetData(alertRowFixtures())
	require.Len(t, m.displayRows, 4)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, alertIDs(m.displayRows))
}

func TestAlertTable_SortAndSearch(t *testing.T) {
	m := NewAlertTable()
	m.focused = true
	m.SetData(alertRowFixtures())

	m, _ = m.Update(runeKey("1"))
	assert.Equal(t, "a2", m.displayRows[0].ID, "severity sort starts with critical")

	m.search = "south"
	m.apply()
	assert.Equal(t, []string{"a4"}, alertIDs(m.displayRows))
}

func TestAlertCellValue(t *testing.T) {
	r := alertRowFixtures()[1]
	assert.Equal(t, "CRITICAL", alertCellValue(r, 0))
	assert.Equal(t, r.Timestamp.Local().Format("15:04:05"), alertCellValue(r, 1))
	assert.Equal(t, "North Solar / INV-02", alertCellValue(r, 2))
	assert.Equal(t, "Inverter trip", alertCellValue(r, 3))

	blank := model.AlertRow{Message: "line1\nline2"}
	assert.Equal(t, "INFO", alertCellValue(blank, 0))
	assert.Equal(t, "---", alertCellValue(blank, 1))
	assert.Equal(t, "line1line2", alertCellValue(blank, 3))
}

func TestAlertTable_RenderTable(t *testing.T) {
	m := NewAlertTable()
	m.focused = true
	m.SetData(alertRowFixtures())

	got := ansi.Strip(m.renderTable(120))
	assert.Contains(t, got, "Alerts")
	assert.Contains(t, got, "WARNING")
	assert.Contains(t, got, "Inverter trip")
	assert.Contains(t, got, "Old Unit (gone)")
	assert.Contains(t, got, "High temperature", "focused detail line shows the selected alert")
}

func TestAlertTable_RenderEmpty(t *testing.T) {
	m := NewAlertTable()
	m.SetData(nil)
	assert.Contains(t, ansi.Strip(m.renderTable(80)), "(no active alerts)")
}
