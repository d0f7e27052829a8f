package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsunne/coa-go/internal/model"
)

func TestNewUnitTable_DefaultSortWorstFirst(t *testing.T) {
	m := NewUnitTable()
	assert.Equal(t, 3, m.sortCol)
	assert.True(t, m.sortDesc)

	m.SetData(unitRowFixtures())
	require.Len(t, m.displayRows, 4)
	assert.Equal(t, "INV-02", m.displayRows[0].Name)
	assert.Equal(t, "inv-01", m.displayRows[3].Name)
}

func TestUnitTable_SetDataKeepsSearch(t *testing.T) {
	m := NewUnitTable()
	m.search = "north"
	m.SetData(unitRowFixtures())
	assert.Len(t, m.displayRows, 3)

	m.SetData(unitRowFixtures()[2:])
	assert.Len(t, m.displayRows, 1, "a new snapshot is filtered with the active search")
}

func TestUnitTable_SetDataClampsPage(t *testing.T) {
	m := NewUnitTable()
	m.focused = true
	m.SetData(makeUnitRows(25))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 2, m.page)

	m.SetData(makeUnitRows(5))
	assert.Equal(t, 0, m.page)
}

func TestUnitCellValue(t *testing.T) {
	r := unitRowFixtures()[1]
	assert.Equal(t, "inv-01", unitCellValue(r, 0))
	assert.Equal(t, "North Solar", unitCellValue(r, 1))
	assert.Equal(t, "▣ inverter", unitCellValue(r, 2))
	assert.Equal(t, "online", unitCellValue(r, 3))
	assert.Equal(t, "500.0 kW", unitCellValue(r, 4))
	assert.Equal(t, "2.00 MWh", unitCellValue(r, 5))
	assert.Equal(t, "97.0%", unitCellValue(r, 6))
	assert.Equal(t, "45.0°C", unitCellValue(r, 7))
	assert.Equal(t, "", unitCellValue(r, 8))

	silent := model.UnitRow{Name: "MTR-1"}
	assert.Equal(t, "---", unitCellValue(silent, 6))
	assert.Equal(t, "---", unitCellValue(silent, 7))
}

func TestUnitTable_RenderTable(t *testing.T) {
	m := NewUnitTable()
	m.focused = true
	m.SetData(unitRowFixtures())

	got := ansi.Strip(m.renderTable(120))
	assert.Contains(t, got, "Units")
	assert.Contains(t, got, "Status↓")
	assert.Contains(t, got, "INV-02")
	assert.Contains(t, got, "South Wind")
	assert.Contains(t, got, "North Solar / INV-02  id=", "focused table shows the selected row detail")
}

func TestUnitTable_RenderEmpty(t *testing.T) {
	m := NewUnitTable()
	m.SetData(nil)
	assert.Contains(t, ansi.Strip(m.renderTable(80)), "(no units)")
}

func TestUnitTable_RenderTruncatesLongNames(t *testing.T) {
	m := NewUnitTable()
	m.SetData([]model.UnitRow{{Name: "a-very-long-unit-name-that-will-not-fit-anywhere", Plant: "P", Status: model.StatusOnline}})
	got := ansi.Strip(m.renderTable(80))
	assert.Contains(t, got, "...")
	assert.NotContains(t, got, "anywhere")
}
