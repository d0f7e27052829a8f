package tui

import (
	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jtsunne/coa-go/internal/format"
	"github.com/jtsunne/coa-go/internal/model"
)

// UnitTableModel is a sortable, paginated, searchable table of units.
type UnitTableModel struct {
	tableModel
	allRows     []model.UnitRow // unfiltered source data
	displayRows []model.UnitRow // after filter + sort applied
}

// NewUnitTable returns a UnitTableModel sorted by status, worst first.
func NewUnitTable() UnitTableModel {
	cols := []columnDef{
		{Title: "Unit", Width: 18},
		{Title: "Plant", Width: 16},
		{Title: "Kind", Width: 13},
		{Title: "Status", Width: 11, SortDesc: true},
		{Title: "Power", Width: 11, SortDesc: true},
		{Title: "Energy", Width: 11, SortDesc: true},
		{Title: "Eff%", Width: 7},
		{Title: "Temp", Width: 8, SortDesc: true},
	}
	m := UnitTableModel{tableModel: newTableModel(cols)}
	m.sortCol = 3
	m.sortDesc = true
	return m
}

// SetData applies the current search filter and sort to rows.
func (m *UnitTableModel) SetData(rows []model.UnitRow) {
	m.allRows = rows
	m.apply()
}

func (m *UnitTableModel) apply() {
	filtered := filterUnitRows(m.allRows, m.search)
	m.displayRows = sortUnitRows(filtered, m.sortCol, m.sortDesc)
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
}

// Update delegates to the embedded tableModel and re-applies filter and
// sort when they change.
func (m UnitTableModel) Update(msg tea.Msg) (UnitTableModel, tea.Cmd) {
	prevSort, prevDesc, prevSearch := m.sortCol, m.sortDesc, m.search

	base, cmd := m.tableModel.Update(msg)
	m.tableModel = base

	if m.sortCol != prevSort || m.sortDesc != prevDesc || m.search != prevSearch {
		m.apply()
	}
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
	return m, cmd
}

// renderTable renders the "Units" section for the current page.
func (m *UnitTableModel) renderTable(width int) string {
	hdr := m.renderTitle("Units", len(m.displayRows))

	var colWidths []int
	if width > 0 {
		colWidths = columnWidths(width, m.columns)
	}
	headers := m.headerTitles(colWidths)

	allIdx := make([]int, len(m.displayRows))
	for i := range m.displayRows {
		allIdx[i] = i
	}
	pageIdx := currentPageIndices(allIdx, m.page, m.pageSize)

	if len(pageIdx) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render("  (no units)"))
	}

	page := make([]model.UnitRow, len(pageIdx))
	for i, idx := range pageIdx {
		page[i] = m.displayRows[idx]
	}

	t := m.baseTable(headers, width, func(row, col int, base lipgloss.Style) lipgloss.Style {
		if row < 0 || row >= len(page) {
			return base
		}
		r := page[row]
		switch col {
		case 1:
			return base.Foreground(colorPurple)
		case 2:
			return base.Foreground(statusColor(r.Status))
		case 3:
			return base.Foreground(statusColor(r.Status)).Bold(true)
		case 4:
			return base.Foreground(colorGreen)
		case 5:
			return base.Foreground(colorCyan)
		case 6:
			return base.Foreground(effFg(r.Efficiency))
		case 7:
			return base.Foreground(tempFg(r.TemperatureC))
		default:
			return base.Foreground(colorWhite)
		}
	})

	for _, r := range page {
		cells := make([]string, len(m.columns))
		for col := range m.columns {
			cells[col] = unitCellValue(r, col)
		}
		if len(colWidths) > 0 {
			cells[0] = truncateName(cells[0], colWidths[0])
			cells[1] = truncateName(cells[1], colWidths[1])
		}
		t = t.Row(cells...)
	}

	parts := []string{hdr, t.String()}
	if m.focused && m.cursor < len(page) {
		r := page[m.cursor]
		parts = append(parts, StyleDim.Render("  "+sanitize(r.Plant)+" / "+sanitize(r.Name)+"  id="+sanitize(r.ID)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// unitCellValue formats a UnitRow field for a given column index.
func unitCellValue(r model.UnitRow, col int) string {
	switch col {
	case 0:
		return sanitize(r.Name)
	case 1:
		return sanitize(r.Plant)
	case 2:
		return unitGlyph(r.Kind) + " " + sanitize(string(r.Kind))
	case 3:
		return string(r.Status)
	case 4:
		return format.FormatPower(r.PowerKW)
	case 5:
		return format.FormatEnergy(r.EnergyKWh)
	case 6:
		if r.Efficiency <= 0 {
			return "---"
		}
		return format.FormatPercent(r.Efficiency)
	case 7:
		return format.FormatTemperature(r.TemperatureC)
	default:
		return ""
	}
}

func effFg(pct float64) lipgloss.Color {
	if s := efficiencySeverity(pct); s != severityNormal {
		return severityFg(s)
	}
	return colorWhite
}

func tempFg(c float64) lipgloss.Color {
	if s := temperatureSeverity(c); s != severityNormal {
		return severityFg(s)
	}
	return colorWhite
}
