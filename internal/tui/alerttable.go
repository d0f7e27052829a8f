package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jtsunne/coa-go/internal/model"
)

// AlertTableModel is a sortable, paginated, searchable table of alerts.
type AlertTableModel struct {
	tableModel
	allRows     []model.AlertRow
	displayRows []model.AlertRow
}

// NewAlertTable returns an AlertTableModel that keeps the engine's order
// (severity, then newest first) until a sort column is chosen.
func NewAlertTable() AlertTableModel {
	cols := []columnDef{
		{Title: "Severity", Width: 10, SortDesc: true},
		{Title: "Time", Width: 10, SortDesc: true},
		{Title: "Unit", Width: 24},
		{Title: "Message", Width: 40},
	}
	return AlertTableModel{tableModel: newTableModel(cols)}
}

// SetData applies the current search filter and sort to rows.
func (m *AlertTableModel) SetData(rows []model.AlertRow) {
	m.allRows = rows
	m.apply()
}

func (m *AlertTableModel) apply() {
	filtered := filterAlertRows(m.allRows, m.search)
	m.displayRows = sortAlertRows(filtered, m.sortCol, m.sortDesc)
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
}

// Update delegates to the embedded tableModel and re-applies filter and
// sort when they change.
func (m AlertTableModel) Update(msg tea.Msg) (AlertTableModel, tea.Cmd) {
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

// renderTable renders the "Alerts" section for the current page.
func (m *AlertTableModel) renderTable(width int) string {
	hdr := m.renderTitle("Alerts", len(m.displayRows))

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
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleGreen.Render("  (no active alerts)"))
	}

	page := make([]model.AlertRow, len(pageIdx))
	for i, idx := range pageIdx {
		page[i] = m.displayRows[idx]
	}

	t := m.baseTable(headers, width, func(row, col int, base lipgloss.Style) lipgloss.Style {
		if row < 0 || row >= len(page) {
			return base
		}
		switch col {
		case 0:
			return base.Foreground(severityColor(page[row].Severity)).Bold(true)
		case 1:
			return base.Foreground(colorGray)
		case 2:
			return base.Foreground(colorIndigo)
		default:
			return base.Foreground(colorWhite)
		}
	})

	for _, r := range page {
		cells := make([]string, len(m.columns))
		for col := range m.columns {
			cells[col] = alertCellValue(r, col)
		}
		if len(colWidths) > 0 {
			cells[2] = truncateName(cells[2], colWidths[2])
			cells[3] = truncateName(cells[3], colWidths[3])
		}
		t = t.Row(cells...)
	}

	parts := []string{hdr, t.String()}
	if m.focused && m.cursor < len(page) {
		r := page[m.cursor]
		detail := "  " + r.Timestamp.Local().Format("2006-01-02 15:04:05") + "  " + sanitize(r.UnitLabel) + "  " + sanitize(r.Message)
		parts = append(parts, StyleDim.Render(detail))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// alertCellValue formats an AlertRow field for a given column index.
func alertCellValue(r model.AlertRow, col int) string {
	switch col {
	case 0:
		sev := strings.ToUpper(string(r.Severity))
		if sev == "" {
			sev = "INFO"
		}
		return sev
	case 1:
		if r.Timestamp.IsZero() {
			return "---"
		}
		return r.Timestamp.Local().Format("15:04:05")
	case 2:
		return sanitize(r.UnitLabel)
	case 3:
		return sanitize(r.Message)
	default:
		return ""
	}
}
