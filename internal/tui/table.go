package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

// columnDef describes a single column in a table.
type columnDef struct {
	Title    string
	Width    int  // preferred width, used as a proportion of the terminal
	SortDesc bool // first press on this column sorts descending
}

// tableModel is the generic base for sortable, paginated, searchable tables.
type tableModel struct {
	columns   []columnDef
	sortCol   int // -1 = unsorted
	sortDesc  bool
	page      int // 0-indexed
	pageSize  int // default 10
	cursor    int // row within the current page
	search    string
	searching bool
	input     textinput.Model
	focused   bool
}

// newTableModel initialises a tableModel with sensible defaults.
func newTableModel(cols []columnDef) tableModel {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 80
	return tableModel{
		columns:  cols,
		sortCol:  -1,
		pageSize: 10,
		input:    ti,
	}
}

// Update handles keyboard input for sorting, pagination, cursor movement and
// search.
func (t tableModel) Update(msg tea.Msg) (tableModel, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.searching {
			switch {
			case key.Matches(msg, keys.Escape):
				t.searching = false
				t.input.Blur()
				if t.input.Value() == "" {
					t.search = ""
				}
				return t, nil
			case msg.String() == "enter":
				t.search = t.input.Value()
				t.searching = false
				t.input.Blur()
				t.page = 0
				t.cursor = 0
				return t, nil
			default:
				var cmd tea.Cmd
				t.input, cmd = t.input.Update(msg)
				return t, cmd
			}
		}

		switch {
		case key.Matches(msg, keys.Search):
			t.searching = true
			t.input.SetValue(t.search)
			t.input.Focus()
			return t, textinput.Blink
		case key.Matches(msg, keys.Escape):
			t.search = ""
			t.input.SetValue("")
			t.page = 0
			t.cursor = 0
			return t, nil
		case key.Matches(msg, keys.PrevPage):
			if t.page > 0 {
				t.page--
				t.cursor = 0
			}
			return t, nil
		case key.Matches(msg, keys.NextPage):
			t.page++
			t.cursor = 0
			return t, nil
		case key.Matches(msg, keys.CursorUp):
			if t.cursor > 0 {
				t.cursor--
			}
			return t, nil
		case key.Matches(msg, keys.CursorDown):
			t.cursor++
			return t, nil
		default:
			col := digitToCol(msg.String())
			if col >= 0 && col < len(t.columns) {
				if col == t.sortCol {
					t.sortDesc = !t.sortDesc
				} else {
					t.sortCol = col
					t.sortDesc = t.columns[col].SortDesc
				}
				t.page = 0
				t.cursor = 0
				return t, nil
			}
		}
	}
	return t, nil
}

// digitToCol converts a "1"–"9" key string to a 0-indexed column number.
// Returns -1 for any other string.
func digitToCol(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

// pageCount returns the total number of pages for totalRows rows at pageSize rows per page.
// Always at least 1.
func pageCount(totalRows, pageSize int) int {
	if totalRows == 0 || pageSize <= 0 {
		return 1
	}
	c := totalRows / pageSize
	if totalRows%pageSize != 0 {
		c++
	}
	return c
}

// currentPageIndices returns the slice of row indices visible on the current page.
func currentPageIndices(allIndices []int, page, pageSize int) []int {
	if pageSize <= 0 || len(allIndices) == 0 {
		return allIndices
	}
	start := page * pageSize
	if start >= len(allIndices) {
		start = 0
	}
	end := start + pageSize
	if end > len(allIndices) {
		end = len(allIndices)
	}
	return allIndices[start:end]
}

// clampPage keeps the page index within bounds for totalRows.
func (t *tableModel) clampPage(totalRows int) {
	pc := pageCount(totalRows, t.pageSize)
	if t.page >= pc {
		t.page = pc - 1
	}
	if t.page < 0 {
		t.page = 0
	}
}

// currentPageRowCount returns how many rows are shown on the current page.
func (t *tableModel) currentPageRowCount(totalRows int) int {
	if t.pageSize <= 0 {
		return totalRows
	}
	start := t.page * t.pageSize
	if start >= totalRows {
		return 0
	}
	n := totalRows - start
	if n > t.pageSize {
		n = t.pageSize
	}
	return n
}

// clampCursor keeps the cursor on a visible row.
func (t *tableModel) clampCursor(rowsOnPage int) {
	if t.cursor >= rowsOnPage {
		t.cursor = rowsOnPage - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// headerTitles returns the column titles with a direction arrow on the sort
// column, padded to widths when given.
func (t *tableModel) headerTitles(widths []int) []string {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		h := c.Title
		if i == t.sortCol {
			if t.sortDesc {
				h += "↓"
			} else {
				h += "↑"
			}
		}
		if len(widths) == len(t.columns) {
			if w := runewidth.StringWidth(h); w < widths[i] {
				h += strings.Repeat(" ", widths[i]-w)
			}
		}
		headers[i] = h
	}
	return headers
}

// columnWidths distributes available columns proportionally to each
// column's preferred width. With no space information the preferred widths
// are returned unchanged.
func columnWidths(available int, defs []columnDef) []int {
	out := make([]int, len(defs))
	if len(defs) == 0 {
		return out
	}
	total := 0
	for i, d := range defs {
		out[i] = d.Width
		total += d.Width
	}
	if available <= 0 || total == 0 {
		return out
	}
	used := 0
	for i, d := range defs {
		w := available * d.Width / total
		if w < 1 {
			w = 1
		}
		out[i] = w
		used += w
	}
	// Give rounding leftovers to the first column.
	if rem := available - used; rem > 0 {
		out[0] += rem
	}
	return out
}

// truncateName shortens s to at most maxWidth terminal cells, ending in
// "..." when there is room for it.
func truncateName(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// sanitize strips control characters from backend-supplied strings so they
// cannot move the cursor or inject escape sequences.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return -1
		}
		return r
	}, s)
}

// renderTitle renders the title bar with search/sort/page hints.
// While searching the live textinput view replaces the hints.
func (t *tableModel) renderTitle(title string, totalRows int) string {
	pageInfo := fmt.Sprintf("Page %d/%d", t.page+1, pageCount(totalRows, t.pageSize))

	var right string
	switch {
	case t.searching:
		right = "Search: " + t.input.View()
	case t.search != "":
		right = fmt.Sprintf("filter=%q  %s", t.search, pageInfo)
	default:
		right = fmt.Sprintf("[/: search]  [1-%d: sort]  [←→: page]  %s", len(t.columns), pageInfo)
	}

	if t.focused {
		return StyleBlue.Bold(true).Render(title) + StyleDim.Render("  "+right)
	}
	return StyleDim.Render(title + "  " + right)
}

// baseTable returns a borderless lipgloss table with the shared header and
// zebra/cursor row styling. cellStyle supplies per-cell foreground styling
// for body rows.
func (t *tableModel) baseTable(headers []string, width int, cellStyle func(row, col int, base lipgloss.Style) lipgloss.Style) *ltable.Table {
	sortCol := t.sortCol
	focused := t.focused
	cursor := t.cursor
	tbl := ltable.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				if col == sortCol {
					return lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
				}
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			base := lipgloss.NewStyle()
			if focused && row == cursor {
				base = base.Background(colorSelectedBg)
			} else if row%2 == 0 {
				base = base.Background(colorAlt)
			}
			return cellStyle(row, col, base)
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)
	if width > 0 {
		tbl = tbl.Width(width)
	}
	return tbl
}
