package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jtsunne/coa-go/internal/format"
	"github.com/jtsunne/coa-go/internal/model"
)

// unitGlyph returns the single-cell diagram symbol for a unit kind.
func unitGlyph(kind model.UnitKind) string {
	switch model.UnitKind(strings.ToLower(string(kind))) {
	case model.KindInverter:
		return "▣"
	case model.KindTransformer:
		return "◎"
	case model.KindBreaker:
		return "⊘"
	case model.KindMeter:
		return "◷"
	case model.KindTracker:
		return "☼"
	case model.KindPivot:
		return "✣"
	default:
		return "■"
	}
}

// statusGlyph renders a unit's kind symbol in its status color.
func statusGlyph(kind model.UnitKind, status model.UnitStatus) string {
	return lipgloss.NewStyle().Foreground(statusColor(status)).Render(unitGlyph(kind))
}

// renderDiagram renders one line per plant: the worst status badge, the
// plant name, a glyph per unit colored by status, and the plant's output.
// Returns empty string when no snapshot is held.
func renderDiagram(app *App) string {
	if app.current == nil || len(app.plantRows) == 0 {
		return ""
	}
	width := app.width
	if width <= 0 {
		width = 80
	}

	const nameWidth = 18
	const powerWidth = 12
	glyphWidth := width - nameWidth - powerWidth - 6
	if glyphWidth < 4 {
		glyphWidth = 4
	}

	lines := []string{StyleDim.Render("Plants")}
	for i, p := range app.plantRows {
		badge := StatusStyle(p.Status).Render("●")
		name := truncateName(sanitize(p.Name), nameWidth)
		name += strings.Repeat(" ", nameWidth-lipgloss.Width(name))

		var glyphs strings.Builder
		shown := 0
		if i < len(app.current.Plants) {
			units := app.current.Plants[i].Units
			for _, u := range units {
				if shown == glyphWidth-1 && len(units) > glyphWidth {
					glyphs.WriteString(StyleDim.Render("+"))
					shown++
					break
				}
				glyphs.WriteString(statusGlyph(u.Kind, u.Status))
				shown++
			}
		}
		pad := glyphWidth - shown
		if pad < 0 {
			pad = 0
		}
		power := fmt.Sprintf("%*s", powerWidth, format.FormatPower(p.PowerKW))
		lines = append(lines, fmt.Sprintf(" %s %s %s%s %s",
			badge, name, glyphs.String(), strings.Repeat(" ", pad), power))
	}
	return strings.Join(lines, "\n")
}

// diagramLegend lists the glyph for every unit kind.
func diagramLegend() string {
	kinds := []model.UnitKind{
		model.KindInverter, model.KindTransformer, model.KindBreaker,
		model.KindMeter, model.KindTracker, model.KindPivot,
	}
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, unitGlyph(k)+" "+string(k))
	}
	return StyleDim.Render(strings.Join(parts, "  "))
}
