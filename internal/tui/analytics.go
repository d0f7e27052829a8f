package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jtsunne/coa-go/internal/model"
)

// categoryLabel returns the display name for an advisory category.
func categoryLabel(cat model.AdvisoryCategory) string {
	switch cat {
	case model.CategoryAvailability:
		return "Availability"
	case model.CategoryThermal:
		return "Thermal"
	case model.CategoryPerformance:
		return "Performance"
	case model.CategoryAlerting:
		return "Alerting"
	default:
		return "Other"
	}
}

// severityBadge returns a colored, fixed-width badge for the given severity.
func severityBadge(sev model.AlertSeverity) string {
	switch sev.Rank() {
	case model.SeverityCritical.Rank():
		return StyleRed.Bold(true).Render("[CRITICAL]")
	case model.SeverityWarning.Rank():
		return StyleYellow.Bold(true).Render("[WARN]    ")
	default:
		return StyleCyan.Bold(true).Render("[INFO]    ")
	}
}

// wrapText wraps text at maxWidth cells, breaking at word boundaries.
// Returns the original string unchanged when it fits within maxWidth.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var lines []string
	var current strings.Builder
	var currentLen int
	for _, word := range words {
		wordLen := runewidth.StringWidth(word)
		switch {
		case currentLen == 0:
			current.WriteString(word)
			currentLen = wordLen
		case currentLen+1+wordLen <= maxWidth:
			current.WriteByte(' ')
			current.WriteString(word)
			currentLen += 1 + wordLen
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentLen = wordLen
		}
	}
	if currentLen > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}

// buildAnalyticsLines returns every content line of the advisories screen.
// Used both for rendering and for clamping the scroll offset in Update.
func buildAnalyticsLines(advs []model.Advisory, width int) []string {
	if len(advs) == 0 {
		return []string{
			"",
			"  " + StyleGreen.Bold(true).Render("No advisories. All plants look healthy."),
			"",
		}
	}
	categories := []model.AdvisoryCategory{
		model.CategoryAvailability,
		model.CategoryAlerting,
		model.CategoryThermal,
		model.CategoryPerformance,
	}
	var lines []string
	for _, cat := range categories {
		var catAdvs []model.Advisory
		for _, a := range advs {
			if a.Category == cat {
				catAdvs = append(catAdvs, a)
			}
		}
		if len(catAdvs) == 0 {
			continue
		}
		lines = append(lines, "", "  "+StyleDim.Bold(true).Underline(true).Render(categoryLabel(cat)))
		for _, a := range catAdvs {
			lines = append(lines, fmt.Sprintf("  %s %s", severityBadge(a.Severity), sanitize(a.Title)))
			if a.Detail == "" {
				continue
			}
			for _, dline := range strings.Split(wrapText(sanitize(a.Detail), width-6), "\n") {
				lines = append(lines, "    "+dline)
			}
		}
	}
	return lines
}

// renderAnalyticsTitle renders the title bar of the advisories screen.
func renderAnalyticsTitle(width int) string {
	const titleText = "Advisories"
	hintText := StyleDim.Render("[a/esc: back]")
	innerWidth := width - 2 // StyleHeader has Padding(0,1)
	gap := innerWidth - lipgloss.Width(titleText) - lipgloss.Width(hintText)
	if gap < 1 {
		gap = 1
	}
	return StyleHeader.Width(width).MaxWidth(width).Render(titleText + strings.Repeat(" ", gap) + hintText)
}

// analyticsLayout computes the visible content height and the largest valid
// scroll offset for the current terminal size.
func analyticsLayout(app *App, lines []string) (contentH, maxOffset int, overflows bool) {
	width, height := app.size()
	headerH := lipgloss.Height(renderHeader(app))
	titleH := lipgloss.Height(renderAnalyticsTitle(width))
	footerH := lipgloss.Height(renderFooter(app))
	availH := height - headerH - titleH - footerH
	if availH < 1 {
		availH = 1
	}
	overflows = len(lines) > availH
	contentH = availH
	if overflows && contentH > 1 {
		contentH-- // scroll hint
	}
	maxOffset = len(lines) - contentH
	if maxOffset < 0 {
		maxOffset = 0
	}
	return contentH, maxOffset, overflows
}

// analyticsMaxOffset returns the largest valid analyticsScroll for the current
// app state. Update clamps with it so overscrolling never accumulates.
func analyticsMaxOffset(app *App) int {
	width, _ := app.size()
	_, maxOffset, _ := analyticsLayout(app, buildAnalyticsLines(app.advisories, width))
	return maxOffset
}

// renderAnalytics renders the advisories title bar and the scrollable list.
// View renders the header above and the footer below.
func renderAnalytics(app *App) string {
	width, _ := app.size()
	titleBar := renderAnalyticsTitle(width)
	lines := buildAnalyticsLines(app.advisories, width)
	contentH, maxOffset, overflows := analyticsLayout(app, lines)

	offset := app.analyticsScroll
	if offset > maxOffset {
		offset = maxOffset
	}
	end := offset + contentH
	if end > len(lines) {
		end = len(lines)
	}
	var visible []string
	if offset < len(lines) {
		visible = append(visible, lines[offset:end]...)
	}
	for len(visible) < contentH {
		visible = append(visible, "")
	}

	if overflows {
		switch {
		case offset == 0:
			visible = append(visible, StyleDim.Render("  ↓ scroll for more"))
		case offset >= maxOffset:
			visible = append(visible, StyleDim.Render("  ↑ scroll up"))
		default:
			visible = append(visible, StyleDim.Render("  ↑↓ scroll"))
		}
	}
	return titleBar + "\n" + strings.Join(visible, "\n")
}
