package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsunne/coa-go/internal/model"
)

func TestCategoryLabel(t *testing.T) {
	cases := []struct {
		cat  model.AdvisoryCategory
		want string
	}{
		{model.CategoryAvailability, "Availability"},
		{model.CategoryThermal, "Thermal"},
		{model.CategoryPerformance, "Performance"},
		{model.CategoryAlerting, "Alerting"},
		{model.AdvisoryCategory("weather"), "Other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, categoryLabel(tc.cat))
	}
}

func TestSeverityBadge(t *testing.T) {
	assert.Equal(t, "[CRITICAL]", ansi.Strip(severityBadge(model.SeverityCritical)))
	assert.Equal(t, "[WARN]    ", ansi.Strip(severityBadge(model.SeverityWarning)))
	assert.Equal(t, "[INFO]    ", ansi.Strip(severityBadge(model.SeverityInfo)))
	assert.Equal(t, "[CRITICAL]", ansi.Strip(severityBadge("CRITICAL")), "severity is case-insensitive")
}

func TestWrapText(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		maxWidth  int
		wantLines int
	}{
		{"fits in one line", "hello world", 20, 1},
		{"exactly max", "hello", 5, 1},
		{"wraps once", "hello world", 8, 2},
		{"wraps many", "one two three four five six", 9, 4},
		{"zero width unchanged", "hello world", 0, 1},
		{"long word kept whole", "supercalifragilistic", 5, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := wrapText(tc.text, tc.maxWidth)
			assert.Len(t, strings.Split(got, "\n"), tc.wantLines)
		})
	}
}

func TestWrapText_WideRunes(t *testing.T) {
	got := wrapText("逆变器 故障 温度 过高", 8)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 8)
	}
}

func TestBuildAnalyticsLines_Empty(t *testing.T) {
	lines := buildAnalyticsLines(nil, 80)
	require.Len(t, lines, 3)
	assert.Contains(t, ansi.Strip(lines[1]), "No advisories")
}

func TestBuildAnalyticsLines_GroupsByCategory(t *testing.T) {
	advs := []model.Advisory{
		{Severity: model.SeverityWarning, Category: model.CategoryThermal, Title: "Unit running hot", Detail: "INV-02 at 72°C"},
		{Severity: model.SeverityCritical, Category: model.CategoryAvailability, Title: "Plant down", Detail: "South Wind has no units online"},
		{Severity: model.SeverityInfo, Category: model.CategoryPerformance, Title: "Low output"},
	}
	lines := buildAnalyticsLines(advs, 80)
	text := ansi.Strip(strings.Join(lines, "\n"))

	avail := strings.Index(text, "Availability")
	thermal := strings.Index(text, "Thermal")
	perf := strings.Index(text, "Performance")
	require.True(t, avail >= 0 && thermal >= 0 && perf >= 0)
	assert.Less(t, avail, thermal)
	assert.Less(t, thermal, perf)
	assert.NotContains(t, text, "Alerting", "empty categories are skipped")

	assert.Contains(t, text, "[CRITICAL] Plant down")
	assert.Contains(t, text, "    South Wind has no units online")
}

func TestBuildAnalyticsLines_WrapsDetail(t *testing.T) {
	advs := []model.Advisory{{
		Severity: model.SeverityWarning,
		Category: model.CategoryThermal,
		Title:    "Units running hot",
		Detail:   strings.Repeat("word ", 30),
	}}
	lines := buildAnalyticsLines(advs, 40)
	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(ansi.Strip(l)), 40)
	}
}

func manyAdvisories(n int) []model.Advisory {
	advs := make([]model.Advisory, n)
	for i := range advs {
		advs[i] = model.Advisory{
			Severity: model.SeverityWarning,
			Category: model.CategoryThermal,
			Title:    fmt.Sprintf("advisory %d", i),
		}
	}
	return advs
}

func TestAnalyticsMaxOffset(t *testing.T) {
	app, _ := newTestApp(liveState(fleetSnapshot()))
	app.advisories = nil
	assert.Equal(t, 0, analyticsMaxOffset(app), "short content never scrolls")

	app.height = 20
	app.advisories = manyAdvisories(40)
	assert.Greater(t, analyticsMaxOffset(app), 0)
}

func TestRenderAnalytics_ScrollHints(t *testing.T) {
	app, _ := newTestApp(liveState(fleetSnapshot()))
	app.height = 20
	app.advisories = manyAdvisories(40)

	assert.Contains(t, ansi.Strip(renderAnalytics(app)), "↓ scroll for more")

	app.analyticsScroll = 3
	assert.Contains(t, ansi.Strip(renderAnalytics(app)), "↑↓ scroll")

	app.analyticsScroll = analyticsMaxOffset(app)
	got := ansi.Strip(renderAnalytics(app))
	assert.Contains(t, got, "↑ scroll up")
	assert.Contains(t, got, "advisory 39")
}

func TestRenderAnalytics_FillsHeight(t *testing.T) {
	app, _ := newTestApp(liveState(fleetSnapshot()))
	app.height = 20
	app.advisories = manyAdvisories(40)
	app.view = viewAnalytics

	assert.Len(t, strings.Split(app.View(), "\n"), 20)
}
