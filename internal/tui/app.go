package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jtsunne/coa-go/internal/engine"
	"github.com/jtsunne/coa-go/internal/live"
	"github.com/jtsunne/coa-go/internal/model"
)

const (
	toastDuration  = 3 * time.Second
	refreshTimeout = 30 * time.Second
	redrawInterval = time.Second
)

// Synchronizer is the live data source the App renders.
// *live.Synchronizer satisfies it.
type Synchronizer interface {
	State() live.State
	Refresh(ctx context.Context) error
	ForceRefresh(ctx context.Context) error
	SetVisible(visible bool)
	FocusGained()
}

// Options describes the data source for display purposes.
type Options struct {
	Scope        string
	BaseURL      string
	PollInterval time.Duration
	Polling      bool
	// Now overrides the wall clock used for snapshot ages.
	Now func() time.Time
}

type viewMode int

const (
	viewDashboard viewMode = iota
	viewAnalytics
)

type tableFocus int

const (
	focusUnits tableFocus = iota
	focusAlerts
)

// App is the root Bubble Tea model for coa.
type App struct {
	sync Synchronizer
	opts Options

	// Latest synchronizer state and the rows derived from its snapshot.
	state      live.State
	current    *model.Snapshot
	plantRows  []model.PlantRow
	unitRows   []model.UnitRow
	alertRows  []model.AlertRow
	advisories []model.Advisory
	history    *model.History

	unitTable  UnitTableModel
	alertTable AlertTableModel
	focus      tableFocus

	// Notices
	toast    string
	toastID  int
	blocking string // blocking error shown while no snapshot is held

	// Layout
	width, height int

	// UI state
	view            viewMode
	analyticsScroll int
	showHelp        bool
}

// NewApp creates an App rendering the state of s.
func NewApp(s Synchronizer, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	app := &App{
		sync:       s,
		opts:       opts,
		history:    model.NewHistory(0),
		unitTable:  NewUnitTable(),
		alertTable: NewAlertTable(),
	}
	app.unitTable.focused = true
	app.applyState(s.State())
	return app
}

// Init implements tea.Model. Starts the redraw ticker; the synchronizer
// already issued the first fetch.
func (app *App) Init() tea.Cmd {
	return tickCmd(redrawInterval)
}

// Update implements tea.Model. It is the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		if app.view == viewAnalytics {
			app.clampAnalyticsScroll()
		}

	case SyncMsg:
		app.applyState(msg.State)
		switch msg.Notice.Kind {
		case live.NoticeRefreshed:
			app.toastID++
			app.toast = msg.Notice.Message
			return app, clearToastCmd(app.toastID, toastDuration)
		case live.NoticeBlockingError:
			app.blocking = msg.Notice.Message
		}

	case clearToastMsg:
		if msg.id == app.toastID {
			app.toast = ""
		}

	case refreshDoneMsg:
		// Fetch outcomes arrive through SyncMsg; only a request that never
		// reached the synchronizer is left to report.
		if msg.err != nil && !errors.Is(msg.err, live.ErrClosed) && !app.state.HasData() {
			app.blocking = msg.err.Error()
		}

	case TickMsg:
		return app, tickCmd(redrawInterval)

	case tea.FocusMsg:
		return app, visibilityCmd(app.sync, true)

	case tea.BlurMsg:
		return app, visibilityCmd(app.sync, false)

	case tea.KeyMsg:
		return app.handleKey(msg)
	}

	return app, nil
}

// handleKey routes a key press. A table in search mode receives every key
// so typed letters never trigger global bindings.
func (app *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if app.view == viewDashboard && app.activeTableModel().searching {
		return app, app.updateActiveTable(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return app, tea.Quit
	case key.Matches(msg, keys.Refresh):
		return app, refreshCmd(app.sync, false)
	case key.Matches(msg, keys.ForceRefresh):
		return app, refreshCmd(app.sync, true)
	case key.Matches(msg, keys.Help):
		app.showHelp = !app.showHelp
		return app, nil
	case key.Matches(msg, keys.Analytics):
		if app.view == viewAnalytics {
			app.view = viewDashboard
		} else {
			app.view = viewAnalytics
			app.analyticsScroll = 0
		}
		return app, nil
	}

	if app.view == viewAnalytics {
		switch {
		case key.Matches(msg, keys.Escape):
			app.view = viewDashboard
		case key.Matches(msg, keys.CursorUp):
			if app.analyticsScroll > 0 {
				app.analyticsScroll--
			}
		case key.Matches(msg, keys.CursorDown):
			app.analyticsScroll++
			app.clampAnalyticsScroll()
		}
		return app, nil
	}

	switch {
	case key.Matches(msg, keys.Tab), key.Matches(msg, keys.ShiftTab):
		app.setFocus(1 - app.focus)
		return app, nil
	}
	return app, app.updateActiveTable(msg)
}

// applyState stores st and, when it carries a new snapshot, recomputes the
// derived rows and records a history point.
func (app *App) applyState(st live.State) {
	app.state = st
	if st.Data != nil {
		app.blocking = ""
	}
	if st.Data == nil || st.Data == app.current {
		return
	}
	app.current = st.Data
	app.plantRows = engine.CalcPlantRows(st.Data)
	app.unitRows = engine.CalcUnitRows(st.Data)
	app.alertRows = engine.CalcAlertRows(st.Data)
	app.advisories = engine.CalcAdvisories(st.Data, app.plantRows, app.unitRows)
	app.history.Push(engine.CalcHistoryPoint(st.Data))
	app.unitTable.SetData(app.unitRows)
	app.alertTable.SetData(app.alertRows)
}

func (app *App) setFocus(f tableFocus) {
	app.focus = f
	app.unitTable.focused = f == focusUnits
	app.alertTable.focused = f == focusAlerts
}

func (app *App) activeTableModel() *tableModel {
	if app.focus == focusAlerts {
		return &app.alertTable.tableModel
	}
	return &app.unitTable.tableModel
}

func (app *App) updateActiveTable(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if app.focus == focusAlerts {
		app.alertTable, cmd = app.alertTable.Update(msg)
	} else {
		app.unitTable, cmd = app.unitTable.Update(msg)
	}
	return cmd
}

func (app *App) clampAnalyticsScroll() {
	if limit := analyticsMaxOffset(app); app.analyticsScroll > limit {
		app.analyticsScroll = limit
	}
}

// size returns the terminal size, defaulting to 80x24 before the first
// WindowSizeMsg.
func (app *App) size() (int, int) {
	w, h := app.width, app.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

func (app *App) now() time.Time { return app.opts.Now() }

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	parts := []string{renderHeader(app)}

	switch {
	case app.view == viewAnalytics:
		parts = append(parts, renderAnalytics(app))
	case !app.state.HasData():
		parts = append(parts, renderPlaceholder(app))
	default:
		width, _ := app.size()
		for _, section := range []string{
			renderOverview(app),
			renderTrendsRow(app),
			renderDiagram(app),
			diagramLegend(),
			app.unitTable.renderTable(width),
			app.alertTable.renderTable(width),
		} {
			if section != "" {
				parts = append(parts, section)
			}
		}
	}

	parts = append(parts, renderFooter(app))
	return strings.Join(parts, "\n")
}

// renderPlaceholder renders the body shown before the first snapshot: a
// loading line, or the blocking error banner after a failure.
func renderPlaceholder(app *App) string {
	width, _ := app.size()
	if app.blocking == "" && app.state.Error == nil {
		return StyleDim.Render("  Loading dashboard...")
	}
	msg := app.blocking
	if msg == "" {
		msg = app.state.Error.Error()
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		StyleError.Render("Unable to load dashboard"),
		"",
		sanitize(msg),
		"",
		StyleDim.Render("Press r to retry, q to quit"),
	)
	bw := width - 4
	if bw < 20 {
		bw = 20
	}
	return StyleBanner.Width(bw).Render(body)
}

// tickCmd schedules the next redraw after d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func clearToastCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

// refreshCmd asks the synchronizer for a soft or forced refresh. The call
// blocks until the fetch settles, so it runs as a command goroutine.
func refreshCmd(s Synchronizer, forced bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		var err error
		if forced {
			err = s.ForceRefresh(ctx)
		} else {
			err = s.Refresh(ctx)
		}
		return refreshDoneMsg{forced: forced, err: err}
	}
}

// visibilityCmd forwards terminal focus changes to the synchronizer. Gaining
// focus also counts as a focus-regained signal.
func visibilityCmd(s Synchronizer, visible bool) tea.Cmd {
	return func() tea.Msg {
		s.SetVisible(visible)
		if visible {
			s.FocusGained()
		}
		return nil
	}
}
