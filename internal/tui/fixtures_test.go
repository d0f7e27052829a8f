package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jtsunne/coa-go/internal/live"
	"github.com/jtsunne/coa-go/internal/model"
)

var fixtureTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// fleetSnapshot returns two plants, four units and three alerts, one of
// which references a unit that no longer exists.
func fleetSnapshot() *model.Snapshot {
	return &model.Snapshot{
		CapturedAt: fixtureTime,
		Summary: model.Summary{
			TotalPowerKW:   500,
			CapacityKW:     2000,
			EnergyTodayKWh: 2000,
			PlantCount:     2,
			UnitCount:      4,
			OnlineUnits:    2,
			ActiveAlerts:   3,
		},
		Plants: []model.Plant{
			{ID: "p1", Name: "North Solar", Units: []model.Unit{
				{ID: "u1", Name: "INV-01", Kind: model.KindInverter, Status: model.StatusOnline, PowerKW: 500, EnergyTodayKWh: 2000, Efficiency: 97, TemperatureC: 45},
				{ID: "u2", Name: "INV-02", Kind: model.KindInverter, Status: model.StatusFault, TemperatureC: 90},
				{ID: "u3", Name: "TX-1", Kind: model.KindTransformer, Status: model.StatusOnline, TemperatureC: 60},
			}},
			{ID: "p2", Name: "South Wind", Units: []model.Unit{
				{ID: "u4", Name: "MTR-1", Kind: model.KindMeter, Status: model.StatusOffline},
			}},
		},
		Alerts: []model.Alert{
			{ID: "a1", Severity: model.SeverityCritical, Message: "Inverter trip", UnitID: "u2", Timestamp: fixtureTime},
			{ID: "a2", Severity: model.SeverityWarning, Message: "High temperature", UnitID: "u3", Timestamp: fixtureTime.Add(time.Minute)},
			{ID: "a3", Severity: model.SeverityInfo, Message: "Comms restored", UnitID: "gone", UnitName: "Old Unit", Timestamp: fixtureTime.Add(2 * time.Minute)},
		},
	}
}

// liveState returns an Active, fresh state holding snap.
func liveState(snap *model.Snapshot) live.State {
	return live.State{
		Data:       snap,
		LastUpdate: fixtureTime,
		Scheduler:  live.Active,
	}
}

// fakeSync records the calls the App makes to its synchronizer.
type fakeSync struct {
	mu          sync.Mutex
	state       live.State
	refreshes   int
	forced      int
	visible     []bool
	focusGained int
	err         error
}

func (f *fakeSync) State() live.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSync) Refresh(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	return f.err
}

func (f *fakeSync) ForceRefresh(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forced++
	return f.err
}

func (f *fakeSync) SetVisible(visible bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = append(f.visible, visible)
}

func (f *fakeSync) FocusGained() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focusGained++
}

// newTestApp returns an App over a fake synchronizer with a fixed clock and
// a wide terminal so header segments never wrap.
func newTestApp(st live.State) (*App, *fakeSync) {
	fs := &fakeSync{state: st}
	app := NewApp(fs, Options{
		Scope:        "north",
		BaseURL:      "http://coa.test",
		PollInterval: 30 * time.Second,
		Polling:      true,
		Now:          func() time.Time { return fixtureTime.Add(12 * time.Second) },
	})
	app.Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	return app, fs
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
