package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/jtsunne/coa-go/internal/client"
	"github.com/jtsunne/coa-go/internal/live"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"401", &client.ServerError{StatusCode: 401, Message: "no token"}, "Authentication failed (401)"},
		{"403 wrapped", fmt.Errorf("fetch: %w", &client.ServerError{StatusCode: 403}), "Authentication failed (403)"},
		{"404", &client.ServerError{StatusCode: 404}, "Dashboard endpoint not found (404)"},
		{"503", &client.ServerError{StatusCode: 503, Message: "down"}, "Server error (503)"},
		{"envelope failure", &client.ServerError{StatusCode: 200, Message: "scope unknown"}, "Server: scope unknown"},
		{"connection refused", &client.NetworkError{Op: "GET", Err: errors.New("dial tcp: connection refused")}, "Connection refused"},
		{"deadline", &client.NetworkError{Op: "GET", Err: context.DeadlineExceeded}, "Request timed out"},
		{"dns", &client.NetworkError{Op: "GET", Err: errors.New("lookup coa.test: no such host")}, "Host not found"},
		{"x509", &client.NetworkError{Op: "GET", Err: errors.New("x509: certificate signed by unknown authority")}, "TLS handshake failed"},
		{"other network", &client.NetworkError{Op: "read body", Err: errors.New("unexpected EOF")}, "Network unreachable"},
		{"short unknown", errors.New("some random error"), "some random error"},
		{"long unknown", errors.New(strings.Repeat("a", 60)), strings.Repeat("a", 45) + "..."},
		{"control chars", errors.New("bad\x1b[31mthing"), "bad[31mthing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyError(tc.err))
		})
	}
}

func TestFreshnessBadge(t *testing.T) {
	cases := []struct {
		name string
		st   live.State
		want string
	}{
		{"live", live.State{Scheduler: live.Active}, "● LIVE"},
		{"stale", live.State{Scheduler: live.Active, IsStale: true}, "● STALE"},
		{"paused", live.State{Scheduler: live.Paused}, "● PAUSED"},
		{"stale wins over paused", live.State{Scheduler: live.Paused, IsStale: true}, "● STALE"},
		{"stopped", live.State{Scheduler: live.Terminated}, "● STOPPED"},
		{"forced refresh", live.State{Scheduler: live.Active, IsLoading: true, Fetching: true}, "● REFRESHING"},
		{"background fetch", live.State{Scheduler: live.Active, Fetching: true}, "● LIVE ↻"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ansi.Strip(freshnessBadge(tc.st)))
		})
	}
}

func TestRenderHeader_Connecting(t *testing.T) {
	app, _ := newTestApp(live.State{IsLoading: true})
	got := ansi.Strip(renderHeader(app))
	assert.Contains(t, got, "Connecting to http://coa.test...")
	assert.Contains(t, got, "● LOADING")
}

func TestRenderHeader_FirstFetchFailed(t *testing.T) {
	app, _ := newTestApp(live.State{Error: &client.ServerError{StatusCode: 503}})
	got := ansi.Strip(renderHeader(app))
	assert.Contains(t, got, "● ERROR  Server error (503)")
	assert.Contains(t, got, "Press r to retry")
}

func TestRenderHeader_WithData(t *testing.T) {
	app, _ := newTestApp(liveState(fleetSnapshot()))
	got := ansi.Strip(renderHeader(app))
	assert.Contains(t, got, "COA ▸ north")
	assert.Contains(t, got, "● LIVE")
	assert.Contains(t, got, "(12s ago)")
	assert.Contains(t, got, "Poll: 30s")
}

func TestRenderHeader_PollingOff(t *testing.T) {
	app, _ := newTestApp(liveState(fleetSnapshot()))
	app.opts.Polling = false
	assert.Contains(t, ansi.Strip(renderHeader(app)), "Poll: off")
}

func TestRenderHeader_UnscopedLabel(t *testing.T) {
	app, _ := newTestApp(liveState(fleetSnapshot()))
	app.opts.Scope = ""
	assert.Contains(t, ansi.Strip(renderHeader(app)), "COA ▸ all plants")
}

func TestRenderHeader_ErrorWithData(t *testing.T) {
	st := liveState(fleetSnapshot())
	st.Error = &client.NetworkError{Op: "GET", Err: errors.New("connection refused")}
	app, _ := newTestApp(st)

	got := ansi.Strip(renderHeader(app))
	assert.Contains(t, got, "● LIVE")
	assert.Contains(t, got, "⚠ Connection refused")
}

func TestRenderHeader_FullWidth(t *testing.T) {
	app, _ := newTestApp(liveState(fleetSnapshot()))
	assert.Equal(t, 160, lipgloss.Width(renderHeader(app)))
}
