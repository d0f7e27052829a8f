package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jtsunne/coa-go/internal/client"
	"github.com/jtsunne/coa-go/internal/format"
	"github.com/jtsunne/coa-go/internal/live"
)

// renderHeader renders the top header bar with scope, freshness and timing.
//
// Layout:
//
//	left:   "COA ▸ <scope>" (or "Connecting to <URL>..." before the first snapshot)
//	center: "● LIVE", "● STALE", "● PAUSED", "● LOADING" or "● ERROR <reason>"
//	right:  "Last: HH:MM:SS (12s ago)  Poll: 30s"
func renderHeader(app *App) string {
	width, _ := app.size()
	st := app.state

	var left, center, right string

	if !st.HasData() {
		left = "Connecting to " + app.opts.BaseURL + "..."
		switch {
		case st.Error != nil:
			center = StyleError.Render("● ERROR  " + classifyError(st.Error))
			right = StyleError.Render("Press r to retry")
		default:
			center = StyleCyan.Bold(true).Render("● LOADING")
		}
	} else {
		scope := app.opts.Scope
		if scope == "" {
			scope = "all plants"
		}
		left = "COA ▸ " + sanitize(scope)
		center = freshnessBadge(st)
		if st.Error != nil {
			center += "  " + StyleError.Render("⚠ "+classifyError(st.Error))
		}

		poll := "off"
		if app.opts.Polling {
			poll = format.FormatInterval(app.opts.PollInterval)
		}
		right = StyleDim.Render(fmt.Sprintf("Last: %s (%s)  Poll: %s",
			st.LastUpdate.Local().Format("15:04:05"),
			format.FormatAge(st.LastUpdate, app.now()),
			poll))
	}

	// StyleHeader has Padding(0, 1), so the inner width is width - 2.
	innerWidth := width - 2
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// freshnessBadge renders the colored status indicator for a state that holds
// data. Stale wins over paused: an old snapshot is the more urgent signal.
func freshnessBadge(st live.State) string {
	var badge string
	switch {
	case st.IsLoading:
		badge = StyleCyan.Bold(true).Render("● REFRESHING")
	case st.IsStale:
		badge = StyleYellow.Bold(true).Render("● STALE")
	case st.Scheduler == live.Paused:
		badge = StyleDim.Bold(true).Render("● PAUSED")
	case st.Scheduler == live.Terminated:
		badge = StyleDim.Bold(true).Render("● STOPPED")
	default:
		badge = StyleGreen.Bold(true).Render("● LIVE")
	}
	if st.Fetching && !st.IsLoading {
		badge += StyleDim.Render(" ↻")
	}
	return badge
}

// classifyError turns a fetch error into a short operator-facing reason.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	var se *client.ServerError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case 401, 403:
			return fmt.Sprintf("Authentication failed (%d)", se.StatusCode)
		case 404:
			return "Dashboard endpoint not found (404)"
		}
		if se.StatusCode >= 500 {
			return fmt.Sprintf("Server error (%d)", se.StatusCode)
		}
		return truncateName("Server: "+sanitize(se.Message), 48)
	}
	if client.IsNetworkError(err) {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "connection refused"):
			return "Connection refused"
		case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
			return "Request timed out"
		case strings.Contains(msg, "no such host"):
			return "Host not found"
		case strings.Contains(msg, "tls"), strings.Contains(msg, "x509"), strings.Contains(msg, "certificate"):
			return "TLS handshake failed"
		}
		return "Network unreachable"
	}
	return truncateName(sanitize(err.Error()), 48)
}
