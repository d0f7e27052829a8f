package tui

import (
	"time"

	"github.com/jtsunne/coa-go/internal/live"
)

// SyncMsg delivers a synchronizer state change to the TUI.
type SyncMsg live.Update

// refreshDoneMsg reports the end of a user-triggered refresh request. Err is
// only set when the request itself could not be delivered (closed or timed
// out); fetch failures arrive through SyncMsg.
type refreshDoneMsg struct {
	forced bool
	err    error
}

// clearToastMsg hides the confirmation toast with the given id.
type clearToastMsg struct{ id int }

// TickMsg redraws the header so the snapshot age stays current.
type TickMsg time.Time
