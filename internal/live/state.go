package live

import (
	"errors"
	"time"

	"github.com/jtsunne/coa-go/internal/model"
)

// SchedulerState is the state of the polling scheduler.
type SchedulerState int

const (
	Paused SchedulerState = iota
	Active
	Terminated
)

func (s SchedulerState) String() string {
	switch s {
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// State is the consumer-facing view of a Synchronizer.
type State struct {
	Data       *model.Snapshot // nil until the first successful fetch
	IsLoading  bool            // first fetch or a forced refresh outstanding
	Fetching   bool            // any fetch outstanding, including background ones
	Error      error           // last failure, cleared by the next success
	LastUpdate time.Time       // zero until the first successful fetch
	IsStale    bool
	Scheduler  SchedulerState
}

// HasData reports whether a snapshot has been received.
func (s State) HasData() bool { return s.Data != nil }

// NoticeKind classifies user-facing signals attached to an Update.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	// NoticeRefreshed confirms a successful forced refresh.
	NoticeRefreshed
	// NoticeBlockingError reports a failure while no snapshot is held.
	NoticeBlockingError
)

// Notice is a one-shot signal for the rendering layer.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Update is delivered to Config.OnUpdate after every state change.
type Update struct {
	State  State
	Notice Notice
}

// ErrClosed is returned by refresh calls made after Close.
var ErrClosed = errors.New("live: synchronizer closed")

var errNilSnapshot = errors.New("live: fetcher returned no snapshot")

// StateError describes a state change attempted after Close. It is only
// ever logged.
type StateError struct {
	Op string
}

func (e *StateError) Error() string {
	return "live: " + e.Op + " after close"
}
