// Package live keeps a dashboard snapshot fresh against a remote source.
//
// A Synchronizer owns one fetch state: it fetches once on creation, polls on
// a fixed interval while the consumer is visible, pauses while hidden, flags
// the held snapshot as stale once it ages past a threshold and exposes soft
// (cache-respecting) and forced refreshes. All state is mutated by a single
// goroutine; callers talk to it through methods that send events.
package live

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/jtsunne/coa-go/internal/model"
)

const (
	DefaultPollInterval       = 30 * time.Second
	DefaultMinInterval        = 30 * time.Second
	DefaultStaleThreshold     = 60 * time.Second
	DefaultStaleCheckInterval = 10 * time.Second
)

// A scheduled tick passes the guard when it arrives no more than
// MinInterval/tickSlackDivisor early, which absorbs ticker delivery jitter
// when PollInterval equals MinInterval.
const tickSlackDivisor = 20

// Fetcher is the remote source of snapshots. client.DashboardClient
// satisfies it.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, scope string) (*model.Snapshot, error)
	ForceRecompute(ctx context.Context, scope string) (*model.Snapshot, error)
}

// Config configures a Synchronizer. Zero values select the defaults.
type Config struct {
	Scope              string
	PollInterval       time.Duration
	DisablePolling     bool
	MinInterval        time.Duration
	StaleThreshold     time.Duration
	StaleCheckInterval time.Duration
	// StartHidden starts the scheduler Paused, as if the consumer were not
	// visible at creation.
	StartHidden bool
	// DiscardOutOfOrder drops fetch results that complete after a newer
	// fetch has already been applied. Off by default: the last result to
	// complete wins.
	DiscardOutOfOrder bool

	Clock  clock.Clock
	Logger *log.Logger
	// OnUpdate is called from the synchronizer goroutine after every state
	// change. It must not call Refresh, ForceRefresh, SetVisible,
	// FocusGained or Close synchronously.
	OnUpdate func(Update)
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.MinInterval <= 0 {
		c.MinInterval = DefaultMinInterval
	}
	if c.StaleThreshold <= 0 {
		c.StaleThreshold = DefaultStaleThreshold
	}
	if c.StaleCheckInterval <= 0 {
		c.StaleCheckInterval = DefaultStaleCheckInterval
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	return c
}

type fetchKind int

const (
	fetchSoft fetchKind = iota
	fetchForced
)

func (k fetchKind) String() string {
	if k == fetchForced {
		return "forced"
	}
	return "soft"
}

type refreshEvent struct {
	kind fetchKind
	done chan struct{}
}

type visibilityEvent struct {
	visible bool
	ack     chan struct{}
}

type focusEvent struct {
	ack chan struct{}
}

type fetchResult struct {
	seq       uint64
	kind      fetchKind
	startedAt time.Time
	snap      *model.Snapshot
	err       error
}

// Synchronizer is the live fetch state of one consumer. Create it with New
// and release it with Close.
type Synchronizer struct {
	fetcher Fetcher
	cfg     Config
	clock   clock.Clock
	log     *log.Logger

	events  chan any
	results chan fetchResult
	quit    chan struct{}
	exited  chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc

	closeOnce sync.Once

	mu   sync.RWMutex
	view State

	// Owned by the run goroutine.
	guard          *FreshnessGuard
	pollTicker     *clock.Ticker
	staleTicker    *clock.Ticker
	visible        bool
	sched          SchedulerState
	data           *model.Snapshot
	lastUpdate     time.Time
	lastErr        error
	stale          bool
	seq            uint64
	initialSeq     uint64
	initialPending bool
	appliedSeq     uint64
	inFlight       int
	forcedInFlight int
	waiters        map[uint64]chan struct{}
	// origin is the time the first fetch is issued at; the first poll tick
	// is measured from the same instant.
	origin time.Time
}

// New creates a Synchronizer and starts it: the first fetch is issued
// immediately, the staleness monitor starts, and the poll scheduler becomes
// Active unless cfg.StartHidden or cfg.DisablePolling is set.
func New(f Fetcher, cfg Config) *Synchronizer {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Synchronizer{
		fetcher: f,
		cfg:     cfg,
		clock:   cfg.Clock,
		log:     cfg.Logger,
		events:  make(chan any),
		results: make(chan fetchResult),
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
		guard:   NewFreshnessGuard(cfg.MinInterval),
		visible: !cfg.StartHidden,
		sched:   Paused,
		waiters: make(map[uint64]chan struct{}),
	}

	// Timers are created before the goroutine starts so that a mock clock
	// sees them registered as soon as New returns.
	s.staleTicker = s.clock.Ticker(cfg.StaleCheckInterval)
	s.origin = s.clock.Now()
	if s.visible && !cfg.DisablePolling {
		s.origin = s.startPolling()
	}
	s.initialPending = true
	s.mu.Lock()
	s.view = s.snapshotState()
	s.mu.Unlock()

	go s.run()
	return s
}

// State returns the current consumer-facing state.
func (s *Synchronizer) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Refresh issues a soft refresh. It is a no-op when the last successful
// fetch was issued less than MinInterval ago. Fetch failures are recorded in
// State().Error and not returned; the error is non-nil only when ctx ends or
// the synchronizer is closed.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	return s.request(ctx, fetchSoft)
}

// ForceRefresh bypasses the freshness guard and asks the backend to
// recompute the snapshot. It blocks until the fetch completes.
func (s *Synchronizer) ForceRefresh(ctx context.Context) error {
	return s.request(ctx, fetchForced)
}

func (s *Synchronizer) request(ctx context.Context, kind fetchKind) error {
	done := make(chan struct{})
	select {
	case s.events <- refreshEvent{kind: kind, done: done}:
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetVisible reports a visibility change of the consumer. Hiding pauses the
// scheduler; becoming visible while paused triggers an immediate soft fetch
// and resumes polling. With DisablePolling set the scheduler never leaves
// Paused, so becoming visible fetches nothing; FocusGained still refetches
// stale data. It returns once the change has been applied.
func (s *Synchronizer) SetVisible(visible bool) {
	ack := make(chan struct{})
	select {
	case s.events <- visibilityEvent{visible: visible, ack: ack}:
	case <-s.quit:
		return
	}
	select {
	case <-ack:
	case <-s.quit:
	}
}

// FocusGained reports that the consumer regained focus. A soft fetch is
// issued when the held snapshot is at least StaleThreshold old and no fetch
// is already in flight.
func (s *Synchronizer) FocusGained() {
	ack := make(chan struct{})
	select {
	case s.events <- focusEvent{ack: ack}:
	case <-s.quit:
		return
	}
	select {
	case <-ack:
	case <-s.quit:
	}
}

// Close terminates the synchronizer. Timers are stopped and OnUpdate is not
// called again once Close returns. Outstanding fetches do not run to
// completion: their context is cancelled, so the HTTP request is aborted,
// and any result that still arrives is discarded. Close is idempotent.
func (s *Synchronizer) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
		<-s.exited
		s.cancel()
		s.mu.Lock()
		s.view.Scheduler = Terminated
		s.view.IsLoading = false
		s.view.Fetching = false
		s.mu.Unlock()
	})
}

func (s *Synchronizer) run() {
	defer close(s.exited)
	defer s.staleTicker.Stop()
	defer s.stopPolling()

	s.initialSeq = s.startFetchAt(fetchSoft, nil, s.origin)

	for {
		var pollC <-chan time.Time
		if s.pollTicker != nil {
			pollC = s.pollTicker.C
		}

		select {
		case <-s.quit:
			s.sched = Terminated
			return
		case t := <-pollC:
			s.pollTick(t)
		case <-s.staleTicker.C:
			s.checkStale()
		case res := <-s.results:
			s.applyResult(res)
		case ev := <-s.events:
			s.handle(ev)
		}
	}
}

func (s *Synchronizer) handle(ev any) {
	switch ev := ev.(type) {
	case refreshEvent:
		s.startFetch(ev.kind, ev.done)
	case visibilityEvent:
		s.setVisible(ev.visible)
		close(ev.ack)
	case focusEvent:
		s.focusGained()
		close(ev.ack)
	}
}

// pollTick handles a scheduled tick delivered at t. The tick time, not the
// time the tick is handled, is checked against the guard and recorded as the
// fetch start.
func (s *Synchronizer) pollTick(t time.Time) {
	if s.inFlight > 0 {
		s.log.Printf("poll tick skipped: %d fetch(es) in flight", s.inFlight)
		return
	}
	slack := s.cfg.MinInterval / tickSlackDivisor
	if s.guard.ShouldSkip(t.Add(slack)) {
		last, _ := s.guard.Last()
		s.log.Printf("poll tick skipped: last fetch %v ago", t.Sub(last))
		return
	}
	s.launch(fetchSoft, nil, t)
}

// startFetch launches a fetch in its own goroutine and returns its sequence
// number, or 0 when a soft fetch is skipped by the freshness guard.
func (s *Synchronizer) startFetch(kind fetchKind, done chan struct{}) uint64 {
	return s.startFetchAt(kind, done, s.clock.Now())
}

func (s *Synchronizer) startFetchAt(kind fetchKind, done chan struct{}, now time.Time) uint64 {
	if kind == fetchSoft && s.guard.ShouldSkip(now) {
		last, _ := s.guard.Last()
		s.log.Printf("soft refresh skipped: last fetch %v ago", now.Sub(last))
		if done != nil {
			close(done)
		}
		return 0
	}
	return s.launch(kind, done, now)
}

// launch starts a fetch without consulting the guard. now is recorded as the
// fetch start.
func (s *Synchronizer) launch(kind fetchKind, done chan struct{}, now time.Time) uint64 {
	s.seq++
	seq := s.seq
	s.inFlight++
	if kind == fetchForced {
		s.forcedInFlight++
	}
	if done != nil {
		s.waiters[seq] = done
	}
	s.publish(Notice{})

	scope := s.cfg.Scope
	go func() {
		var (
			snap *model.Snapshot
			err  error
		)
		if kind == fetchForced {
			snap, err = s.fetcher.ForceRecompute(s.ctx, scope)
		} else {
			snap, err = s.fetcher.FetchSnapshot(s.ctx, scope)
		}
		res := fetchResult{seq: seq, kind: kind, startedAt: now, snap: snap, err: err}
		select {
		case s.results <- res:
		case <-s.quit:
			s.log.Printf("debug: %v (seq %d discarded)", &StateError{Op: kind.String() + " fetch result"}, seq)
		}
	}()
	return seq
}

func (s *Synchronizer) applyResult(res fetchResult) {
	s.inFlight--
	if res.kind == fetchForced {
		s.forcedInFlight--
	}
	if res.seq == s.initialSeq {
		s.initialPending = false
	}
	if done, ok := s.waiters[res.seq]; ok {
		delete(s.waiters, res.seq)
		defer close(done)
	}

	if s.cfg.DiscardOutOfOrder && res.seq < s.appliedSeq {
		s.log.Printf("%s fetch seq %d discarded: seq %d already applied", res.kind, res.seq, s.appliedSeq)
		s.publish(Notice{})
		return
	}

	if res.err == nil && res.snap == nil {
		res.err = errNilSnapshot
	}
	if res.err != nil {
		s.lastErr = res.err
		s.log.Printf("%s fetch failed: %v", res.kind, res.err)
		if s.data == nil {
			s.publish(Notice{Kind: NoticeBlockingError, Message: res.err.Error()})
			return
		}
		s.publish(Notice{})
		return
	}

	s.appliedSeq = res.seq
	s.data = res.snap
	s.lastUpdate = s.clock.Now()
	s.lastErr = nil
	s.stale = false
	s.guard.Record(res.startedAt)

	if res.kind == fetchForced {
		s.publish(Notice{Kind: NoticeRefreshed, Message: "Dashboard refreshed"})
		return
	}
	s.publish(Notice{})
}

func (s *Synchronizer) setVisible(visible bool) {
	wasVisible := s.visible
	s.visible = visible
	if !visible {
		if s.sched == Active {
			s.stopPolling()
			s.publish(Notice{})
		}
		return
	}
	if wasVisible && s.sched == Active {
		return
	}
	if s.cfg.DisablePolling {
		return
	}
	start := s.startPolling()
	s.startFetchAt(fetchSoft, nil, start)
	s.publish(Notice{})
}

// focusGained refetches stale or missing data. A fetch already in flight,
// such as the one issued by a visibility change on the same regain, covers
// it.
func (s *Synchronizer) focusGained() {
	if s.inFlight > 0 {
		return
	}
	if s.data == nil || s.clock.Now().Sub(s.lastUpdate) >= s.cfg.StaleThreshold {
		s.startFetch(fetchSoft, nil)
	}
}

func (s *Synchronizer) checkStale() {
	stale := Stale(s.clock.Now(), s.lastUpdate, s.data != nil, s.cfg.StaleThreshold)
	if stale == s.stale {
		return
	}
	s.stale = stale
	s.publish(Notice{})
}

// startPolling (re)creates the poll ticker and returns the instant it was
// started; the first tick fires PollInterval later.
func (s *Synchronizer) startPolling() time.Time {
	if s.pollTicker != nil {
		s.pollTicker.Stop()
	}
	start := s.clock.Now()
	s.pollTicker = s.clock.Ticker(s.cfg.PollInterval)
	s.sched = Active
	return start
}

func (s *Synchronizer) stopPolling() {
	if s.pollTicker != nil {
		s.pollTicker.Stop()
		s.pollTicker = nil
	}
	if s.sched == Active {
		s.sched = Paused
	}
}

func (s *Synchronizer) snapshotState() State {
	return State{
		Data:       s.data,
		IsLoading:  s.initialPending || s.forcedInFlight > 0,
		Fetching:   s.inFlight > 0,
		Error:      s.lastErr,
		LastUpdate: s.lastUpdate,
		IsStale:    s.stale,
		Scheduler:  s.sched,
	}
}

// publish mirrors the run goroutine's state for State() readers and calls
// OnUpdate.
func (s *Synchronizer) publish(n Notice) {
	st := s.snapshotState()
	s.mu.Lock()
	s.view = st
	s.mu.Unlock()
	if s.cfg.OnUpdate != nil {
		s.cfg.OnUpdate(Update{State: st, Notice: n})
	}
}
