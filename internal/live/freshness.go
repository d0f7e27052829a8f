package live

import "time"

// FreshnessGuard remembers when the last successful fetch was issued and
// rejects soft refreshes that arrive within MinInterval of it.
// It is owned by a single Synchronizer and is not safe for concurrent use.
type FreshnessGuard struct {
	MinInterval time.Duration
	last        time.Time
	recorded    bool
}

// NewFreshnessGuard returns a guard with the given minimum interval.
// A non-positive interval uses DefaultMinInterval.
func NewFreshnessGuard(minInterval time.Duration) *FreshnessGuard {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &FreshnessGuard{MinInterval: minInterval}
}

// ShouldSkip reports whether a soft refresh at now falls inside the guard
// window. It is always false until the first Record.
func (g *FreshnessGuard) ShouldSkip(now time.Time) bool {
	if !g.recorded {
		return false
	}
	return now.Sub(g.last) < g.MinInterval
}

// Record stores the time of an accepted fetch. Only successful fetches are
// recorded so a failure never throttles the retry on the next tick.
func (g *FreshnessGuard) Record(at time.Time) {
	g.last = at
	g.recorded = true
}

// Last returns the recorded time and whether anything was recorded.
func (g *FreshnessGuard) Last() (time.Time, bool) {
	return g.last, g.recorded
}

// Stale reports whether data last updated at lastUpdate is stale at now.
// Without data nothing can be stale.
func Stale(now, lastUpdate time.Time, hasData bool, threshold time.Duration) bool {
	if !hasData {
		return false
	}
	return now.Sub(lastUpdate) >= threshold
}
