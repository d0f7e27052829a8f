package live

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jtsunne/coa-go/internal/model"
)

// mockFetcher implements Fetcher for testing and counts calls.
type mockFetcher struct {
	FetchFn func(ctx context.Context, scope string) (*model.Snapshot, error)
	ForceFn func(ctx context.Context, scope string) (*model.Snapshot, error)

	fetchCalls atomic.Int32
	forceCalls atomic.Int32
}

func (m *mockFetcher) FetchSnapshot(ctx context.Context, scope string) (*model.Snapshot, error) {
	m.fetchCalls.Add(1)
	if m.FetchFn != nil {
		return m.FetchFn(ctx, scope)
	}
	return &model.Snapshot{CapturedAt: time.Now()}, nil
}

func (m *mockFetcher) ForceRecompute(ctx context.Context, scope string) (*model.Snapshot, error) {
	m.forceCalls.Add(1)
	if m.ForceFn != nil {
		return m.ForceFn(ctx, scope)
	}
	return &model.Snapshot{CapturedAt: time.Now()}, nil
}

// updateRecorder is an OnUpdate spy.
type updateRecorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *updateRecorder) record(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *updateRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates)
}

func (r *updateRecorder) all() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Update, len(r.updates))
	copy(out, r.updates)
	return out
}

func (r *updateRecorder) notices(kind NoticeKind) []Notice {
	var out []Notice
	for _, u := range r.all() {
		if u.Notice.Kind == kind {
			out = append(out, u.Notice)
		}
	}
	return out
}

var errMockFailure = errors.New("mock failure")
