package engine

import (
	"context"
	"errors"

	"github.com/jtsunne/coa-go/internal/model"
)

// MockDashboardClient implements client.DashboardClient for testing.
type MockDashboardClient struct {
	FetchFn func(ctx context.Context, scope string) (*model.Snapshot, error)
	ForceFn func(ctx context.Context, scope string) (*model.Snapshot, error)
}

func (m *MockDashboardClient) FetchSnapshot(ctx context.Context, scope string) (*model.Snapshot, error) {
	if m.FetchFn != nil {
		return m.FetchFn(ctx, scope)
	}
	return &model.Snapshot{Summary: model.Summary{PlantCount: 1}}, nil
}

func (m *MockDashboardClient) ForceRecompute(ctx context.Context, scope string) (*model.Snapshot, error) {
	if m.ForceFn != nil {
		return m.ForceFn(ctx, scope)
	}
	return m.FetchSnapshot(ctx, scope)
}

func (m *MockDashboardClient) BaseURL() string { return "http://mock:8080" }

var errMockFailure = errors.New("mock failure")
