//go:build integration

package engine_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsunne/coa-go/internal/client"
	"github.com/jtsunne/coa-go/internal/engine"
)

// dashboardClient creates a DefaultClient from $COA_URL or skips the test if
// unset. $COA_TOKEN is sent as bearer token when present.
func dashboardClient(t *testing.T) client.DashboardClient {
	t.Helper()
	uri := os.Getenv("COA_URL")
	if uri == "" {
		t.Skip("COA_URL not set; skipping integration test")
	}
	c, err := client.NewDefaultClient(client.ClientConfig{
		BaseURL:        uri,
		Token:          os.Getenv("COA_TOKEN"),
		RequestTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	return c
}

// TestLiveBackend_Dashboard fetches the dashboard of every scope listed in
// $COA_SCOPES (comma-separated, default scope when unset).
func TestLiveBackend_Dashboard(t *testing.T) {
	c := dashboardClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	scopes := strings.Split(os.Getenv("COA_SCOPES"), ",")
	results, err := engine.FetchScopes(ctx, c, scopes)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		require.NotNil(t, r.Snapshot)
		assert.False(t, r.Snapshot.CapturedAt.IsZero(), "capture timestamp should be set")
		rows := engine.CalcPlantRows(r.Snapshot)
		assert.Len(t, rows, len(r.Snapshot.Plants))
	}
}

// TestLiveBackend_ForceRecompute exercises the recompute endpoint.
func TestLiveBackend_ForceRecompute(t *testing.T) {
	c := dashboardClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := c.ForceRecompute(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, snap)
}
