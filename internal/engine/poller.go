package engine

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jtsunne/coa-go/internal/client"
	"github.com/jtsunne/coa-go/internal/model"
)

// maxConcurrentScopes bounds the number of dashboard requests in flight.
const maxConcurrentScopes = 4

// ScopeSnapshot pairs a scope id with the snapshot fetched for it.
type ScopeSnapshot struct {
	Scope    string
	Snapshot *model.Snapshot
}

// FetchScopes fetches the dashboard of every scope concurrently. Blank and
// duplicate scopes are dropped; an empty list fetches the default scope once.
// If any fetch fails, FetchScopes returns the first error wrapped with its
// scope. Results keep the order of scopes.
func FetchScopes(ctx context.Context, c client.DashboardClient, scopes []string) ([]ScopeSnapshot, error) {
	scopes = normalizeScopes(scopes)
	out := make([]ScopeSnapshot, len(scopes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScopes)

	for i, scope := range scopes {
		g.Go(func() error {
			snap, err := c.FetchSnapshot(gctx, scope)
			if err != nil {
				return fmt.Errorf("scope %q: %w", scopeLabel(scope), err)
			}
			if snap == nil {
				return fmt.Errorf("scope %q: incomplete response (unexpected nil)", scopeLabel(scope))
			}
			out[i] = ScopeSnapshot{Scope: scope, Snapshot: snap}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeScopes(scopes []string) []string {
	seen := make(map[string]bool, len(scopes))
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}

func scopeLabel(scope string) string {
	if scope == "" {
		return "default"
	}
	return scope
}
