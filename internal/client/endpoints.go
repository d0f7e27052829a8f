package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jtsunne/coa-go/internal/model"
)

const (
	endpointDashboard = "/dashboard"
	endpointRefresh   = "/dashboard/refresh"
)

// envelope is the response wrapper used by every backend endpoint.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e envelope) message() string {
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	return strings.TrimSpace(e.Error)
}

func decodeEnvelope(body []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, err
	}
	return env, nil
}

// FetchSnapshot fetches the dashboard snapshot from /{resource}/dashboard.
func (c *DefaultClient) FetchSnapshot(ctx context.Context, scope string) (*model.Snapshot, error) {
	snap, err := c.getSnapshot(ctx, endpointDashboard, scope)
	if err != nil {
		return nil, fmt.Errorf("FetchSnapshot: %w", err)
	}
	return snap, nil
}

// ForceRecompute fetches from /{resource}/dashboard/refresh, which makes the
// backend rebuild the snapshot instead of serving its cached copy.
func (c *DefaultClient) ForceRecompute(ctx context.Context, scope string) (*model.Snapshot, error) {
	snap, err := c.getSnapshot(ctx, endpointRefresh, scope)
	if err != nil {
		return nil, fmt.Errorf("ForceRecompute: %w", err)
	}
	return snap, nil
}

func (c *DefaultClient) getSnapshot(ctx context.Context, endpoint, scope string) (*model.Snapshot, error) {
	var query url.Values
	if s := strings.TrimSpace(scope); s != "" {
		query = url.Values{"scope": []string{s}}
	}

	body, err := c.doGet(ctx, "/"+url.PathEscape(c.config.Resource)+endpoint, query)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(body)
}

// decodeSnapshot unwraps the envelope and decodes its data into a fresh
// Snapshot.
func decodeSnapshot(body []byte) (*model.Snapshot, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, &ServerError{StatusCode: http.StatusOK, Message: "malformed envelope: " + err.Error()}
	}
	if env.Success != nil && !*env.Success {
		msg := env.message()
		if msg == "" {
			msg = "request was not successful"
		}
		return nil, &ServerError{StatusCode: http.StatusOK, Message: msg}
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, &ServerError{StatusCode: http.StatusOK, Message: "malformed envelope: missing data"}
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &ServerError{StatusCode: http.StatusOK, Message: "decode snapshot: " + err.Error()}
	}
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = time.Now()
	}
	return &snap, nil
}
