package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jtsunne/coa-go/internal/model"
)

// DashboardClient fetches dashboard snapshots from the COA backend.
type DashboardClient interface {
	// FetchSnapshot returns the current aggregate snapshot for scope.
	// An empty scope asks for the unscoped dashboard.
	FetchSnapshot(ctx context.Context, scope string) (*model.Snapshot, error)
	// ForceRecompute is FetchSnapshot with the server-side cache bypassed.
	ForceRecompute(ctx context.Context, scope string) (*model.Snapshot, error)
	BaseURL() string
}

// ClientConfig holds configuration for DefaultClient.
type ClientConfig struct {
	BaseURL            string
	Resource           string // path segment before /dashboard, e.g. "coa"
	Token              string // optional bearer token
	InsecureSkipVerify bool
	RequestTimeout     time.Duration
}

const (
	defaultResource       = "coa"
	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 16 * 1024 * 1024
	userAgent             = "coa-go/0.1"
)

// DefaultClient implements DashboardClient using the standard net/http package.
type DefaultClient struct {
	http   *http.Client
	config ClientConfig
}

// NewDefaultClient constructs a DefaultClient from the given config.
// Returns an error if BaseURL is empty or not an http(s) URL.
func NewDefaultClient(cfg ClientConfig) (*DefaultClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid BaseURL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid BaseURL %q: host is required", cfg.BaseURL)
	}
	cfg.Resource = strings.Trim(strings.TrimSpace(cfg.Resource), "/")
	if cfg.Resource == "" {
		cfg.Resource = defaultResource
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	return &DefaultClient{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		config: cfg,
	}, nil
}

// BaseURL returns the configured base URL of the backend.
func (c *DefaultClient) BaseURL() string {
	return c.config.BaseURL
}

// doGet performs a GET request to path (relative to BaseURL) and returns the
// response body. Transport failures come back as *NetworkError and non-2xx
// statuses as *ServerError.
func (c *DefaultClient) doGet(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &NetworkError{Op: "read body", Err: err}
	}
	if len(body) > maxResponseBytes {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("response body exceeds %d MB limit", maxResponseBytes/(1024*1024))}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: statusMessage(resp.StatusCode, body)}
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
