// Package api talks to a Clash-compatible external controller.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/juliend/proxymon/internal/model"
)

// Client is the subset of the controller API the UI needs.
type Client interface {
	// Connections fetches the current connection table.
	Connections(ctx context.Context) (*model.Snapshot, error)
	// CloseConnection asks the core to terminate one connection.
	CloseConnection(ctx context.Context, id string) error
	// CloseAll asks the core to terminate every connection.
	CloseAll(ctx context.Context) error
	// Version returns the core's version string.
	Version(ctx context.Context) (string, error)
}

// httpClient implements Client over the controller's REST API.
type httpClient struct {
	base   string
	secret string
	client *http.Client
}

// New creates a Client for the controller at base (e.g.
// "http://127.0.0.1:9090"). secret may be empty.
func New(base, secret string) Client {
	return &httpClient{
		base:   strings.TrimRight(base, "/"),
		secret: secret,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *httpClient) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return err
	}
	if c.secret != "" {
		req.Header.Set("Authorization", "Bearer "+c.secret)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("controller rejected secret (401)")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("controller returned %d for %s %s", resp.StatusCode, method, path)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *httpClient) Connections(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := c.do(ctx, http.MethodGet, "/connections", &snap); err != nil {
		return nil, err
	}
	snap.Timestamp = time.Now()
	return &snap, nil
}

func (c *httpClient) CloseConnection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/connections/"+url.PathEscape(id), nil)
}

func (c *httpClient) CloseAll(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/connections", nil)
}

func (c *httpClient) Version(ctx context.Context) (string, error) {
	var v struct {
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, "/version", &v); err != nil {
		return "", err
	}
	return v.Version, nil
}
