package control

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/example/datedir/internal/datedir/coordinator"
	"github.com/example/datedir/internal/datedir/domain"
	"github.com/example/datedir/internal/datedir/folder"
	"github.com/example/datedir/internal/datedir/settings"
)

const socketBaseURL = "http://datedir"

// Client calls a running daemon. It implements coordinator.Foreground.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ coordinator.Foreground = (*Client)(nil)

// NewClient dials the daemon's control socket.
func NewClient(socketPath string) *Client {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	}
	return NewClientWithHTTP(socketBaseURL, &http.Client{Transport: transport})
}

// NewClientWithHTTP talks to baseURL through hc.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Ping reports whether a daemon is answering. It returns ErrUnavailable otherwise.
func (c *Client) Ping(ctx context.Context) error {
	var health healthResponse
	if err := c.do(ctx, http.MethodGet, "/v1/health", nil, &health); err != nil {
		return err
	}
	if health.Status != "ok" {
		return fmt.Errorf("%w: unhealthy daemon", ErrUnavailable)
	}
	return nil
}

func (c *Client) CreateTodayFolder(ctx context.Context) (string, error) {
	var resp pathResponse
	if err := c.do(ctx, http.MethodPost, "/v1/folders/today", nil, &resp); err != nil {
		return "", err
	}
	return resp.Path, nil
}

func (c *Client) OpenFolder(ctx context.Context, path string) error {
	var body any
	if path != "" {
		body = pathRequest{Path: path}
	}
	return c.do(ctx, http.MethodPost, "/v1/folders/open", body, nil)
}

func (c *Client) Settings(ctx context.Context) (settings.Record, error) {
	var rec settings.Record
	if err := c.do(ctx, http.MethodGet, "/v1/settings", nil, &rec); err != nil {
		return settings.Record{}, err
	}
	return rec, nil
}

func (c *Client) SaveSettings(ctx context.Context, rec settings.Record) error {
	return c.do(ctx, http.MethodPut, "/v1/settings", rec, nil)
}

func (c *Client) ValidateFolderPath(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodPost, "/v1/validate", pathRequest{Path: path}, nil)
}

func (c *Client) TodayStatus(ctx context.Context) (folder.Status, error) {
	var status folder.Status
	if err := c.do(ctx, http.MethodGet, "/v1/folders/today/status", nil, &status); err != nil {
		return folder.Status{}, err
	}
	return status, nil
}

func (c *Client) ShowWindow(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/window/show", nil, nil)
}

func (c *Client) HideWindow(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/window/hide", nil, nil)
}

func (c *Client) Quit(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/quit", nil, nil)
}

func (c *Client) EnableAutostart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/autostart", nil, nil)
}

func (c *Client) DisableAutostart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/autostart", nil, nil)
}

func (c *Client) AutostartEnabled(ctx context.Context) (bool, error) {
	var resp autostartResponse
	if err := c.do(ctx, http.MethodGet, "/v1/autostart", nil, &resp); err != nil {
		return false, err
	}
	return resp.Enabled, nil
}

func (c *Client) SelectFolder(ctx context.Context) (string, bool, error) {
	var resp selectResponse
	if err := c.do(ctx, http.MethodPost, "/v1/dialog/folder", nil, &resp); err != nil {
		return "", false, err
	}
	return resp.Path, resp.Selected, nil
}

func (c *Client) do(ctx context.Context, method, route string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Wrap(domain.KindUnknown, "malformed response", err)
	}
	return nil
}

// IsUnavailable reports whether err means no daemon answered.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
