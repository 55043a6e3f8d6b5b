package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/storeit/vaulted/core"
)

// Client talks to the managed backend's REST API.
//
// An admin client carries the server API key and may query the directory and
// mint tokens for any user. A session client carries a user's session secret
// and acts with that user's privileges only. Build the former with NewAdmin
// and derive the latter per request with WithSession.
type Client struct {
	cfg     Config
	http    *http.Client
	session string // empty for admin clients
}

var _ core.Directory = (*Client)(nil)
var _ core.Identity = (*Client)(nil)

func NewAdmin(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithSession derives a session-scoped client. The receiver is unchanged.
func (c *Client) WithSession(secret string) *Client {
	derived := *c
	derived.session = secret
	derived.cfg.Key = "" // session clients never send the server key
	return &derived
}

// apiError is the backend's error envelope.
type apiError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("appwrite: %s (code %d)", e.Message, e.Code)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := strings.TrimSuffix(c.cfg.Endpoint, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.cfg.Project)
	if c.cfg.Key != "" {
		req.Header.Set("X-Appwrite-Key", c.cfg.Key)
	}
	if c.session != "" {
		req.Header.Set("X-Appwrite-Session", c.session)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &apiError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// parseTime converts the backend's datetime strings; zero time on failure.
func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
