// Package chatkit is a client for the hosted messaging-and-storage provider
// backing the consultation platform. The provider owns the user directory,
// the custom-object store (appointments and their records), chat dialogs and
// attachment content; this package wraps its REST API and its WebSocket chat
// transport.
package chatkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenHeader carries the acting session's token on every REST call.
const TokenHeader = "CK-Token"

// Config identifies the provider application this client acts for.
type Config struct {
	// APIEndpoint is the REST base URL, e.g. https://api.chatkit.example.com.
	APIEndpoint string
	// ChatEndpoint is the WebSocket chat URL, e.g. wss://chat.chatkit.example.com/ws.
	ChatEndpoint string
	AppID        string
	AuthKey      string
	AuthSecret   string
}

// Client is the entry point for all provider services.
type Client struct {
	cfg  Config
	http *http.Client

	Users   *UsersService
	Data    *DataService
	Dialogs *DialogService
	Content *ContentService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client for the given provider application.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	c.Users = &UsersService{client: c}
	c.Data = &DataService{client: c}
	c.Dialogs = &DialogService{client: c}
	c.Content = &ContentService{client: c}
	return c
}

// APIError is a failed provider call. StatusCode is the upstream HTTP status
// so callers can surface the failure with the status it implies.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chatkit: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a provider 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

type apiErrorBody struct {
	Errors []string `json:"errors"`
}

// do issues a JSON request against the REST endpoint. The session token is
// taken from ctx when present. out may be nil for calls with no response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("chatkit: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := strings.TrimSuffix(c.cfg.APIEndpoint, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("chatkit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("CK-App-ID", c.cfg.AppID)
	if sess, ok := SessionFromContext(ctx); ok {
		req.Header.Set(TokenHeader, sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("chatkit: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readErrorMessage(resp.Body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("chatkit: decode response: %w", err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body apiErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Errors) > 0 {
		return strings.Join(body.Errors, "; ")
	}
	return strings.TrimSpace(string(raw))
}
