// Package remote is the thin command transport the session layer uses to
// talk to a running driver. One method in, one normalized envelope out; it
// deliberately does no retrying or redirect handling.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/droverhq/drover/internal/protocol"
)

// Connection issues commands against one driver base URL.
type Connection struct {
	// BaseURL is the driver's root, e.g. http://127.0.0.1:4444.
	BaseURL string

	// HTTPClient may be replaced in tests; nil means http.DefaultClient.
	HTTPClient *http.Client
}

// NewConnection wraps a driver base URL.
func NewConnection(baseURL string) *Connection {
	return &Connection{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func (c *Connection) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Execute sends one command and normalizes the response body. body is
// marshalled as JSON when non-nil. A decode failure (malformed body,
// unknown error code) fails this call only; the connection stays usable.
func (c *Connection) Execute(ctx context.Context, method, path string, body any) (*protocol.Envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding command body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("driver request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading driver response: %w", err)
	}
	return protocol.DecodeBytes(data)
}

// NewSession opens a session with the given capabilities. Both dialect
// shapes of the new-session payload are sent so either kind of driver
// understands it.
func (c *Connection) NewSession(ctx context.Context, capabilities map[string]any) (*protocol.Envelope, error) {
	if capabilities == nil {
		capabilities = map[string]any{}
	}
	body := map[string]any{
		"capabilities": map[string]any{
			"alwaysMatch": capabilities,
		},
		"desiredCapabilities": capabilities,
	}
	return c.Execute(ctx, http.MethodPost, "/session", body)
}

// DeleteSession closes a session by id.
func (c *Connection) DeleteSession(ctx context.Context, sessionID string) (*protocol.Envelope, error) {
	return c.Execute(ctx, http.MethodDelete, "/session/"+sessionID, nil)
}
