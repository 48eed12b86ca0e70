// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package weblink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/weblink-importer/pkg/types"
)

// DefaultBaseURL is the production Capacities API root.
const DefaultBaseURL = "https://api.capacities.io"

const saveWeblinkPath = "/save-weblink"

// Client issues /save-weblink requests. The zero BaseURL means
// DefaultBaseURL; tests point it at an httptest server.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string

	// Token is the Capacities bearer token.
	Token string

	// UserAgent is sent with every request when non-empty.
	UserAgent string
}

// Response carries the raw outcome of one creation call. The importer
// interprets status and headers; the client only transports them.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code indicates success.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Create posts one weblink record. Transport-level failures return an
// error; HTTP-level failures come back as a Response for the caller to
// inspect.
func (c *Client) Create(ctx context.Context, record types.WeblinkRequest) (*Response, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding weblink payload: %w", err)
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+saveWeblinkPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("save-weblink request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading save-weblink response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
