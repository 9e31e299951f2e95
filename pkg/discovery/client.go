// Package discovery is a client for the identity-authenticated catalog
// of payment-gated resources.  It is a narrower transport than the
// payment negotiator: every call carries a fresh short-lived bearer
// token and makes exactly one request, because this path is never
// payment-gated and must never retry.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NobleSOL/silverback-agent-sub002/internal/token"
)

// ResourcesPath is the catalog's listing endpoint.
const ResourcesPath = "/discovery/resources"

// Client queries the discovery catalog.
type Client struct {
	config

	issuer  *token.Issuer
	baseURL *url.URL
}

// New returns a catalog client for the given base URL.  The issuer is
// required: without the discovery credential there is nothing to
// authenticate with, and construction fails rather than the first call.
func New(baseURL string, issuer *token.Issuer, opts ...Option) (*Client, error) {
	if issuer == nil {
		return nil, token.ErrNotConfigured
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("bad discovery base URL: %w", err)
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:  *cfg,
		issuer:  issuer,
		baseURL: u,
	}, nil
}

// ListResources fetches one page of the catalog.
func (c *Client) ListResources(ctx context.Context, opts ListOptions) (*ListResponse, error) {
	u := c.baseURL.JoinPath(ResourcesPath)

	q := u.Query()
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}

	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	u.RawQuery = q.Encode()

	var out ListResponse
	if err := c.get(ctx, u, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// get performs the single authenticated request for a call.  The
// bearer token is minted here, bound to this method, host and path,
// and discarded with the call.
func (c *Client) get(ctx context.Context, u *url.URL, out any) error {
	bearer, err := c.issuer.Issue(http.MethodGet, u.Host, u.Path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+bearer)

	c.log.Debug("Discovery request", slog.String("url", u.String()))

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read discovery response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal discovery response: %w", err)
	}

	return nil
}

var _ error = (*APIError)(nil)

// APIError carries a non-success catalog status and its payload.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discovery request failed with status %d: %s", e.StatusCode, e.Body)
}
