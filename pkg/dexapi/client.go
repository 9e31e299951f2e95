// Package dexapi is a thin typed facade over the payment negotiator
// for the DEX analytics API.  It shapes requests; response bodies are
// returned opaque, exactly as the server produced them.  Which
// endpoints are free and which sit behind the payment gate is the
// server's business - the facade never needs to know.
package dexapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/NobleSOL/silverback-agent-sub002/pkg/negotiator"
)

// Client exposes the API's operation catalog.  Safe for concurrent use.
type Client struct {
	neg     *negotiator.Negotiator
	baseURL string
}

// New returns a facade for the API at baseURL using neg for every
// call.
func New(baseURL string, neg *negotiator.Negotiator) (*Client, error) {
	if neg == nil {
		return nil, fmt.Errorf("negotiator is required")
	}

	return &Client{
		neg:     neg,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// SwapQuoteRequest asks for pricing of a prospective swap.
type SwapQuoteRequest struct {
	TokenIn  string `json:"tokenIn"`
	TokenOut string `json:"tokenOut"`
	AmountIn string `json:"amountIn"`
}

// ExecuteSwapRequest submits a swap for execution.
type ExecuteSwapRequest struct {
	TokenIn   string `json:"tokenIn"`
	TokenOut  string `json:"tokenOut"`
	AmountIn  string `json:"amountIn"`
	Slippage  string `json:"slippage,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

// BacktestRequest replays a strategy over historical data.
type BacktestRequest struct {
	Token    string `json:"token"`
	Strategy string `json:"strategy"`
	Interval string `json:"interval,omitempty"`
	Days     int    `json:"days,omitempty"`
}

func (c *Client) Price(ctx context.Context, token string) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/price", url.Values{"token": {token}})
}

func (c *Client) SwapQuote(ctx context.Context, req SwapQuoteRequest) (json.RawMessage, error) {
	return c.post(ctx, "/api/v1/swap-quote", req)
}

func (c *Client) ExecuteSwap(ctx context.Context, req ExecuteSwapRequest) (json.RawMessage, error) {
	return c.post(ctx, "/api/v1/execute-swap", req)
}

func (c *Client) TechnicalAnalysis(ctx context.Context, token, interval string) (json.RawMessage, error) {
	q := url.Values{"token": {token}}
	if interval != "" {
		q.Set("interval", interval)
	}

	return c.get(ctx, "/api/v1/technical-analysis", q)
}

func (c *Client) Backtest(ctx context.Context, req BacktestRequest) (json.RawMessage, error) {
	return c.post(ctx, "/api/v1/backtest", req)
}

func (c *Client) PoolAnalysis(ctx context.Context, address string) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/pool-analysis", url.Values{"address": {address}})
}

func (c *Client) Yield(ctx context.Context, token string) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/yield", url.Values{"token": {token}})
}

func (c *Client) LPAnalysis(ctx context.Context, address string) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/lp-analysis", url.Values{"address": {address}})
}

func (c *Client) TopPools(ctx context.Context, limit int) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/top-pools", limitValues(limit))
}

func (c *Client) TopProtocols(ctx context.Context, limit int) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/top-protocols", limitValues(limit))
}

func (c *Client) TopCoins(ctx context.Context, limit int) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/top-coins", limitValues(limit))
}

func (c *Client) Metrics(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/metrics", nil)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	res, err := c.neg.Do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	return res.Body, nil
}

func (c *Client) post(ctx context.Context, path string, req any) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	res, err := c.neg.Do(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	return res.Body, nil
}

func limitValues(limit int) url.Values {
	if limit <= 0 {
		return nil
	}

	return url.Values{"limit": {strconv.Itoa(limit)}}
}
