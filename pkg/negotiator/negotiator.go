// Package negotiator implements the client side of the x402 payment
// gate as an explicit two-attempt protocol: send the request, and when
// the server answers 402 Payment Required, parse its terms, sign a
// matching authorization and retry exactly once with the proof of
// payment attached.
//
// Each logical call is self-contained.  The negotiator holds no
// cross-call state, so calls may run concurrently without limit; the
// only shared resource is the signing credential, which is read-only
// after construction.
package negotiator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coinbase/x402/go/pkg/types"

	"github.com/NobleSOL/silverback-agent-sub002/internal/requirements"
)

// PaymentHeader carries the base64-encoded, JSON-serialized payment
// authorization on a retried request.
const PaymentHeader = "X-Payment"

var _ http.RoundTripper = (*Negotiator)(nil)

// Negotiator performs payment-gated HTTP requests.  Use Do for tagged
// outcomes, or install the Negotiator as an http.RoundTripper for
// transparent operation under a stdlib http.Client.
type Negotiator struct {
	config

	next http.RoundTripper
}

// New wraps next with payment negotiation.  A nil next uses
// http.DefaultTransport.
func New(next http.RoundTripper, opts ...Option) (*Negotiator, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	if next == nil {
		next = http.DefaultTransport
	}

	return &Negotiator{
		config: *cfg,
		next:   next,
	}, nil
}

// Result is the terminal outcome of a successful logical call.  Paid
// reports whether a payment authorization was attached to obtain it.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Paid       bool
}

// Do executes one logical call: at most two network requests and at
// most one signing operation.  The response body of a success is
// returned as-is; every failure is one of ErrPaymentNotConfigured,
// ErrMalformedRequirements, ErrUnsupportedNetwork, ErrPaymentRejected
// or *RequestError, so callers can branch without string matching.
func (n *Negotiator) Do(ctx context.Context, method, rawURL string, body []byte) (*Result, error) {
	resp, data, err := n.attempt(ctx, method, rawURL, body, "")
	if err != nil {
		return nil, err
	}

	if success(resp.StatusCode) {
		return &Result{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       data,
			Paid:       false,
		}, nil
	}

	if resp.StatusCode != http.StatusPaymentRequired {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: data}
	}

	payment, err := n.negotiate(resp.Header.Get(requirements.Header), data, rawURL)
	if err != nil {
		return nil, err
	}

	resp, data, err = n.attempt(ctx, method, rawURL, body, payment)
	if err != nil {
		return nil, err
	}

	switch {
	case success(resp.StatusCode):
		return &Result{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       data,
			Paid:       true,
		}, nil
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, ErrPaymentRejected
	default:
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: data}
	}
}

// RoundTrip implements http.RoundTripper.  Responses other than 402
// pass through untouched; a 402 triggers the payment flow and the
// retried request's response is returned, whatever its status.
func (n *Negotiator) RoundTrip(req *http.Request) (*http.Response, error) {
	// The body can only be read one time and up to two round-trips may
	// be made, so buffer it and give each attempt a fresh reader.
	var (
		body []byte
		err  error
	)

	if req.Body != nil {
		defer req.Body.Close()

		body, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}

		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	resp, err := n.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusPaymentRequired {
		return resp, nil
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read 402 response body: %w", err)
	}

	payment, err := n.negotiate(resp.Header.Get(requirements.Header), data, req.URL.String())
	if err != nil {
		return nil, err
	}

	if req.Body != nil {
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	req.Header.Set(PaymentHeader, payment)

	return n.next.RoundTrip(req)
}

// negotiate turns a 402 response into the value of the X-Payment
// header for the retry: parse the offered terms, select the one for
// the configured network, check it describes the requested resource
// and have the payer sign an authorization for exactly the required
// amount.
func (n *Negotiator) negotiate(header string, body []byte, rawURL string) (string, error) {
	if n.payer == nil {
		return "", ErrPaymentNotConfigured
	}

	offered, err := requirements.Parse(header, body)
	if err != nil {
		return "", err
	}

	n.log.Debug("Payment required", slog.Int("offered", len(offered)))

	selected, err := requirements.Select(offered, n.network)
	if err != nil {
		return "", err
	}

	if err := matchResource(selected, rawURL); err != nil {
		return "", err
	}

	payload, err := n.payer.Pay(selected)
	if err != nil {
		return "", err
	}

	if payload.Payload == nil || payload.Payload.Authorization == nil {
		return "", fmt.Errorf("payer returned an incomplete payment payload")
	}

	if payload.Payload.Authorization.Value != selected.MaxAmountRequired {
		return "", fmt.Errorf("authorization value %s does not equal required amount %s",
			payload.Payload.Authorization.Value, selected.MaxAmountRequired)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment: %w", err)
	}

	n.log.Debug("Payment header JSON", slog.String("json", string(data)))

	return base64.StdEncoding.EncodeToString(data), nil
}

// attempt performs a single bounded network operation and fully reads
// the response before returning, so the second attempt can never start
// while the first is still in flight.
func (n *Negotiator) attempt(ctx context.Context, method, rawURL string, body []byte, payment string) (*http.Response, []byte, error) {
	if n.attemptTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, n.attemptTimeout)
		defer cancel()
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
	if err != nil {
		return nil, nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if payment != "" {
		req.Header.Set(PaymentHeader, payment)
	}

	resp, err := n.next.RoundTrip(req)
	if err != nil {
		return nil, nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp, data, nil
}

// matchResource rejects a requirement whose resource path differs from
// the path actually being requested.  An authorization is only ever
// signed for the resource the caller asked for.
func matchResource(selected types.PaymentRequirements, rawURL string) error {
	if selected.Resource == "" {
		return nil
	}

	reqURL, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	resURL, err := url.Parse(selected.Resource)
	if err != nil {
		return fmt.Errorf("%w: bad resource %q", ErrMalformedRequirements, selected.Resource)
	}

	if resURL.Path != reqURL.Path {
		return fmt.Errorf("%w: resource %q does not match request path %q",
			ErrMalformedRequirements, resURL.Path, reqURL.Path)
	}

	return nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}
