package silverback

import (
	"net/http"

	"github.com/NobleSOL/silverback-agent-sub002/internal/exact/evm"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/api"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/negotiator"
)

var _ http.RoundTripper = (*Transport)(nil)

// Transport is an http.RoundTripper that transparently settles 402
// Payment Required responses using the provided signer, then retries
// the request once with the proof of payment attached.
type Transport struct {
	neg *negotiator.Negotiator
}

// NewTransport wraps next with payment negotiation on behalf of signer.
func NewTransport(next http.RoundTripper, signer api.Signer, opts ...Option) (*Transport, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	payer, err := evm.NewExactEvm(signer, cfg.log)
	if err != nil {
		return nil, err
	}

	neg, err := negotiator.New(next,
		negotiator.WithPayer(payer),
		negotiator.WithNetwork(cfg.network),
		negotiator.WithLogger(cfg.log),
	)
	if err != nil {
		return nil, err
	}

	return &Transport{neg: neg}, nil
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.neg.RoundTrip(req)
}

// Negotiator exposes the underlying negotiator for callers that want
// tagged outcomes instead of raw responses.
func (t *Transport) Negotiator() *negotiator.Negotiator {
	return t.neg
}
