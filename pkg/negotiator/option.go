package negotiator

import (
	"errors"
	"log/slog"
	"time"

	"github.com/NobleSOL/silverback-agent-sub002/internal/observability"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/api"
)

const (
	// DefaultNetwork is the settlement network requirements are matched
	// against unless WithNetwork overrides it.
	DefaultNetwork = "base"

	// DefaultAttemptTimeout bounds each of the (at most two) network
	// operations of a logical call independently.
	DefaultAttemptTimeout = 30 * time.Second
)

type config struct {
	payer          api.Payer
	network        string
	attemptTimeout time.Duration
	log            *slog.Logger
}

// Option represents a means of altering the default configuration of a
// Negotiator.
type Option func(*config) error

func newConfig(opts ...Option) (*config, error) {
	var errs error

	cfg := &config{
		network:        DefaultNetwork,
		attemptTimeout: DefaultAttemptTimeout,
		log:            slog.New(observability.NewNoopHandler()),
	}

	for _, opt := range opts {
		errs = errors.Join(errs, opt(cfg))
	}

	if errs != nil {
		return nil, errs
	}

	return cfg, nil
}

// WithPayer provides the api.Payer that signs payment authorizations.
// Without one, any 402 response surfaces ErrPaymentNotConfigured.
func WithPayer(p api.Payer) Option {
	return func(c *config) error {
		c.payer = p

		return nil
	}
}

// WithNetwork fixes the settlement network the negotiator accepts
// payment requirements for.
func WithNetwork(network string) Option {
	return func(c *config) error {
		if network == "" {
			return errors.New("network must not be empty")
		}

		c.network = network

		return nil
	}
}

// WithAttemptTimeout bounds each network operation of a logical call.
// A timeout on the first attempt never triggers the second.  Zero
// disables the per-attempt bound, leaving only the caller's context.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return errors.New("attempt timeout must not be negative")
		}

		c.attemptTimeout = d

		return nil
	}
}

// WithLogger provides an slog.Logger used to observe the payment flow.
// One INFO record is written per payment; DEBUG records cover each
// protocol step.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) error {
		c.log = log

		return nil
	}
}
