package discovery

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/NobleSOL/silverback-agent-sub002/internal/observability"
)

type config struct {
	client *http.Client
	log    *slog.Logger
}

// Option represents a means of altering the default configuration of
// the discovery Client.
type Option func(*config) error

func newConfig(opts ...Option) (*config, error) {
	var errs error

	cfg := &config{
		client: http.DefaultClient,
		log:    slog.New(observability.NewNoopHandler()),
	}

	for _, opt := range opts {
		errs = errors.Join(errs, opt(cfg))
	}

	if errs != nil {
		return nil, errs
	}

	return cfg, nil
}

// WithClient provides a custom http.Client for catalog calls.
func WithClient(client *http.Client) Option {
	return func(c *config) error {
		c.client = client

		return nil
	}
}

// WithLogger provides an slog.Logger used to observe catalog calls.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) error {
		c.log = log

		return nil
	}
}
