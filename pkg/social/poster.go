// Package social defines the posting sink the agent hands finished
// text to.  One outbound call per post, success or failure, nothing
// else consumed from the response.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NobleSOL/silverback-agent-sub002/internal/observability"
)

// Poster accepts a pre-formatted text blob and performs one outbound
// post.
type Poster interface {
	Post(ctx context.Context, text string) error
}

var _ Poster = (*WebhookPoster)(nil)

// WebhookPoster posts text as JSON to a webhook URL.
type WebhookPoster struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func NewWebhookPoster(url string, client *http.Client, log *slog.Logger) (*WebhookPoster, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}

	if client == nil {
		client = http.DefaultClient
	}

	if log == nil {
		log = slog.New(observability.NewNoopHandler())
	}

	return &WebhookPoster{
		url:    url,
		client: client,
		log:    log,
	}, nil
}

// Post implements Poster.
func (p *WebhookPoster) Post(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post failed with status %d", resp.StatusCode)
	}

	p.log.Info("posted", slog.Int("chars", len(text)))

	return nil
}
