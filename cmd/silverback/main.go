// The silverback command runs one posting cycle of the agent: pick a
// content category, fetch the data it depends on from the payment-gated
// DEX analytics API, render the template and hand the text to the
// posting sink.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/NobleSOL/silverback-agent-sub002/internal/exact/evm"
	"github.com/NobleSOL/silverback-agent-sub002/internal/observability"
	"github.com/NobleSOL/silverback-agent-sub002/internal/signer"
	"github.com/NobleSOL/silverback-agent-sub002/internal/token"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/content"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/dexapi"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/discovery"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/negotiator"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/social"
)

const (
	envPrivateKey = "SILVERBACK_PRIVATE_KEY"
	envAPIBaseURL = "SILVERBACK_API_URL"
	envNetwork    = "SILVERBACK_NETWORK"
	envWebhookURL = "SILVERBACK_WEBHOOK_URL"
	envToken      = "SILVERBACK_TOKEN"

	envDiscoveryURL   = "SILVERBACK_DISCOVERY_URL"
	envDiscoveryKey   = "SILVERBACK_DISCOVERY_KEY"
	envDiscoveryKeyID = "SILVERBACK_DISCOVERY_KEY_ID"
)

func main() {
	_ = godotenv.Load()

	log := observability.NewConsoleLogger(os.Stderr, slog.LevelDebug)

	if err := run(log); err != nil {
		log.Error("cycle failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	network := os.Getenv(envNetwork)
	if network == "" {
		network = negotiator.DefaultNetwork
	}

	sgn, err := signer.NewECDSASignerFromEnv(envPrivateKey)
	if err != nil {
		return err
	}

	neg, err := paymentNegotiator(sgn, network, log)
	if err != nil {
		return err
	}

	dex, err := dexapi.New(os.Getenv(envAPIBaseURL), neg)
	if err != nil {
		return err
	}

	poster, err := social.NewWebhookPoster(os.Getenv(envWebhookURL), nil, log)
	if err != nil {
		return err
	}

	sel, err := content.NewSelector(content.Catalog(), rand.NewSource(time.Now().UnixNano()))
	if err != nil {
		return err
	}

	logDiscoveredResources(ctx, log)

	cat, tmpl := sel.Pick()

	log.Info("selected content", slog.String("category", cat.Name))

	data, err := fetchData(ctx, dex, cat)
	if err != nil {
		return err
	}

	text, err := content.Render(tmpl, data)
	if err != nil {
		return err
	}

	return poster.Post(ctx, text)
}

// fetchData calls the operations a category's templates depend on and
// flattens the opaque responses into template data.
func fetchData(ctx context.Context, dex *dexapi.Client, cat content.Category) (map[string]string, error) {
	token := os.Getenv(envToken)
	if token == "" {
		token = "WETH"
	}

	var (
		raw json.RawMessage
		err error
	)

	switch cat.Name {
	case "pool_spotlight":
		raw, err = dex.TopPools(ctx, 1)
	case "yield_watch":
		raw, err = dex.Yield(ctx, token)
	case "ta_signal":
		raw, err = dex.TechnicalAnalysis(ctx, token, "1d")
	default:
		raw, err = dex.Price(ctx, token)
	}

	if err != nil {
		return nil, err
	}

	data := map[string]string{"token": token}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err == nil {
		for key, value := range fields {
			if s, ok := value.(string); ok {
				data[key] = s
			}
		}
	}

	return data, nil
}

// logDiscoveredResources lists a few payable resources from the bazaar
// when discovery credentials are configured. The listing is informational
// only, so a failure never aborts the posting cycle.
func logDiscoveredResources(ctx context.Context, log *slog.Logger) {
	baseURL := os.Getenv(envDiscoveryURL)
	if baseURL == "" {
		return
	}

	priv, err := token.ParseKeyHex(os.Getenv(envDiscoveryKey))
	if err != nil {
		log.Warn("discovery disabled", slog.Any("error", err))
		return
	}

	issuer, err := token.NewIssuer(priv, os.Getenv(envDiscoveryKeyID), time.Now)
	if err != nil {
		log.Warn("discovery disabled", slog.Any("error", err))
		return
	}

	client, err := discovery.New(baseURL, issuer, discovery.WithLogger(log))
	if err != nil {
		log.Warn("discovery disabled", slog.Any("error", err))
		return
	}

	resp, err := client.ListResources(ctx, discovery.ListOptions{Type: "http", Limit: 5})
	if err != nil {
		log.Warn("discovery listing failed", slog.Any("error", err))
		return
	}

	for _, item := range resp.Items {
		log.Debug("discovered resource",
			slog.String("resource", item.Resource),
			slog.String("type", item.Type))
	}
}

func paymentNegotiator(sgn *signer.ECDSASigner, network string, log *slog.Logger) (*negotiator.Negotiator, error) {
	payer, err := evm.NewExactEvm(sgn, log)
	if err != nil {
		return nil, err
	}

	return negotiator.New(nil,
		negotiator.WithPayer(payer),
		negotiator.WithNetwork(network),
		negotiator.WithLogger(log),
	)
}
