package discovery_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NobleSOL/silverback-agent-sub002/internal/token"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/discovery"
)

const listJSON = `{
	"x402Version": 1,
	"items": [{
		"resource": "https://example.com/api/v1/swap-quote",
		"type": "http",
		"x402Version": 1,
		"accepts": [{"scheme": "exact", "network": "base", "maxAmountRequired": "20000", "payTo": "0x02"}],
		"lastUpdated": "2024-06-01T00:00:00Z",
		"metadata": {"name": "Swap quotes", "category": "data"}
	}],
	"pagination": {"limit": 10, "offset": 0, "total": 1}
}`

func TestListResources(t *testing.T) {
	t.Parallel()

	priv := discoveryKey(t)

	issuer, err := token.NewIssuer(priv, "test-key-id", nil)
	require.NoError(t, err)

	var gotRequests []*http.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequests = append(gotRequests, r.Clone(context.Background()))

		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		require.NotEmpty(t, bearer)

		parsed, err := jwt.Parse(bearer, func(tok *jwt.Token) (any, error) {
			return &priv.PublicKey, nil
		}, jwt.WithValidMethods([]string{"ES256"}))
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listJSON))
	}))
	t.Cleanup(srv.Close)

	cl, err := discovery.New(srv.URL, issuer)
	require.NoError(t, err)

	out, err := cl.ListResources(context.Background(), discovery.ListOptions{Type: "http", Limit: 10})
	require.NoError(t, err)

	// Exactly one request, no retry on this path.
	require.Len(t, gotRequests, 1)
	assert.Equal(t, "/discovery/resources", gotRequests[0].URL.Path)
	assert.Equal(t, "http", gotRequests[0].URL.Query().Get("type"))
	assert.Equal(t, "10", gotRequests[0].URL.Query().Get("limit"))

	require.Len(t, out.Items, 1)
	assert.Equal(t, "https://example.com/api/v1/swap-quote", out.Items[0].Resource)
	assert.Equal(t, 1, out.Pagination.Total)
}

func TestListResourcesAPIError(t *testing.T) {
	t.Parallel()

	issuer, err := token.NewIssuer(discoveryKey(t), "test-key-id", nil)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"nope"}`, http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	cl, err := discovery.New(srv.URL, issuer)
	require.NoError(t, err)

	_, err = cl.ListResources(context.Background(), discovery.ListOptions{})

	var apiErr *discovery.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestNewWithoutCredential(t *testing.T) {
	t.Parallel()

	_, err := discovery.New("https://api.example.com", nil)
	require.ErrorIs(t, err, token.ErrNotConfigured)
}

func discoveryKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return priv
}
