package requirements_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NobleSOL/silverback-agent-sub002/internal/requirements"
)

const requirementJSON = `{
	"scheme": "exact",
	"network": "base",
	"maxAmountRequired": "20000",
	"resource": "https://example.com/api/v1/swap-quote",
	"payTo": "0x60ac86571E55F9735F00cE9e28361d203977B260",
	"maxTimeoutSeconds": 60,
	"asset": "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	"extra": {"name": "USD Coin", "version": "2", "futureField": "ignored-but-kept"}
}`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("passes - header-only and body-only agree", func(t *testing.T) {
		t.Parallel()

		fromHeader, err := requirements.Parse(requirementJSON, nil)
		require.NoError(t, err)

		fromBody, err := requirements.Parse("", []byte(`{"x402Version":1,"error":"payment required","accepts":[`+requirementJSON+`]}`))
		require.NoError(t, err)

		require.Len(t, fromHeader, 1)
		require.Len(t, fromBody, 1)
		assert.Equal(t, fromHeader[0], fromBody[0])
	})

	t.Run("passes - header array", func(t *testing.T) {
		t.Parallel()

		offered, err := requirements.Parse(`[`+requirementJSON+`,`+requirementJSON+`]`, nil)
		require.NoError(t, err)
		assert.Len(t, offered, 2)
	})

	t.Run("passes - bare body object", func(t *testing.T) {
		t.Parallel()

		offered, err := requirements.Parse("", []byte(requirementJSON))
		require.NoError(t, err)
		require.Len(t, offered, 1)
		assert.Equal(t, "20000", offered[0].MaxAmountRequired)
	})

	t.Run("passes - header wins over body", func(t *testing.T) {
		t.Parallel()

		offered, err := requirements.Parse(requirementJSON, []byte(`not even json`))
		require.NoError(t, err)
		assert.Len(t, offered, 1)
	})

	t.Run("passes - unknown extra fields pass through untouched", func(t *testing.T) {
		t.Parallel()

		offered, err := requirements.Parse(requirementJSON, nil)
		require.NoError(t, err)
		require.NotNil(t, offered[0].Extra)

		var extra map[string]any
		require.NoError(t, json.Unmarshal([]byte(*offered[0].Extra), &extra))
		assert.Equal(t, "ignored-but-kept", extra["futureField"])
	})

	t.Run("fails - empty response", func(t *testing.T) {
		t.Parallel()

		_, err := requirements.Parse("", nil)
		require.ErrorIs(t, err, requirements.ErrMalformed)
	})

	t.Run("fails - body neither object nor array", func(t *testing.T) {
		t.Parallel()

		_, err := requirements.Parse("", []byte(`"just a string"`))
		require.ErrorIs(t, err, requirements.ErrMalformed)
	})

	t.Run("fails - missing payTo", func(t *testing.T) {
		t.Parallel()

		_, err := requirements.Parse(`{"scheme":"exact","network":"base","maxAmountRequired":"1"}`, nil)
		require.ErrorIs(t, err, requirements.ErrMalformed)
	})

	t.Run("fails - empty accepts", func(t *testing.T) {
		t.Parallel()

		_, err := requirements.Parse("", []byte(`{"x402Version":1,"accepts":[]}`))
		require.ErrorIs(t, err, requirements.ErrMalformed)
	})
}

func TestSelect(t *testing.T) {
	t.Parallel()

	offered, err := requirements.Parse(`[
		{"scheme":"exact","network":"avalanche","maxAmountRequired":"1","payTo":"0x01"},
		{"scheme":"exact","network":"base","maxAmountRequired":"2","payTo":"0x02"},
		{"scheme":"exact","network":"base-sepolia","maxAmountRequired":"3","payTo":"0x03"}
	]`, nil)
	require.NoError(t, err)

	t.Run("passes - picks the configured network", func(t *testing.T) {
		t.Parallel()

		selected, err := requirements.Select(offered, "base")
		require.NoError(t, err)
		assert.Equal(t, "2", selected.MaxAmountRequired)
	})

	t.Run("fails - no match", func(t *testing.T) {
		t.Parallel()

		_, err := requirements.Select(offered, "solana")
		require.ErrorIs(t, err, requirements.ErrNoNetworkMatch)
	})
}
