package evm_test

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/coinbase/x402/go/pkg/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/NobleSOL/silverback-agent-sub002/internal/exact/evm"
	"github.com/NobleSOL/silverback-agent-sub002/internal/signer"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/api"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/api/apitest"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/payer"
)

func TestExactEvmPay(t *testing.T) {
	t.Parallel()

	paymentRequestJSON := golden.Get(t, "payment_request.json")

	sgn, err := signer.NewECDSASignerFromHex(apitest.ECDSAPrivateKeyHex)
	require.NoError(t, err)

	var paymentRequired api.PaymentRequired

	require.NoError(t, json.Unmarshal(paymentRequestJSON, &paymentRequired))
	require.Len(t, paymentRequired.Accepts, 1)

	requirements := paymentRequired.Accepts[0]

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p, err := evm.NewExactEvm(sgn, log,
		payer.WithNowFunc(fixedNowFunc(t)), payer.WithNonceFunc(fixedNonceFunc(t)))
	require.NoError(t, err)

	payload, err := p.Pay(requirements)
	require.NoError(t, err)

	now := fixedNowFunc(t)()

	auth := payload.Payload.Authorization
	assert.Equal(t, 1, payload.X402Version)
	assert.Equal(t, "exact", payload.Scheme)
	assert.Equal(t, "base", payload.Network)
	assert.Equal(t, sgn.Address().Hex(), auth.From)
	assert.Equal(t, requirements.PayTo, auth.To)
	assert.Equal(t, requirements.MaxAmountRequired, auth.Value)
	assert.Equal(t, strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10), auth.ValidAfter)
	assert.Equal(t, strconv.FormatInt(now.Add(60*time.Second).Unix(), 10), auth.ValidBefore)

	assertSignatureRecovers(t, sgn, requirements, payload)
}

func TestExactEvmPayWithoutExtra(t *testing.T) {
	t.Parallel()

	sgn, err := signer.NewECDSASignerFromHex(apitest.ECDSAPrivateKeyHex)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p, err := evm.NewExactEvm(sgn, log,
		payer.WithNowFunc(fixedNowFunc(t)), payer.WithNonceFunc(fixedNonceFunc(t)))
	require.NoError(t, err)

	// No extra field: the known-token table supplies the EIP-712
	// domain for USDC on base.
	payload, err := p.Pay(types.PaymentRequirements{
		Scheme:            "exact",
		Network:           "base",
		MaxAmountRequired: "20000",
		PayTo:             "0x60ac86571E55F9735F00cE9e28361d203977B260",
		MaxTimeoutSeconds: 60,
		Asset:             "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	})
	require.NoError(t, err)
	assert.Equal(t, "20000", payload.Payload.Authorization.Value)
	assert.NotEmpty(t, payload.Payload.Signature)
}

func TestExactEvmPayUnknownScheme(t *testing.T) {
	t.Parallel()

	sgn, err := signer.NewECDSASignerFromHex(apitest.ECDSAPrivateKeyHex)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p, err := evm.NewExactEvm(sgn, log,
		payer.WithNowFunc(fixedNowFunc(t)), payer.WithNonceFunc(fixedNonceFunc(t)))
	require.NoError(t, err)

	_, err = p.Pay(types.PaymentRequirements{Scheme: "upto", Network: "base"})
	require.Error(t, err)
}

func assertSignatureRecovers(t *testing.T, sgn *signer.ECDSASigner, requirements types.PaymentRequirements, payload *types.PaymentPayload) {
	t.Helper()

	auth := payload.Payload.Authorization

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"TransferWithAuthorization": []apitypes.Type{
				{Name: "from", Type: "address"},
				{Name: "to", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "validAfter", Type: "uint256"},
				{Name: "validBefore", Type: "uint256"},
				{Name: "nonce", Type: "bytes32"},
			},
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
		},
		PrimaryType: "TransferWithAuthorization",
		Domain: apitypes.TypedDataDomain{
			Name:              "USD Coin",
			Version:           "2",
			ChainId:           math.NewHexOrDecimal256(8453),
			VerifyingContract: requirements.Asset,
		},
		Message: apitypes.TypedDataMessage{
			"from":        auth.From,
			"to":          auth.To,
			"value":       auth.Value,
			"validAfter":  auth.ValidAfter,
			"validBefore": auth.ValidBefore,
			"nonce":       auth.Nonce,
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	require.NoError(t, err)

	sig, err := hexutil.Decode(payload.Payload.Signature)
	require.NoError(t, err)
	require.Len(t, sig, 65)

	sig[64] -= 27

	pubKey, err := crypto.SigToPub(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, sgn.Address(), crypto.PubkeyToAddress(*pubKey))
}

func fixedNonceFunc(t *testing.T) api.NonceFunc {
	t.Helper()

	nonce, err := hex.DecodeString("140fd607c52d266941aa8d8241891654b6d7ab50a02028cb900c746e3a1bf4dd")
	require.NoError(t, err)

	return func() []byte {
		return nonce
	}
}

func fixedNowFunc(t *testing.T) api.NowFunc {
	t.Helper()

	now, err := time.Parse(time.RFC3339, "2001-02-03T04:05:06Z")
	require.NoError(t, err)

	return func() time.Time {
		return now
	}
}
