package silverback_test

import (
	"crypto/ecdsa"
	"crypto/rand"
	"testing"

	"github.com/ethereum/go-ethereum/crypto/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	silverback "github.com/NobleSOL/silverback-agent-sub002"
	"github.com/NobleSOL/silverback-agent-sub002/internal/signer"
)

func TestClientForPrivateKey(t *testing.T) {
	t.Parallel()

	priv, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
	require.NoError(t, err)

	cl, err := silverback.ClientForPrivateKey(priv)
	require.NoError(t, err)
	assert.NotNil(t, cl)
	assert.IsType(t, &silverback.Transport{}, cl.Transport)
}

func TestClientForPrivateKeyHex(t *testing.T) {
	t.Parallel()

	const testPrivKey = "7dad518a602e2b504e228012553cc2648109202ebb09f347646e9013b88f22d5"

	cl, err := silverback.ClientForPrivateKeyHex(testPrivKey)
	require.NoError(t, err)
	assert.NotNil(t, cl)
}

func TestClientForPrivateKeyHexFromEnv(t *testing.T) {
	const (
		envVarName  = "SILVERBACK_PRIVATE_KEY"
		testPrivKey = "7dad518a602e2b504e228012553cc2648109202ebb09f347646e9013b88f22d5"
	)

	t.Setenv(envVarName, testPrivKey)

	cl, err := silverback.ClientForPrivateKeyHexFromEnv(envVarName)
	require.NoError(t, err)
	assert.NotNil(t, cl)
}

func TestClientForSigner(t *testing.T) {
	t.Parallel()

	priv, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
	require.NoError(t, err)

	sgn, err := signer.NewECDSASigner(priv)
	require.NoError(t, err)

	cl, err := silverback.ClientForSigner(sgn, silverback.WithNetwork("base-sepolia"))
	require.NoError(t, err)
	assert.NotNil(t, cl)
}

func TestClientForSignerRejectsEmptyNetwork(t *testing.T) {
	t.Parallel()

	priv, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
	require.NoError(t, err)

	sgn, err := signer.NewECDSASigner(priv)
	require.NoError(t, err)

	_, err = silverback.ClientForSigner(sgn, silverback.WithNetwork(""))
	require.Error(t, err)
}
