package silverback

import (
	"crypto/ecdsa"
	"net/http"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"

	"github.com/NobleSOL/silverback-agent-sub002/internal/signer"
	"github.com/NobleSOL/silverback-agent-sub002/pkg/api"
)

// ClientForPrivateKey returns an http.Client capable of making payments
// using cryptocurrency from the Ethereum account associated with the
// provided ECDSA private key.
func ClientForPrivateKey(priv *ecdsa.PrivateKey, opts ...Option) (*http.Client, error) {
	s, err := signer.NewECDSASigner(priv)
	if err != nil {
		return nil, err
	}

	return ClientForSigner(s, opts...)
}

// ClientForPrivateKeyHex is like ClientForPrivateKey except that the
// private key is parsed from the provided hexadecimal string.
func ClientForPrivateKeyHex(privHex string, opts ...Option) (*http.Client, error) {
	s, err := signer.NewECDSASignerFromHex(privHex)
	if err != nil {
		return nil, err
	}

	return ClientForSigner(s, opts...)
}

// ClientForPrivateKeyHexFromEnv is like ClientForPrivateKeyHex except
// that the hexadecimal string is read from the environment variable
// selected by name.
func ClientForPrivateKeyHexFromEnv(name string, opts ...Option) (*http.Client, error) {
	s, err := signer.NewECDSASignerFromEnv(name)
	if err != nil {
		return nil, err
	}

	return ClientForSigner(s, opts...)
}

// ClientForKeyStore returns an http.Client that signs payments with an
// account held in a go-ethereum keystore, unlocked per signature with
// the provided passphrase.
func ClientForKeyStore(ks *keystore.KeyStore, acct accounts.Account, pass []byte, opts ...Option) (*http.Client, error) {
	s, err := signer.NewKeyStoreSigner(ks, acct, pass)
	if err != nil {
		return nil, err
	}

	return ClientForSigner(s, opts...)
}

// ClientForSigner returns an http.Client whose transport settles 402
// responses using the provided api.Signer.
func ClientForSigner(s api.Signer, opts ...Option) (*http.Client, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	next := cfg.client.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	trans, err := NewTransport(next, s, opts...)
	if err != nil {
		return nil, err
	}

	return &http.Client{
		Transport:     trans,
		CheckRedirect: cfg.client.CheckRedirect,
		Jar:           cfg.client.Jar,
		Timeout:       cfg.client.Timeout,
	}, nil
}
