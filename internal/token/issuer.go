// Package token issues the short-lived signed bearer credentials used
// against the discovery API.  This is a separate trust domain from the
// payment gate: a distinct ES256 key pair, a distinct claim shape and
// no payment fields.
package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/NobleSOL/silverback-agent-sub002/pkg/api"
)

// Window is the fixed credential lifetime.  Tokens are minted per call
// and never cached, so nothing longer is ever needed.
const Window = 120 * time.Second

// Issuer mints one compact signed token per call.  Safe for concurrent
// use; the key is read-only after construction.
type Issuer struct {
	priv    *ecdsa.PrivateKey
	keyID   string
	nowFunc api.NowFunc
}

// NewIssuer validates the key pair and returns an Issuer.  The key must
// be on the P-256 curve required by ES256.
func NewIssuer(priv *ecdsa.PrivateKey, keyID string, nowFunc api.NowFunc) (*Issuer, error) {
	if priv == nil || keyID == "" {
		return nil, ErrNotConfigured
	}

	if priv.Curve != elliptic.P256() {
		return nil, ErrInvalidCurve
	}

	if nowFunc == nil {
		nowFunc = time.Now
	}

	return &Issuer{
		priv:    priv,
		keyID:   keyID,
		nowFunc: nowFunc,
	}, nil
}

// Issue returns a compact signed token authorizing exactly one
// (method, host, path) call for the next two minutes.  Every token
// carries a fresh 128-bit nonce in both header and claims.
func (i *Issuer) Issue(method, host, path string) (string, error) {
	var (
		nonce = uuid.NewString()
		nbf   = i.nowFunc()
	)

	claims := jwt.MapClaims{
		"sub":   i.keyID,
		"iss":   "silverback",
		"nbf":   nbf.Unix(),
		"exp":   nbf.Add(Window).Unix(),
		"nonce": nonce,
		"uris":  []string{method + " " + host + path},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	tok.Header["kid"] = i.keyID
	tok.Header["nonce"] = nonce
	tok.Header["typ"] = "JWT"

	signed, err := tok.SignedString(i.priv)
	if err != nil {
		return "", FailedTokenIssue(err)
	}

	return signed, nil
}

// KeyID returns the identifier of the key pair this issuer signs with.
func (i *Issuer) KeyID() string {
	return i.keyID
}

// ParseKeyHex derives a P-256 private key from its hex-encoded scalar.
func ParseKeyHex(s string) (*ecdsa.PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}

	curve := elliptic.P256()

	d := new(big.Int).SetBytes(b)
	if d.Sign() <= 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, ErrNotConfigured
	}

	priv := new(ecdsa.PrivateKey)
	priv.D = d
	priv.PublicKey.Curve = curve
	priv.PublicKey.X, priv.PublicKey.Y = curve.ScalarBaseMult(d.Bytes())

	return priv, nil
}
