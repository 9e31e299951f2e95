package signer

import (
	"crypto/ecdsa"
	"log/slog"
)

const redacted = "[redacted]"

var _ slog.LogValuer = secret{}

// secret owns the signing key for the life of the process.  Formatting a
// secret through fmt or slog yields a fixed placeholder so key material
// can't leak into logs or error messages.
type secret struct {
	priv *ecdsa.PrivateKey
}

func (s secret) String() string {
	return redacted
}

func (s secret) GoString() string {
	return redacted
}

func (s secret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

func (s secret) key() *ecdsa.PrivateKey {
	return s.priv
}
