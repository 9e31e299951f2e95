package token

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when the discovery key pair or its key
// id is absent.
var ErrNotConfigured = errors.New("discovery credential not configured")

// ErrInvalidCurve is returned when the key is not on the P-256 curve.
var ErrInvalidCurve = errors.New("curve must be P-256 for ES256 tokens")

var ErrFailedTokenIssue = errors.New("failed to issue bearer token")

func FailedTokenIssue(err error) error {
	return fmt.Errorf("%w: %w", ErrFailedTokenIssue, err)
}
