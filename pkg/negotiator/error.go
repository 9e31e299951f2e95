package negotiator

import (
	"errors"
	"fmt"

	"github.com/NobleSOL/silverback-agent-sub002/internal/requirements"
)

// ErrPaymentNotConfigured is returned when a server demands payment
// but no payer was configured.  The first request is still made; no
// signing is ever attempted.
var ErrPaymentNotConfigured = errors.New("payment required but no payer is configured")

// ErrMalformedRequirements is returned when a 402 response carries no
// parsable payment terms.  The request is not retried.
var ErrMalformedRequirements = requirements.ErrMalformed

// ErrUnsupportedNetwork is returned when none of the offered payment
// requirements targets the configured network.  The negotiator never
// guesses; no signing occurs.
var ErrUnsupportedNetwork = requirements.ErrNoNetworkMatch

// ErrPaymentRejected is returned when the retried request still comes
// back 402.  There is no third attempt; each logical call costs at most
// one signed authorization.
var ErrPaymentRejected = errors.New("payment rejected: retried request still requires payment")

var _ error = (*RequestError)(nil)

// RequestError carries a non-success, non-402 status and the server's
// error payload verbatim.
type RequestError struct {
	StatusCode int
	Body       []byte
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}
