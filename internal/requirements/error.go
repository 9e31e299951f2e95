package requirements

import "errors"

// ErrMalformed is returned when a 402 response carries no usable
// payment terms.
var ErrMalformed = errors.New("malformed payment requirements")

// ErrNoNetworkMatch is returned by Select when none of the offered
// requirements targets the configured network.
var ErrNoNetworkMatch = errors.New("no payment requirement matches the configured network")
