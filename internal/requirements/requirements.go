// Package requirements decodes the machine-readable payment terms a
// server attaches to a 402 Payment Required response and selects the
// one requirement the agent will satisfy.
//
// Terms may travel in the X-Payment-Required response header, in the
// "accepts" field of a JSON body, or as a bare JSON body.  Both a
// single requirement object and an array of requirement objects are
// accepted in every position.  Unknown fields are preserved untouched
// inside each requirement's extra data.
package requirements

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/coinbase/x402/go/pkg/types"

	"github.com/NobleSOL/silverback-agent-sub002/pkg/api"
)

// Header carries JSON-encoded payment requirements on a 402 response.
const Header = "X-Payment-Required"

// Parse extracts the payment requirements offered by a 402 response
// from its X-Payment-Required header value and/or its body.  The
// header, when present, wins.
func Parse(header string, body []byte) ([]types.PaymentRequirements, error) {
	if header != "" {
		return parseList([]byte(header))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty 402 response", ErrMalformed)
	}

	var required api.PaymentRequired
	if err := json.Unmarshal(body, &required); err == nil && len(required.Accepts) > 0 {
		return validate(required.Accepts)
	}

	return parseList(body)
}

// Select returns the single offered requirement whose network equals
// the configured network.  Guessing across networks is never allowed.
func Select(offered []types.PaymentRequirements, network string) (types.PaymentRequirements, error) {
	for _, req := range offered {
		if req.Network == network {
			return req, nil
		}
	}

	return types.PaymentRequirements{}, fmt.Errorf("%w: %s", ErrNoNetworkMatch, network)
}

func parseList(data []byte) ([]types.PaymentRequirements, error) {
	data = bytes.TrimSpace(data)

	var offered []types.PaymentRequirements

	switch {
	case bytes.HasPrefix(data, []byte("[")):
		if err := json.Unmarshal(data, &offered); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	case bytes.HasPrefix(data, []byte("{")):
		var single types.PaymentRequirements
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		offered = []types.PaymentRequirements{single}
	default:
		return nil, fmt.Errorf("%w: neither object nor array", ErrMalformed)
	}

	return validate(offered)
}

// validate rejects requirements missing a field the signing step can't
// proceed without.
func validate(offered []types.PaymentRequirements) ([]types.PaymentRequirements, error) {
	if len(offered) == 0 {
		return nil, fmt.Errorf("%w: no payment methods accepted", ErrMalformed)
	}

	for _, req := range offered {
		for field, value := range map[string]string{
			"scheme":            req.Scheme,
			"network":           req.Network,
			"payTo":             req.PayTo,
			"maxAmountRequired": req.MaxAmountRequired,
		} {
			if value == "" {
				return nil, fmt.Errorf("%w: missing %s", ErrMalformed, field)
			}
		}
	}

	return offered, nil
}
