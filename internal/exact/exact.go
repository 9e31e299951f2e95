// Package exact holds the shared pieces of the x402 "exact" payment
// scheme: the scheme identifier, the chain id for each supported
// network and the EIP-712 domain parameters of the settlement tokens
// known to this agent.
package exact

import "github.com/ethereum/go-ethereum/common/math"

const Scheme = "exact"

// ChainID maps an x402 network name to its EVM chain id.
var ChainID = map[string]*math.HexOrDecimal256{
	"base":           math.NewHexOrDecimal256(8453),
	"base-sepolia":   math.NewHexOrDecimal256(84532),
	"avalanche":      math.NewHexOrDecimal256(43114),
	"avalanche-fuji": math.NewHexOrDecimal256(43113),
}

// Token describes an ERC-20 settlement token as required for the
// EIP-712 domain of a TransferWithAuthorization signature.  Name must
// be exactly what the contract's name() returns.
type Token struct {
	Address  string
	Name     string
	Version  string
	Decimals int
}

// KnownTokens lists the USDC deployment per network.  Used as a
// fallback when a payment requirement omits the domain parameters in
// its extra field.
var KnownTokens = map[string]Token{
	"base": {
		Address:  "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		Name:     "USD Coin",
		Version:  "2",
		Decimals: 6,
	},
	"base-sepolia": {
		Address:  "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
		Name:     "USDC",
		Version:  "2",
		Decimals: 6,
	},
	"avalanche": {
		Address:  "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E",
		Name:     "USDC",
		Version:  "2",
		Decimals: 6,
	},
	"avalanche-fuji": {
		Address:  "0x5425890298aed601595a70AB815c96711a31Bc65",
		Name:     "USD Coin",
		Version:  "2",
		Decimals: 6,
	},
}

// Domain returns the EIP-712 domain name and version for the asset on
// the given network.
func Domain(network, asset string) (name, version string, ok bool) {
	token, ok := KnownTokens[network]
	if !ok || token.Address != asset {
		return "", "", false
	}

	return token.Name, token.Version, true
}
