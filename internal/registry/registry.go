// Package registry holds the fixed table of well-known networks and their
// default RPC endpoints.
package registry

import "strings"

// Chain maps a short network name to its default endpoint.
type Chain struct {
	Name        string `json:"name"`
	Endpoint    string `json:"endpoint"`
	Description string `json:"description"`
}

var chains = []Chain{
	{Name: "polkadot", Endpoint: "wss://rpc.polkadot.io", Description: "Polkadot relay chain mainnet"},
	{Name: "kusama", Endpoint: "wss://kusama-rpc.polkadot.io", Description: "Kusama canary network"},
	{Name: "westend", Endpoint: "wss://westend-rpc.polkadot.io", Description: "Westend testnet"},
	{Name: "paseo", Endpoint: "wss://paseo.rpc.amforc.com", Description: "Paseo community testnet"},
	{Name: "local", Endpoint: "ws://127.0.0.1:9944", Description: "Local development node"},
}

// Chains returns the ordered list of well-known networks. The slice is a
// copy; the underlying table is never mutated at runtime.
func Chains() []Chain {
	out := make([]Chain, len(chains))
	copy(out, chains)
	return out
}

// Lookup returns the chain with the given short name, matched
// case-insensitively.
func Lookup(name string) (Chain, bool) {
	for _, c := range chains {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Chain{}, false
}

// ResolveEndpoint maps a chain short name to its default endpoint, or
// returns the input unchanged when it is not a known name (callers may pass
// a raw endpoint URI directly).
func ResolveEndpoint(nameOrEndpoint string) string {
	if c, ok := Lookup(nameOrEndpoint); ok {
		return c.Endpoint
	}
	return nameOrEndpoint
}
