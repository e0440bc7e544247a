package types

import "cosmossdk.io/collections"

const (
	// ModuleName is also the error codespace of the token contract.
	ModuleName = "cw20"

	ContractName    = "crates.io:cw20-base"
	ContractVersion = "1.1.2"
)

var (
	// TokenInfoKey holds the token metadata and total supply.
	TokenInfoKey = collections.NewPrefix("token_info")
	// BalanceKeys is the prefix of the per-account balance map.
	BalanceKeys = collections.NewPrefix("balance")
)
