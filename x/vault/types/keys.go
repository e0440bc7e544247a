package types

const (
	// ModuleName is also the error codespace of the vault contract.
	ModuleName = "vault"

	ContractName    = "crates.io:cw20-vault"
	ContractVersion = "0.1.0"

	// MethodInstantiate is the value of the method attribute emitted on instantiation.
	MethodInstantiate = "instantiate"
)
