package common

import "cosmossdk.io/collections"

// ContractInfoKey is the raw storage key of the contract version record,
// shared by every contract so tooling can read it without knowing the code.
var ContractInfoKey = collections.NewPrefix("contract_info")

// ContractVersion identifies the code a contract instance was created from.
type ContractVersion struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

// NewContractVersionItem registers the contract version record on sb.
func NewContractVersionItem(sb *collections.SchemaBuilder) collections.Item[ContractVersion] {
	return collections.NewItem(sb, ContractInfoKey, "contract_info", JSONValue[ContractVersion]())
}
