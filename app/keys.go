package app

import (
	"cosmossdk.io/collections"
	"github.com/btcq-org/qvault/common"
	cw20contract "github.com/btcq-org/qvault/x/cw20/contract"
	cw20types "github.com/btcq-org/qvault/x/cw20/types"
	vaultcontract "github.com/btcq-org/qvault/x/vault/contract"
	vaulttypes "github.com/btcq-org/qvault/x/vault/types"
)

var (
	ContractKeys   = collections.NewPrefix(1)
	InstanceSeqKey = collections.NewPrefix(2)
	HeightKey      = collections.NewPrefix(3)

	// ContractStorePrefix namespaces contract owned state. It is followed by
	// the length prefixed canonical contract address.
	ContractStorePrefix = []byte{0x10}
)

const (
	CodeIDCw20  uint64 = 1
	CodeIDVault uint64 = 2

	// maxCallDepth bounds nested submessage dispatch.
	maxCallDepth = 10
)

// Code is a contract implementation the host can instantiate.
type Code struct {
	ID      uint64               `json:"code_id"`
	Name    string               `json:"name"`
	Version string               `json:"version"`
	New     common.NewContractFn `json:"-"`
}

// DefaultCodes returns the codes every host ships with.
func DefaultCodes() map[uint64]Code {
	return map[uint64]Code{
		CodeIDCw20: {
			ID:      CodeIDCw20,
			Name:    cw20types.ContractName,
			Version: cw20types.ContractVersion,
			New:     cw20contract.NewContract,
		},
		CodeIDVault: {
			ID:      CodeIDVault,
			Name:    vaulttypes.ContractName,
			Version: vaulttypes.ContractVersion,
			New:     vaultcontract.NewContract,
		},
	}
}
