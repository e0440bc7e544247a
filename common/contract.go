package common

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
)

// Deps is what the host lends a contract for the duration of one call.
// Storage is already scoped to the contract's own namespace.
type Deps struct {
	Storage storetypes.KVStore
	API     API
	Logger  log.Logger
}

// Contract is the set of entry points a host invokes. Messages arrive as the
// raw JSON the caller supplied; decoding is the contract's job.
type Contract interface {
	Instantiate(ctx context.Context, env wasmvmtypes.Env, info wasmvmtypes.MessageInfo, msg []byte) (*wasmvmtypes.Response, error)
	Execute(ctx context.Context, env wasmvmtypes.Env, info wasmvmtypes.MessageInfo, msg []byte) (*wasmvmtypes.Response, error)
	Query(ctx context.Context, env wasmvmtypes.Env, msg []byte) ([]byte, error)
}

// NewContractFn builds a contract instance bound to deps.
type NewContractFn func(deps Deps) (Contract, error)
