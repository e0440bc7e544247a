package testutil

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store/dbadapter"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/btcq-org/qvault/common"
	dbm "github.com/cosmos/cosmos-db"
)

const TestChainID = "qbtc-test"

// GetAddress derives the test account address for name.
func GetAddress(name string) string {
	addr, err := common.DeriveAddress(common.AccountAddressPrefix, name)
	if err != nil {
		panic(err)
	}
	return addr.String()
}

// MockDeps returns deps backed by an in-memory store and the bech32 API.
func MockDeps() common.Deps {
	return common.Deps{
		Storage: &dbadapter.Store{DB: dbm.NewMemDB()},
		API:     common.NewBech32API(common.AccountAddressPrefix),
		Logger:  log.NewNopLogger(),
	}
}

// MockEnv returns a block environment for contract.
func MockEnv(contract string) wasmvmtypes.Env {
	return wasmvmtypes.Env{
		Block: wasmvmtypes.BlockInfo{
			Height:  12345,
			Time:    wasmvmtypes.Uint64(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano()),
			ChainID: TestChainID,
		},
		Contract: wasmvmtypes.ContractInfo{Address: contract},
	}
}

// MockInfo returns call info for sender without attached funds.
func MockInfo(sender string) wasmvmtypes.MessageInfo {
	return wasmvmtypes.MessageInfo{Sender: sender}
}
