package contract

import (
	"context"

	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/btcq-org/qvault/x/vault/types"
)

// Query answers every request with ErrUnsupportedQuery: QueryMsg has no
// variants, so nothing a client sends can name a supported query.
func (c *Contract) Query(_ context.Context, _ wasmvmtypes.Env, msg []byte) ([]byte, error) {
	return nil, types.ErrUnsupportedQuery.Wrapf("vault defines no queries, got %q", truncate(msg, 64))
}

func truncate(bz []byte, n int) string {
	if len(bz) <= n {
		return string(bz)
	}
	return string(bz[:n]) + "..."
}
