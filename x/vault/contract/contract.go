package contract

import (
	"context"

	"cosmossdk.io/collections"
	"cosmossdk.io/log"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/btcq-org/qvault/common"
	"github.com/btcq-org/qvault/x/vault/types"
)

// Contract holds custody of cw20 tokens pushed to it with a deposit hook and
// releases them on withdraw. It keeps no record of who deposited what.
type Contract struct {
	api    common.API
	logger log.Logger

	// Collections
	Schema  collections.Schema
	Version collections.Item[common.ContractVersion]
}

var _ common.Contract = &Contract{}

func New(deps common.Deps) (*Contract, error) {
	sb := collections.NewSchemaBuilder(common.NewKVStoreService(deps.Storage))
	c := &Contract{
		api:     deps.API,
		logger:  deps.Logger.With("contract", types.ModuleName),
		Version: common.NewContractVersionItem(sb),
	}
	schema, err := sb.Build()
	if err != nil {
		return nil, err
	}
	c.Schema = schema
	return c, nil
}

// NewContract adapts New to common.NewContractFn.
func NewContract(deps common.Deps) (common.Contract, error) {
	return New(deps)
}

func (c *Contract) Instantiate(ctx context.Context, env wasmvmtypes.Env, info wasmvmtypes.MessageInfo, msg []byte) (*wasmvmtypes.Response, error) {
	if _, err := types.UnmarshalInstantiateMsg(msg); err != nil {
		return nil, err
	}
	if err := c.Version.Set(ctx, common.ContractVersion{
		Contract: types.ContractName,
		Version:  types.ContractVersion,
	}); err != nil {
		return nil, err
	}

	c.logger.Info("vault instantiated", "address", env.Contract.Address, "creator", info.Sender)
	return &wasmvmtypes.Response{
		Attributes: []wasmvmtypes.EventAttribute{
			{Key: "method", Value: types.MethodInstantiate},
		},
	}, nil
}

func (c *Contract) Execute(ctx context.Context, env wasmvmtypes.Env, info wasmvmtypes.MessageInfo, msg []byte) (*wasmvmtypes.Response, error) {
	m, err := types.UnmarshalExecuteMsg(msg)
	if err != nil {
		return nil, err
	}
	switch {
	case m.Withdraw != nil:
		return c.withdraw(info, *m.Withdraw)
	case m.Receive != nil:
		return c.deposit(info, *m.Receive)
	default:
		return nil, types.ErrInvalidRequest.Wrap("empty execute msg")
	}
}
