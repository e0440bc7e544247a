package contract

import (
	"context"
	"encoding/json"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/btcq-org/qvault/common"
	"github.com/btcq-org/qvault/x/cw20/types"
	"github.com/hashicorp/go-multierror"
)

// Contract is a minimal cw20-base token: balances, transfer and send.
type Contract struct {
	api    common.API
	logger log.Logger

	// Collections
	Schema    collections.Schema
	Version   collections.Item[common.ContractVersion]
	TokenInfo collections.Item[types.TokenInfoResponse]
	Balances  collections.Map[string, math.Uint]
}

var _ common.Contract = &Contract{}

func New(deps common.Deps) (*Contract, error) {
	sb := collections.NewSchemaBuilder(common.NewKVStoreService(deps.Storage))
	c := &Contract{
		api:       deps.API,
		logger:    deps.Logger.With("contract", types.ModuleName),
		Version:   common.NewContractVersionItem(sb),
		TokenInfo: collections.NewItem(sb, types.TokenInfoKey, "token_info", common.JSONValue[types.TokenInfoResponse]()),
		Balances:  collections.NewMap(sb, types.BalanceKeys, "balance", collections.StringKey, common.JSONValue[math.Uint]()),
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
	var m types.InstantiateMsg
	if err := common.UnmarshalObject(msg, &m); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("parse instantiate msg: %v", err)
	}
	if err := m.ValidateBasic(); err != nil {
		return nil, err
	}

	supply, err := c.createAccounts(ctx, m.InitialBalances)
	if err != nil {
		return nil, err
	}
	if err := c.TokenInfo.Set(ctx, types.TokenInfoResponse{
		Name:        m.Name,
		Symbol:      m.Symbol,
		Decimals:    m.Decimals,
		TotalSupply: supply,
	}); err != nil {
		return nil, err
	}
	if err := c.Version.Set(ctx, common.ContractVersion{Contract: types.ContractName, Version: types.ContractVersion}); err != nil {
		return nil, err
	}

	c.logger.Info("token instantiated", "address", env.Contract.Address, "symbol", m.Symbol, "total_supply", supply)
	return &wasmvmtypes.Response{}, nil
}

// createAccounts stores the initial balances and returns their sum. Every
// invalid entry is reported, not only the first one.
func (c *Contract) createAccounts(ctx context.Context, balances []types.Cw20Coin) (math.Uint, error) {
	var result error
	seen := make(map[string]struct{}, len(balances))
	for i, coin := range balances {
		addr, err := c.api.AddrValidate(coin.Address)
		if err != nil {
			result = multierror.Append(result, types.ErrInvalidAddress.Wrapf("initial_balances[%d]: %v", i, err))
			continue
		}
		if _, ok := seen[addr.String()]; ok {
			result = multierror.Append(result, types.ErrDuplicateAddress.Wrapf("initial_balances[%d]: %s", i, addr))
			continue
		}
		seen[addr.String()] = struct{}{}
	}
	if result != nil {
		return math.ZeroUint(), result
	}

	supply := math.ZeroUint()
	for _, coin := range balances {
		var err error
		supply, err = common.CheckedAddUint128(supply, coin.Amount)
		if err != nil {
			return math.ZeroUint(), types.ErrOverflow.Wrap(err.Error())
		}
		if err := c.Balances.Set(ctx, coin.Address, coin.Amount); err != nil {
			return math.ZeroUint(), err
		}
	}
	return supply, nil
}

func (c *Contract) Execute(ctx context.Context, env wasmvmtypes.Env, info wasmvmtypes.MessageInfo, msg []byte) (*wasmvmtypes.Response, error) {
	m, err := types.UnmarshalExecuteMsg(msg)
	if err != nil {
		return nil, err
	}
	switch {
	case m.Transfer != nil:
		return c.transfer(ctx, info, *m.Transfer)
	case m.Send != nil:
		return c.send(ctx, info, *m.Send)
	default:
		return nil, types.ErrInvalidRequest.Wrap("empty execute msg")
	}
}

func (c *Contract) Query(ctx context.Context, _ wasmvmtypes.Env, msg []byte) ([]byte, error) {
	m, err := types.UnmarshalQueryMsg(msg)
	if err != nil {
		return nil, err
	}
	switch {
	case m.Balance != nil:
		addr, err := c.api.AddrValidate(m.Balance.Address)
		if err != nil {
			return nil, types.ErrInvalidAddress.Wrap(err.Error())
		}
		balance, err := c.balanceOf(ctx, addr.String())
		if err != nil {
			return nil, err
		}
		return json.Marshal(types.BalanceResponse{Balance: balance})
	case m.TokenInfo != nil:
		info, err := c.TokenInfo.Get(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(info)
	default:
		return nil, types.ErrInvalidRequest.Wrap("empty query msg")
	}
}

func (c *Contract) balanceOf(ctx context.Context, addr string) (math.Uint, error) {
	balance, err := c.Balances.Get(ctx, addr)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroUint(), nil
	}
	return balance, err
}
