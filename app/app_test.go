package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/btcq-org/qvault/common"
	cw20types "github.com/btcq-org/qvault/x/cw20/types"
	vaulttestutil "github.com/btcq-org/qvault/x/vault/testutil"
	vaulttypes "github.com/btcq-org/qvault/x/vault/types"
	dbm "github.com/cosmos/cosmos-db"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBlockTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	ctx   context.Context
	db    dbm.DB
	alice string
	bob   string
	token string
	vault string
}

func newTestApp(t *testing.T, db dbm.DB, opts ...Option) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ChainID = vaulttestutil.TestChainID
	opts = append([]Option{WithClock(func() time.Time { return testBlockTime })}, opts...)
	a, err := New(db, log.NewNopLogger(), cfg, opts...)
	require.NoError(t, err)
	return a
}

// setupTestApp instantiates a token holding 1000 for alice and an empty vault.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	db := dbm.NewMemDB()
	ta := &testApp{
		App:   newTestApp(t, db),
		ctx:   context.Background(),
		db:    db,
		alice: vaulttestutil.GetAddress("alice"),
		bob:   vaulttestutil.GetAddress("bob"),
	}

	tokenInit := cw20types.InstantiateMsg{
		Name:            "Wrapped Bitcoin",
		Symbol:          "WBTC",
		Decimals:        8,
		InitialBalances: []cw20types.Cw20Coin{{Address: ta.alice, Amount: math.NewUint(1000)}},
	}
	bz, err := tokenInit.Marshal()
	require.NoError(t, err)
	ta.token, _, err = ta.Instantiate(ta.ctx, ta.alice, CodeIDCw20, bz, "wbtc")
	require.NoError(t, err)

	ta.vault, _, err = ta.Instantiate(ta.ctx, ta.alice, CodeIDVault, []byte(`{}`), "vault")
	require.NoError(t, err)
	return ta
}

func (ta *testApp) balance(t *testing.T, addr string) math.Uint {
	t.Helper()
	q := cw20types.QueryMsg{Balance: &cw20types.BalanceQuery{Address: addr}}
	bz, err := q.Marshal()
	require.NoError(t, err)
	out, err := ta.QuerySmart(ta.ctx, ta.token, bz)
	require.NoError(t, err)
	var resp cw20types.BalanceResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	return resp.Balance
}

func (ta *testApp) deposit(t *testing.T, sender string, amount math.Uint, hook []byte) (*Result, error) {
	t.Helper()
	msg := cw20types.ExecuteMsg{Send: &cw20types.SendMsg{Contract: ta.vault, Amount: amount, Msg: hook}}
	bz, err := msg.Marshal()
	require.NoError(t, err)
	return ta.Execute(ta.ctx, sender, ta.token, bz)
}

func (ta *testApp) withdraw(t *testing.T, sender string, amount math.Uint) (*Result, error) {
	t.Helper()
	msg := vaulttypes.ExecuteMsg{Withdraw: &vaulttypes.WithdrawMsg{Cw20Address: ta.token, Amount: amount}}
	bz, err := msg.Marshal()
	require.NoError(t, err)
	return ta.Execute(ta.ctx, sender, ta.vault, bz)
}

func hook(t *testing.T, token string, amount math.Uint) []byte {
	t.Helper()
	bz, err := vaulttypes.NewDepositHook(token, amount)
	require.NoError(t, err)
	return bz
}

func attribute(e wasmvmtypes.Event, key string) string {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

func TestInstantiate(t *testing.T) {
	ta := setupTestApp(t)
	require.NotEqual(t, ta.token, ta.vault)

	info, err := ta.ContractInfo(ta.ctx, ta.vault)
	require.NoError(t, err)
	require.Equal(t, CodeIDVault, info.CodeID)
	require.Equal(t, ta.alice, info.Creator)
	require.Equal(t, "vault", info.Label)
	require.Equal(t, uint64(2), info.Created.BlockHeight)

	height, err := ta.LastHeight(ta.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), height)

	_, res, err := ta.Instantiate(ta.ctx, ta.bob, CodeIDVault, []byte(`{}`), "second vault")
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	require.Equal(t, wasmtypes.WasmModuleEventType, res.Events[0].Type)
	require.Equal(t, vaulttypes.MethodInstantiate, attribute(res.Events[0], "method"))
}

func TestInstantiateFailures(t *testing.T) {
	testCases := []struct {
		name      string
		sender    string
		codeID    uint64
		msg       string
		expectErr error
	}{
		{
			name:      "unknown code",
			sender:    vaulttestutil.GetAddress("alice"),
			codeID:    99,
			msg:       `{}`,
			expectErr: wasmtypes.ErrNotFound,
		},
		{
			name:      "contract rejects message",
			sender:    vaulttestutil.GetAddress("alice"),
			codeID:    CodeIDVault,
			msg:       `["owner","alice"]`,
			expectErr: vaulttypes.ErrInvalidRequest,
		},
		{
			name:      "invalid sender",
			sender:    "alice",
			codeID:    CodeIDVault,
			msg:       `{}`,
			expectErr: sdkerrors.ErrInvalidAddress,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ta := setupTestApp(t)
			_, _, err := ta.Instantiate(ta.ctx, tc.sender, tc.codeID, []byte(tc.msg), "label")
			require.ErrorIs(t, err, tc.expectErr)

			height, err := ta.LastHeight(ta.ctx)
			require.NoError(t, err)
			require.Equal(t, uint64(2), height)
		})
	}
}

func TestDepositThenWithdraw(t *testing.T) {
	ta := setupTestApp(t)

	res, err := ta.deposit(t, ta.alice, math.NewUint(250), hook(t, ta.token, math.NewUint(250)))
	require.NoError(t, err)
	require.True(t, ta.balance(t, ta.alice).Equal(math.NewUint(750)))
	require.True(t, ta.balance(t, ta.vault).Equal(math.NewUint(250)))

	// token send event first, then the vault receive hook
	require.Len(t, res.Events, 2)
	assert.Equal(t, ta.token, attribute(res.Events[0], wasmtypes.AttributeKeyContractAddr))
	assert.Equal(t, "send", attribute(res.Events[0], "action"))
	assert.Equal(t, ta.vault, attribute(res.Events[1], wasmtypes.AttributeKeyContractAddr))

	res, err = ta.withdraw(t, ta.alice, math.NewUint(100))
	require.NoError(t, err)
	require.True(t, ta.balance(t, ta.alice).Equal(math.NewUint(850)))
	require.True(t, ta.balance(t, ta.vault).Equal(math.NewUint(150)))

	require.Len(t, res.Events, 2)
	assert.Equal(t, ta.vault, attribute(res.Events[0], wasmtypes.AttributeKeyContractAddr))
	assert.Equal(t, ta.token, attribute(res.Events[1], wasmtypes.AttributeKeyContractAddr))
	assert.Equal(t, "transfer", attribute(res.Events[1], "action"))
	assert.Equal(t, ta.vault, attribute(res.Events[1], "from"))
	assert.Equal(t, ta.alice, attribute(res.Events[1], "to"))
}

func TestWithdrawIsNotCheckedAgainstDeposits(t *testing.T) {
	ta := setupTestApp(t)

	_, err := ta.deposit(t, ta.alice, math.NewUint(300), hook(t, ta.token, math.NewUint(300)))
	require.NoError(t, err)

	// bob never deposited but the vault holds enough
	_, err = ta.withdraw(t, ta.bob, math.NewUint(200))
	require.NoError(t, err)
	require.True(t, ta.balance(t, ta.bob).Equal(math.NewUint(200)))
	require.True(t, ta.balance(t, ta.vault).Equal(math.NewUint(100)))
}

func TestWithdrawAboveCustodyRollsBack(t *testing.T) {
	ta := setupTestApp(t)
	_, err := ta.deposit(t, ta.alice, math.NewUint(10), hook(t, ta.token, math.NewUint(10)))
	require.NoError(t, err)
	heightBefore, err := ta.LastHeight(ta.ctx)
	require.NoError(t, err)

	res, err := ta.withdraw(t, ta.alice, math.NewUint(11))
	require.ErrorIs(t, err, cw20types.ErrInsufficientFunds)
	require.Nil(t, res)

	require.True(t, ta.balance(t, ta.alice).Equal(math.NewUint(990)))
	require.True(t, ta.balance(t, ta.vault).Equal(math.NewUint(10)))
	height, err := ta.LastHeight(ta.ctx)
	require.NoError(t, err)
	require.Equal(t, heightBefore, height)
}

func TestDepositMismatchRollsBack(t *testing.T) {
	testCases := []struct {
		name      string
		hook      func(t *testing.T, ta *testApp) []byte
		expectErr error
	}{
		{
			name:      "hook amount differs",
			hook:      func(t *testing.T, ta *testApp) []byte { return hook(t, ta.token, math.NewUint(300)) },
			expectErr: vaulttypes.ErrAmountMismatch,
		},
		{
			name:      "hook names another token",
			hook:      func(t *testing.T, ta *testApp) []byte { return hook(t, ta.bob, math.NewUint(250)) },
			expectErr: vaulttypes.ErrAddressMismatch,
		},
		{
			name:      "hook is not a deposit",
			hook:      func(t *testing.T, ta *testApp) []byte { return []byte(`{"stake":{}}`) },
			expectErr: vaulttypes.ErrUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ta := setupTestApp(t)
			_, err := ta.deposit(t, ta.alice, math.NewUint(250), tc.hook(t, ta))
			require.ErrorIs(t, err, tc.expectErr)

			require.True(t, ta.balance(t, ta.alice).Equal(math.NewUint(1000)))
			require.True(t, ta.balance(t, ta.vault).IsZero())
			assert.Equal(t, float64(1), testutil.ToFloat64(ta.Metrics().Counter(MetricNameFailedTxs)))
		})
	}
}

func TestForgedNotificationIsRejected(t *testing.T) {
	ta := setupTestApp(t)
	msg := vaulttypes.ExecuteMsg{Receive: &cw20types.Cw20ReceiveMsg{
		Sender: ta.alice,
		Amount: math.NewUint(500),
		Msg:    hook(t, ta.token, math.NewUint(500)),
	}}
	bz, err := msg.Marshal()
	require.NoError(t, err)

	_, err = ta.Execute(ta.ctx, ta.alice, ta.vault, bz)
	require.ErrorIs(t, err, vaulttypes.ErrAddressMismatch)
}

func TestExecuteUnknownContract(t *testing.T) {
	ta := setupTestApp(t)
	_, err := ta.Execute(ta.ctx, ta.alice, ta.bob, []byte(`{}`))
	require.ErrorIs(t, err, wasmtypes.ErrNotFound)
}

func TestQuerySmart(t *testing.T) {
	ta := setupTestApp(t)

	_, err := ta.QuerySmart(ta.ctx, ta.vault, []byte(`{}`))
	require.ErrorIs(t, err, vaulttypes.ErrUnsupportedQuery)

	_, err = ta.QuerySmart(ta.ctx, ta.bob, []byte(`{}`))
	require.ErrorIs(t, err, wasmtypes.ErrNotFound)

	out, err := ta.QuerySmart(ta.ctx, ta.token, []byte(`{"token_info":{}}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Wrapped Bitcoin","symbol":"WBTC","decimals":8,"total_supply":"1000"}`, string(out))
}

func TestMetrics(t *testing.T) {
	ta := setupTestApp(t)
	m := ta.Metrics()
	require.Equal(t, float64(2), testutil.ToFloat64(m.Counter(MetricNameInstantiations)))

	_, err := ta.deposit(t, ta.alice, math.NewUint(5), hook(t, ta.token, math.NewUint(5)))
	require.NoError(t, err)
	_, err = ta.withdraw(t, ta.alice, math.NewUint(5))
	require.NoError(t, err)

	require.Equal(t, float64(4), testutil.ToFloat64(m.Counter(MetricNameExecutions)))
	require.Equal(t, float64(2), testutil.ToFloat64(m.Counter(MetricNameSubMessages)))
	require.Equal(t, float64(0), testutil.ToFloat64(m.Counter(MetricNameFailedTxs)))

	m.IncrCounter(MetricName("unknown"))
	require.Nil(t, m.Counter(MetricName("unknown")))
}

func TestStateSurvivesReopen(t *testing.T) {
	ta := setupTestApp(t)
	_, err := ta.deposit(t, ta.alice, math.NewUint(40), hook(t, ta.token, math.NewUint(40)))
	require.NoError(t, err)

	reopened := &testApp{App: newTestApp(t, ta.db), ctx: ta.ctx, token: ta.token}
	require.True(t, reopened.balance(t, ta.vault).Equal(math.NewUint(40)))
	height, err := reopened.LastHeight(ta.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(3), height)
}

// stubContract answers every execute with a fixed response built from env.
type stubContract struct {
	respond func(env wasmvmtypes.Env) *wasmvmtypes.Response
}

func (s stubContract) Instantiate(context.Context, wasmvmtypes.Env, wasmvmtypes.MessageInfo, []byte) (*wasmvmtypes.Response, error) {
	return &wasmvmtypes.Response{}, nil
}

func (s stubContract) Execute(_ context.Context, env wasmvmtypes.Env, _ wasmvmtypes.MessageInfo, _ []byte) (*wasmvmtypes.Response, error) {
	return s.respond(env), nil
}

func (s stubContract) Query(context.Context, wasmvmtypes.Env, []byte) ([]byte, error) {
	return nil, nil
}

func TestDispatchRejectsUnsupportedSubMessages(t *testing.T) {
	selfCall := func(env wasmvmtypes.Env) wasmvmtypes.CosmosMsg {
		return wasmvmtypes.CosmosMsg{Wasm: &wasmvmtypes.WasmMsg{Execute: &wasmvmtypes.ExecuteMsg{
			ContractAddr: env.Contract.Address,
			Msg:          []byte(`{}`),
		}}}
	}

	testCases := []struct {
		name      string
		respond   func(env wasmvmtypes.Env) *wasmvmtypes.Response
		expectErr error
	}{
		{
			name: "bank message",
			respond: func(env wasmvmtypes.Env) *wasmvmtypes.Response {
				return &wasmvmtypes.Response{Messages: []wasmvmtypes.SubMsg{{
					Msg:     wasmvmtypes.CosmosMsg{Bank: &wasmvmtypes.BankMsg{Send: &wasmvmtypes.SendMsg{ToAddress: env.Contract.Address}}},
					ReplyOn: wasmvmtypes.ReplyNever,
				}}}
			},
			expectErr: wasmtypes.ErrUnknownMsg,
		},
		{
			name: "reply requested",
			respond: func(env wasmvmtypes.Env) *wasmvmtypes.Response {
				return &wasmvmtypes.Response{Messages: []wasmvmtypes.SubMsg{{Msg: selfCall(env), ReplyOn: wasmvmtypes.ReplyAlways}}}
			},
			expectErr: wasmtypes.ErrInvalidMsg,
		},
		{
			name: "native funds attached",
			respond: func(env wasmvmtypes.Env) *wasmvmtypes.Response {
				msg := selfCall(env)
				msg.Wasm.Execute.Funds = wasmvmtypes.Array[wasmvmtypes.Coin]{{Denom: "sat", Amount: "1"}}
				return &wasmvmtypes.Response{Messages: []wasmvmtypes.SubMsg{{Msg: msg, ReplyOn: wasmvmtypes.ReplyNever}}}
			},
			expectErr: wasmtypes.ErrInvalidMsg,
		},
		{
			name: "unbounded recursion",
			respond: func(env wasmvmtypes.Env) *wasmvmtypes.Response {
				return &wasmvmtypes.Response{Messages: []wasmvmtypes.SubMsg{{Msg: selfCall(env), ReplyOn: wasmvmtypes.ReplyNever}}}
			},
			expectErr: wasmtypes.ErrExecuteFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			codes := map[uint64]Code{1: {ID: 1, Name: "stub", New: func(common.Deps) (common.Contract, error) {
				return stubContract{respond: tc.respond}, nil
			}}}
			a := newTestApp(t, dbm.NewMemDB(), WithCodes(codes))
			ctx := context.Background()
			sender := vaulttestutil.GetAddress("alice")

			stub, _, err := a.Instantiate(ctx, sender, 1, []byte(`{}`), "stub")
			require.NoError(t, err)

			_, err = a.Execute(ctx, sender, stub, []byte(`{}`))
			require.ErrorIs(t, err, tc.expectErr)
		})
	}
}
