package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/dbadapter"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/btcq-org/qvault/common"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// App runs contracts in process. Transactions are serialized and each one is
// applied to the store all or nothing.
type App struct {
	mu sync.Mutex

	chainID string
	db      dbm.DB
	root    storetypes.KVStore
	api     common.API
	logger  log.Logger
	metrics *Metrics
	codes   map[uint64]Code
	now     func() time.Time

	// Collections
	Schema      collections.Schema
	Contracts   collections.Map[string, wasmtypes.ContractInfo]
	InstanceSeq collections.Sequence
	Height      collections.Sequence
}

type Option func(*App)

// WithClock sets the source of block times.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithCodes replaces the default code registry.
func WithCodes(codes map[uint64]Code) Option {
	return func(a *App) { a.codes = codes }
}

func New(db dbm.DB, logger log.Logger, cfg Config, opts ...Option) (*App, error) {
	root := &dbadapter.Store{DB: db}
	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	sb := collections.NewSchemaBuilder(common.NewBranchingKVStoreService(root))

	a := &App{
		chainID:     cfg.ChainID,
		db:          db,
		root:        root,
		api:         common.NewBech32API(common.AccountAddressPrefix),
		logger:      logger.With("module", "host"),
		metrics:     NewMetrics(),
		codes:       DefaultCodes(),
		now:         time.Now,
		Contracts:   collections.NewMap(sb, ContractKeys, "contracts", collections.StringKey, codec.CollValue[wasmtypes.ContractInfo](cdc)),
		InstanceSeq: collections.NewSequence(sb, InstanceSeqKey, "instance_seq"),
		Height:      collections.NewSequence(sb, HeightKey, "height"),
	}
	schema, err := sb.Build()
	if err != nil {
		return nil, err
	}
	a.Schema = schema

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *App) Metrics() *Metrics {
	return a.metrics
}

func (a *App) Close() error {
	return a.db.Close()
}

// Codes lists the registered codes by id.
func (a *App) Codes() []Code {
	codes := make([]Code, 0, len(a.codes))
	for _, code := range a.codes {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].ID < codes[j].ID })
	return codes
}

// LastHeight is the height of the last committed transaction.
func (a *App) LastHeight(ctx context.Context) (uint64, error) {
	return a.Height.Peek(ctx)
}

func (a *App) ContractInfo(ctx context.Context, contract string) (wasmtypes.ContractInfo, error) {
	info, err := a.Contracts.Get(ctx, contract)
	if errors.Is(err, collections.ErrNotFound) {
		return info, wasmtypes.ErrNotFound.Wrapf("contract %s", contract)
	}
	return info, err
}

// Result is the outcome of a committed transaction.
type Result struct {
	Data   []byte              `json:"data,omitempty"`
	Events []wasmvmtypes.Event `json:"events"`
}

// Instantiate creates a contract from codeID and runs its instantiate entry
// point, returning the new contract address.
func (a *App) Instantiate(ctx context.Context, sender string, codeID uint64, msg []byte, label string) (string, *Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var contract string
	res, err := a.transact(ctx, func(ctx context.Context, tx *txContext) (*Result, error) {
		code, ok := a.codes[codeID]
		if !ok {
			return nil, wasmtypes.ErrNotFound.Wrapf("code %d", codeID)
		}
		if _, err := a.api.AddrValidate(sender); err != nil {
			return nil, errorsmod.Wrap(err, "sender")
		}

		instanceID, err := a.InstanceSeq.Next(ctx)
		if err != nil {
			return nil, err
		}
		canonical := wasmkeeper.BuildContractAddressClassic(codeID, instanceID+1)
		addr, err := a.api.AddrHumanize(canonical)
		if err != nil {
			return nil, err
		}
		contract = addr.String()

		info := wasmtypes.ContractInfo{
			CodeID:  codeID,
			Creator: sender,
			Label:   label,
			Created: &wasmtypes.AbsoluteTxPosition{BlockHeight: tx.height},
		}
		if err := a.Contracts.Set(ctx, contract, info); err != nil {
			return nil, err
		}

		instance, err := a.load(tx, code, canonical)
		if err != nil {
			return nil, err
		}
		resp, err := instance.Instantiate(ctx, a.env(tx.height, contract), wasmvmtypes.MessageInfo{Sender: sender}, msg)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "instantiate %s", contract)
		}
		a.metrics.IncrCounter(MetricNameInstantiations)

		res := &Result{Data: resp.Data, Events: contractEvents(contract, resp)}
		events, err := a.dispatch(ctx, tx, contract, resp.Messages, 1)
		if err != nil {
			return nil, err
		}
		res.Events = append(res.Events, events...)
		return res, nil
	})
	if err != nil {
		return "", nil, err
	}

	a.logger.Info("contract instantiated", "code_id", codeID, "contract", contract, "label", label)
	return contract, res, nil
}

// Execute runs contract's execute entry point as sender and every submessage
// it emits. Nothing is written unless all of them succeed.
func (a *App) Execute(ctx context.Context, sender, contract string, msg []byte) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.transact(ctx, func(ctx context.Context, tx *txContext) (*Result, error) {
		if _, err := a.api.AddrValidate(sender); err != nil {
			return nil, errorsmod.Wrap(err, "sender")
		}
		return a.execute(ctx, tx, sender, contract, msg, 0)
	})
}

// QuerySmart runs a read only query against contract. Any write the query
// attempts is discarded.
func (a *App) QuerySmart(ctx context.Context, contract string, msg []byte) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cache := cachekv.NewStore(a.root)
	ctx = common.WithKVStore(ctx, cache)
	height, err := a.Height.Peek(ctx)
	if err != nil {
		return nil, err
	}
	info, err := a.ContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	instance, err := a.instance(&txContext{cache: cache, height: height}, contract, info)
	if err != nil {
		return nil, err
	}

	a.metrics.IncrCounter(MetricNameQueries)
	bz, err := instance.Query(ctx, a.env(height, contract), msg)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "query %s", contract)
	}
	return bz, nil
}

type txContext struct {
	cache  storetypes.CacheKVStore
	height uint64
}

// transact runs fn against a fresh cache branch and writes the branch only
// when fn succeeds. The block height advances with every committed
// transaction.
func (a *App) transact(ctx context.Context, fn func(context.Context, *txContext) (*Result, error)) (*Result, error) {
	tx := &txContext{cache: cachekv.NewStore(a.root)}
	ctx = common.WithKVStore(ctx, tx.cache)

	last, err := a.Height.Next(ctx)
	if err != nil {
		return nil, err
	}
	tx.height = last + 1

	res, err := fn(ctx, tx)
	if err != nil {
		a.metrics.IncrCounter(MetricNameFailedTxs)
		a.logger.Debug("transaction rolled back", "height", tx.height, "error", err)
		return nil, err
	}
	tx.cache.Write()
	return res, nil
}

func (a *App) execute(ctx context.Context, tx *txContext, sender, contract string, msg []byte, depth int) (*Result, error) {
	if depth > maxCallDepth {
		return nil, wasmtypes.ErrExecuteFailed.Wrapf("max call depth %d exceeded", maxCallDepth)
	}
	info, err := a.ContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	instance, err := a.instance(tx, contract, info)
	if err != nil {
		return nil, err
	}
	resp, err := instance.Execute(ctx, a.env(tx.height, contract), wasmvmtypes.MessageInfo{Sender: sender}, msg)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "execute %s", contract)
	}
	a.metrics.IncrCounter(MetricNameExecutions)

	res := &Result{Data: resp.Data, Events: contractEvents(contract, resp)}
	events, err := a.dispatch(ctx, tx, contract, resp.Messages, depth+1)
	if err != nil {
		return nil, err
	}
	res.Events = append(res.Events, events...)
	return res, nil
}

// dispatch executes msgs in order with emitter as the sender. Each
// submessage finishes, including its own submessages, before the next one
// starts.
func (a *App) dispatch(ctx context.Context, tx *txContext, emitter string, msgs []wasmvmtypes.SubMsg, depth int) ([]wasmvmtypes.Event, error) {
	var events []wasmvmtypes.Event
	for i, sub := range msgs {
		if sub.ReplyOn != wasmvmtypes.ReplyNever {
			return nil, wasmtypes.ErrInvalidMsg.Wrapf("submessage %d: replies are not supported", i)
		}
		if sub.Msg.Wasm == nil || sub.Msg.Wasm.Execute == nil {
			return nil, wasmtypes.ErrUnknownMsg.Wrapf("submessage %d: only wasm execute is supported", i)
		}
		exec := sub.Msg.Wasm.Execute
		if len(exec.Funds) > 0 {
			return nil, wasmtypes.ErrInvalidMsg.Wrapf("submessage %d: native funds are not supported", i)
		}

		a.metrics.IncrCounter(MetricNameSubMessages)
		res, err := a.execute(ctx, tx, emitter, exec.ContractAddr, exec.Msg, depth)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "submessage %d from %s", i, emitter)
		}
		events = append(events, res.Events...)
	}
	return events, nil
}

// instance loads the registered contract at contract.
func (a *App) instance(tx *txContext, contract string, info wasmtypes.ContractInfo) (common.Contract, error) {
	code, ok := a.codes[info.CodeID]
	if !ok {
		return nil, wasmtypes.ErrNotFound.Wrapf("code %d", info.CodeID)
	}
	canonical, err := a.api.AddrCanonicalize(contract)
	if err != nil {
		return nil, err
	}
	return a.load(tx, code, canonical)
}

// load builds code bound to the namespace of the contract at canonical.
func (a *App) load(tx *txContext, code Code, canonical []byte) (common.Contract, error) {
	key := append(append([]byte{}, ContractStorePrefix...), address.MustLengthPrefix(canonical)...)
	return code.New(common.Deps{
		Storage: prefix.NewStore(tx.cache, key),
		API:     a.api,
		Logger:  a.logger,
	})
}

func (a *App) env(height uint64, contract string) wasmvmtypes.Env {
	return wasmvmtypes.Env{
		Block: wasmvmtypes.BlockInfo{
			Height:  height,
			Time:    wasmvmtypes.Uint64(a.now().UnixNano()),
			ChainID: a.chainID,
		},
		Contract: wasmvmtypes.ContractInfo{Address: contract},
	}
}

// contractEvents turns a response into a wasm event carrying the contract
// attributes plus one wasm-<type> event per custom event.
func contractEvents(contract string, resp *wasmvmtypes.Response) []wasmvmtypes.Event {
	addr := wasmvmtypes.EventAttribute{Key: wasmtypes.AttributeKeyContractAddr, Value: contract}

	events := []wasmvmtypes.Event{{
		Type:       wasmtypes.WasmModuleEventType,
		Attributes: append([]wasmvmtypes.EventAttribute{addr}, resp.Attributes...),
	}}
	for _, e := range resp.Events {
		events = append(events, wasmvmtypes.Event{
			Type:       wasmtypes.CustomContractEventPrefix + e.Type,
			Attributes: append([]wasmvmtypes.EventAttribute{addr}, e.Attributes...),
		})
	}
	return events
}
