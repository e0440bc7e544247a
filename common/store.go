package common

import (
	"context"

	corestore "cosmossdk.io/core/store"
	storetypes "cosmossdk.io/store/types"
)

type kvStoreCtxKey struct{}

// WithKVStore binds kv to ctx. A branching KVStoreService opened on ctx
// serves kv instead of its root store, which lets a cache branch shadow the
// root for the duration of a transaction.
func WithKVStore(ctx context.Context, kv storetypes.KVStore) context.Context {
	return context.WithValue(ctx, kvStoreCtxKey{}, kv)
}

// KVStoreService exposes a store/types KVStore through the core store
// interfaces collections are built on.
type KVStoreService struct {
	root      storetypes.KVStore
	branching bool
}

var _ corestore.KVStoreService = KVStoreService{}

// NewKVStoreService always serves root.
func NewKVStoreService(root storetypes.KVStore) KVStoreService {
	return KVStoreService{root: root}
}

// NewBranchingKVStoreService serves the store bound with WithKVStore when
// there is one, root otherwise.
func NewBranchingKVStoreService(root storetypes.KVStore) KVStoreService {
	return KVStoreService{root: root, branching: true}
}

func (s KVStoreService) OpenKVStore(ctx context.Context) corestore.KVStore {
	if s.branching && ctx != nil {
		if kv, ok := ctx.Value(kvStoreCtxKey{}).(storetypes.KVStore); ok {
			return coreKVStore{kv: kv}
		}
	}
	return coreKVStore{kv: s.root}
}

type coreKVStore struct {
	kv storetypes.KVStore
}

func (s coreKVStore) Get(key []byte) ([]byte, error) {
	return s.kv.Get(key), nil
}

func (s coreKVStore) Has(key []byte) (bool, error) {
	return s.kv.Has(key), nil
}

func (s coreKVStore) Set(key, value []byte) error {
	s.kv.Set(key, value)
	return nil
}

func (s coreKVStore) Delete(key []byte) error {
	s.kv.Delete(key)
	return nil
}

func (s coreKVStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	return s.kv.Iterator(start, end), nil
}

func (s coreKVStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	return s.kv.ReverseIterator(start, end), nil
}
