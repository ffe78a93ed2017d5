// Package cache implements the two-tier remote-state cache described in
// spec.md §4.4: an in-memory tier for the common case, backed by a
// persistent tier so a restarted dev node doesn't re-pay every cold RPC
// read it already paid for in a prior run. Grounded on
// chain/state/cache/{types,non_persistent_cache,persistent_cache}.go.
package cache

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/holiman/uint256"
)

// AccountKey addresses one account as of a specific block number; remote
// state is always read at a pinned fork block, so the block number is
// part of the cache key rather than a separate invalidation concern.
type AccountKey struct {
	Block   uint64
	Address common.Address
}

// StorageKey addresses one storage slot as of a specific block number.
type StorageKey struct {
	Block   uint64
	Address common.Address
	Slot    common.Hash
}

// Cache is the interface both the in-memory and persistent tiers
// implement, the interface Tiered composes them through, and the interface
// remote.Provider reads through.
type Cache interface {
	GetBalance(key AccountKey) (*uint256.Int, bool)
	PutBalance(key AccountKey, balance *uint256.Int)

	GetNonce(key AccountKey) (uint64, bool)
	PutNonce(key AccountKey, nonce uint64)

	GetCode(key AccountKey) ([]byte, bool)
	PutCode(key AccountKey, code []byte)

	GetStorage(key StorageKey) (common.Hash, bool)
	PutStorage(key StorageKey, value common.Hash)
}
