package cache

import (
	"sync"

	"github.com/crytic/medusa-geth/common"
	"github.com/holiman/uint256"
)

// MemoryCache is the first, always-present cache tier: plain maps guarded
// by a mutex, scoped to this process's lifetime. Grounded on
// chain/state/cache/non_persistent_cache.go.
type MemoryCache struct {
	mu       sync.RWMutex
	balances map[AccountKey]*uint256.Int
	nonces   map[AccountKey]uint64
	codes    map[AccountKey][]byte
	storage  map[StorageKey]common.Hash
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		balances: make(map[AccountKey]*uint256.Int),
		nonces:   make(map[AccountKey]uint64),
		codes:    make(map[AccountKey][]byte),
		storage:  make(map[StorageKey]common.Hash),
	}
}

func (c *MemoryCache) GetBalance(key AccountKey) (*uint256.Int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.balances[key]
	return v, ok
}

func (c *MemoryCache) PutBalance(key AccountKey, balance *uint256.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[key] = balance
}

func (c *MemoryCache) GetNonce(key AccountKey) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.nonces[key]
	return v, ok
}

func (c *MemoryCache) PutNonce(key AccountKey, nonce uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nonces[key] = nonce
}

func (c *MemoryCache) GetCode(key AccountKey) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.codes[key]
	return v, ok
}

func (c *MemoryCache) PutCode(key AccountKey, code []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[key] = code
}

func (c *MemoryCache) GetStorage(key StorageKey) (common.Hash, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.storage[key]
	return v, ok
}

func (c *MemoryCache) PutStorage(key StorageKey, value common.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storage[key] = value
}

var _ Cache = (*MemoryCache)(nil)
