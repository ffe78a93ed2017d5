package cache

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/holiman/uint256"
)

// Tiered composes a fast in-memory cache in front of a slower persistent
// one: reads check memory first and fall through to disk on a miss,
// populating memory on the way back; writes go to both tiers. Grounded on
// chain/state/remote_caches.go's layering of its two cache
// implementations behind one RemoteStateProvider.
type Tiered struct {
	Memory     *MemoryCache
	Persistent *PersistentCache
}

func NewTiered(persistent *PersistentCache) *Tiered {
	return &Tiered{Memory: NewMemoryCache(), Persistent: persistent}
}

func (t *Tiered) GetBalance(key AccountKey) (*uint256.Int, bool) {
	if v, ok := t.Memory.GetBalance(key); ok {
		return v, true
	}
	if t.Persistent == nil {
		return nil, false
	}
	if v, ok := t.Persistent.GetBalance(key); ok {
		t.Memory.PutBalance(key, v)
		return v, true
	}
	return nil, false
}

func (t *Tiered) PutBalance(key AccountKey, balance *uint256.Int) {
	t.Memory.PutBalance(key, balance)
	if t.Persistent != nil {
		t.Persistent.PutBalance(key, balance)
	}
}

func (t *Tiered) GetNonce(key AccountKey) (uint64, bool) {
	if v, ok := t.Memory.GetNonce(key); ok {
		return v, true
	}
	if t.Persistent == nil {
		return 0, false
	}
	if v, ok := t.Persistent.GetNonce(key); ok {
		t.Memory.PutNonce(key, v)
		return v, true
	}
	return 0, false
}

func (t *Tiered) PutNonce(key AccountKey, nonce uint64) {
	t.Memory.PutNonce(key, nonce)
	if t.Persistent != nil {
		t.Persistent.PutNonce(key, nonce)
	}
}

func (t *Tiered) GetCode(key AccountKey) ([]byte, bool) {
	if v, ok := t.Memory.GetCode(key); ok {
		return v, true
	}
	if t.Persistent == nil {
		return nil, false
	}
	if v, ok := t.Persistent.GetCode(key); ok {
		t.Memory.PutCode(key, v)
		return v, true
	}
	return nil, false
}

func (t *Tiered) PutCode(key AccountKey, code []byte) {
	t.Memory.PutCode(key, code)
	if t.Persistent != nil {
		t.Persistent.PutCode(key, code)
	}
}

func (t *Tiered) GetStorage(key StorageKey) (common.Hash, bool) {
	if v, ok := t.Memory.GetStorage(key); ok {
		return v, true
	}
	if t.Persistent == nil {
		return common.Hash{}, false
	}
	if v, ok := t.Persistent.GetStorage(key); ok {
		t.Memory.PutStorage(key, v)
		return v, true
	}
	return common.Hash{}, false
}

func (t *Tiered) PutStorage(key StorageKey, value common.Hash) {
	t.Memory.PutStorage(key, value)
	if t.Persistent != nil {
		t.Persistent.PutStorage(key, value)
	}
}

var _ Cache = (*Tiered)(nil)
