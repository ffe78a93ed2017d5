package cache

import (
	"encoding/binary"

	"github.com/crytic/medusa-geth/common"
	"github.com/holiman/uint256"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketBalances = []byte("balances")
	bucketNonces   = []byte("nonces")
	bucketCodes    = []byte("codes")
	bucketStorage  = []byte("storage")
)

// PersistentCache is the second cache tier: a bbolt-backed key/value store
// on disk, so a dev node restart doesn't re-pay the RPC cost of every cold
// read the prior run already resolved. Grounded on
// chain/state/cache/persistent_cache.go's bbolt usage.
type PersistentCache struct {
	db *bolt.DB
}

// OpenPersistentCache opens (creating if necessary) a bbolt database file
// at path and ensures its buckets exist.
func OpenPersistentCache(path string) (*PersistentCache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketBalances, bucketNonces, bucketCodes, bucketStorage} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &PersistentCache{db: db}, nil
}

func (c *PersistentCache) Close() error {
	return c.db.Close()
}

func accountKeyBytes(key AccountKey) []byte {
	b := make([]byte, 8+len(key.Address))
	binary.BigEndian.PutUint64(b[:8], key.Block)
	copy(b[8:], key.Address.Bytes())
	return b
}

func storageKeyBytes(key StorageKey) []byte {
	b := make([]byte, 8+len(key.Address)+len(key.Slot))
	binary.BigEndian.PutUint64(b[:8], key.Block)
	off := 8
	copy(b[off:], key.Address.Bytes())
	off += len(key.Address)
	copy(b[off:], key.Slot.Bytes())
	return b
}

func (c *PersistentCache) GetBalance(key AccountKey) (*uint256.Int, bool) {
	var raw []byte
	_ = c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketBalances).Get(accountKeyBytes(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if raw == nil {
		return nil, false
	}
	return new(uint256.Int).SetBytes(raw), true
}

func (c *PersistentCache) PutBalance(key AccountKey, balance *uint256.Int) {
	_ = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBalances).Put(accountKeyBytes(key), balance.Bytes())
	})
}

func (c *PersistentCache) GetNonce(key AccountKey) (uint64, bool) {
	var nonce uint64
	var found bool
	_ = c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketNonces).Get(accountKeyBytes(key)); v != nil {
			nonce = binary.BigEndian.Uint64(v)
			found = true
		}
		return nil
	})
	return nonce, found
}

func (c *PersistentCache) PutNonce(key AccountKey, nonce uint64) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, nonce)
	_ = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNonces).Put(accountKeyBytes(key), b)
	})
}

func (c *PersistentCache) GetCode(key AccountKey) ([]byte, bool) {
	var code []byte
	_ = c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketCodes).Get(accountKeyBytes(key)); v != nil {
			code = append([]byte(nil), v...)
		}
		return nil
	})
	return code, code != nil
}

func (c *PersistentCache) PutCode(key AccountKey, code []byte) {
	_ = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCodes).Put(accountKeyBytes(key), code)
	})
}

func (c *PersistentCache) GetStorage(key StorageKey) (common.Hash, bool) {
	var value common.Hash
	var found bool
	_ = c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketStorage).Get(storageKeyBytes(key)); v != nil {
			value.SetBytes(v)
			found = true
		}
		return nil
	})
	return value, found
}

func (c *PersistentCache) PutStorage(key StorageKey, value common.Hash) {
	_ = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketStorage).Put(storageKeyBytes(key), value.Bytes())
	})
}

var _ Cache = (*PersistentCache)(nil)
