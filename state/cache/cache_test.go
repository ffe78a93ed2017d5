package cache

import (
	"path/filepath"
	"testing"

	"github.com/crytic/medusa-geth/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_MissThenHit(t *testing.T) {
	c := NewMemoryCache()
	key := AccountKey{Block: 10, Address: common.HexToAddress("0xA1")}

	_, ok := c.GetBalance(key)
	require.False(t, ok)

	c.PutBalance(key, uint256.NewInt(77))
	v, ok := c.GetBalance(key)
	require.True(t, ok)
	require.Equal(t, uint256.NewInt(77), v)
}

func TestPersistentCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	pc, err := OpenPersistentCache(path)
	require.NoError(t, err)

	key := AccountKey{Block: 5, Address: common.HexToAddress("0xFEED")}
	pc.PutNonce(key, 42)
	pc.PutCode(key, []byte{0x01, 0x02})
	require.NoError(t, pc.Close())

	reopened, err := OpenPersistentCache(path)
	require.NoError(t, err)
	defer reopened.Close()

	nonce, ok := reopened.GetNonce(key)
	require.True(t, ok)
	require.Equal(t, uint64(42), nonce)

	code, ok := reopened.GetCode(key)
	require.True(t, ok)
	require.Equal(t, []byte{0x01, 0x02}, code)
}

func TestTiered_PopulatesMemoryFromPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	pc, err := OpenPersistentCache(path)
	require.NoError(t, err)
	defer pc.Close()

	tiered := NewTiered(pc)
	key := StorageKey{Block: 1, Address: common.HexToAddress("0xAB"), Slot: common.HexToHash("0x01")}
	value := common.HexToHash("0x2a")

	tiered.PutStorage(key, value)

	// A fresh Tiered over the same persistent file should serve the value
	// from disk and promote it into its own memory tier.
	fresh := NewTiered(pc)
	got, ok := fresh.GetStorage(key)
	require.True(t, ok)
	require.Equal(t, value, got)

	memGot, ok := fresh.Memory.GetStorage(key)
	require.True(t, ok)
	require.Equal(t, value, memGot)
}
