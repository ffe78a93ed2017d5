package state

import (
	"testing"

	"github.com/crytic/medusa-geth/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestJournal_CheckpointCommitRevert(t *testing.T) {
	j, err := NewMemoryJournal()
	require.NoError(t, err)

	addr := common.HexToAddress("0xA11CE")
	j.PutAccount(addr, Account{Nonce: 1, Balance: uint256.NewInt(100)})

	cp := j.Checkpoint()
	j.PutAccount(addr, Account{Nonce: 2, Balance: uint256.NewInt(200)})
	require.Equal(t, uint64(2), j.GetAccount(addr).Nonce)

	j.Revert()
	require.Equal(t, uint64(1), j.GetAccount(addr).Nonce)
	require.Equal(t, uint256.NewInt(100), j.GetAccount(addr).Balance)

	cp2 := j.Checkpoint()
	j.PutAccount(addr, Account{Nonce: 3, Balance: uint256.NewInt(300)})
	j.Commit()
	require.Equal(t, uint64(3), j.GetAccount(addr).Nonce)

	_ = cp
	_ = cp2
}

func TestJournal_SetStateRootRejectsUnknown(t *testing.T) {
	j, err := NewMemoryJournal()
	require.NoError(t, err)

	err = j.SetStateRoot(common.HexToHash("0xdeadbeef"))
	require.Error(t, err)

	var unknownRoot *ErrUnknownStateRoot
	require.ErrorAs(t, err, &unknownRoot)
}

func TestJournal_MakeSnapshotRoundTrip(t *testing.T) {
	j, err := NewMemoryJournal()
	require.NoError(t, err)

	addr := common.HexToAddress("0xB0B")
	j.PutAccount(addr, Account{Nonce: 1, Balance: uint256.NewInt(42)})
	snapshot := j.MakeSnapshot()

	j.PutAccount(addr, Account{Nonce: 2, Balance: uint256.NewInt(99)})
	require.Equal(t, uint64(2), j.GetAccount(addr).Nonce)

	require.NoError(t, j.SetStateRoot(snapshot))
	require.Equal(t, uint64(1), j.GetAccount(addr).Nonce)
}

func TestJournal_CreditBalanceCreatesAccount(t *testing.T) {
	j, err := NewMemoryJournal()
	require.NoError(t, err)

	addr := common.HexToAddress("0xC0FFEE")
	require.True(t, j.AccountIsEmpty(addr))

	j.CreditBalance(addr, uint256.NewInt(5000))
	require.False(t, j.AccountIsEmpty(addr))
	require.Equal(t, uint256.NewInt(5000), j.GetAccount(addr).Balance)
}

func TestJournal_ContractStorageAndCode(t *testing.T) {
	j, err := NewMemoryJournal()
	require.NoError(t, err)

	addr := common.HexToAddress("0xD00D")
	code := []byte{0x60, 0x00, 0x60, 0x00}
	j.PutContractCode(addr, code)
	require.Equal(t, code, j.GetContractCode(addr))

	key := common.HexToHash("0x01")
	value := common.HexToHash("0x2a")
	j.PutContractStorage(addr, key, value)
	require.Equal(t, value, j.GetContractStorage(addr, key))
}
