package vmadapter

import (
	"math/big"
	"testing"

	"github.com/crytic/medusa-geth/common"
	"github.com/stretchr/testify/require"
)

func TestDryRun_DoesNotMutateCommittedState(t *testing.T) {
	sender := common.HexToAddress("0xA11CE")
	receiver := common.HexToAddress("0xB0B")

	cfg := testConfig(map[common.Address]GenesisAccount{
		sender: {Balance: big.NewInt(10)},
	})

	adapter, err := CreateNativeAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{})
	require.NoError(t, err)

	rootBefore := adapter.MakeSnapshot()

	tx := transferMessage(sender, receiver, 0, 1_000_000_000_000_000_000)
	result, err := adapter.DryRun(tx, testBlockContext(1, common.Hash{}), false)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.Exit.IsError())

	require.True(t, adapter.AccountIsEmpty(receiver))
	require.Equal(t, rootBefore, adapter.MakeSnapshot())
}

func TestDryRun_ForcesZeroBaseFeeOnEIP1559Block(t *testing.T) {
	sender := common.HexToAddress("0xA11CE")
	receiver := common.HexToAddress("0xB0B")

	cfg := testConfig(map[common.Address]GenesisAccount{
		sender: {Balance: big.NewInt(10)},
	})
	adapter, err := CreateNativeAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{})
	require.NoError(t, err)

	blockCtx := testBlockContext(1, common.Hash{})
	blockCtx.BaseFee = nil

	tx := transferMessage(sender, receiver, 5, 1)
	result, err := adapter.DryRun(tx, blockCtx, false)
	require.NoError(t, err)
	require.False(t, result.Exit.IsError())
}
