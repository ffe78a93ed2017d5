package vmadapter

import (
	"math/big"
	"testing"

	"github.com/crytic/medusa-geth/common"
	"github.com/stretchr/testify/require"
)

func TestNativeAdapter_LifecycleHappyPath(t *testing.T) {
	sender := common.HexToAddress("0xA11CE")
	receiver := common.HexToAddress("0xB0B")

	cfg := testConfig(map[common.Address]GenesisAccount{
		sender: {Balance: big.NewInt(1_000_000_000_000_000_000)},
	})

	adapter, err := CreateNativeAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{})
	require.NoError(t, err)

	require.NoError(t, adapter.StartBlock(testBlockContext(1, common.Hash{})))

	result, err := adapter.RunTxInBlock(transferMessage(sender, receiver, 0, 1000))
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.Exit.IsError())
	require.Equal(t, uint64(21000), result.GasUsed)

	root, err := adapter.SealBlock()
	require.NoError(t, err)
	require.NotEqual(t, common.Hash{}, root)

	require.Equal(t, uint64(1000), adapter.GetAccount(receiver).Balance.Uint64())
}

func TestNativeAdapter_RevertBlockRestoresBalance(t *testing.T) {
	sender := common.HexToAddress("0xA11CE")
	receiver := common.HexToAddress("0xB0B")

	cfg := testConfig(map[common.Address]GenesisAccount{
		sender: {Balance: big.NewInt(1_000_000_000_000_000_000)},
	})

	adapter, err := CreateNativeAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{})
	require.NoError(t, err)

	require.NoError(t, adapter.StartBlock(testBlockContext(1, common.Hash{})))
	_, err = adapter.RunTxInBlock(transferMessage(sender, receiver, 0, 1000))
	require.NoError(t, err)

	require.NoError(t, adapter.RevertBlock())
	require.True(t, adapter.AccountIsEmpty(receiver))
}

func TestNativeAdapter_AddBlockRewardsCreditsNewAccount(t *testing.T) {
	cfg := testConfig(nil)
	adapter, err := CreateNativeAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{})
	require.NoError(t, err)

	miner := common.HexToAddress("0xD00D")
	require.NoError(t, adapter.StartBlock(testBlockContext(1, common.Hash{})))
	require.NoError(t, adapter.AddBlockRewards([]Reward{{Address: miner, Amount: big.NewInt(2_000_000_000_000_000_000)}}))
	_, err = adapter.SealBlock()
	require.NoError(t, err)

	require.Equal(t, "2000000000000000000", adapter.GetAccount(miner).Balance.Dec())
}

func TestAdapterCore_LifecycleViolationsRaiseInvalidBlockLifecycle(t *testing.T) {
	cfg := testConfig(nil)
	adapter, err := CreateNativeAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{})
	require.NoError(t, err)

	_, err = adapter.RunTxInBlock(transferMessage(common.Address{}, common.Address{}, 0, 0))
	var lifecycleErr *InvalidBlockLifecycle
	require.ErrorAs(t, err, &lifecycleErr)

	require.NoError(t, adapter.StartBlock(testBlockContext(1, common.Hash{})))
	err = adapter.StartBlock(testBlockContext(2, common.Hash{}))
	require.ErrorAs(t, err, &lifecycleErr)

	require.NoError(t, adapter.RevertBlock())
	_, err = adapter.SealBlock()
	require.ErrorAs(t, err, &lifecycleErr)
}

func TestCreateNativeAdapter_RefusesForkedConfig(t *testing.T) {
	cfg := testConfig(nil)
	cfg.Fork = &ForkConfig{ForkModeEnabled: true, RpcBlock: 10}

	_, err := CreateNativeAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, ReasonForkingUnsupported, cfgErr.Reason)
}
