package vmadapter

import (
	"testing"

	"github.com/crytic/medusa-geth/common"
	"github.com/stretchr/testify/require"
)

func TestInterpretedAdapter_IsWarmedAddressReflectsAccessList(t *testing.T) {
	cfg := testConfig(nil)
	adapter, err := CreateInterpretedAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{}, nil)
	require.NoError(t, err)

	cold := common.HexToAddress("0x1")
	require.False(t, adapter.IsWarmedAddress(cold))

	warmed := common.HexToAddress("0x2")
	adapter.journal.Backend().AddAddressToAccessList(warmed)
	require.True(t, adapter.IsWarmedAddress(warmed))
}

func TestInterpretedAdapter_SupportsForking(t *testing.T) {
	cfg := testConfig(nil)
	adapter, err := CreateInterpretedAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{}, nil)
	require.NoError(t, err)

	require.True(t, adapter.exec.supportsForking())
}
