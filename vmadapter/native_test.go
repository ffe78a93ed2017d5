package vmadapter

import (
	"testing"

	"github.com/crytic/medusa-geth/common"
	"github.com/stretchr/testify/require"
)

func TestNativeAdapter_IsWarmedAddressAlwaysTrue(t *testing.T) {
	cfg := testConfig(nil)
	adapter, err := CreateNativeAdapter(cfg, fixedHardfork(HardforkLondon), stubChainView{})
	require.NoError(t, err)

	require.True(t, adapter.IsWarmedAddress(common.HexToAddress("0x1")))
	require.True(t, adapter.IsWarmedAddress(common.HexToAddress("0x2")))
}
