package vmadapter

import (
	"math/big"

	"github.com/crytic/medusa-geth/common"
)

type stubChainView struct{}

func (stubChainView) BlockHash(number uint64) (common.Hash, error) {
	return common.Hash{}, nil
}

func fixedHardfork(name string) HardforkSelector {
	return func(blockNumber uint64) string { return name }
}

func testConfig(alloc map[common.Address]GenesisAccount) Config {
	return Config{
		ChainID:      big.NewInt(1337),
		NetworkID:    1337,
		Hardfork:     HardforkLondon,
		GenesisAlloc: alloc,
	}
}

func testBlockContext(number uint64, parentHash common.Hash) BlockContext {
	return BlockContext{
		Number:     number,
		Coinbase:   common.Address{},
		Timestamp:  1000 + number,
		BaseFee:    big.NewInt(0),
		GasLimit:   30_000_000,
		Difficulty: big.NewInt(1),
		ParentHash: parentHash,
	}
}

func transferMessage(from, to common.Address, nonce uint64, value int64) CallMessage {
	return CallMessage{
		From:      from,
		To:        &to,
		Nonce:     nonce,
		Value:     big.NewInt(value),
		GasLimit:  21000,
		GasPrice:  big.NewInt(1),
		GasFeeCap: big.NewInt(1),
		GasTipCap: big.NewInt(1),
	}
}
