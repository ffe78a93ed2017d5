package vmadapter

import (
	"math/big"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core"
	"github.com/crytic/medusa-geth/core/vm"
)

// maxDifficulty is 2^32-1, the clamp spec.md §4.4 requires ("a backend
// constraint").
var maxDifficulty = new(big.Int).SetUint64(1<<32 - 1)

// ChainView is the blockchain collaborator named in spec.md §6: the one
// read the adapter needs from whatever maintains canonical block history,
// used by the BLOCKHASH opcode. Grounded on chain/test_chain.go's
// evmOpBlockHash, generalized into an injected interface instead of a
// method on a concrete chain type.
type ChainView interface {
	BlockHash(number uint64) (common.Hash, error)
}

// toVMBlockContext maps a BlockContext into medusa-geth's vm.BlockContext,
// applying the difficulty clamp and the Merge-boundary prevRandao rule.
// Grounded on chain/block_context.go's newTestChainBlockContext, extended
// with the rules that snapshot predates.
func toVMBlockContext(bc BlockContext, merge bool, chainView ChainView) (vm.BlockContext, error) {
	difficulty := bc.Difficulty
	if difficulty == nil {
		difficulty = big.NewInt(0)
	}
	if difficulty.Cmp(maxDifficulty) > 0 {
		difficulty = new(big.Int).Set(maxDifficulty)
	}

	vmCtx := vm.BlockContext{
		CanTransfer: core.CanTransfer,
		Transfer:    core.Transfer,
		GetHash: func(n uint64) common.Hash {
			hash, err := chainView.BlockHash(n)
			if err != nil {
				return common.Hash{}
			}
			return hash
		},
		Coinbase:    bc.Coinbase,
		BlockNumber: new(big.Int).SetUint64(bc.Number),
		Time:        bc.Timestamp,
		GasLimit:    bc.GasLimit,
		BaseFee:     bc.BaseFee,
	}

	if merge {
		if bc.PrevRandao == nil {
			return vm.BlockContext{}, &ConfigurationError{Reason: ReasonMixHashRequired}
		}
		vmCtx.Random = bc.PrevRandao
	} else {
		vmCtx.Difficulty = difficulty
	}

	return vmCtx, nil
}
