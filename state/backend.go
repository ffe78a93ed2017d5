// Package state implements the state journal described in spec.md §4.3:
// block-scoped checkpoint/commit/revert over a pluggable world-state store,
// plus state-root based snapshot export/restore. It is grounded on
// medusa/chain/state's MedusaStateDB abstraction, which lets a vanilla
// geth-style StateDB and a fork-aware StateDB be used interchangeably by a
// single caller.
package state

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core/state"
	"github.com/crytic/medusa-geth/core/tracing"
	"github.com/crytic/medusa-geth/core/types"
	"github.com/crytic/medusa-geth/core/vm"
	"github.com/holiman/uint256"
)

// Backend is the superset of vm.StateDB this journal needs from either a
// vanilla or a fork-aware StateDB. Grounded verbatim on
// chain/types/medusa_statedb.go's MedusaStateDB interface.
type Backend interface {
	vm.StateDB

	IntermediateRoot(deleteEmptyObjects bool) common.Hash
	Finalise(deleteEmptyObjects bool)
	Logs() []*types.Log
	GetLogs(txHash common.Hash, blockNumber uint64, blockHash common.Hash) []*types.Log
	TxIndex() int
	SetBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason)
	SetTxContext(txHash common.Hash, txIndex int)
	Commit(block uint64, deleteEmptyObjects bool) (common.Hash, error)
	SetLogger(hooks *tracing.Hooks)
	Error() error
}

// Factory constructs a Backend rooted at a given state root. Grounded on
// chain/state/factories.go's MedusaStateFactory; the two concrete
// factories below cover the non-forked and forked cases named in spec.md
// §4.3/§4.4.
type Factory interface {
	New(root common.Hash, db state.Database) (Backend, error)
}

// VanillaFactory builds a plain geth-style Backend with no remote state
// behind it. Grounded on state/factories.go's GethStateFactory /
// VanillaStateDbFactory.
type VanillaFactory struct{}

func (VanillaFactory) New(root common.Hash, db state.Database) (Backend, error) {
	return state.New(root, db)
}
