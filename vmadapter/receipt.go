package vmadapter

import (
	"fmt"
	"math/big"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core"
	"github.com/crytic/medusa-geth/core/types"
	"github.com/holiman/uint256"

	"github.com/conclave-chain/evmcore/exit"
	"github.com/conclave-chain/evmcore/state"
	"github.com/conclave-chain/evmcore/tracebus"
)

func uint256FromBig(v *big.Int) (*uint256.Int, bool) {
	return uint256.FromBig(v)
}

func errAmountOverflow(addr common.Address) error {
	return fmt.Errorf("reward amount for %s overflows uint256", addr)
}

// normalizeResult maps a core.ExecutionResult plus the receipt built by
// applyMessage (see execute.go) into spec.md §3's
// RunTxResult, including the Exit taxonomy classification, the structural
// tracer's message trace, and the deployment changes reconstructed from it.
// Grounded on chain/vendored/apply_transaction.go's receipt-construction
// shape.
func normalizeResult(j *state.Journal, bus *tracebus.Bus, tx CallMessage, result *core.ExecutionResult, receipt *types.Receipt) *RunTxResult {
	trace := bus.Structural().GetLastTopLevelMessageTrace()

	var e exit.Exit
	if result.Err != nil {
		e = exit.FromBackendError(result.Err, result.ReturnData)
	} else {
		createdAddress := tx.To == nil && receipt != nil && receipt.ContractAddress != (common.Address{})
		// The native backend never records per-opcode steps, so
		// topLevelSelfDestructed stays false there and SelectSuccessReason
		// falls through to Return/Stop; the interpreted backend's steps
		// distinguish a top-level SELFDESTRUCT exactly.
		e = exit.Success(exit.SelectSuccessReason(topLevelSelfDestructed(trace), createdAddress, result.ReturnData), result.ReturnData)
	}

	var created *common.Address
	if tx.To == nil && receipt != nil {
		addr := receipt.ContractAddress
		created = &addr
	}

	return &RunTxResult{
		Bloom:             receipt.Bloom,
		CreatedAddress:    created,
		GasUsed:           result.UsedGas,
		ReturnValue:       result.ReturnData,
		Exit:              e,
		Receipt:           receipt,
		DeploymentChanges: deploymentChangesFromTrace(j, trace),
		Trace:             trace,
	}
}

// topLevelSelfDestructed reports whether the outermost call frame itself
// executed SELFDESTRUCT, the one case SelectSuccessReason cannot infer from
// the return value alone.
func topLevelSelfDestructed(trace *tracebus.MessageTrace) bool {
	if trace == nil || trace.Result == nil {
		return false
	}
	for _, step := range trace.Result.Steps {
		if step.Opcode == "SELFDESTRUCT" {
			return true
		}
	}
	return false
}
