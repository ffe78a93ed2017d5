package vmadapter

import (
	"github.com/conclave-chain/evmcore/state"
	"github.com/conclave-chain/evmcore/tracebus"
)

// deploymentChangesFromTrace walks a completed MessageTrace and reports
// every contract creation and SELFDESTRUCT observed during the
// transaction, matching RunTxResult.DeploymentChanges (SPEC_FULL.md §3).
// Grounded on chain/test_chain_deployments_tracer.go's commit-on-success
// rule: a creation frame that itself reverted contributes nothing, since no
// contract actually persisted; runtime bytecode is read back from the
// journal the same way the teacher's tracer reads it from evm.StateDB.
//
// SELFDESTRUCT detection relies on per-opcode steps, which only the
// interpreted backend records (tracebus.HooksOptions.StepTracingEnabled);
// NativeAdapter results therefore carry creation changes but never
// self-destructs, consistent with its documented step-tracing omission.
func deploymentChangesFromTrace(j *state.Journal, trace *tracebus.MessageTrace) []DeployedContractBytecodeChange {
	if trace == nil {
		return nil
	}
	var changes []DeployedContractBytecodeChange
	walkMessageTrace(j, trace, &changes)
	return changes
}

func walkMessageTrace(j *state.Journal, node *tracebus.MessageTrace, changes *[]DeployedContractBytecodeChange) {
	if node.Message.CreatedAddress != nil && node.Result != nil && !node.Result.ExecutionResult.Reverted {
		addr := *node.Message.CreatedAddress
		*changes = append(*changes, DeployedContractBytecodeChange{
			Contract: DeployedContractBytecode{
				Address:         addr,
				InitBytecode:    node.Message.Data,
				RuntimeBytecode: j.GetContractCode(addr),
			},
			Creation: true,
		})
	}

	if node.Result != nil {
		for _, step := range node.Result.Steps {
			if step.Opcode == "SELFDESTRUCT" {
				*changes = append(*changes, DeployedContractBytecodeChange{
					Contract: DeployedContractBytecode{
						Address:         step.ContractAddress,
						RuntimeBytecode: j.GetContractCode(step.ContractAddress),
					},
					Destroyed: true,
				})
			}
		}
	}

	for _, child := range node.Children {
		walkMessageTrace(j, child, changes)
	}
}
