package vmadapter

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core"
	"github.com/crytic/medusa-geth/core/types"

	"github.com/conclave-chain/evmcore/state"
	"github.com/conclave-chain/evmcore/tracebus"
)

// NativeAdapter is the fast-path execution backend: step tracing disabled
// (REDESIGN note: "the native backend silently discards several tracing
// fields"), forking refused at construction (Open Question resolved per
// spec.md §4.4's Construction paragraph). Grounded on
// clydemeng-bsc's core/vm/dispatcher_goevm.go.
type NativeAdapter struct {
	*adapterCore
}

// CreateNativeAdapter builds a non-forking adapter seeded from cfg's
// genesis allocation.
func CreateNativeAdapter(cfg Config, selector HardforkSelector, chainView ChainView) (*NativeAdapter, error) {
	if cfg.Forked() {
		return nil, &ConfigurationError{Reason: ReasonForkingUnsupported}
	}
	journal, err := newGenesisJournal(cfg, state.VanillaFactory{})
	if err != nil {
		return nil, err
	}
	na := &NativeAdapter{}
	na.adapterCore = newAdapterCore(cfg, selector, chainView, journal, na)
	return na, nil
}

func (na *NativeAdapter) run(j *state.Journal, bus *tracebus.Bus, msg CallMessage, env executionEnv) (*core.ExecutionResult, *types.Receipt, error) {
	return applyMessage(j, bus, msg, env, tracebus.HooksOptions{StepTracingEnabled: false})
}

// isWarmedAddress is stubbed to true (Open Question 1, decided: "acceptable
// semantics, not a correctness defect" -- losing precision but never
// correctness of execution, per spec.md §4.4).
func (na *NativeAdapter) isWarmedAddress(j *state.Journal, addr common.Address) bool {
	return true
}

func (na *NativeAdapter) supportsForking() bool {
	return false
}
