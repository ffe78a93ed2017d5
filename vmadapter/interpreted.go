package vmadapter

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core"
	"github.com/crytic/medusa-geth/core/types"

	"github.com/conclave-chain/evmcore/state"
	"github.com/conclave-chain/evmcore/tracebus"
)

// InterpretedAdapter is the full-featured execution backend: step tracing
// always enabled, forking supported through a ForkFactory, warm-address
// queries answered from the statedb's real EIP-2929 access list. Grounded
// on clydemeng-bsc's core/vm/dispatcher_revm.go.
type InterpretedAdapter struct {
	*adapterCore
}

// CreateInterpretedAdapter builds an adapter, optionally fork-backed when
// cfg.Forked() (spec.md §4.4: "a forked configuration must produce a
// fork-backed state store and remember forkNetworkId and forkBlockNumber").
func CreateInterpretedAdapter(cfg Config, selector HardforkSelector, chainView ChainView, remote state.RemoteReader) (*InterpretedAdapter, error) {
	var factory state.Factory = state.VanillaFactory{}
	if cfg.Forked() {
		factory = state.ForkFactory{Remote: remote, ForkBlock: cfg.Fork.RpcBlock}
	}

	journal, err := newGenesisJournal(cfg, factory)
	if err != nil {
		return nil, err
	}
	ia := &InterpretedAdapter{}
	ia.adapterCore = newAdapterCore(cfg, selector, chainView, journal, ia)
	return ia, nil
}

func (ia *InterpretedAdapter) run(j *state.Journal, bus *tracebus.Bus, msg CallMessage, env executionEnv) (*core.ExecutionResult, *types.Receipt, error) {
	return applyMessage(j, bus, msg, env, tracebus.HooksOptions{StepTracingEnabled: true})
}

// isWarmedAddress inspects the statedb's real EIP-2929 access list, unlike
// NativeAdapter's conservative constant-true stub.
func (ia *InterpretedAdapter) isWarmedAddress(j *state.Journal, addr common.Address) bool {
	return j.Backend().AddressInAccessList(addr)
}

func (ia *InterpretedAdapter) supportsForking() bool {
	return true
}
