// Package vmadapter implements the VM adapter described in spec.md §4.4:
// the polymorphic execution surface (dryRun, the in-block execution
// cycle, context reset, tracing control) shared by a native and an
// interpreted backend. Grounded on chain/test_chain.go's TestNode struct
// composition and on clydemeng-bsc's core/vm/dispatcher_{goevm,revm}.go
// dual-executor split.
package vmadapter

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core"
	"github.com/crytic/medusa-geth/core/types"
	"github.com/crytic/medusa-geth/params"

	"github.com/conclave-chain/evmcore/internal/xlog"
	"github.com/conclave-chain/evmcore/state"
	"github.com/conclave-chain/evmcore/tracebus"
)

var log = xlog.For(xlog.ServiceVMAdapter)

// executor is the one piece of behavior that differs between the native
// and the interpreted backend: how a single message is actually run
// against the journal's current state, and how cheaply warm-address
// queries can be answered. Everything else in adapterCore is shared.
type executor interface {
	run(j *state.Journal, bus *tracebus.Bus, msg CallMessage, env executionEnv) (*core.ExecutionResult, *types.Receipt, error)
	isWarmedAddress(j *state.Journal, addr common.Address) bool
	supportsForking() bool
}

// adapterCore is the state and logic shared by NativeAdapter and
// InterpretedAdapter: the journal, the trace bus, configuration, the
// injected hardfork selector and chain view, and the single open-block
// checkpoint invariant (spec.md §3: "the adapter holds at most one active
// block checkpoint at any time").
type adapterCore struct {
	journal   *state.Journal
	bus       *tracebus.Bus
	cfg       Config
	selector  HardforkSelector
	chainView ChainView
	exec      executor

	checkpointOpen  bool
	checkpointRoot  common.Hash
	currentBlockCtx BlockContext
	currentHardfork string

	txIndex           int
	cumulativeGasUsed uint64
}

func newAdapterCore(cfg Config, selector HardforkSelector, chainView ChainView, journal *state.Journal, exec executor) *adapterCore {
	return &adapterCore{
		journal:         journal,
		bus:             tracebus.NewBus(),
		cfg:             cfg,
		selector:        selector,
		chainView:       chainView,
		exec:            exec,
		currentHardfork: selector(0),
	}
}

// SelectHardfork delegates to the injected HardforkSelector.
func (c *adapterCore) SelectHardfork(blockNumber uint64) string {
	return c.selector(blockNumber)
}

// GteHardfork reports whether the adapter's currently active hardfork is
// at or after name.
func (c *adapterCore) GteHardfork(name string) bool {
	return hardforkIndex(c.currentHardfork) >= hardforkIndex(name)
}

// GetCommon returns the chain rule set derived from the current hardfork.
func (c *adapterCore) GetCommon() *params.ChainConfig {
	return chainConfigForHardfork(c.cfg.ChainID, c.currentHardfork)
}

func (c *adapterCore) SetDebugTracer(t tracebus.DebugTracer) {
	c.bus.SetDebugTracer(t)
}

func (c *adapterCore) RemoveDebugTracer() {
	c.bus.RemoveDebugTracer()
}

// GetLastTrace returns the most recent top-level message trace and any
// error captured by the structural tracer (spec.md §4.4).
func (c *adapterCore) GetLastTrace() (*tracebus.MessageTrace, error) {
	return c.bus.Structural().GetLastTopLevelMessageTrace(), c.bus.Structural().GetLastError()
}

func (c *adapterCore) ClearLastError() {
	c.bus.Structural().ClearLastError()
}

func (c *adapterCore) IsWarmedAddress(addr common.Address) bool {
	return c.exec.isWarmedAddress(c.journal, addr)
}

func (c *adapterCore) GetAccount(addr common.Address) state.Account {
	return c.journal.GetAccount(addr)
}

func (c *adapterCore) GetContractStorage(addr common.Address, key common.Hash) common.Hash {
	return c.journal.GetContractStorage(addr, key)
}

func (c *adapterCore) GetContractCode(addr common.Address) []byte {
	return c.journal.GetContractCode(addr)
}

func (c *adapterCore) PutAccount(addr common.Address, acct state.Account) {
	c.journal.PutAccount(addr, acct)
}

func (c *adapterCore) PutContractCode(addr common.Address, code []byte) {
	c.journal.PutContractCode(addr, code)
}

func (c *adapterCore) PutContractStorage(addr common.Address, key, value common.Hash) {
	c.journal.PutContractStorage(addr, key, value)
}

func (c *adapterCore) AccountIsEmpty(addr common.Address) bool {
	return c.journal.AccountIsEmpty(addr)
}

// MakeSnapshot / RestoreContext work on a state root alone, for both
// backends: the adapter never branches on backend identity. No block
// number is passed on restore; a fork-backed journal reopens the root
// against the fixed fork block its ForkFactory was built with.
func (c *adapterCore) MakeSnapshot() common.Hash {
	return c.journal.MakeSnapshot()
}

func (c *adapterCore) RestoreContext(root common.Hash) error {
	return c.journal.SetStateRoot(root)
}
