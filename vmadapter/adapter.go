package vmadapter

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/params"

	"github.com/conclave-chain/evmcore/state"
	"github.com/conclave-chain/evmcore/tracebus"
)

// Adapter is the central polymorphic surface named in spec.md §4.4: a
// provider holds it by interface only, never branching on whether it was
// constructed as a NativeAdapter or an InterpretedAdapter. Both satisfy it
// through their embedded *adapterCore, which also implements DryRun.
type Adapter interface {
	StartBlock(blockCtx BlockContext) error
	RunTxInBlock(tx CallMessage) (*RunTxResult, error)
	AddBlockRewards(rewards []Reward) error
	SealBlock() (common.Hash, error)
	RevertBlock() error

	DryRun(tx CallMessage, blockCtx BlockContext, forceBaseFeeZero bool) (*RunTxResult, error)

	SetDebugTracer(t tracebus.DebugTracer)
	RemoveDebugTracer()
	GetLastTrace() (*tracebus.MessageTrace, error)
	ClearLastError()

	SelectHardfork(blockNumber uint64) string
	GteHardfork(name string) bool
	GetCommon() *params.ChainConfig
	IsWarmedAddress(addr common.Address) bool

	GetAccount(addr common.Address) state.Account
	PutAccount(addr common.Address, acct state.Account)
	GetContractCode(addr common.Address) []byte
	PutContractCode(addr common.Address, code []byte)
	GetContractStorage(addr common.Address, key common.Hash) common.Hash
	PutContractStorage(addr common.Address, key, value common.Hash)
	AccountIsEmpty(addr common.Address) bool

	MakeSnapshot() common.Hash
	RestoreContext(root common.Hash) error
}

var (
	_ Adapter = (*NativeAdapter)(nil)
	_ Adapter = (*InterpretedAdapter)(nil)
)
