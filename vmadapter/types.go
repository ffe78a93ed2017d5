package vmadapter

import (
	"math/big"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core"
	"github.com/crytic/medusa-geth/core/types"

	"github.com/conclave-chain/evmcore/exit"
	"github.com/conclave-chain/evmcore/tracebus"
)

// CallMessage is the typed-transaction envelope named in spec.md §3,
// carrying sender, receiver, gas parameters, value, data, and an access
// list. Grounded on chain/types/call_message.go's CallMessage, trimmed of
// its JSON-marshaling scaffolding (this module's config layer, not this
// value type, carries JSON tags -- see SPEC_FULL.md's ambient-stack note).
type CallMessage struct {
	From       common.Address
	To         *common.Address
	Nonce      uint64
	Value      *big.Int
	GasLimit   uint64
	GasPrice   *big.Int
	GasFeeCap  *big.Int
	GasTipCap  *big.Int
	Data       []byte
	AccessList types.AccessList
}

// ToCoreMessage adapts this CallMessage into medusa-geth's core.Message,
// the shape ApplyMessage/NewEVMTxContext expect.
func (m CallMessage) ToCoreMessage(skipNonce, skipAccountChecks bool) *core.Message {
	return &core.Message{
		From:              m.From,
		To:                m.To,
		Nonce:             m.Nonce,
		Value:             m.Value,
		GasLimit:          m.GasLimit,
		GasPrice:          m.GasPrice,
		GasFeeCap:         m.GasFeeCap,
		GasTipCap:         m.GasTipCap,
		Data:              m.Data,
		AccessList:        m.AccessList,
		SkipNonceChecks:   skipNonce,
		SkipFromEOACheck:  skipAccountChecks,
	}
}

// BlockContext is the block-environment value named in spec.md §3.
// PrevRandao is a pointer because its presence/absence is itself
// meaningful: required at and after the Merge; before the Merge it is
// ignored and Difficulty is passed to the backend instead.
type BlockContext struct {
	Number     uint64
	Coinbase   common.Address
	Timestamp  uint64
	BaseFee    *big.Int
	GasLimit   uint64
	Difficulty *big.Int
	PrevRandao *common.Hash
	StateRoot  common.Hash
	ParentHash common.Hash
}

// Reward is one (address, amount) credit applied by addBlockRewards.
type Reward struct {
	Address common.Address
	Amount  *big.Int
}

// DeployedContractBytecode tracks one contract's init/runtime bytecode,
// supplementing the distilled spec per SPEC_FULL.md §3. Grounded on
// chain/types/deployed_contract_bytecode.go.
type DeployedContractBytecode struct {
	Address        common.Address
	InitBytecode   []byte
	RuntimeBytecode []byte
}

// DeployedContractBytecodeChange records a create or destroy event for one
// contract observed during a transaction, reconstructed the way
// chain/test_chain_deployments_tracer.go builds its pending-creation
// stack.
type DeployedContractBytecodeChange struct {
	Contract  DeployedContractBytecode
	Creation  bool
	Destroyed bool
}

// GenericHookFuncs is a LIFO stack of revert-hook closures; they run in
// reverse-registration order when the scope that registered them must be
// unwound. Grounded on chain/types/generic_hooks.go, and used by DryRun
// (see dryrun.go) to restore the chain config and state root it temporarily
// overrides -- the "cheat-code-style chain-ID override" case SPEC_FULL.md
// names for this type.
type GenericHookFuncs struct {
	onRevertHooks []func() error
}

// Register appends a hook to be run on revert.
func (g *GenericHookFuncs) Register(hook func() error) {
	g.onRevertHooks = append(g.onRevertHooks, hook)
}

// RunOnRevertHooks runs every registered hook in LIFO order, clears the
// stack, and returns the first error encountered. Every hook still runs
// even if an earlier one fails, since each one undoes an independent
// mutation.
func (g *GenericHookFuncs) RunOnRevertHooks() error {
	var firstErr error
	for i := len(g.onRevertHooks) - 1; i >= 0; i-- {
		if err := g.onRevertHooks[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.onRevertHooks = nil
	return firstErr
}

// RunTxResult is the normalized outcome of one transaction, as specified
// in spec.md §3.
type RunTxResult struct {
	Bloom             types.Bloom
	CreatedAddress    *common.Address
	GasUsed           uint64
	ReturnValue       []byte
	Exit              exit.Exit
	Receipt           *types.Receipt
	DeploymentChanges []DeployedContractBytecodeChange
	Trace             *tracebus.MessageTrace
}
