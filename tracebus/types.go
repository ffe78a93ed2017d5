// Package tracebus implements the synchronous trace event fan-out described
// in spec.md §4.2: a structural tracer that is always subscribed, and an
// optional debug tracer, both fed from the same ordered stream of
// before-message / step / after-message events.
package tracebus

import (
	"math/big"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core/types"
	"github.com/holiman/uint256"
)

// TracingMessage is emitted once when a call frame (the outermost
// transaction, or a nested CALL/CREATE) begins. A nil To denotes contract
// creation, in which case CreatedAddress carries the address the new
// contract will be deployed at (known up front under both CREATE and
// CREATE2).
type TracingMessage struct {
	Caller         common.Address
	To             *common.Address
	CreatedAddress *common.Address
	Value          *big.Int
	Data           []byte
	GasLimit       uint64
	Depth          int
	Code           []byte
}

// TracingStep is emitted once per opcode executed within a call frame.
type TracingStep struct {
	Depth           int
	PC              uint64
	Opcode          string
	GasCost         uint64
	GasRefunded     uint64
	GasLeft         uint64
	Stack           []uint256.Int
	Memory          []byte
	ContractAddress common.Address
	ContractBalance *uint256.Int
	ContractNonce   uint64
}

// ExecutionOutput is the either/or payload of a TracingMessageResult: a
// plain return for a CALL, or an address+return for a CREATE.
type ExecutionOutput struct {
	Address     *common.Address
	ReturnValue []byte
}

// TracingExecutionResult describes how a message frame concluded.
type TracingExecutionResult struct {
	HaltReason   string // empty unless the frame halted exceptionally
	GasUsed      uint64
	GasRefunded  uint64
	Logs         []*types.Log
	Output       ExecutionOutput
	Reverted     bool
}

// TracingMessageResult is emitted once when a call frame ends, pairing the
// outcome with the steps observed since the matching TracingMessage.
type TracingMessageResult struct {
	ExecutionResult TracingExecutionResult
	Steps           []TracingStep
	ReturnValue     []byte
}

// MessageTrace is the reconstructed call-frame tree produced by the
// StructuralTracer: one node per TracingMessage/TracingMessageResult pair,
// nested the way CALL/CREATE frames nest.
type MessageTrace struct {
	Message  TracingMessage
	Result   *TracingMessageResult
	Children []*MessageTrace
}
