package tracebus

import (
	"fmt"
	"math/big"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core/tracing"
	"github.com/crytic/medusa-geth/core/types"
	"github.com/crytic/medusa-geth/core/vm"
	"github.com/holiman/uint256"
)

// Bus dispatches beforeMessage/step/afterMessage events to the always-on
// StructuralTracer and, if attached, one optional DebugTracer, in issuance
// order and synchronously with respect to the VM stepper (spec.md §4.2).
//
// Grounded on chain/types/tracer_forwarder.go's fan-out shape and
// chain/test_chain_tracing.go's TestChainTracerRouter/TestChainTracer
// extended-interface split between the always-on and optional subscriber.
// Unlike the teacher's forwarder, Bus isolates a subscriber panic instead of
// letting it propagate into the VM stepper, recording it on the structural
// tracer per spec.md's "the bus must catch exceptions ... forward as a
// failure ... the structural tracer records the error internally."
type Bus struct {
	structural *StructuralTracer
	debug      DebugTracer
}

// NewBus returns a Bus with a fresh structural tracer and no debug tracer
// attached.
func NewBus() *Bus {
	return &Bus{structural: NewStructuralTracer()}
}

// Structural returns the always-on structural tracer.
func (b *Bus) Structural() *StructuralTracer {
	return b.structural
}

// SetDebugTracer attaches the optional second subscriber. At most one may be
// attached at a time (spec.md §3 lifecycle); attaching a new one replaces
// whatever was previously attached.
func (b *Bus) SetDebugTracer(t DebugTracer) {
	b.debug = t
}

// RemoveDebugTracer detaches the optional second subscriber, if any.
func (b *Bus) RemoveDebugTracer() {
	b.debug = nil
}

func (b *Bus) subscribers() []Subscriber {
	if b.debug == nil {
		return []Subscriber{b.structural}
	}
	return []Subscriber{b.structural, b.debug}
}

// dispatch invokes fn against every subscriber in turn, recovering a panic
// from any one of them so that the stepper is never interrupted and every
// remaining subscriber still receives the event (preserving the
// before/after bracketing invariant even when a subscriber misbehaves).
func (b *Bus) dispatch(fn func(Subscriber)) {
	for _, sub := range b.subscribers() {
		b.safeCall(sub, fn)
	}
}

func (b *Bus) safeCall(sub Subscriber, fn func(Subscriber)) {
	defer func() {
		if r := recover(); r != nil {
			b.structural.recordError(fmt.Errorf("tracer subscriber panicked: %v", r))
		}
	}()
	fn(sub)
}

func (b *Bus) DispatchTxStart(gasLimit uint64) {
	b.dispatch(func(s Subscriber) { s.OnTxStart(gasLimit) })
}

func (b *Bus) DispatchTxEnd(gasUsed uint64) {
	b.dispatch(func(s Subscriber) { s.OnTxEnd(gasUsed) })
}

func (b *Bus) DispatchBeforeMessage(msg TracingMessage) {
	b.dispatch(func(s Subscriber) { s.OnBeforeMessage(msg) })
}

func (b *Bus) DispatchStep(step TracingStep) {
	b.dispatch(func(s Subscriber) { s.OnStep(step) })
}

func (b *Bus) DispatchAfterMessage(result TracingMessageResult) {
	b.dispatch(func(s Subscriber) { s.OnAfterMessage(result) })
}

// StepTracingEnabled controls whether ToHooks wires OnOpcode/OnFault through
// to DispatchStep. NativeAdapter disables it (REDESIGN note: "the native
// backend silently discards several tracing fields... no steps are
// populated"); InterpretedAdapter leaves it enabled.
type HooksOptions struct {
	StepTracingEnabled bool
}

// ToHooks adapts this Bus into a *tracing.Hooks value that can be installed
// as vm.Config.Tracer, translating medusa-geth's tracing.Hooks callback
// shape into this module's TracingMessage/TracingStep/TracingMessageResult
// event model.
func (b *Bus) ToHooks(opts HooksOptions) *tracing.Hooks {
	hooks := &tracing.Hooks{
		OnTxStart: func(vmCtx *tracing.VMContext, tx *types.Transaction, from common.Address) {
			b.DispatchTxStart(tx.Gas())
		},
		OnTxEnd: func(receipt *types.Receipt, err error) {
			var gasUsed uint64
			if receipt != nil {
				gasUsed = receipt.GasUsed
			}
			b.DispatchTxEnd(gasUsed)
		},
		OnEnter: func(depth int, typ byte, from common.Address, to common.Address, input []byte, gas uint64, value *big.Int) {
			var toPtr, createdPtr *common.Address
			if typ == byte(vm.CREATE) || typ == byte(vm.CREATE2) {
				addr := to
				createdPtr = &addr
			} else {
				t := to
				toPtr = &t
			}
			b.DispatchBeforeMessage(TracingMessage{
				Caller:         from,
				To:             toPtr,
				CreatedAddress: createdPtr,
				Value:          value,
				Data:           input,
				GasLimit:       gas,
				Depth:          depth,
			})
		},
		OnExit: func(depth int, output []byte, gasUsed uint64, err error, reverted bool) {
			haltReason := ""
			if err != nil {
				haltReason = err.Error()
			}
			b.DispatchAfterMessage(TracingMessageResult{
				ExecutionResult: TracingExecutionResult{
					HaltReason: haltReason,
					GasUsed:    gasUsed,
					Reverted:   reverted,
					Output:     ExecutionOutput{ReturnValue: output},
				},
				ReturnValue: output,
			})
		},
	}

	if opts.StepTracingEnabled {
		hooks.OnOpcode = func(pc uint64, op byte, gas, cost uint64, scope tracing.OpContext, rData []byte, depth int, err error) {
			step := TracingStep{
				Depth:   depth,
				PC:      pc,
				Opcode:  vm.OpCode(op).String(),
				GasCost: cost,
				GasLeft: gas,
			}
			if scope != nil {
				stack := scope.StackData()
				step.Stack = append([]uint256.Int(nil), stack...)
				step.Memory = append([]byte(nil), scope.MemoryData()...)
				step.ContractAddress = scope.Address()
			}
			b.DispatchStep(step)
		}
		hooks.OnFault = func(pc uint64, op byte, gas, cost uint64, scope tracing.OpContext, depth int, err error) {
			b.DispatchStep(TracingStep{
				Depth:   depth,
				PC:      pc,
				Opcode:  vm.OpCode(op).String(),
				GasCost: cost,
				GasLeft: gas,
			})
		}
	}

	return hooks
}
