package tracebus

import (
	"testing"

	"github.com/crytic/medusa-geth/common"
	"github.com/stretchr/testify/require"
)

// panickyTracer implements Subscriber but panics on every step, to exercise
// the bus's isolation guarantee (spec.md §4.2).
type panickyTracer struct{ stepCount int }

func (p *panickyTracer) OnTxStart(uint64)                   {}
func (p *panickyTracer) OnTxEnd(uint64)                      {}
func (p *panickyTracer) OnBeforeMessage(TracingMessage)      {}
func (p *panickyTracer) OnStep(TracingStep)                  { p.stepCount++; panic("boom") }
func (p *panickyTracer) OnAfterMessage(TracingMessageResult) {}

func TestBus_WellBracketed(t *testing.T) {
	bus := NewBus()
	to := common.HexToAddress("0xB0B")

	bus.DispatchTxStart(21000)
	bus.DispatchBeforeMessage(TracingMessage{Caller: common.HexToAddress("0xA1"), To: &to, Depth: 0})
	bus.DispatchStep(TracingStep{Depth: 0, PC: 0, Opcode: "PUSH1"})
	bus.DispatchBeforeMessage(TracingMessage{Caller: to, To: nil, Depth: 1})
	bus.DispatchStep(TracingStep{Depth: 1, PC: 0, Opcode: "STOP"})
	bus.DispatchAfterMessage(TracingMessageResult{})
	bus.DispatchAfterMessage(TracingMessageResult{})
	bus.DispatchTxEnd(21000)

	root := bus.Structural().GetLastTopLevelMessageTrace()
	require.NotNil(t, root)
	require.Len(t, root.Children, 1)
	require.Len(t, root.Result.Steps, 1)
	require.Len(t, root.Children[0].Result.Steps, 1)
}

func TestBus_IsolatesSubscriberPanic(t *testing.T) {
	bus := NewBus()
	tracer := &panickyTracer{}
	bus.SetDebugTracer(tracer)

	to := common.HexToAddress("0xB0B")
	bus.DispatchBeforeMessage(TracingMessage{Caller: common.HexToAddress("0xA1"), To: &to})
	require.NotPanics(t, func() {
		bus.DispatchStep(TracingStep{PC: 1})
	})
	require.Equal(t, 1, tracer.stepCount)
	require.Error(t, bus.Structural().GetLastError())

	// Subsequent events still reach the structural tracer -- the panic in
	// the debug tracer did not corrupt the bus's bookkeeping.
	bus.DispatchAfterMessage(TracingMessageResult{})
	require.NotNil(t, bus.Structural().GetLastTopLevelMessageTrace())

	bus.Structural().ClearLastError()
	require.NoError(t, bus.Structural().GetLastError())

	bus.RemoveDebugTracer()
	bus.DispatchStep(TracingStep{PC: 2})
	require.Equal(t, 1, tracer.stepCount, "detached tracer should no longer receive events")
}
