package tracebus

// Subscriber is the contract every trace bus consumer implements. The
// structural tracer is always subscribed; a DebugTracer is the optional
// second subscriber a caller may attach via the VM adapter's
// setDebugTracer/removeDebugTracer (spec.md §4.4).
//
// Events for a given message are always delivered in the order
// OnBeforeMessage, (OnStep)*, OnAfterMessage, with nested messages nesting
// strictly -- the bus, not the subscriber, is responsible for that ordering
// guarantee.
type Subscriber interface {
	OnTxStart(gasLimit uint64)
	OnTxEnd(gasUsed uint64)
	OnBeforeMessage(msg TracingMessage)
	OnStep(step TracingStep)
	OnAfterMessage(result TracingMessageResult)
}

// DebugTracer is the optional subscriber attached/detached via
// Bus.SetDebugTracer / Bus.RemoveDebugTracer. It is a plain alias of
// Subscriber: the bus does not distinguish the debug tracer's contract from
// the structural tracer's, it only ever allows one instance of it to be
// attached at a time.
type DebugTracer = Subscriber
