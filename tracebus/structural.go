package tracebus

// StructuralTracer reconstructs a MessageTrace tree from the trace bus's
// event stream. Grounded on chain/test_chain_tracer.go's
// pendingDeployedContractBytecode stack: that tracer pushes a pending slot
// on entering a frame and commits it on a successful exit, generalized here
// from "pending contract deployments" to "pending call-frame nodes."
type StructuralTracer struct {
	root    *MessageTrace
	pending []*MessageTrace // stack of in-progress frames, innermost last

	lastErr error
}

// NewStructuralTracer returns a StructuralTracer with no recorded trace.
func NewStructuralTracer() *StructuralTracer {
	return &StructuralTracer{}
}

func (s *StructuralTracer) OnTxStart(gasLimit uint64) {
	s.root = nil
	s.pending = s.pending[:0]
}

func (s *StructuralTracer) OnTxEnd(gasUsed uint64) {}

// OnBeforeMessage pushes a new, empty frame onto the pending stack and links
// it as a child of the current top-of-stack frame (or as the trace root, if
// the stack was empty).
func (s *StructuralTracer) OnBeforeMessage(msg TracingMessage) {
	node := &MessageTrace{Message: msg}
	if len(s.pending) == 0 {
		s.root = node
	} else {
		parent := s.pending[len(s.pending)-1]
		parent.Children = append(parent.Children, node)
	}
	s.pending = append(s.pending, node)
}

// OnStep appends a step to the innermost pending frame.
func (s *StructuralTracer) OnStep(step TracingStep) {
	if len(s.pending) == 0 {
		return
	}
	node := s.pending[len(s.pending)-1]
	if node.Result == nil {
		node.Result = &TracingMessageResult{}
	}
	node.Result.Steps = append(node.Result.Steps, step)
}

// OnAfterMessage pops the innermost pending frame and records its result.
func (s *StructuralTracer) OnAfterMessage(result TracingMessageResult) {
	if len(s.pending) == 0 {
		return
	}
	node := s.pending[len(s.pending)-1]
	s.pending = s.pending[:len(s.pending)-1]
	if node.Result == nil {
		node.Result = &result
	} else {
		node.Result.ExecutionResult = result.ExecutionResult
		node.Result.ReturnValue = result.ReturnValue
	}
}

// GetLastTopLevelMessageTrace returns the most recently started top-level
// message trace (still in progress until its OnAfterMessage arrives), or
// nil if none has been recorded yet.
func (s *StructuralTracer) GetLastTopLevelMessageTrace() *MessageTrace {
	return s.root
}

// GetLastError returns the first error captured from a subscriber call by
// the trace bus (structural or debug) since the last ClearLastError, or
// nil. Later errors are dropped while one is held.
func (s *StructuralTracer) GetLastError() error {
	return s.lastErr
}

// ClearLastError zeroes the error slot without dropping the recorded trace.
func (s *StructuralTracer) ClearLastError() {
	s.lastErr = nil
}

// recordError is called by the Bus when any subscriber call fails; the
// structural tracer is the component of record for surfaced tracer errors
// (spec.md §4.2: "The structural tracer records the error internally").
func (s *StructuralTracer) recordError(err error) {
	if s.lastErr == nil {
		s.lastErr = err
	}
}
