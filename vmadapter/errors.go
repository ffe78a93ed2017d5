package vmadapter

import "fmt"

// ConfigurationError reports an unsupported combination of adapter
// configuration and requested operation (spec.md §7).
type ConfigurationError struct {
	Reason string
}

// Known ConfigurationError reasons.
const (
	ReasonForkingUnsupported = "forking_unsupported"
	ReasonMixHashRequired    = "mix_hash_required"
)

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// InvalidBlockLifecycle reports a call made out of the
// startBlock/runTxInBlock*/addBlockRewards/sealBlock-or-revertBlock order
// (spec.md §4.4, §7).
type InvalidBlockLifecycle struct {
	Op     string
	Reason string
}

func (e *InvalidBlockLifecycle) Error() string {
	return fmt.Sprintf("invalid block lifecycle: %s: %s", e.Op, e.Reason)
}

// BackendExecutionError wraps a backend failure that falls outside the
// EVM's normal halt taxonomy -- infrastructure, not program (spec.md §7).
// It is propagated to the caller verbatim, never translated into an Exit.
type BackendExecutionError struct {
	Err error
}

func (e *BackendExecutionError) Error() string {
	return fmt.Sprintf("backend execution error: %v", e.Err)
}

func (e *BackendExecutionError) Unwrap() error {
	return e.Err
}
