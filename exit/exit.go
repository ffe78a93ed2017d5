// Package exit implements the unified success/halt/revert taxonomy that
// normalizes backend-specific execution outcomes (medusa-geth's vm error
// sentinels) into a single representation shared by every VM adapter
// backend.
package exit

import (
	"errors"
	"fmt"

	"github.com/crytic/medusa-geth/core/vm"

	"github.com/conclave-chain/evmcore/internal/xlog"
)

// Kind identifies which arm of the Exit tagged union is populated.
type Kind uint8

const (
	KindSuccess Kind = iota
	KindRevert
	KindHalt
)

// SuccessReason narrows a KindSuccess exit, per spec.md's selection rule.
type SuccessReason uint8

const (
	ReasonStop SuccessReason = iota
	ReasonReturn
	ReasonSelfDestruct
)

func (r SuccessReason) String() string {
	switch r {
	case ReasonStop:
		return "Stop"
	case ReasonReturn:
		return "Return"
	case ReasonSelfDestruct:
		return "SelfDestruct"
	default:
		return "Unknown"
	}
}

// HaltCode enumerates every exceptional halt this module distinguishes.
// Every backend-specific error symbol must map to exactly one of these; an
// unmapped symbol maps to HaltUnknown and is logged, never silently dropped.
type HaltCode uint8

const (
	HaltOutOfGas HaltCode = iota
	HaltInvalidOpcode
	HaltStackUnderflow
	HaltStackOverflow
	HaltInvalidJump
	HaltWriteProtection
	HaltInsufficientBalance
	HaltContractAddressCollision
	HaltMaxCodeSizeExceeded
	HaltMaxInitCodeSizeExceeded
	HaltDepthLimit
	HaltReturnDataOutOfBounds
	HaltGasUintOverflow
	HaltInvalidCode
	HaltNonceUintOverflow
	HaltUnknown
)

func (c HaltCode) String() string {
	switch c {
	case HaltOutOfGas:
		return "OutOfGas"
	case HaltInvalidOpcode:
		return "InvalidOpcode"
	case HaltStackUnderflow:
		return "StackUnderflow"
	case HaltStackOverflow:
		return "StackOverflow"
	case HaltInvalidJump:
		return "InvalidJump"
	case HaltWriteProtection:
		return "WriteProtection"
	case HaltInsufficientBalance:
		return "InsufficientBalance"
	case HaltContractAddressCollision:
		return "ContractAddressCollision"
	case HaltMaxCodeSizeExceeded:
		return "MaxCodeSizeExceeded"
	case HaltMaxInitCodeSizeExceeded:
		return "MaxInitCodeSizeExceeded"
	case HaltDepthLimit:
		return "DepthLimit"
	case HaltReturnDataOutOfBounds:
		return "ReturnDataOutOfBounds"
	case HaltGasUintOverflow:
		return "GasUintOverflow"
	case HaltInvalidCode:
		return "InvalidCode"
	case HaltNonceUintOverflow:
		return "NonceUintOverflow"
	default:
		return "Unknown"
	}
}

// Exit is the tagged union over Success(reason) / Revert / Halt(code)
// described in spec.md §4.1. ReturnValue is only ever meaningful for
// KindSuccess (the returned bytes) and KindRevert (the revert reason); a
// Halt never carries a return value.
type Exit struct {
	Kind        Kind
	Reason      SuccessReason
	Code        HaltCode
	ReturnValue []byte
}

// Success builds a KindSuccess exit for the given reason.
func Success(reason SuccessReason, returnValue []byte) Exit {
	return Exit{Kind: KindSuccess, Reason: reason, ReturnValue: returnValue}
}

// RevertExit builds a KindRevert exit; returnValue is the user-meaningful
// revert payload (e.g. the ABI-encoded Error(string)).
func RevertExit(returnValue []byte) Exit {
	return Exit{Kind: KindRevert, ReturnValue: returnValue}
}

// Halt builds a KindHalt exit. A halt never carries a return value.
func Halt(code HaltCode) Exit {
	return Exit{Kind: KindHalt, Code: code}
}

// IsError reports whether this exit represents anything other than a clean
// success (reverts and halts both count, matching spec.md's "Exit.Halt /
// Exit.Revert -- not errors; they are normal return paths" framing: IsError
// distinguishes them from Success for convenience, it does not mean they
// should be propagated as Go errors).
func (e Exit) IsError() bool {
	return e.Kind != KindSuccess
}

// GetHaltCode returns the halt code and true iff this exit is a halt.
func (e Exit) GetHaltCode() (HaltCode, bool) {
	if e.Kind != KindHalt {
		return 0, false
	}
	return e.Code, true
}

// SelectSuccessReason applies spec.md's selection rule for backends that do
// not report a success reason directly: self-destruct beats a created
// address or non-empty return value, which in turn beats a bare stop.
func SelectSuccessReason(selfDestructed bool, createdAddress bool, returnValue []byte) SuccessReason {
	switch {
	case selfDestructed:
		return ReasonSelfDestruct
	case createdAddress || len(returnValue) > 0:
		return ReasonReturn
	default:
		return ReasonStop
	}
}

// haltTable covers every halt sentinel exposed as a plain error value by
// medusa-geth's core/vm package. Errors that carry dynamic fields (stack
// under/overflow depth, the specific invalid opcode) are not plain sentinels
// and are matched separately in FromBackendError via errors.As.
var haltTable = map[error]HaltCode{
	vm.ErrOutOfGas:                 HaltOutOfGas,
	vm.ErrCodeStoreOutOfGas:        HaltOutOfGas,
	vm.ErrDepth:                    HaltDepthLimit,
	vm.ErrInsufficientBalance:      HaltInsufficientBalance,
	vm.ErrContractAddressCollision: HaltContractAddressCollision,
	vm.ErrMaxCodeSizeExceeded:      HaltMaxCodeSizeExceeded,
	vm.ErrMaxInitCodeSizeExceeded:  HaltMaxInitCodeSizeExceeded,
	vm.ErrInvalidJump:              HaltInvalidJump,
	vm.ErrWriteProtection:          HaltWriteProtection,
	vm.ErrReturnDataOutOfBounds:    HaltReturnDataOutOfBounds,
	vm.ErrGasUintOverflow:          HaltGasUintOverflow,
	vm.ErrInvalidCode:              HaltInvalidCode,
	vm.ErrNonceUintOverflow:        HaltNonceUintOverflow,
}

var log = xlog.For(xlog.ServiceExit)

// FromBackendError maps a medusa-geth vm execution error to an Exit. Revert
// is detected first (it carries returnValue, unlike every halt); stack
// under/overflow are matched by type since they carry dynamic fields rather
// than being plain sentinels; everything else is looked up in the total
// halt-code mapping, falling back to HaltUnknown for any symbol this module
// does not yet recognize -- which is logged rather than silently swallowed,
// per spec.md §4.1.
func FromBackendError(err error, returnValue []byte) Exit {
	if err == nil {
		return Success(ReasonStop, returnValue)
	}
	if errors.Is(err, vm.ErrExecutionReverted) {
		return RevertExit(returnValue)
	}

	var underflow *vm.ErrStackUnderflow
	if errors.As(err, &underflow) {
		return Halt(HaltStackUnderflow)
	}
	var overflow *vm.ErrStackOverflow
	if errors.As(err, &overflow) {
		return Halt(HaltStackOverflow)
	}
	var invalidOpcode *vm.ErrInvalidOpCode
	if errors.As(err, &invalidOpcode) {
		return Halt(HaltInvalidOpcode)
	}

	for sentinel, code := range haltTable {
		if errors.Is(err, sentinel) {
			return Halt(code)
		}
	}
	log.Warn().Err(err).Msg("unmapped backend execution error, classifying as Halt(Unknown)")
	return Halt(HaltUnknown)
}

func (e Exit) String() string {
	switch e.Kind {
	case KindSuccess:
		return fmt.Sprintf("Success(%s)", e.Reason)
	case KindRevert:
		return "Revert"
	case KindHalt:
		return fmt.Sprintf("Halt(%s)", e.Code)
	default:
		return "Unknown"
	}
}
