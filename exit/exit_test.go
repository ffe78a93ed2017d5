package exit

import (
	"testing"

	"github.com/crytic/medusa-geth/core/vm"
	"github.com/stretchr/testify/require"
)

func TestFromBackendError_Revert(t *testing.T) {
	returnValue := []byte{0x08, 0xc3, 0x79, 0xa0}
	e := FromBackendError(vm.ErrExecutionReverted, returnValue)
	require.Equal(t, KindRevert, e.Kind)
	require.Equal(t, returnValue, e.ReturnValue)
	require.True(t, e.IsError())
}

func TestFromBackendError_OutOfGas(t *testing.T) {
	e := FromBackendError(vm.ErrOutOfGas, nil)
	code, ok := e.GetHaltCode()
	require.True(t, ok)
	require.Equal(t, HaltOutOfGas, code)
	require.Nil(t, e.ReturnValue)
}

func TestFromBackendError_Unknown(t *testing.T) {
	e := FromBackendError(errUnrecognized{}, nil)
	code, ok := e.GetHaltCode()
	require.True(t, ok)
	require.Equal(t, HaltUnknown, code)
}

func TestFromBackendError_Nil(t *testing.T) {
	e := FromBackendError(nil, []byte("ok"))
	require.Equal(t, KindSuccess, e.Kind)
	require.False(t, e.IsError())
}

func TestSelectSuccessReason(t *testing.T) {
	require.Equal(t, ReasonSelfDestruct, SelectSuccessReason(true, true, []byte{1}))
	require.Equal(t, ReasonReturn, SelectSuccessReason(false, true, nil))
	require.Equal(t, ReasonReturn, SelectSuccessReason(false, false, []byte{1}))
	require.Equal(t, ReasonStop, SelectSuccessReason(false, false, nil))
}

type errUnrecognized struct{}

func (errUnrecognized) Error() string { return "some infrastructure-specific backend error" }
