package state

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core/state"
	"github.com/crytic/medusa-geth/core/tracing"
	"github.com/holiman/uint256"
)

// RemoteReader is the read side a ForkFactory needs from a remote-state
// provider: account/code/storage as of a specific block number. Grounded
// on chain/fork/remote_state_provider.go and chain/state/remote_state_provider.go,
// collapsed to the subset this journal consumes.
type RemoteReader interface {
	Balance(addr common.Address, block uint64) (*uint256.Int, error)
	Nonce(addr common.Address, block uint64) (uint64, error)
	Code(addr common.Address, block uint64) ([]byte, error)
	Storage(addr common.Address, key common.Hash, block uint64) (common.Hash, error)
}

// ForkFactory builds fork-aware Backends: a local in-memory StateDB whose
// cold reads fall through to a RemoteReader pinned at ForkBlock, caching
// results locally so repeat reads never cross the network twice (spec.md
// §4.4's forking support). Grounded on chain/fork/factories.go's
// ForkedStateFactory.
type ForkFactory struct {
	Remote    RemoteReader
	ForkBlock uint64
}

func (f ForkFactory) New(root common.Hash, db state.Database) (Backend, error) {
	local, err := state.New(root, db)
	if err != nil {
		return nil, err
	}
	return &forkedBackend{
		Backend: local,
		remote:  f.Remote,
		block:   f.ForkBlock,
		touched: make(map[common.Address]bool),
	}, nil
}

// forkedBackend wraps a local geth-native Backend, serving reads for
// accounts that have never been written to locally from the remote chain
// instead, then materializing the result into the local backend so it
// participates in snapshot/revert and IntermediateRoot like any other
// account. This is the "cold read, warm write" split described in spec.md
// §4.4.
type forkedBackend struct {
	Backend
	remote RemoteReader
	block  uint64

	touched map[common.Address]bool
}

func (f *forkedBackend) hydrate(addr common.Address) {
	if f.touched[addr] || f.remote == nil {
		return
	}
	f.touched[addr] = true

	if balance, err := f.remote.Balance(addr, f.block); err == nil && balance != nil && balance.Sign() != 0 {
		f.Backend.SetBalance(addr, balance, tracing.BalanceChangeUnspecified)
	}
	if nonce, err := f.remote.Nonce(addr, f.block); err == nil && nonce != 0 {
		f.Backend.SetNonce(addr, nonce)
	}
	if code, err := f.remote.Code(addr, f.block); err == nil && len(code) > 0 {
		f.Backend.SetCode(addr, code)
	}
}

func (f *forkedBackend) GetBalance(addr common.Address) *uint256.Int {
	f.hydrate(addr)
	return f.Backend.GetBalance(addr)
}

func (f *forkedBackend) GetNonce(addr common.Address) uint64 {
	f.hydrate(addr)
	return f.Backend.GetNonce(addr)
}

func (f *forkedBackend) GetCode(addr common.Address) []byte {
	f.hydrate(addr)
	return f.Backend.GetCode(addr)
}

func (f *forkedBackend) GetCodeHash(addr common.Address) common.Hash {
	f.hydrate(addr)
	return f.Backend.GetCodeHash(addr)
}

func (f *forkedBackend) GetState(addr common.Address, key common.Hash) common.Hash {
	if local := f.Backend.GetState(addr, key); local != (common.Hash{}) {
		return local
	}
	if f.remote == nil {
		return common.Hash{}
	}
	value, err := f.remote.Storage(addr, key, f.block)
	if err != nil {
		return common.Hash{}
	}
	if value != (common.Hash{}) {
		f.Backend.SetState(addr, key, value)
	}
	return value
}

func (f *forkedBackend) Exist(addr common.Address) bool {
	f.hydrate(addr)
	return f.Backend.Exist(addr)
}

func (f *forkedBackend) Empty(addr common.Address) bool {
	f.hydrate(addr)
	return f.Backend.Empty(addr)
}

var _ Backend = (*forkedBackend)(nil)
