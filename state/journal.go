package state

import (
	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core/state"
	"github.com/crytic/medusa-geth/core/tracing"
	"github.com/holiman/uint256"

	"github.com/conclave-chain/evmcore/internal/xlog"
)

var log = xlog.For(xlog.ServiceState)

// Account mirrors spec.md §3's Account record; code is addressed separately
// by CodeHash through GetContractCode/PutContractCode.
type Account struct {
	Nonce       uint64
	Balance     *uint256.Int
	CodeHash    common.Hash
	StorageRoot common.Hash
}

// Journal is the state handle described in spec.md §4.3: checkpoint/commit/
// revert over a pluggable Backend, plus state-root based snapshot
// export/restore. One Journal backs one VM adapter instance.
type Journal struct {
	dbs     state.Database
	factory Factory
	backend Backend

	root        common.Hash
	checkpoints []int

	// knownRoots tracks every root this journal has ever produced via Flush
	// or MakeSnapshot, so SetStateRoot can reject a root it never observed
	// with ErrUnknownStateRoot instead of silently reopening garbage state.
	knownRoots map[common.Hash]struct{}
}

// NewJournal opens a Journal rooted at genesisRoot using factory.
func NewJournal(factory Factory, dbs state.Database, genesisRoot common.Hash) (*Journal, error) {
	backend, err := factory.New(genesisRoot, dbs)
	if err != nil {
		return nil, xlog.Wrap(err, "open genesis state")
	}
	return &Journal{
		dbs:        dbs,
		factory:    factory,
		backend:    backend,
		root:       genesisRoot,
		knownRoots: map[common.Hash]struct{}{genesisRoot: {}},
	}, nil
}

// Backend exposes the underlying Backend for callers (the VM adapter) that
// need to hand it directly to a vm.EVM.
func (j *Journal) Backend() Backend {
	return j.backend
}

// Checkpoint pushes a savepoint and returns its id.
func (j *Journal) Checkpoint() int {
	id := j.backend.Snapshot()
	j.checkpoints = append(j.checkpoints, id)
	return id
}

// Commit drops the top savepoint, keeping the writes made since it was
// taken.
func (j *Journal) Commit() {
	if len(j.checkpoints) == 0 {
		return
	}
	j.checkpoints = j.checkpoints[:len(j.checkpoints)-1]
}

// Revert discards writes made since the top savepoint was taken and pops
// it.
func (j *Journal) Revert() {
	if len(j.checkpoints) == 0 {
		return
	}
	id := j.checkpoints[len(j.checkpoints)-1]
	j.checkpoints = j.checkpoints[:len(j.checkpoints)-1]
	j.backend.RevertToSnapshot(id)
}

// GetStateRoot returns the Merkle root over the committed account/storage/
// code maps, deterministic regardless of insertion order (spec.md §3).
func (j *Journal) GetStateRoot() common.Hash {
	return j.backend.IntermediateRoot(true)
}

// SetStateRoot jumps the working state to root, failing with
// ErrUnknownStateRoot if root was never observed by this journal.
func (j *Journal) SetStateRoot(root common.Hash) error {
	if _, ok := j.knownRoots[root]; !ok {
		return &ErrUnknownStateRoot{Root: root.Hex()}
	}
	backend, err := j.factory.New(root, j.dbs)
	if err != nil {
		return xlog.Wrap(err, "reopen state at root")
	}
	j.backend = backend
	j.root = root
	j.checkpoints = j.checkpoints[:0]
	return nil
}

// MakeSnapshot returns the current root without mutating the working set;
// the result is a lightweight reference usable later with SetStateRoot.
func (j *Journal) MakeSnapshot() common.Hash {
	root := j.GetStateRoot()
	j.knownRoots[root] = struct{}{}
	return root
}

// Flush commits the backend's pending writes to the underlying trie
// database under the given block number and records the resulting root as
// known. This is where sealBlock's state commit happens (spec.md §9 Open
// Question 2, resolved as "commit at sealBlock" -- see DESIGN.md).
func (j *Journal) Flush(block uint64) (common.Hash, error) {
	root, err := j.backend.Commit(block, true)
	if err != nil {
		return common.Hash{}, xlog.Wrap(err, "commit state")
	}
	j.root = root
	j.knownRoots[root] = struct{}{}
	return root, nil
}

// GetAccount reads the current account record for addr.
func (j *Journal) GetAccount(addr common.Address) Account {
	return Account{
		Nonce:    j.backend.GetNonce(addr),
		Balance:  j.backend.GetBalance(addr),
		CodeHash: j.backend.GetCodeHash(addr),
	}
}

// PutAccount writes nonce and balance for addr, creating the account if it
// does not yet exist.
func (j *Journal) PutAccount(addr common.Address, acct Account) {
	if !j.backend.Exist(addr) {
		j.backend.CreateAccount(addr)
	}
	j.backend.SetNonce(addr, acct.Nonce)
	j.backend.SetBalance(addr, acct.Balance, tracing.BalanceChangeUnspecified)
}

// CreditBalance adds amount to addr's balance, creating the account if it
// does not yet exist (addBlockRewards' create-on-credit relies on this).
func (j *Journal) CreditBalance(addr common.Address, amount *uint256.Int) {
	if !j.backend.Exist(addr) {
		j.backend.CreateAccount(addr)
	}
	current := j.backend.GetBalance(addr)
	updated := new(uint256.Int).Add(current, amount)
	j.backend.SetBalance(addr, updated, tracing.BalanceIncreaseRewardMineBlock)
}

func (j *Journal) GetContractCode(addr common.Address) []byte {
	return j.backend.GetCode(addr)
}

func (j *Journal) PutContractCode(addr common.Address, code []byte) {
	j.backend.SetCode(addr, code)
}

func (j *Journal) GetContractStorage(addr common.Address, key common.Hash) common.Hash {
	return j.backend.GetState(addr, key)
}

func (j *Journal) PutContractStorage(addr common.Address, key, value common.Hash) {
	j.backend.SetState(addr, key, value)
}

func (j *Journal) AccountIsEmpty(addr common.Address) bool {
	return j.backend.Empty(addr)
}
