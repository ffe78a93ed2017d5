package state

import (
	"github.com/crytic/medusa-geth/core/rawdb"
	"github.com/crytic/medusa-geth/core/state"
	"github.com/crytic/medusa-geth/triedb"
)

// NewInMemoryDatabase returns a state.Database backed entirely by an
// in-memory key/value store, suitable for the non-forked dev-node case
// (spec.md §4.3's "plain" journal, no remote state behind it). Grounded on
// chain/test_chain.go's construction of its genesis StateDB.
func NewInMemoryDatabase() state.Database {
	kv := rawdb.NewMemoryDatabase()
	return state.NewDatabase(triedb.NewDatabase(kv, nil), nil)
}

// NewMemoryJournal opens a Journal over a fresh in-memory database rooted
// at the empty trie, the starting point for a local dev node before
// genesis allocation is applied.
func NewMemoryJournal() (*Journal, error) {
	dbs := NewInMemoryDatabase()
	return NewJournal(VanillaFactory{}, dbs, EmptyRoot(dbs))
}

// EmptyRoot commits a fresh, empty trie over dbs and returns its root,
// the starting point any Factory (vanilla or forked) opens a genesis
// Journal from before allocation is applied.
func EmptyRoot(dbs state.Database) (root [32]byte) {
	backend, err := state.New(root, dbs)
	if err != nil {
		// An empty trie over a fresh in-memory database cannot fail to
		// open; if it does, every other operation in this package is
		// already broken.
		panic(err)
	}
	r, err := backend.Commit(0, false)
	if err != nil {
		panic(err)
	}
	return r
}
