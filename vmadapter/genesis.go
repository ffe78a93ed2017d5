package vmadapter

import (
	"github.com/holiman/uint256"

	"github.com/conclave-chain/evmcore/state"
)

// newGenesisJournal opens a fresh Journal over factory and applies cfg's
// genesis allocation to it, mirroring chain/test_chain.go's NewTestNode
// genesis-seeding loop but driven by this module's Config.GenesisAlloc
// instead of a core.GenesisAlloc value.
func newGenesisJournal(cfg Config, factory state.Factory) (*state.Journal, error) {
	dbs := state.NewInMemoryDatabase()
	journal, err := state.NewJournal(factory, dbs, state.EmptyRoot(dbs))
	if err != nil {
		return nil, err
	}

	for addr, acct := range cfg.GenesisAlloc {
		balance, _ := uint256.FromBig(acct.Balance)
		journal.PutAccount(addr, state.Account{
			Nonce:   acct.Nonce,
			Balance: balance,
		})
		if len(acct.Code) > 0 {
			journal.PutContractCode(addr, acct.Code)
		}
		for key, value := range acct.Storage {
			journal.PutContractStorage(addr, key, value)
		}
	}

	journal.Checkpoint()
	journal.Commit()
	root, err := journal.Flush(0)
	if err != nil {
		return nil, err
	}
	if err := journal.SetStateRoot(root); err != nil {
		return nil, err
	}

	return journal, nil
}
