package vmadapter

import (
	"math/big"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core"
	"github.com/crytic/medusa-geth/crypto"
)

// StartBlock pushes a state checkpoint and opens a new block. It is an
// error to call StartBlock while a checkpoint is already open (spec.md
// §3's single-open-checkpoint invariant).
func (c *adapterCore) StartBlock(blockCtx BlockContext) error {
	if c.checkpointOpen {
		return &InvalidBlockLifecycle{Op: "startBlock", Reason: "a block checkpoint is already open"}
	}
	c.checkpointRoot = c.journal.MakeSnapshot()
	c.journal.Checkpoint()
	c.currentBlockCtx = blockCtx
	c.currentHardfork = c.selector(blockCtx.Number)
	c.checkpointOpen = true
	c.txIndex = 0
	c.cumulativeGasUsed = 0
	return nil
}

// blockHashFor derives a stand-in block hash for receipt and log fields
// (the BLOCKHASH opcode reads hashes from the ChainView instead). This module has no miner/header-sealing collaborator
// (spec.md §1 names the block miner as out of scope), so it hashes the
// parent hash and number instead of a full RLP header the way a sealed
// chain would.
func blockHashFor(bc BlockContext) common.Hash {
	return crypto.Keccak256Hash(bc.ParentHash.Bytes(), new(big.Int).SetUint64(bc.Number).Bytes())
}

// RunTxInBlock executes tx into the currently open block checkpoint.
func (c *adapterCore) RunTxInBlock(tx CallMessage) (*RunTxResult, error) {
	if !c.checkpointOpen {
		return nil, &InvalidBlockLifecycle{Op: "runTxInBlock", Reason: "no block checkpoint is open; call startBlock first"}
	}

	chainCfg := c.GetCommon()
	vmBlockCtx, err := toVMBlockContext(c.currentBlockCtx, isMerge(c.currentHardfork), c.chainView)
	if err != nil {
		return nil, err
	}

	gasPool := new(core.GasPool).AddGas(c.currentBlockCtx.GasLimit - c.cumulativeGasUsed)
	blockHash := blockHashFor(c.currentBlockCtx)

	env := executionEnv{
		blockCtx:              vmBlockCtx,
		chainCfg:              chainCfg,
		gasPool:               gasPool,
		blockNumber:           c.currentBlockCtx.Number,
		blockHash:             blockHash,
		txIndex:               c.txIndex,
		cumulativeGasUsed:     &c.cumulativeGasUsed,
		skipNonce:             c.cfg.SkipAccountChecks,
		codeSizeCheckDisabled: c.cfg.AllowUnlimitedContractSize,
	}

	result, receipt, err := c.exec.run(c.journal, c.bus, tx, env)
	if err != nil {
		return nil, &BackendExecutionError{Err: err}
	}
	c.txIndex++

	return normalizeResult(c.journal, c.bus, tx, result, receipt), nil
}

// AddBlockRewards credits each reward directly through the journal's
// balance path, creating the destination account if it does not yet
// exist (spec.md §4.4 Open Question 3, resolved: "rewards must credit
// real balances").
func (c *adapterCore) AddBlockRewards(rewards []Reward) error {
	if !c.checkpointOpen {
		return &InvalidBlockLifecycle{Op: "addBlockRewards", Reason: "no block checkpoint is open"}
	}
	for _, reward := range rewards {
		amount, overflow := uint256FromBig(reward.Amount)
		if overflow {
			return &BackendExecutionError{Err: errAmountOverflow(reward.Address)}
		}
		c.journal.CreditBalance(reward.Address, amount)
	}
	return nil
}

// SealBlock commits the open checkpoint and flushes it to the backing
// trie, returning the resulting state root (Open Question 2, resolved:
// "commit at sealBlock").
func (c *adapterCore) SealBlock() (common.Hash, error) {
	if !c.checkpointOpen {
		return common.Hash{}, &InvalidBlockLifecycle{Op: "sealBlock", Reason: "no block checkpoint is open"}
	}
	c.journal.Commit()
	root, err := c.journal.Flush(c.currentBlockCtx.Number)
	c.checkpointOpen = false
	if err != nil {
		return common.Hash{}, &BackendExecutionError{Err: err}
	}
	return root, nil
}

// RevertBlock discards every write made since StartBlock, restoring the
// state root captured at that time.
func (c *adapterCore) RevertBlock() error {
	if !c.checkpointOpen {
		return &InvalidBlockLifecycle{Op: "revertBlock", Reason: "no block checkpoint is open"}
	}
	c.journal.Revert()
	c.checkpointOpen = false
	return nil
}
