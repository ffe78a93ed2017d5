package vmadapter

import (
	"math"
	"math/big"

	"github.com/crytic/medusa-geth/core"
	"github.com/holiman/uint256"
)

// DryRun executes tx against blockCtx without mutating committed state,
// following spec.md §4.4's five-step policy. Grounded on
// chain/test_chain.go's CallContract (snapshot, infinite-skip execution,
// revert-to-snapshot), generalized to also swap in a fork-derived chain
// configuration per the policy's step 3.
func (c *adapterCore) DryRun(tx CallMessage, blockCtx BlockContext, forceBaseFeeZero bool) (*RunTxResult, error) {
	snapshotRoot := c.journal.MakeSnapshot()
	priorChainID, priorNetworkID := c.cfg.ChainID, c.cfg.NetworkID
	priorHardfork := c.currentHardfork

	// hooks undoes every scoped override this dry run makes, in reverse
	// registration order, regardless of whether execution itself succeeds.
	hooks := &GenericHookFuncs{}
	hooks.Register(func() error {
		c.cfg.ChainID, c.cfg.NetworkID = priorChainID, priorNetworkID
		c.currentHardfork = priorHardfork
		return nil
	})
	hooks.Register(func() error {
		return c.journal.SetStateRoot(snapshotRoot)
	})

	hardfork := c.selector(blockCtx.Number)
	c.currentHardfork = hardfork
	c.cfg.ChainID, c.cfg.NetworkID = dryRunChainParams(c, blockCtx.Number)

	chainCfg := c.GetCommon()

	effectiveBlockCtx := blockCtx
	eip1559Active := chainCfg.IsLondon(new(big.Int).SetUint64(blockCtx.Number))
	if eip1559Active && (blockCtx.BaseFee == nil || forceBaseFeeZero) {
		effectiveBlockCtx.BaseFee = big.NewInt(0)
	}

	vmBlockCtx, err := toVMBlockContext(effectiveBlockCtx, isMerge(hardfork), c.chainView)
	if err != nil {
		hooks.RunOnRevertHooks()
		return nil, err
	}

	// Skip the balance check by granting the sender a balance no real
	// transaction could ever hold; the state root restore below undoes it
	// unconditionally, so there is nothing to put back explicitly.
	acct := c.journal.GetAccount(tx.From)
	acct.Balance = new(uint256.Int).SetAllOne()
	c.journal.PutAccount(tx.From, acct)

	env := executionEnv{
		blockCtx:              vmBlockCtx,
		chainCfg:              chainCfg,
		gasPool:               new(core.GasPool).AddGas(math.MaxUint64),
		blockNumber:           effectiveBlockCtx.Number,
		blockHash:             blockHashFor(effectiveBlockCtx),
		txIndex:               0,
		cumulativeGasUsed:     new(uint64),
		skipNonce:             true,
		codeSizeCheckDisabled: true,
	}

	result, receipt, runErr := c.exec.run(c.journal, c.bus, tx, env)
	if revertErr := hooks.RunOnRevertHooks(); revertErr != nil && runErr == nil {
		runErr = revertErr
	}
	if runErr != nil {
		return nil, &BackendExecutionError{Err: runErr}
	}

	return normalizeResult(c.journal, c.bus, tx, result, receipt), nil
}

// dryRunChainParams implements step 3's identity rule: chainId is the
// configured chainId once blockNumber is at or past the fork block,
// otherwise the fork network's own chainId; networkId mirrors forkNetworkId
// when forked, otherwise the configured networkId.
func dryRunChainParams(c *adapterCore, blockNumber uint64) (*big.Int, uint64) {
	if !c.cfg.Forked() {
		return c.cfg.ChainID, c.cfg.NetworkID
	}
	if blockNumber >= c.cfg.Fork.RpcBlock {
		return c.cfg.ChainID, c.cfg.Fork.NetworkID
	}
	return new(big.Int).SetUint64(c.cfg.Fork.NetworkID), c.cfg.Fork.NetworkID
}
