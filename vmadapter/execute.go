package vmadapter

import (
	"math/big"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core"
	"github.com/crytic/medusa-geth/core/types"
	"github.com/crytic/medusa-geth/core/vm"
	"github.com/crytic/medusa-geth/crypto"
	"github.com/crytic/medusa-geth/params"

	"github.com/conclave-chain/evmcore/state"
	"github.com/conclave-chain/evmcore/tracebus"
)

// executionEnv bundles the block-level values RunTxInBlock assembles for
// each transaction (the vm.BlockContext, the chain rule set, a gas pool
// holding the gas still left in the block, the block's running
// cumulative-gas counter) with the per-transaction index, so that
// run implementations take one value instead of the long parameter list
// chain/vendored/apply_transaction.go threads through EVMApplyTransaction.
type executionEnv struct {
	blockCtx              vm.BlockContext
	chainCfg              *params.ChainConfig
	gasPool               *core.GasPool
	blockNumber           uint64
	blockHash             common.Hash
	txIndex               int
	cumulativeGasUsed     *uint64
	skipNonce             bool
	codeSizeCheckDisabled bool
}

func blockNumberBig(n uint64) *big.Int {
	return new(big.Int).SetUint64(n)
}

// messageToTransaction synthesizes a types.Transaction from a CallMessage
// purely so the transaction has a stable hash to key receipts/logs/tracing
// hooks by; this module never receives pre-signed transactions (spec.md §3
// drops tx signing entirely). Grounded on chain/test_chain.go's
// messageToTransaction helper.
func messageToTransaction(msg CallMessage, chainID *big.Int) *types.Transaction {
	if msg.GasFeeCap != nil || msg.GasTipCap != nil {
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:    chainID,
			Nonce:      msg.Nonce,
			GasFeeCap:  msg.GasFeeCap,
			GasTipCap:  msg.GasTipCap,
			Gas:        msg.GasLimit,
			To:         msg.To,
			Value:      msg.Value,
			Data:       msg.Data,
			AccessList: msg.AccessList,
		})
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    msg.Nonce,
		GasPrice: msg.GasPrice,
		Gas:      msg.GasLimit,
		To:       msg.To,
		Value:    msg.Value,
		Data:     msg.Data,
	})
}

func contractAddressFor(from common.Address, nonce uint64) common.Address {
	return crypto.CreateAddress(from, nonce)
}

// applyMessage is the message-execution helper shared by NativeAdapter and
// InterpretedAdapter: both call it from their run method, differing only in
// the tracing.Hooks they install via hooksOpts. Grounded on
// chain/vendored/apply_transaction.go's EVMApplyTransaction, updated to the
// modern core.Message/vm.NewEVM(4-arg)/evm.SetTxContext API confirmed
// against the other_examples state_processor.go snapshots.
func applyMessage(j *state.Journal, bus *tracebus.Bus, msg CallMessage, env executionEnv, hooksOpts tracebus.HooksOptions) (*core.ExecutionResult, *types.Receipt, error) {
	backend := j.Backend()

	hooks := bus.ToHooks(hooksOpts)
	vmConfig := vm.Config{
		Tracer:                  hooks,
		NoBaseFee:               env.chainCfg.IsLondon(blockNumberBig(env.blockNumber)) && env.blockCtx.BaseFee == nil,
		AllowUnlimitedContractSize: env.codeSizeCheckDisabled,
	}
	backend.SetLogger(hooks)

	evm := vm.NewEVM(env.blockCtx, backend, env.chainCfg, vmConfig)

	coreMsg := msg.ToCoreMessage(env.skipNonce, env.skipNonce)

	tx := messageToTransaction(msg, env.chainCfg.ChainID)
	backend.SetTxContext(tx.Hash(), env.txIndex)

	txContext := core.NewEVMTxContext(coreMsg)
	evm.SetTxContext(txContext)

	if hooks.OnTxStart != nil {
		hooks.OnTxStart(evm.GetVMContext(), tx, coreMsg.From)
	}

	result, err := core.ApplyMessage(evm, coreMsg, env.gasPool)
	if err != nil {
		if hooks.OnTxEnd != nil {
			hooks.OnTxEnd(nil, err)
		}
		return nil, nil, err
	}

	var postState []byte
	if env.chainCfg.IsByzantium(blockNumberBig(env.blockNumber)) {
		backend.Finalise(true)
	} else {
		postState = backend.IntermediateRoot(env.chainCfg.IsEIP158(blockNumberBig(env.blockNumber))).Bytes()
	}
	*env.cumulativeGasUsed += result.UsedGas

	receipt := &types.Receipt{
		Type:              tx.Type(),
		PostState:         postState,
		CumulativeGasUsed: *env.cumulativeGasUsed,
	}
	if result.Failed() {
		receipt.Status = types.ReceiptStatusFailed
	} else {
		receipt.Status = types.ReceiptStatusSuccessful
	}
	receipt.TxHash = tx.Hash()
	receipt.GasUsed = result.UsedGas

	if msg.To == nil {
		receipt.ContractAddress = contractAddressFor(coreMsg.From, msg.Nonce)
	}

	receipt.Logs = backend.GetLogs(tx.Hash(), env.blockNumber, env.blockHash)
	receipt.Bloom = types.CreateBloom(receipt)
	receipt.BlockHash = env.blockHash
	receipt.BlockNumber = blockNumberBig(env.blockNumber)
	receipt.TransactionIndex = uint(backend.TxIndex())

	if hooks.OnTxEnd != nil {
		hooks.OnTxEnd(receipt, nil)
	}

	return result, receipt, nil
}
