package vmadapter

import (
	"math/big"

	"github.com/crytic/medusa-geth/common"
)

// GenesisAccount seeds one account at construction time.
type GenesisAccount struct {
	Balance *big.Int          `json:"balance"`
	Nonce   uint64            `json:"nonce,omitempty"`
	Code    []byte            `json:"code,omitempty"`
	Storage map[common.Hash]common.Hash `json:"storage,omitempty"`
}

// ForkConfig describes the upstream node and height a forked adapter reads
// cold state from. Grounded on chain/config/config.go's ForkConfig, field
// names preserved, plus NetworkID (spec.md §4.4's "remember forkNetworkId
// and forkBlockNumber").
type ForkConfig struct {
	ForkModeEnabled bool   `json:"forkModeEnabled"`
	RpcUrl          string `json:"rpcUrl"`
	RpcBlock        uint64 `json:"rpcBlock"`
	PoolSize        uint   `json:"poolSize"`
	NetworkID       uint64 `json:"networkId"`
}

// Config is this module's TestChainConfig-equivalent: everything the
// Create functions need besides the HardforkSelector, the ChainView and
// (for a forked InterpretedAdapter) the RemoteReader. Grounded on chain/config/config.go's
// TestChainConfig, trimmed to this module's scope (no cheat codes, no
// contract address overrides — those are fuzzer-harness concerns the
// spec names as external collaborators).
type Config struct {
	ChainID                    *big.Int                  `json:"chainId"`
	NetworkID                  uint64                    `json:"networkId"`
	Hardfork                   string                    `json:"hardfork"`
	GenesisAlloc               map[common.Address]GenesisAccount `json:"genesisAlloc"`
	AllowUnlimitedContractSize bool                       `json:"allowUnlimitedContractSize"`
	SkipAccountChecks          bool                       `json:"skipAccountChecks"`
	Fork                       *ForkConfig                `json:"forkConfig,omitempty"`
}

// HardforkSelector is a pure function from block number to hardfork name,
// injected at construction (spec.md §3).
type HardforkSelector func(blockNumber uint64) string

// Forked reports whether cfg carries an enabled fork configuration.
func (c Config) Forked() bool {
	return c.Fork != nil && c.Fork.ForkModeEnabled
}
