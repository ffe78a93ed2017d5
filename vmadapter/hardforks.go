package vmadapter

import (
	"math/big"

	"github.com/crytic/medusa-geth/params"
)

// Hardfork names recognized by GteHardfork and chainConfigForHardfork.
// Ordered oldest to newest; order is significant for gte
// comparisons.
const (
	HardforkFrontier     = "Frontier"
	HardforkHomestead    = "Homestead"
	HardforkTangerine    = "TangerineWhistle"
	HardforkSpuriousDrag = "SpuriousDragon"
	HardforkByzantium    = "Byzantium"
	HardforkConstantinop = "Constantinople"
	HardforkPetersburg   = "Petersburg"
	HardforkIstanbul     = "Istanbul"
	HardforkBerlin       = "Berlin"
	HardforkLondon       = "London"
	HardforkMerge        = "Merge"
	HardforkShanghai     = "Shanghai"
	HardforkCancun       = "Cancun"
)

// hardforkOrder lists every recognized hardfork oldest-first, used to
// implement gteHardfork without depending on params.ChainConfig's own
// (block-number-shaped) ordering machinery.
var hardforkOrder = []string{
	HardforkFrontier, HardforkHomestead, HardforkTangerine, HardforkSpuriousDrag,
	HardforkByzantium, HardforkConstantinop, HardforkPetersburg, HardforkIstanbul,
	HardforkBerlin, HardforkLondon, HardforkMerge, HardforkShanghai, HardforkCancun,
}

func hardforkIndex(name string) int {
	for i, n := range hardforkOrder {
		if n == name {
			return i
		}
	}
	return -1
}

// chainConfigForHardfork builds a params.ChainConfig that activates every
// rule up to and including name at block 0 (and, for post-Merge forks,
// time 0), the way a local dev node pins a single hardfork for its entire
// lifetime rather than scheduling a real mainnet-style fork schedule.
func chainConfigForHardfork(chainID *big.Int, name string) *params.ChainConfig {
	zero := big.NewInt(0)
	cfg := &params.ChainConfig{ChainID: chainID}

	idx := hardforkIndex(name)
	if idx < 0 {
		idx = hardforkIndex(HardforkCancun)
	}

	atOrAfter := func(hf string) *big.Int {
		if idx >= hardforkIndex(hf) {
			return zero
		}
		return nil
	}

	cfg.HomesteadBlock = atOrAfter(HardforkHomestead)
	cfg.EIP150Block = atOrAfter(HardforkTangerine)
	cfg.EIP155Block = atOrAfter(HardforkSpuriousDrag)
	cfg.EIP158Block = atOrAfter(HardforkSpuriousDrag)
	cfg.ByzantiumBlock = atOrAfter(HardforkByzantium)
	cfg.ConstantinopleBlock = atOrAfter(HardforkConstantinop)
	cfg.PetersburgBlock = atOrAfter(HardforkPetersburg)
	cfg.IstanbulBlock = atOrAfter(HardforkIstanbul)
	cfg.BerlinBlock = atOrAfter(HardforkBerlin)
	cfg.LondonBlock = atOrAfter(HardforkLondon)

	if idx >= hardforkIndex(HardforkMerge) {
		cfg.TerminalTotalDifficulty = zero
	}
	if idx >= hardforkIndex(HardforkShanghai) {
		t := uint64(0)
		cfg.ShanghaiTime = &t
	}
	if idx >= hardforkIndex(HardforkCancun) {
		t := uint64(0)
		cfg.CancunTime = &t
	}

	return cfg
}

// isMerge reports whether name is at or after the Merge, the boundary at
// which prevRandao supplants difficulty (spec.md §4.4's block-environment
// mapping rule).
func isMerge(name string) bool {
	return hardforkIndex(name) >= hardforkIndex(HardforkMerge)
}
