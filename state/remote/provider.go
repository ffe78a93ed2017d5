package remote

import (
	"context"

	"github.com/crytic/medusa-geth/common"
	"github.com/holiman/uint256"

	"github.com/conclave-chain/evmcore/state/cache"
)

// Provider answers account/code/storage reads pinned at a fork block,
// checking cache before ever making a network call. It implements
// state.RemoteReader. Grounded on chain/state/remote_state_provider.go.
type Provider struct {
	client Client
	cache  cache.Cache
	ctx    context.Context
}

// NewProvider builds a Provider. ctx bounds every outbound RPC call this
// provider makes; callers typically pass context.Background() for a
// long-lived dev node.
func NewProvider(ctx context.Context, client Client, c cache.Cache) *Provider {
	return &Provider{client: client, cache: c, ctx: ctx}
}

func (p *Provider) Balance(addr common.Address, block uint64) (*uint256.Int, error) {
	key := cache.AccountKey{Block: block, Address: addr}
	if v, ok := p.cache.GetBalance(key); ok {
		return v, nil
	}
	v, err := p.client.BalanceAt(p.ctx, addr, block)
	if err != nil {
		return nil, err
	}
	p.cache.PutBalance(key, v)
	return v, nil
}

func (p *Provider) Nonce(addr common.Address, block uint64) (uint64, error) {
	key := cache.AccountKey{Block: block, Address: addr}
	if v, ok := p.cache.GetNonce(key); ok {
		return v, nil
	}
	v, err := p.client.NonceAt(p.ctx, addr, block)
	if err != nil {
		return 0, err
	}
	p.cache.PutNonce(key, v)
	return v, nil
}

func (p *Provider) Code(addr common.Address, block uint64) ([]byte, error) {
	key := cache.AccountKey{Block: block, Address: addr}
	if v, ok := p.cache.GetCode(key); ok {
		return v, nil
	}
	v, err := p.client.CodeAt(p.ctx, addr, block)
	if err != nil {
		return nil, err
	}
	p.cache.PutCode(key, v)
	return v, nil
}

func (p *Provider) Storage(addr common.Address, slot common.Hash, block uint64) (common.Hash, error) {
	key := cache.StorageKey{Block: block, Address: addr, Slot: slot}
	if v, ok := p.cache.GetStorage(key); ok {
		return v, nil
	}
	v, err := p.client.StorageAt(p.ctx, addr, slot, block)
	if err != nil {
		return common.Hash{}, err
	}
	p.cache.PutStorage(key, v)
	return v, nil
}
