// Package remote implements cold reads of upstream chain state for the
// forking feature described in spec.md §4.4: a single JSON-RPC client
// (no connection pool) fronted by the two-tier cache in the state/cache
// package. Grounded on
// chain/fork/rpc/client_pool.go and chain/fork/remote_state_rpc_query.go.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/conclave-chain/evmcore/internal/xlog"
)

var log = xlog.For(xlog.ServiceState)

// Client is the JSON-RPC surface this module needs from an upstream node.
// Matches the Client shape named in SPEC_FULL.md §6.
type Client interface {
	NetworkID(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, addr common.Address, block uint64) (*uint256.Int, error)
	CodeAt(ctx context.Context, addr common.Address, block uint64) ([]byte, error)
	StorageAt(ctx context.Context, addr common.Address, key common.Hash, block uint64) (common.Hash, error)
	NonceAt(ctx context.Context, addr common.Address, block uint64) (uint64, error)
}

// HTTPClient is a minimal JSON-RPC 2.0 client over HTTP, good enough for
// the handful of read-only calls a fork-aware backend needs.
type HTTPClient struct {
	endpoint string
	http     *http.Client
	nextID   uint64
}

func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *HTTPClient) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	id := atomic.AddUint64(&c.nextID, 1)
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return xlog.Wrap(err, "rpc call "+method)
	}
	defer resp.Body.Close()

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return xlog.Wrap(err, "decode rpc response")
	}
	if decoded.Error != nil {
		return fmt.Errorf("rpc error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(decoded.Result, out)
}

func blockTag(block uint64) string {
	return hexutil.EncodeUint64(block)
}

func (c *HTTPClient) NetworkID(ctx context.Context) (uint64, error) {
	var hex string
	if err := c.call(ctx, "net_version", nil, &hex); err != nil {
		return 0, err
	}
	var id uint64
	_, err := fmt.Sscanf(hex, "%d", &id)
	return id, err
}

func (c *HTTPClient) BalanceAt(ctx context.Context, addr common.Address, block uint64) (*uint256.Int, error) {
	var hex hexutil.Big
	if err := c.call(ctx, "eth_getBalance", []interface{}{addr, blockTag(block)}, &hex); err != nil {
		return nil, err
	}
	balance, overflow := uint256.FromBig(hex.ToInt())
	if overflow {
		return nil, fmt.Errorf("remote balance for %s overflows uint256", addr)
	}
	return balance, nil
}

func (c *HTTPClient) CodeAt(ctx context.Context, addr common.Address, block uint64) ([]byte, error) {
	var hex hexutil.Bytes
	if err := c.call(ctx, "eth_getCode", []interface{}{addr, blockTag(block)}, &hex); err != nil {
		return nil, err
	}
	return hex, nil
}

func (c *HTTPClient) StorageAt(ctx context.Context, addr common.Address, key common.Hash, block uint64) (common.Hash, error) {
	var hex hexutil.Bytes
	if err := c.call(ctx, "eth_getStorageAt", []interface{}{addr, key, blockTag(block)}, &hex); err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(hex), nil
}

func (c *HTTPClient) NonceAt(ctx context.Context, addr common.Address, block uint64) (uint64, error) {
	var hex hexutil.Uint64
	if err := c.call(ctx, "eth_getTransactionCount", []interface{}{addr, blockTag(block)}, &hex); err != nil {
		return 0, err
	}
	return uint64(hex), nil
}

var _ Client = (*HTTPClient)(nil)
