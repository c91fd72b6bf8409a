package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RPCProvider talks to a wallet that exposes the injected-provider methods
// over JSON-RPC, such as a local node with unlocked accounts or a desktop
// wallet bridge.
type RPCProvider struct {
	client *rpc.Client
	URL    string
}

// DialProvider connects to a wallet provider endpoint.
func DialProvider(ctx context.Context, url string) (*RPCProvider, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &RPCProvider{client: c, URL: url}, nil
}

// NewRPCProvider wraps an existing RPC client.
func NewRPCProvider(c *rpc.Client) *RPCProvider {
	return &RPCProvider{client: c}
}

func (p *RPCProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (p *RPCProvider) Signer(_ context.Context, account common.Address) (Signer, error) {
	return &rpcSigner{client: p.client, from: account}, nil
}

// Close releases the underlying connection.
func (p *RPCProvider) Close() {
	p.client.Close()
}

// rpcSigner leaves signing to the wallet through eth_sendTransaction.
type rpcSigner struct {
	client *rpc.Client
	from   common.Address
}

type sendTxArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Data  hexutil.Bytes   `json:"data,omitempty"`
}

func (s *rpcSigner) Address() common.Address { return s.from }

func (s *rpcSigner) SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error) {
	to := req.To
	args := sendTxArgs{From: s.from, To: &to, Data: req.Data}
	if req.Value != nil && req.Value.Sign() > 0 {
		args.Value = (*hexutil.Big)(req.Value)
	}

	var hash common.Hash
	if err := s.client.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, classify(err)
	}
	return hash, nil
}
