package rpc

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// ConnectWithTimeout dials an Ethereum RPC endpoint, bounded by timeout
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	return ConnectResult{
		Client: &Client{
			Client: client,
			URL:    url,
		},
		Error: nil,
	}
}

// ChainIDWithTimeout reports the connected chain, bounded by timeout.
func (c *Client) ChainIDWithTimeout(timeout time.Duration) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.ChainID(ctx)
}

// BalanceReader is the part of a chain client LoadBalance needs.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Balance is the native-currency balance of the connected account
type Balance struct {
	Address    common.Address
	Wei        *big.Int
	LoadedAt   time.Time
	ErrMessage string
}

// LoadBalance fetches the latest balance of addr. Failures are reported in
// ErrMessage so the account view can still render.
func LoadBalance(client BalanceReader, addr common.Address, timeout time.Duration) Balance {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	b := Balance{
		Address:  addr,
		Wei:      big.NewInt(0),
		LoadedAt: time.Now(),
	}

	if client == nil {
		b.ErrMessage = "No RPC client (set ETH_RPC_URL)."
		return b
	}

	wei, err := client.BalanceAt(ctx, addr, nil)
	if err != nil {
		b.ErrMessage = "Failed to load balance."
		return b
	}
	b.Wei = wei
	return b
}
