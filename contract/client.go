// Package contract wraps the property registry contract: one method per
// remote call, tuples normalized into Property and Transfer records.
package contract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"estate-dapp-tui/wallet"
)

const (
	defaultQueryTimeout = 12 * time.Second
	defaultPollInterval = time.Second
)

// Backend is the chain access the client needs.
type Backend interface {
	bind.ContractCaller
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Connector yields a signer on demand, typically wallet.Connect.
type Connector func(ctx context.Context) (wallet.Signer, error)

// ConnectWith adapts a wallet provider into a Connector.
func ConnectWith(p wallet.Provider) Connector {
	return func(ctx context.Context) (wallet.Signer, error) {
		return wallet.Connect(ctx, p)
	}
}

// Client talks to one deployed contract. It is immutable; WithSigner returns
// a bound copy.
type Client struct {
	backend      Backend
	address      common.Address
	signer       wallet.Signer
	connect      Connector
	logger       *log.Logger
	queryTimeout time.Duration
	pollInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

func WithConnector(fn Connector) Option {
	return func(c *Client) { c.connect = fn }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithQueryTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.queryTimeout = d
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// New returns a client for the contract at address.
func New(backend Backend, address common.Address, opts ...Option) *Client {
	c := &Client{
		backend:      backend,
		address:      address,
		logger:       log.New(io.Discard),
		queryTimeout: defaultQueryTimeout,
		pollInterval: defaultPollInterval,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithSigner returns a copy of c bound to s.
func (c *Client) WithSigner(s wallet.Signer) *Client {
	cp := *c
	cp.signer = s
	return &cp
}

// Address is the contract address.
func (c *Client) Address() common.Address { return c.address }

// Signer is the bound signer, nil when unbound.
func (c *Client) Signer() wallet.Signer { return c.signer }

// Verify checks that code is deployed at the contract address.
func (c *Client) Verify(ctx context.Context) error {
	const op = "verify"
	if err := c.ready(); err != nil {
		return c.fail(op, err)
	}
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	code, err := c.backend.CodeAt(ctx, c.address, nil)
	if err != nil {
		return c.fail(op, err)
	}
	if len(code) == 0 {
		return c.fail(op, fmt.Errorf("%w %s", ErrNoContract, c.address.Hex()))
	}
	return nil
}

// ---- reads ----

func (c *Client) AvailableProperties(ctx context.Context) ([]Property, error) {
	return c.properties(ctx, "getAvailableProperties", c.from())
}

// MyProperties lists the properties owned by the signer, connecting first
// when the client is unbound.
func (c *Client) MyProperties(ctx context.Context) ([]Property, error) {
	const op = "getMyProperties"
	if err := c.ready(); err != nil {
		return nil, c.fail(op, err)
	}
	s, err := c.signerFor(ctx)
	if err != nil {
		return nil, c.fail(op, err)
	}
	return c.properties(ctx, op, s.Address())
}

func (c *Client) Property(ctx context.Context, tokenID *big.Int) (Property, error) {
	const op = "getPropertyInfo"
	out, err := c.call(ctx, op, c.from(), nonNil(tokenID))
	if err != nil {
		return Property{}, c.fail(op, err)
	}
	raw := *abi.ConvertType(out[0], new(rawProperty)).(*rawProperty)
	return raw.normalize(), nil
}

// OwnerOf returns the current holder of a token.
func (c *Client) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	const op = "ownerOf"
	out, err := c.call(ctx, op, c.from(), nonNil(tokenID))
	if err != nil {
		return common.Address{}, c.fail(op, err)
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *Client) SearchByType(ctx context.Context, t PropertyType) ([]Property, error) {
	return c.properties(ctx, "searchPropertiesByType", c.from(), uint8(t))
}

// FilterByValue lists properties whose value lies in [min, max], in base units.
func (c *Client) FilterByValue(ctx context.Context, min, max *big.Int) ([]Property, error) {
	return c.properties(ctx, "filterPropertiesByValue", c.from(), nonNil(min), nonNil(max))
}

func (c *Client) TransactionHistory(ctx context.Context) ([]Transfer, error) {
	const op = "getTransactionHistory"
	out, err := c.call(ctx, op, c.from())
	if err != nil {
		return nil, c.fail(op, err)
	}
	raw := *abi.ConvertType(out[0], new([]rawTransfer)).(*[]rawTransfer)
	history := make([]Transfer, 0, len(raw))
	for _, r := range raw {
		history = append(history, r.normalize())
	}
	return history, nil
}

func (c *Client) Admins(ctx context.Context) ([]common.Address, error) {
	const op = "getAllAdmins"
	out, err := c.call(ctx, op, c.from())
	if err != nil {
		return nil, c.fail(op, err)
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

func (c *Client) IsAdmin(ctx context.Context, account common.Address) (bool, error) {
	const op = "isAdmin"
	out, err := c.call(ctx, op, c.from(), account)
	if err != nil {
		return false, c.fail(op, err)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *Client) PropertiesCount(ctx context.Context, owner common.Address) (*big.Int, error) {
	const op = "getPropertiesCountAtAddress"
	out, err := c.call(ctx, op, c.from(), owner)
	if err != nil {
		return nil, c.fail(op, err)
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

// ---- writes ----

func (c *Client) Mint(ctx context.Context, req MintRequest) (*types.Receipt, error) {
	return c.transact(ctx, "mint", nil,
		uint8(req.Type), req.Name, req.Location, nonNil(req.Value), req.DocumentHash, req.ImageHash)
}

func (c *Client) AddAdmin(ctx context.Context, account common.Address) (*types.Receipt, error) {
	return c.transact(ctx, "addAdmin", nil, account)
}

func (c *Client) RemoveAdmin(ctx context.Context, account common.Address) (*types.Receipt, error) {
	return c.transact(ctx, "removeAdmin", nil, account)
}

// Purchase buys tokenID, attaching value base units.
func (c *Client) Purchase(ctx context.Context, tokenID, value *big.Int) (*types.Receipt, error) {
	return c.transact(ctx, "purchaseProperty", nonNil(value), nonNil(tokenID))
}

func (c *Client) SetForSale(ctx context.Context, tokenID *big.Int, forSale bool) (*types.Receipt, error) {
	return c.transact(ctx, "setPropertyForSale", nil, nonNil(tokenID), forSale)
}

// ToggleSale flips the sale flag of p.
func (c *Client) ToggleSale(ctx context.Context, p Property) (*types.Receipt, error) {
	return c.SetForSale(ctx, p.TokenID, !p.ForSale)
}

// ExchangeHouses trades owned houses for a property of the target type.
func (c *Client) ExchangeHouses(ctx context.Context, houses []*big.Int, target PropertyType) (*types.Receipt, error) {
	return c.transact(ctx, "exchangeHousesForProperty", nil, houses, uint8(target))
}

// ---- plumbing ----

func (c *Client) ready() error {
	if c == nil || c.backend == nil || c.address == (common.Address{}) {
		return ErrNoContract
	}
	return nil
}

func (c *Client) from() common.Address {
	if c == nil || c.signer == nil {
		return common.Address{}
	}
	return c.signer.Address()
}

// signerFor returns the bound signer or asks the connector for one. The
// result is not cached; bind it with WithSigner.
func (c *Client) signerFor(ctx context.Context) (wallet.Signer, error) {
	if c.signer != nil {
		return c.signer, nil
	}
	if c.connect == nil {
		return nil, wallet.ErrNoWallet
	}
	return c.connect(ctx)
}

func (c *Client) call(ctx context.Context, method string, from common.Address, args ...interface{}) ([]interface{}, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	data, err := ABI.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	to := c.address
	res, err := c.backend.CallContract(ctx, ethereum.CallMsg{From: from, To: &to, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	return ABI.Unpack(method, res)
}

func (c *Client) properties(ctx context.Context, method string, from common.Address, args ...interface{}) ([]Property, error) {
	out, err := c.call(ctx, method, from, args...)
	if err != nil {
		return nil, c.fail(method, err)
	}
	raw := *abi.ConvertType(out[0], new([]rawProperty)).(*[]rawProperty)
	return normalizeProperties(raw), nil
}

func (c *Client) transact(ctx context.Context, method string, value *big.Int, args ...interface{}) (*types.Receipt, error) {
	if err := c.ready(); err != nil {
		return nil, c.fail(method, err)
	}
	s, err := c.signerFor(ctx)
	if err != nil {
		return nil, c.fail(method, err)
	}
	data, err := ABI.Pack(method, args...)
	if err != nil {
		return nil, c.fail(method, err)
	}

	hash, err := s.SendTransaction(ctx, wallet.TxRequest{To: c.address, Value: value, Data: data})
	if err != nil {
		return nil, c.fail(method, err)
	}
	c.logger.Info("transaction sent", "op", method, "tx", hash.Hex())

	receipt, err := c.waitMined(ctx, hash)
	if err != nil {
		return nil, c.fail(method, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, c.fail(method, fmt.Errorf("%w: %s", ErrReverted, hash.Hex()))
	}
	c.logger.Info("transaction confirmed", "op", method, "tx", hash.Hex(), "block", receipt.BlockNumber)
	return receipt, nil
}

// waitMined polls for the receipt of hash until it exists or ctx ends.
func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) fail(op string, err error) error {
	wrapped := wrap(op, err)
	if c == nil {
		return wrapped
	}
	c.logger.Error("contract call failed", "op", op, "kind", KindOf(wrapped), "err", err)
	return wrapped
}
