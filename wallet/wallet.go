// Package wallet connects to a wallet provider and produces a Signer for the
// connected account.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

// EIP-1193 provider error codes.
const (
	CodeUserRejected   = 4001
	CodeRequestPending = -32002
)

var (
	ErrNoWallet       = errors.New("no wallet provider available")
	ErrRejected       = errors.New("wallet authorization rejected")
	ErrRequestPending = errors.New("a connection request is already pending, check your wallet")
)

// TxRequest is a transaction the signer should authorize and broadcast.
type TxRequest struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// Signer authorizes transactions for one account.
type Signer interface {
	Address() common.Address
	SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error)
}

// Provider is the wallet boundary: account authorization plus signing.
type Provider interface {
	// Accounts returns the accounts already authorized, without prompting.
	Accounts(ctx context.Context) ([]common.Address, error)
	// RequestAccounts asks the wallet to authorize an account.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Signer returns a signer for an authorized account.
	Signer(ctx context.Context, account common.Address) (Signer, error)
}

// Backend is the chain access keyed signers need to build transactions.
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Connect reuses an already-authorized account when there is one and only
// prompts the wallet otherwise. It never retries.
func Connect(ctx context.Context, p Provider) (Signer, error) {
	if p == nil {
		return nil, ErrNoWallet
	}

	accounts, err := p.Accounts(ctx)
	if err != nil {
		return nil, classify(err)
	}
	if len(accounts) == 0 {
		accounts, err = p.RequestAccounts(ctx)
		if err != nil {
			return nil, classify(err)
		}
	}
	if len(accounts) == 0 {
		return nil, ErrRejected
	}

	s, err := p.Signer(ctx, accounts[0])
	if err != nil {
		return nil, classify(err)
	}
	return s, nil
}

// classify maps provider error codes onto the package sentinels.
func classify(err error) error {
	if errors.Is(err, ErrRequestPending) || errors.Is(err, ErrRejected) || errors.Is(err, ErrNoWallet) {
		return err
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case CodeRequestPending:
			return fmt.Errorf("%w: %v", ErrRequestPending, err)
		case CodeUserRejected:
			return fmt.Errorf("%w: %v", ErrRejected, err)
		}
	}
	return err
}
