package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeystoreProvider uses an encrypted key directory as the wallet. Requesting
// accounts unlocks the configured (or first) account with the passphrase.
type KeystoreProvider struct {
	ks         *keystore.KeyStore
	preferred  common.Address
	passphrase string
	backend    Backend

	pending  atomic.Bool
	mu       sync.Mutex
	unlocked []common.Address
}

// NewKeystoreProvider opens dir. A zero preferred address selects the first
// account found.
func NewKeystoreProvider(dir string, preferred common.Address, passphrase string, backend Backend) *KeystoreProvider {
	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	return newKeystoreProvider(ks, preferred, passphrase, backend)
}

func newKeystoreProvider(ks *keystore.KeyStore, preferred common.Address, passphrase string, backend Backend) *KeystoreProvider {
	return &KeystoreProvider{
		ks:         ks,
		preferred:  preferred,
		passphrase: passphrase,
		backend:    backend,
	}
}

func (p *KeystoreProvider) Accounts(context.Context) ([]common.Address, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]common.Address(nil), p.unlocked...), nil
}

func (p *KeystoreProvider) RequestAccounts(context.Context) ([]common.Address, error) {
	if !p.pending.CompareAndSwap(false, true) {
		return nil, ErrRequestPending
	}
	defer p.pending.Store(false)

	all := p.ks.Accounts()
	if len(all) == 0 {
		return nil, ErrNoWallet
	}
	account := all[0]
	if p.preferred != (common.Address{}) {
		found := false
		for _, a := range all {
			if a.Address == p.preferred {
				account, found = a, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: account %s not in keystore", ErrNoWallet, p.preferred.Hex())
		}
	}

	if err := p.ks.Unlock(account, p.passphrase); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	p.mu.Lock()
	p.unlocked = []common.Address{account.Address}
	p.mu.Unlock()
	return []common.Address{account.Address}, nil
}

func (p *KeystoreProvider) Signer(ctx context.Context, account common.Address) (Signer, error) {
	chainID, err := p.backend.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyStoreTransactorWithChainID(p.ks, accounts.Account{Address: account}, chainID)
	if err != nil {
		return nil, err
	}
	return &keyedSigner{opts: opts, backend: p.backend}, nil
}

// KeyProvider holds a raw private key, as used by local development nodes.
type KeyProvider struct {
	key     *ecdsa.PrivateKey
	backend Backend
}

// NewKeyProvider parses a hex-encoded private key (without 0x prefix).
func NewKeyProvider(hexKey string, backend Backend) (*KeyProvider, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &KeyProvider{key: key, backend: backend}, nil
}

func (p *KeyProvider) address() common.Address {
	return crypto.PubkeyToAddress(p.key.PublicKey)
}

func (p *KeyProvider) Accounts(context.Context) ([]common.Address, error) {
	return []common.Address{p.address()}, nil
}

func (p *KeyProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return p.Accounts(ctx)
}

func (p *KeyProvider) Signer(ctx context.Context, account common.Address) (Signer, error) {
	if account != p.address() {
		return nil, fmt.Errorf("%w: key does not control %s", ErrRejected, account.Hex())
	}
	chainID, err := p.backend.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(p.key, chainID)
	if err != nil {
		return nil, err
	}
	return &keyedSigner{opts: opts, backend: p.backend}, nil
}

// keyedSigner signs locally and broadcasts through the backend. Nonce, gas
// and fee fields are filled by the bound-contract transactor.
type keyedSigner struct {
	opts    *bind.TransactOpts
	backend Backend
}

func (s *keyedSigner) Address() common.Address { return s.opts.From }

func (s *keyedSigner) SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error) {
	opts := *s.opts
	opts.Context = ctx
	opts.Value = req.Value

	bc := bind.NewBoundContract(req.To, abi.ABI{}, s.backend, s.backend, s.backend)
	tx, err := bc.RawTransact(&opts, req.Data)
	if err != nil {
		return common.Hash{}, err
	}
	return tx.Hash(), nil
}
