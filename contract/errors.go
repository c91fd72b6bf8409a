package contract

import (
	"errors"
	"fmt"

	"estate-dapp-tui/wallet"
)

// Kind classifies a failed client operation.
type Kind int

const (
	KindUnknown Kind = iota
	KindNoContract
	KindWalletUnavailable
	KindUnauthorized
	KindRequestPending
	KindCallFailed
	KindReverted
)

func (k Kind) String() string {
	switch k {
	case KindNoContract:
		return "no contract"
	case KindWalletUnavailable:
		return "wallet unavailable"
	case KindUnauthorized:
		return "unauthorized"
	case KindRequestPending:
		return "request pending"
	case KindCallFailed:
		return "call failed"
	case KindReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

var (
	ErrNoContract = errors.New("no contract deployed at address")
	ErrReverted   = errors.New("transaction reverted")
)

// Error is returned by every client operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindUnknown when err did not come from
// the client.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrNoContract):
		return KindNoContract
	case errors.Is(err, wallet.ErrRequestPending):
		return KindRequestPending
	case errors.Is(err, wallet.ErrNoWallet):
		return KindWalletUnavailable
	case errors.Is(err, wallet.ErrRejected):
		return KindUnauthorized
	case errors.Is(err, ErrReverted):
		return KindReverted
	default:
		return KindCallFailed
	}
}
