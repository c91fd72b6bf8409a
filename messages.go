package main

import (
	"math/big"

	"estate-dapp-tui/contract"
	"estate-dapp-tui/ipfs"
	"estate-dapp-tui/rpc"
	"estate-dapp-tui/wallet"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// walletConnectedMsg is the result of a connection attempt
type walletConnectedMsg struct {
	signer wallet.Signer
	err    error
}

// adminFlagMsg carries the admin status of the connected account
type adminFlagMsg struct {
	isAdmin bool
	err     error
}

// propertiesLoadedMsg carries the available list, or a search/filter result
type propertiesLoadedMsg struct {
	items  []contract.Property
	filter string
	err    error
}

// myPropertiesLoadedMsg carries the connected account's properties
type myPropertiesLoadedMsg struct {
	items []contract.Property
	count *big.Int
	err   error
}

type balanceLoadedMsg struct {
	balance rpc.Balance
}

type adminsLoadedMsg struct {
	admins []common.Address
	err    error
}

type historyLoadedMsg struct {
	items []contract.Transfer
	err   error
}

// propertyLoadedMsg refreshes the details panel
type propertyLoadedMsg struct {
	property contract.Property
	owner    common.Address
	ownerErr error
	err      error
}

type documentInspectedMsg struct {
	doc ipfs.Document
	err error
}

// txAction names a state-changing call
type txAction int

const (
	txPurchase txAction = iota
	txToggleSale
	txMint
	txAddAdmin
	txRemoveAdmin
	txExchange
)

func (a txAction) String() string {
	switch a {
	case txPurchase:
		return "purchase"
	case txToggleSale:
		return "sale status update"
	case txMint:
		return "mint"
	case txAddAdmin:
		return "admin addition"
	case txRemoveAdmin:
		return "admin removal"
	case txExchange:
		return "house exchange"
	}
	return "transaction"
}

// txDoneMsg reports a confirmed (or failed) transaction
type txDoneMsg struct {
	action  txAction
	account common.Address // admin operations
	tokenID *big.Int
	err     error
}

// notifyExpiredMsg clears the notification with the same id
type notifyExpiredMsg struct {
	id uuid.UUID
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

type clearCopiedMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}
