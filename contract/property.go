package contract

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"estate-dapp-tui/helpers"
)

// PropertyType mirrors the contract's uint8 enum.
type PropertyType uint8

const (
	House PropertyType = iota
	Station
	Hotel
)

// PropertyTypes lists every type in contract order.
var PropertyTypes = []PropertyType{House, Station, Hotel}

func (t PropertyType) String() string {
	switch t {
	case House:
		return "House"
	case Station:
		return "Station"
	case Hotel:
		return "Hotel"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is a type the contract knows.
func (t PropertyType) Valid() bool {
	return t <= Hotel
}

// Property is the normalized on-chain property record.
type Property struct {
	TokenID        *big.Int
	Type           PropertyType
	Name           string
	Location       string
	Value          *big.Int
	CreatedAt      time.Time
	LastTransferAt time.Time
	PreviousOwners []common.Address
	DocumentHash   string
	ImageHash      string
	ForSale        bool
}

// Transfer is one entry of the contract's transaction history.
type Transfer struct {
	TokenID   *big.Int
	From      common.Address
	To        common.Address
	Timestamp time.Time
}

// MintRequest carries the fields of a new property.
type MintRequest struct {
	Type         PropertyType
	Name         string
	Location     string
	Value        *big.Int
	DocumentHash string
	ImageHash    string
}

// rawProperty matches the ABI tuple; field names follow abi.ToCamelCase.
type rawProperty struct {
	TokenId        *big.Int
	PropertyType   uint8
	Name           string
	Location       string
	Value          *big.Int
	CreatedAt      *big.Int
	LastTransferAt *big.Int
	PreviousOwners []common.Address
	DocumentHash   string
	ImageHash      string
	IsForSale      bool
}

type rawTransfer struct {
	TokenId   *big.Int
	From      common.Address
	To        common.Address
	Timestamp *big.Int
}

func (r rawProperty) normalize() Property {
	return Property{
		TokenID:        nonNil(r.TokenId),
		Type:           PropertyType(r.PropertyType),
		Name:           r.Name,
		Location:       r.Location,
		Value:          nonNil(r.Value),
		CreatedAt:      helpers.UnixTime(r.CreatedAt),
		LastTransferAt: helpers.UnixTime(r.LastTransferAt),
		PreviousOwners: append([]common.Address(nil), r.PreviousOwners...),
		DocumentHash:   r.DocumentHash,
		ImageHash:      r.ImageHash,
		ForSale:        r.IsForSale,
	}
}

func (r rawTransfer) normalize() Transfer {
	return Transfer{
		TokenID:   nonNil(r.TokenId),
		From:      r.From,
		To:        r.To,
		Timestamp: helpers.UnixTime(r.Timestamp),
	}
}

func normalizeProperties(raw []rawProperty) []Property {
	out := make([]Property, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.normalize())
	}
	return out
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
