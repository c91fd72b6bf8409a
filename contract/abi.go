package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// propertyFields are the components of the on-chain property struct.
const propertyFields = `[
	{"name":"tokenId","type":"uint256"},
	{"name":"propertyType","type":"uint8"},
	{"name":"name","type":"string"},
	{"name":"location","type":"string"},
	{"name":"value","type":"uint256"},
	{"name":"createdAt","type":"uint256"},
	{"name":"lastTransferAt","type":"uint256"},
	{"name":"previousOwners","type":"address[]"},
	{"name":"documentHash","type":"string"},
	{"name":"imageHash","type":"string"},
	{"name":"isForSale","type":"bool"}]`

const (
	propertyOut     = `[{"name":"","type":"tuple","components":` + propertyFields + `}]`
	propertyListOut = `[{"name":"","type":"tuple[]","components":` + propertyFields + `}]`
)

// estateABI is the subset of the property registry contract used here.
const estateABI = `[
{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[
	{"name":"propertyType","type":"uint8"},
	{"name":"name","type":"string"},
	{"name":"location","type":"string"},
	{"name":"value","type":"uint256"},
	{"name":"documentHash","type":"string"},
	{"name":"imageHash","type":"string"}],"outputs":[]},
{"type":"function","name":"addAdmin","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"}],"outputs":[]},
{"type":"function","name":"removeAdmin","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"}],"outputs":[]},
{"type":"function","name":"purchaseProperty","stateMutability":"payable","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"setPropertyForSale","stateMutability":"nonpayable","inputs":[
	{"name":"tokenId","type":"uint256"},
	{"name":"isForSale","type":"bool"}],"outputs":[]},
{"type":"function","name":"exchangeHousesForProperty","stateMutability":"nonpayable","inputs":[
	{"name":"houseTokenIds","type":"uint256[]"},
	{"name":"targetType","type":"uint8"}],"outputs":[]},
{"type":"function","name":"getAvailableProperties","stateMutability":"view","inputs":[],"outputs":` + propertyListOut + `},
{"type":"function","name":"getMyProperties","stateMutability":"view","inputs":[],"outputs":` + propertyListOut + `},
{"type":"function","name":"getPropertyInfo","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":` + propertyOut + `},
{"type":"function","name":"searchPropertiesByType","stateMutability":"view","inputs":[{"name":"propertyType","type":"uint8"}],"outputs":` + propertyListOut + `},
{"type":"function","name":"filterPropertiesByValue","stateMutability":"view","inputs":[
	{"name":"minValue","type":"uint256"},
	{"name":"maxValue","type":"uint256"}],"outputs":` + propertyListOut + `},
{"type":"function","name":"getTransactionHistory","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":[
	{"name":"tokenId","type":"uint256"},
	{"name":"from","type":"address"},
	{"name":"to","type":"address"},
	{"name":"timestamp","type":"uint256"}]}]},
{"type":"function","name":"getAllAdmins","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
{"type":"function","name":"isAdmin","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"getPropertiesCountAtAddress","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

// ABI is the parsed contract interface.
var ABI abi.ABI

func init() {
	var err error
	ABI, err = abi.JSON(strings.NewReader(estateABI))
	if err != nil {
		panic(err)
	}
}
