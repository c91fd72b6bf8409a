package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ens "github.com/wealdtech/go-ens/v3"
)

var ErrNoResolver = errors.New("no RPC backend for ENS resolution")

// ResolveAddress turns user input into an address. Hex addresses are
// checksummed locally; .eth names go through the ENS registry on backend.
func ResolveAddress(backend bind.ContractBackend, input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if IsValidEthAddress(input) {
		return common.HexToAddress(input), nil
	}
	if !IsENSName(input) {
		return common.Address{}, fmt.Errorf("%q is neither an address nor an ENS name", input)
	}
	if backend == nil {
		return common.Address{}, ErrNoResolver
	}
	addr, err := ens.Resolve(backend, input)
	if err != nil {
		return common.Address{}, fmt.Errorf("resolve %s: %w", input, err)
	}
	return addr, nil
}
