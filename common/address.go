package common

import (
	"strings"

	"github.com/cometbft/cometbft/crypto"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// AccountAddressPrefix is the bech32 human readable part of host accounts.
const AccountAddressPrefix = "qbtc"

type Address string

const NoAddress = Address("")

// DeriveAddress returns a deterministic account address for name. It is used
// for local accounts and tests, never for contracts.
func DeriveAddress(prefix, name string) (Address, error) {
	str, err := bech32.ConvertAndEncode(prefix, crypto.AddressHash([]byte(name)))
	if err != nil {
		return NoAddress, err
	}
	return Address(str), nil
}

func (addr Address) Equals(addr2 Address) bool {
	return addr.String() == addr2.String()
}

func (addr Address) IsEmpty() bool {
	return strings.TrimSpace(addr.String()) == ""
}

func (addr Address) String() string {
	if addr == NoAddress {
		return ""
	}
	return string(addr)
}
