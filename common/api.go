package common

import (
	"cosmossdk.io/core/address"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// API is the address capability a host hands to contracts.
type API interface {
	// AddrValidate checks human is a normalized account address of the host chain.
	AddrValidate(human string) (Address, error)
	AddrCanonicalize(human string) ([]byte, error)
	AddrHumanize(canonical []byte) (Address, error)
}

// Bech32API validates addresses against a single bech32 prefix.
type Bech32API struct {
	codec address.Codec
}

var _ API = Bech32API{}

func NewBech32API(prefix string) Bech32API {
	return Bech32API{codec: addresscodec.NewBech32Codec(prefix)}
}

func (a Bech32API) AddrValidate(human string) (Address, error) {
	canonical, err := a.AddrCanonicalize(human)
	if err != nil {
		return NoAddress, err
	}
	normalized, err := a.AddrHumanize(canonical)
	if err != nil {
		return NoAddress, err
	}
	if normalized.String() != human {
		return NoAddress, sdkerrors.ErrInvalidAddress.Wrapf("address not normalized: %s", human)
	}
	return normalized, nil
}

func (a Bech32API) AddrCanonicalize(human string) ([]byte, error) {
	bz, err := a.codec.StringToBytes(human)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("%s: %v", human, err)
	}
	return bz, nil
}

func (a Bech32API) AddrHumanize(canonical []byte) (Address, error) {
	str, err := a.codec.BytesToString(canonical)
	if err != nil {
		return NoAddress, sdkerrors.ErrInvalidAddress.Wrap(err.Error())
	}
	return Address(str), nil
}
