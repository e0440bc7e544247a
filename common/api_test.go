package common

import (
	"strings"
	"testing"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"
)

func TestBech32APIAddrValidate(t *testing.T) {
	api := NewBech32API(AccountAddressPrefix)
	valid, err := DeriveAddress(AccountAddressPrefix, "validator")
	require.NoError(t, err)
	foreign, err := DeriveAddress("cosmos", "validator")
	require.NoError(t, err)

	testCases := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{
			name:  "normalized address",
			input: valid.String(),
		},
		{
			name:      "empty address",
			input:     "",
			expectErr: true,
		},
		{
			name:      "upper case address is not normalized",
			input:     strings.ToUpper(valid.String()),
			expectErr: true,
		},
		{
			name:      "wrong prefix",
			input:     foreign.String(),
			expectErr: true,
		},
		{
			name:      "bad checksum",
			input:     valid.String()[:len(valid.String())-1] + "q",
			expectErr: true,
		},
		{
			name:      "not bech32",
			input:     "token-contract",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := api.AddrValidate(tc.input)
			if tc.expectErr {
				require.Error(t, err)
				require.ErrorIs(t, err, sdkerrors.ErrInvalidAddress)
				require.True(t, addr.IsEmpty())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.input, addr.String())
		})
	}
}

func TestBech32APIRoundTrip(t *testing.T) {
	api := NewBech32API(AccountAddressPrefix)
	addr, err := DeriveAddress(AccountAddressPrefix, "roundtrip")
	require.NoError(t, err)

	canonical, err := api.AddrCanonicalize(addr.String())
	require.NoError(t, err)
	require.Len(t, canonical, 20)

	human, err := api.AddrHumanize(canonical)
	require.NoError(t, err)
	require.Equal(t, addr, human)
}
