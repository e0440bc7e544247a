package common

import (
	"errors"
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// Uint128Bits is the width of a CosmWasm Uint128.
const Uint128Bits = 128

// MaxUint128 is 2^128 - 1.
var MaxUint128 = math.NewUintFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), Uint128Bits), big.NewInt(1)))

var ErrUint128Overflow = errors.New("value overflows uint128")

// ValidateUint128 rejects uninitialized values and values wider than 128 bits.
func ValidateUint128(u math.Uint) error {
	if u.IsNil() {
		return errors.New("missing uint128 value")
	}
	if u.BigInt().Sign() < 0 {
		return fmt.Errorf("negative value %s", u.String())
	}
	if u.BigInt().BitLen() > Uint128Bits {
		return fmt.Errorf("%s: %w", u.String(), ErrUint128Overflow)
	}
	return nil
}

// ParseUint128 parses a base 10 string into a 128 bit unsigned integer.
func ParseUint128(s string) (math.Uint, error) {
	u, err := math.ParseUint(s)
	if err != nil {
		return math.ZeroUint(), err
	}
	if err := ValidateUint128(u); err != nil {
		return math.ZeroUint(), err
	}
	return u, nil
}

// CheckedAddUint128 adds a and b, failing instead of exceeding 128 bits.
func CheckedAddUint128(a, b math.Uint) (math.Uint, error) {
	sum := a.Add(b)
	if err := ValidateUint128(sum); err != nil {
		return math.ZeroUint(), err
	}
	return sum, nil
}
