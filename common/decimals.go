package common

import (
	"fmt"
	"math/big"
	"strings"

	"cosmossdk.io/math"
)

// ConvertDecimals rescales amount from one decimal precision to another,
// truncating when precision is lost. The result must fit in 128 bits.
func ConvertDecimals(
	amount math.Uint,
	fromDecimals, toDecimals uint8,
) (math.Uint, error) {
	if fromDecimals == toDecimals {
		return amount, nil
	}

	exp := big.NewInt(int64(fromDecimals) - int64(toDecimals))
	diff := new(big.Int).Exp(big.NewInt(10), exp.Abs(exp), nil)

	if fromDecimals > toDecimals {
		return math.NewUintFromBigInt(new(big.Int).Quo(amount.BigInt(), diff)), nil
	}
	result := new(big.Int).Mul(amount.BigInt(), diff)
	if result.BitLen() > Uint128Bits {
		return math.ZeroUint(), ErrUint128Overflow
	}
	return math.NewUintFromBigInt(result), nil
}

// ParseDecimalAmount parses a display amount such as "1.5" into the base
// units of a token with the given decimals. Digits finer than decimals are
// rejected rather than rounded.
func ParseDecimalAmount(s string, decimals uint8) (math.Uint, error) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && frac == "") {
		return math.ZeroUint(), fmt.Errorf("malformed amount %q", s)
	}
	if len(frac) > int(decimals) {
		return math.ZeroUint(), fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}

	wholeUnits, err := ParseUint128(whole)
	if err != nil {
		return math.ZeroUint(), err
	}
	result, err := ConvertDecimals(wholeUnits, 0, decimals)
	if err != nil {
		return math.ZeroUint(), err
	}
	if !hasFrac {
		return result, nil
	}

	fracUnits, err := ParseUint128(frac)
	if err != nil {
		return math.ZeroUint(), err
	}
	fracUnits, err = ConvertDecimals(fracUnits, uint8(len(frac)), decimals)
	if err != nil {
		return math.ZeroUint(), err
	}
	return CheckedAddUint128(result, fracUnits)
}
