package common

import (
	"cosmossdk.io/math"
	. "gopkg.in/check.v1"
)

type DecimalsSuite struct{}

var _ = Suite(&DecimalsSuite{})

func (s *DecimalsSuite) TestConversion(c *C) {
	amount1 := math.NewUint(9_999_999)
	amount2 := math.NewUint(1_234_567_890)

	// 1.2 trillion with 18 decimals: 1,200,300,400,500.100…
	amount3 := math.NewUintFromString("1200300400500100100100100100123")

	result, err := ConvertDecimals(amount1, 6, 3)
	c.Assert(err, IsNil)
	c.Assert(result.String(), Equals, "9999")

	result, err = ConvertDecimals(amount2, 9, 7)
	c.Assert(err, IsNil)
	c.Assert(result.String(), Equals, "12345678")

	result, err = ConvertDecimals(amount3, 18, 8)
	c.Assert(err, IsNil)
	c.Assert(result.String(), Equals, "120030040050010010010")

	result, err = ConvertDecimals(amount3, 18, 0)
	c.Assert(err, IsNil)
	c.Assert(result.String(), Equals, "1200300400500")

	result, err = ConvertDecimals(amount1, 0, 6)
	c.Assert(err, IsNil)
	c.Assert(result.String(), Equals, "9999999000000")

	result, err = ConvertDecimals(amount2, 6, 18)
	c.Assert(err, IsNil)
	c.Assert(result.String(), Equals, "1234567890000000000000")

	result, err = ConvertDecimals(amount3, 18, 18)
	c.Assert(err, IsNil)
	c.Assert(result.String(), Equals, amount3.String())

	// scaling up past 128 bits fails instead of wrapping
	_, err = ConvertDecimals(amount3, 0, 18)
	c.Assert(err, Equals, ErrUint128Overflow)

	result, err = ConvertDecimals(math.ZeroUint(), 0, 255)
	c.Assert(err, IsNil)
	c.Assert(result.IsZero(), Equals, true)
}

func (s *DecimalsSuite) TestParseDecimalAmount(c *C) {
	testCases := []struct {
		input    string
		decimals uint8
		expected string
		ok       bool
	}{
		{input: "42", decimals: 0, expected: "42", ok: true},
		{input: "1.5", decimals: 8, expected: "150000000", ok: true},
		{input: "0.00000001", decimals: 8, expected: "1", ok: true},
		{input: "12.05", decimals: 6, expected: "12050000", ok: true},
		{input: "7", decimals: 18, expected: "7000000000000000000", ok: true},
		{input: "1.5", decimals: 0},
		{input: "0.000000001", decimals: 8},
		{input: ".5", decimals: 8},
		{input: "1.", decimals: 8},
		{input: "1.2.3", decimals: 8},
		{input: "-1", decimals: 8},
		{input: "abc", decimals: 8},
		{input: "340282366920938463463374607431768211455", decimals: 1},
	}

	for _, tc := range testCases {
		result, err := ParseDecimalAmount(tc.input, tc.decimals)
		if !tc.ok {
			c.Check(err, NotNil, Commentf("input %q", tc.input))
			continue
		}
		c.Assert(err, IsNil, Commentf("input %q", tc.input))
		c.Check(result.String(), Equals, tc.expected, Commentf("input %q", tc.input))
	}
}
