package helpers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	oneAndHalf, _ := new(big.Int).SetString("1500000000000000000", 10)

	tests := []struct {
		desc      string
		base      *big.Int
		precision int32
		want      string
	}{
		{desc: "nil is zero", base: nil, precision: 4, want: "0"},
		{desc: "whole and fraction", base: oneAndHalf, precision: 4, want: "1.5"},
		{desc: "rounds to precision", base: big.NewInt(123456789000000000), precision: 4, want: "0.1235"},
		{desc: "single wei at full precision", base: big.NewInt(1), precision: 18, want: "0.000000000000000001"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.base, DefaultDecimals, tt.precision))
		})
	}
}

func TestFormatValueAppendsSymbol(t *testing.T) {
	assert.Equal(t, "2 ETH", FormatValue(big.NewInt(2e18), DefaultDecimals, 4, "ETH"))
	assert.Equal(t, "2", FormatValue(big.NewInt(2e18), DefaultDecimals, 4, ""))
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount(" 0.25 ", DefaultDecimals)
	require.NoError(t, err)
	assert.Equal(t, "250000000000000000", got.String())

	_, err = ParseAmount("", DefaultDecimals)
	assert.ErrorIs(t, err, ErrEmptyAmount)

	_, err = ParseAmount("-1", DefaultDecimals)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ParseAmount("abc", DefaultDecimals)
	assert.Error(t, err)
}

func TestAmountRoundTrip(t *testing.T) {
	raws := []string{
		"0",
		"1",
		"999999999999999999",
		"1000000000000000000",
		"123456789012345678901234567890",
	}
	for _, raw := range raws {
		base, ok := new(big.Int).SetString(raw, 10)
		require.True(t, ok)

		display := FormatAmount(base, DefaultDecimals, DefaultDecimals)
		back, err := ParseAmount(display, DefaultDecimals)
		require.NoError(t, err)
		assert.Equal(t, 0, base.Cmp(back), "round trip of %s via %s gave %s", raw, display, back)
	}
}

func TestAmountRoundTripWithinPrecision(t *testing.T) {
	base := big.NewInt(1234567890123456789)
	display := FormatAmount(base, DefaultDecimals, 4)
	back, err := ParseAmount(display, DefaultDecimals)
	require.NoError(t, err)

	diff := new(big.Int).Abs(new(big.Int).Sub(base, back))
	// half a unit in the 4th decimal place
	tolerance := big.NewInt(5e13)
	assert.True(t, diff.Cmp(tolerance) <= 0, "diff %s exceeds %s", diff, tolerance)
}

func TestMoney(t *testing.T) {
	m := Money{Decimals: 18, Precision: 2, Symbol: "ETH"}
	assert.Equal(t, "1.5 ETH", m.Format(big.NewInt(1_500_000_000_000_000_000)))

	v, err := m.Parse("0.25")
	require.NoError(t, err)
	assert.Equal(t, "250000000000000000", v.String())
}
