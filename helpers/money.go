package helpers

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDecimals is the number of base-unit digits in one display unit (wei per ether).
const DefaultDecimals int32 = 18

var (
	ErrEmptyAmount    = errors.New("amount is required")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// ToDisplay converts a base-unit amount into display units.
func ToDisplay(base *big.Int, decimals int32) decimal.Decimal {
	if base == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(base, -decimals)
}

// FormatAmount renders a base-unit amount with at most precision fractional
// digits, trimming trailing zeros.
func FormatAmount(base *big.Int, decimals, precision int32) string {
	d := ToDisplay(base, decimals)
	if precision >= 0 {
		d = d.Round(precision)
	}
	return d.String()
}

// FormatValue is FormatAmount with the unit symbol appended.
func FormatValue(base *big.Int, decimals, precision int32, symbol string) string {
	s := FormatAmount(base, decimals, precision)
	if symbol == "" {
		return s
	}
	return s + " " + symbol
}

// ParseAmount converts a display-unit string into base units. Digits beyond
// the unit's resolution are truncated.
func ParseAmount(s string, decimals int32) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return d.Shift(decimals).BigInt(), nil
}

// Money bundles the unit settings used across the UI.
type Money struct {
	Decimals  int32
	Precision int32
	Symbol    string
}

// Format renders a base-unit amount for display.
func (m Money) Format(base *big.Int) string {
	return FormatValue(base, m.Decimals, m.Precision, m.Symbol)
}

// Parse converts display input into base units.
func (m Money) Parse(s string) (*big.Int, error) {
	return ParseAmount(s, m.Decimals)
}
