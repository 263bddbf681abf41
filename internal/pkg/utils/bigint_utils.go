package utils

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTokenDecimals is used for reward amounts when the token's decimals are unknown.
const DefaultTokenDecimals uint8 = 18

// FormatBigInt converts a big.Int value to a human-readable string,
// considering the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// FormatWithSymbol renders an amount the way the staking view shows it, e.g. "12.5 ADT".
func FormatWithSymbol(amount *big.Int, decimals uint8, symbol string) string {
	formatted := FormatBigInt(amount, decimals)
	if symbol == "" {
		return formatted
	}
	return formatted + " " + symbol
}

// ParseTokenID parses a decimal or 0x-prefixed token id. Negative ids are rejected.
func ParseTokenID(raw string) (*big.Int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	id, ok := new(big.Int).SetString(raw, 0)
	if !ok || id.Sign() < 0 {
		return nil, false
	}
	return id, true
}
