package utils

import (
	"math/big"
	"strings"

	"roast_agent/internal/domain/entity"
)

// FormatMist converts a raw MIST balance string into SUI with two decimal
// places. Example: "1000000000" => "1.00". Anything that is not a
// non-negative base-10 integer formats as "0.00".
func FormatMist(raw string) string {
	amount, ok := ParseMist(raw)
	if !ok {
		return "0.00"
	}
	return FormatRatio(amount, big.NewInt(entity.MistPerSui), 2)
}

// ParseMist parses a non-negative integer balance string.
func ParseMist(raw string) (*big.Int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok || amount.Sign() < 0 {
		return nil, false
	}
	return amount, true
}

// FormatRatio renders amount/divisor with a fixed number of decimal places,
// rounding half away from zero.
func FormatRatio(amount, divisor *big.Int, places int) string {
	if amount == nil {
		amount = new(big.Int)
	}
	return new(big.Rat).SetFrac(amount, divisor).FloatString(places)
}
