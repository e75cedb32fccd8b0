package money

import (
	"math"
	"strings"
)

// Stripe expects amounts in the smallest currency unit. Every currency outside
// this set is assumed to have a minor unit of 1/100, which is wrong for the
// three-decimal currencies (BHD, KWD, ...). See DESIGN.md.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {},
	"CLP": {},
	"DJF": {},
	"GNF": {},
	"JPY": {},
	"KMF": {},
	"KRW": {},
	"MGA": {},
	"PYG": {},
	"RWF": {},
	"UGX": {},
	"VND": {},
	"VUV": {},
	"XAF": {},
	"XOF": {},
	"XPF": {},
}

const (
	minorUnitFactor = 100

	// 2^-52, added before rounding so values like 1.005 do not truncate down.
	roundingEpsilon = 2.220446049250313e-16
)

// IsZeroDecimal reports whether the gateway represents currency without a
// minor unit. The comparison ignores case and surrounding spaces.
func IsZeroDecimal(currency string) bool {
	_, ok := zeroDecimalCurrencies[strings.ToUpper(strings.TrimSpace(currency))]
	return ok
}

// ToGatewayAmount converts a decimal amount into the gateway's integer
// representation.
func ToGatewayAmount(amount float64, currency string) int64 {
	if IsZeroDecimal(currency) {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * minorUnitFactor))
}

// FromGatewayAmount is the inverse of ToGatewayAmount, rounded to two decimals.
func FromGatewayAmount(amount int64, currency string) float64 {
	if IsZeroDecimal(currency) {
		return float64(amount)
	}
	v := float64(amount) / minorUnitFactor
	return math.Round((v+roundingEpsilon)*minorUnitFactor) / minorUnitFactor
}
