package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsZeroDecimal(t *testing.T) {
	for _, c := range []string{"BIF", "CLP", "DJF", "GNF", "JPY", "KMF", "KRW", "MGA", "PYG", "RWF", "UGX", "VND", "VUV", "XAF", "XOF", "XPF"} {
		assert.True(t, IsZeroDecimal(c), c)
	}
	assert.True(t, IsZeroDecimal("jpy"))
	assert.True(t, IsZeroDecimal(" Krw "))
	assert.False(t, IsZeroDecimal("USD"))
	assert.False(t, IsZeroDecimal("eur"))
	assert.False(t, IsZeroDecimal(""))
}

func TestToGatewayAmount(t *testing.T) {
	cases := []struct {
		name     string
		amount   float64
		currency string
		want     int64
	}{
		{name: "usd whole", amount: 10, currency: "USD", want: 1000},
		{name: "usd cents", amount: 25.5, currency: "usd", want: 2550},
		{name: "usd float noise", amount: 19.99, currency: "USD", want: 1999},
		{name: "usd rounds half up", amount: 0.125, currency: "USD", want: 13},
		{name: "eur small", amount: 0.01, currency: "EUR", want: 1},
		{name: "jpy unscaled", amount: 1000, currency: "JPY", want: 1000},
		{name: "jpy lowercase", amount: 1000, currency: "jpy", want: 1000},
		{name: "krw rounds", amount: 1500.6, currency: "KRW", want: 1501},
		{name: "zero", amount: 0, currency: "USD", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToGatewayAmount(tc.amount, tc.currency))
		})
	}
}

func TestFromGatewayAmount(t *testing.T) {
	assert.Equal(t, 25.5, FromGatewayAmount(2550, "usd"))
	assert.Equal(t, 0.01, FromGatewayAmount(1, "USD"))
	assert.Equal(t, 19.99, FromGatewayAmount(1999, "EUR"))
	assert.Equal(t, float64(1000), FromGatewayAmount(1000, "JPY"))
	assert.Equal(t, float64(0), FromGatewayAmount(0, "USD"))
}

func TestAmountRoundTrip(t *testing.T) {
	amounts := []float64{0, 0.01, 0.1, 1.05, 10, 19.99, 25.5, 99.95, 1234.56, 100000.01}
	for _, currency := range []string{"USD", "eur", "BRL"} {
		for _, a := range amounts {
			assert.InDelta(t, a, FromGatewayAmount(ToGatewayAmount(a, currency), currency), 1e-9, "%s %v", currency, a)
		}
	}
	for _, a := range []float64{0, 1, 500, 1000, 987654} {
		assert.Equal(t, a, FromGatewayAmount(ToGatewayAmount(a, "JPY"), "JPY"))
	}
}
