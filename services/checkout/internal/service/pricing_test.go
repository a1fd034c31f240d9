package service

import (
	"testing"

	"github.com/Skotchmaster/storefront/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(s string) money.Money {
	return money.MustNew(decimal.RequireFromString(s), "USD")
}

func TestQuote(t *testing.T) {
	t.Parallel()

	calc, err := NewPricingCalculator(PricingRules{
		Currency:              "USD",
		ShippingFee:           decimal.RequireFromString("4.99"),
		FreeShippingThreshold: decimal.NewFromInt(50),
		TaxRate:               decimal.RequireFromString("0.10"),
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		lines    []PriceLine
		subtotal string
		tax      string
		shipping string
		total    string
	}{
		{name: "empty", lines: nil, subtotal: "0", tax: "0", shipping: "0", total: "0"},
		{
			name:     "below threshold pays shipping",
			lines:    []PriceLine{{UnitPrice: usd("12.25"), Quantity: 1}},
			subtotal: "12.25", tax: "1.23", shipping: "4.99", total: "18.47",
		},
		{
			name:     "at threshold ships free",
			lines:    []PriceLine{{UnitPrice: usd("20"), Quantity: 2}, {UnitPrice: usd("10"), Quantity: 1}},
			subtotal: "50", tax: "5", shipping: "0", total: "55",
		},
		{
			name:     "tax rounds down below half",
			lines:    []PriceLine{{UnitPrice: usd("0.34"), Quantity: 3}},
			subtotal: "1.02", tax: "0.1", shipping: "4.99", total: "6.11",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := calc.Quote(tt.lines)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.subtotal).Equal(q.Subtotal.Amount()), "subtotal %s", q.Subtotal)
			assert.True(t, decimal.RequireFromString(tt.tax).Equal(q.Tax.Amount()), "tax %s", q.Tax)
			assert.True(t, decimal.RequireFromString(tt.shipping).Equal(q.Shipping.Amount()), "shipping %s", q.Shipping)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(q.Total.Amount()), "total %s", q.Total)
		})
	}
}

func TestQuote_Rejects(t *testing.T) {
	t.Parallel()

	calc, err := NewPricingCalculator(PricingRules{
		Currency:              "USD",
		ShippingFee:           decimal.NewFromInt(5),
		FreeShippingThreshold: decimal.NewFromInt(50),
		TaxRate:               decimal.RequireFromString("0.10"),
	})
	require.NoError(t, err)

	_, err = calc.Quote([]PriceLine{{UnitPrice: money.MustNew(decimal.NewFromInt(1), "EUR"), Quantity: 1}})
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)

	_, err = calc.Quote([]PriceLine{{UnitPrice: usd("1"), Quantity: 0}})
	assert.Error(t, err)

	_, err = NewPricingCalculator(PricingRules{Currency: "XXX"})
	assert.ErrorIs(t, err, money.ErrUnsupportedCurrency)
}
