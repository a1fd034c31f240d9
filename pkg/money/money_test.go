package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(decimal.NewFromInt(-1), "VND")
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = New(decimal.NewFromInt(1), "JPY")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	m, err := New(decimal.NewFromInt(5), " usd ")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency())
}

func TestNewPrice_MinorUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   string
		currency string
		wantErr  error
	}{
		{name: "usd cents", amount: "10.05", currency: "USD"},
		{name: "usd trailing zero", amount: "10.500", currency: "USD"},
		{name: "usd sub cent", amount: "10.005", currency: "USD", wantErr: ErrTooPrecise},
		{name: "vnd whole", amount: "2500000", currency: "VND"},
		{name: "vnd fraction", amount: "1000.5", currency: "VND", wantErr: ErrTooPrecise},
		{name: "negative", amount: "-1", currency: "USD", wantErr: ErrNegativeAmount},
		{name: "unknown currency", amount: "1", currency: "JPY", wantErr: ErrUnsupportedCurrency},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := NewPrice(decimal.RequireFromString(tt.amount), tt.currency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, m.Amount().Equal(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestMoney_AddAndMul(t *testing.T) {
	t.Parallel()

	a := MustNew(decimal.NewFromInt(1_000_000), "VND")
	b := MustNew(decimal.NewFromInt(500_000), "VND")

	twoA, err := a.Mul(2)
	require.NoError(t, err)
	sum, err := twoA.Add(b)
	require.NoError(t, err)

	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(2_500_000)))
	assert.True(t, a.Amount().Equal(decimal.NewFromInt(1_000_000)), "receiver must not change")

	_, err = a.Mul(-1)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	t.Parallel()

	vnd := MustNew(decimal.NewFromInt(1), "VND")
	usd := MustNew(decimal.NewFromInt(1), "USD")

	_, err := vnd.Add(usd)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = vnd.Cmp(usd)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	assert.False(t, vnd.Equal(usd))
}

func TestMoney_MulRateRoundsHalfUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{name: "usd half cent rounds up", amount: "1.25", currency: "USD", want: "0.13"},
		{name: "usd below half rounds down", amount: "1.24", currency: "USD", want: "0.12"},
		{name: "vnd half unit rounds up", amount: "15", currency: "VND", want: "2"},
		{name: "vnd exact", amount: "2500000", currency: "VND", want: "250000"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := MustNew(decimal.RequireFromString(tt.amount), tt.currency)
			tax, err := m.MulRate(decimal.RequireFromString("0.10"))
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(tax.Amount()), "got %s", tax.Amount())
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	t.Parallel()

	m := MustNew(decimal.RequireFromString("19.90"), "USD")
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"19.9","currency":"USD"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(m))

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"-1","currency":"USD"}`), &back))
}

func TestMoney_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "19.90 USD", MustNew(decimal.RequireFromString("19.9"), "USD").String())
	assert.Equal(t, "2500000 VND", MustNew(decimal.NewFromInt(2_500_000), "VND").String())
}
