// Package money is a fixed-point, currency-tagged amount. Values are
// immutable; every operation returns a new Money.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount      = errors.New("money amount cannot be negative")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrTooPrecise          = errors.New("amount is finer than the currency's minor unit")
)

// minor unit exponent per supported currency
var minorUnits = map[string]int32{
	"VND": 0,
	"USD": 2,
	"EUR": 2,
}

type Money struct {
	amount   decimal.Decimal
	currency string
}

func New(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if _, ok := minorUnits[currency]; !ok {
		return Money{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, currency)
	}
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount, currency: currency}, nil
}

func MustNew(amount decimal.Decimal, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func FromInt(amount int64, currency string) (Money, error) {
	return New(decimal.NewFromInt(amount), currency)
}

func Zero(currency string) (Money, error) {
	return New(decimal.Zero, currency)
}

// NewPrice is New for amounts that get stored: it also rejects digits below
// the currency's minor unit, e.g. 10.005 USD.
func NewPrice(amount decimal.Decimal, currency string) (Money, error) {
	m, err := New(amount, currency)
	if err != nil {
		return Money{}, err
	}
	if !m.amount.Equal(m.Round().amount) {
		return Money{}, fmt.Errorf("%w: %s %s", ErrTooPrecise, amount, m.currency)
	}
	return m, nil
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: cannot add %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Mul multiplies by a non-negative quantity.
func (m Money) Mul(quantity int64) (Money, error) {
	if quantity < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(quantity)), currency: m.currency}, nil
}

// MulRate multiplies by a rate and rounds half-up to the currency's minor unit.
func (m Money) MulRate(rate decimal.Decimal) (Money, error) {
	if rate.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: m.amount.Mul(rate), currency: m.currency}.Round(), nil
}

// Round rounds to the currency's minor unit. Amounts are never negative, so
// decimal's half-away-from-zero rounding is half-up here.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(minorUnits[m.currency]), currency: m.currency}
}

func (m Money) Cmp(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, fmt.Errorf("%w: cannot compare %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(minorUnits[m.currency]) + " " + m.currency
}

type wire struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{Amount: m.amount, Currency: m.currency})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := New(w.Amount, w.Currency)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
