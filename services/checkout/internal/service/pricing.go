package service

import (
	"fmt"

	"github.com/Skotchmaster/storefront/pkg/money"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/shopspring/decimal"
)

type PricingRules struct {
	Currency              string
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
}

type PriceLine struct {
	UnitPrice money.Money
	Quantity  int
}

type Quote struct {
	Subtotal money.Money `json:"subtotal"`
	Tax      money.Money `json:"tax"`
	Shipping money.Money `json:"shipping"`
	Total    money.Money `json:"total"`
}

// PricingCalculator is a pure function of its rules and the lines it is given.
type PricingCalculator struct {
	currency  string
	fee       money.Money
	threshold money.Money
	taxRate   decimal.Decimal
}

func NewPricingCalculator(rules PricingRules) (*PricingCalculator, error) {
	fee, err := money.New(rules.ShippingFee, rules.Currency)
	if err != nil {
		return nil, fmt.Errorf("shipping fee: %w", err)
	}
	threshold, err := money.New(rules.FreeShippingThreshold, rules.Currency)
	if err != nil {
		return nil, fmt.Errorf("free shipping threshold: %w", err)
	}
	if rules.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate cannot be negative: %s", rules.TaxRate)
	}
	return &PricingCalculator{
		currency:  fee.Currency(),
		fee:       fee.Round(),
		threshold: threshold,
		taxRate:   rules.TaxRate,
	}, nil
}

func (c *PricingCalculator) Currency() string { return c.currency }

func (c *PricingCalculator) Subtotal(lines []PriceLine) (money.Money, error) {
	total, err := money.Zero(c.currency)
	if err != nil {
		return money.Money{}, err
	}
	for i, l := range lines {
		if l.Quantity <= 0 {
			return money.Money{}, domain.Validationf("line %d: quantity must be positive, got %d", i, l.Quantity)
		}
		sub, err := l.UnitPrice.Mul(int64(l.Quantity))
		if err != nil {
			return money.Money{}, err
		}
		if total, err = total.Add(sub); err != nil {
			return money.Money{}, err
		}
	}
	return total, nil
}

// Quote applies tax and shipping to the subtotal. No lines means nothing to
// ship, so an empty quote is all zeros.
func (c *PricingCalculator) Quote(lines []PriceLine) (Quote, error) {
	subtotal, err := c.Subtotal(lines)
	if err != nil {
		return Quote{}, err
	}
	tax, err := subtotal.MulRate(c.taxRate)
	if err != nil {
		return Quote{}, err
	}

	shipping, _ := money.Zero(c.currency)
	if len(lines) > 0 {
		cmp, err := subtotal.Cmp(c.threshold)
		if err != nil {
			return Quote{}, err
		}
		if cmp < 0 {
			shipping = c.fee
		}
	}

	total, err := subtotal.Add(tax)
	if err != nil {
		return Quote{}, err
	}
	if total, err = total.Add(shipping); err != nil {
		return Quote{}, err
	}
	return Quote{Subtotal: subtotal, Tax: tax, Shipping: shipping, Total: total}, nil
}
