package domain

import "strings"

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "COD"
	PaymentBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentCash           PaymentMethod = "CASH"
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
)

var PaymentMethods = []PaymentMethod{PaymentCashOnDelivery, PaymentBankTransfer, PaymentCash, PaymentCreditCard}

var paymentAliases = map[string]PaymentMethod{
	"COD":              PaymentCashOnDelivery,
	"CASH_ON_DELIVERY": PaymentCashOnDelivery,
	"BANK_TRANSFER":    PaymentBankTransfer,
	"CASH":             PaymentCash,
	"CREDIT_CARD":      PaymentCreditCard,
}

// ParsePaymentMethod accepts names case-insensitively with '-' or ' ' as separators.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if key == "" {
		return "", Validationf("payment method is required")
	}
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if pm, ok := paymentAliases[key]; ok {
		return pm, nil
	}
	return "", Validationf("invalid payment method: %s", raw)
}
