package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want PaymentMethod
	}{
		{raw: "cod", want: PaymentCashOnDelivery},
		{raw: "cash-on-delivery", want: PaymentCashOnDelivery},
		{raw: "Bank Transfer", want: PaymentBankTransfer},
		{raw: "BANK_TRANSFER", want: PaymentBankTransfer},
		{raw: "credit_card", want: PaymentCreditCard},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			pm, err := ParsePaymentMethod(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pm)
		})
	}
}

func TestParsePaymentMethod_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParsePaymentMethod("bitcoin")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "bitcoin")

	_, err = ParsePaymentMethod("  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestActor_Owns(t *testing.T) {
	t.Parallel()

	assert.True(t, Actor{CustomerID: 3}.Owns(3))
	assert.False(t, Actor{CustomerID: 4}.Owns(3))
	assert.True(t, Actor{Admin: true}.Owns(3))
	assert.False(t, Actor{}.Owns(0))
}
