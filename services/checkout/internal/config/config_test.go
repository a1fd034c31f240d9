package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CURRENCY", "usd")
	t.Setenv("SHIPPING_FEE", "4.99")
	t.Setenv("CHECKOUT_INTENT_TTL", "5m")

	cfg := Load()
	assert.Equal(t, "checkout", cfg.ServiceName)
	assert.Equal(t, "USD", cfg.Currency)
	assert.True(t, decimal.RequireFromString("4.99").Equal(cfg.ShippingFee))
	assert.True(t, decimal.NewFromInt(500).Equal(cfg.FreeShippingThreshold))
	assert.True(t, decimal.RequireFromString("0.10").Equal(cfg.TaxRate))
	assert.Equal(t, 5*time.Minute, cfg.IntentTTL)
	assert.Equal(t, 100, cfg.MaxAddQuantity)
	assert.Equal(t, 8080, cfg.ServerPort)
}
