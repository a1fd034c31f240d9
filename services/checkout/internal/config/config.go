package config

import (
	"strings"
	"time"

	base "github.com/Skotchmaster/storefront/pkg/config"
	"github.com/shopspring/decimal"
)

type Config struct {
	base.Config

	Currency              string
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
	IntentTTL             time.Duration
	MaxAddQuantity        int
}

func Load() *Config {
	cfg := &Config{
		Config: base.Load(),

		Currency:              strings.ToUpper(base.EnvDefault("CURRENCY", "VND")),
		ShippingFee:           base.EnvDecimalDefault("SHIPPING_FEE", decimal.NewFromInt(20)),
		FreeShippingThreshold: base.EnvDecimalDefault("FREE_SHIPPING_THRESHOLD", decimal.NewFromInt(500)),
		TaxRate:               base.EnvDecimalDefault("TAX_RATE", decimal.RequireFromString("0.10")),
		IntentTTL:             base.EnvDurationDefault("CHECKOUT_INTENT_TTL", 30*time.Minute),
		MaxAddQuantity:        base.EnvIntDefault("MAX_ADD_QUANTITY", 100),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "checkout"
	}

	base.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	base.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	return cfg
}
