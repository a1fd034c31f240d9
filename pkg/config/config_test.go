package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "x")
	t.Setenv("TEST_DUR", "45m")
	t.Setenv("TEST_DEC", "0.15")
	t.Setenv("TEST_NEG_DEC", "-1")

	assert.Equal(t, 42, EnvIntDefault("TEST_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("TEST_BAD_INT", 1))
	assert.Equal(t, "fallback", EnvDefault("TEST_MISSING", "fallback"))
	assert.Equal(t, 45*time.Minute, EnvDurationDefault("TEST_DUR", time.Minute))
	assert.Equal(t, time.Minute, EnvDurationDefault("TEST_MISSING", time.Minute))
	assert.True(t, decimal.RequireFromString("0.15").Equal(EnvDecimalDefault("TEST_DEC", decimal.Zero)))
	assert.True(t, decimal.NewFromInt(20).Equal(EnvDecimalDefault("TEST_NEG_DEC", decimal.NewFromInt(20))))
}
