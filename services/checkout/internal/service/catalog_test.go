package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_PriceMinorUnit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := testutil.NewRepo(t)
	pub := &fakePublisher{}
	catalog := &CatalogService{Repo: r, Events: pub, Currency: "USD"}

	_, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "Mug", Price: decimal.RequireFromString("10.005")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualValues(t, 0, countProducts(t, catalog))

	p, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "Mug", Price: decimal.RequireFromString("10.50"), InitialStock: 4, Visible: true})
	require.NoError(t, err)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, 4, testutil.Stock(t, r, p.ID))
	require.Len(t, pub.ofType(events.TypeStockChanged), 1)

	_, err = catalog.UpdatePrice(ctx, p.ID, decimal.RequireFromString("9.999"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := catalog.UpdatePrice(ctx, p.ID, decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	assert.True(t, updated.PriceAmount.Equal(decimal.RequireFromString("9.99")))
}

func countProducts(t *testing.T, s *CatalogService) int64 {
	t.Helper()

	var n int64
	require.NoError(t, s.Repo.DB.Table("products").Count(&n).Error)
	return n
}
