package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrder_Ownership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	_, orderID := placeOne(t, f, 1, 1, 5)

	order, err := f.Orders.GetOrder(ctx, domain.Actor{CustomerID: 1}, orderID)
	require.NoError(t, err)
	assert.Len(t, order.Lines, 1)

	_, err = f.Orders.GetOrder(ctx, domain.Actor{CustomerID: 2}, orderID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.Orders.GetOrder(ctx, admin, orderID)
	assert.NoError(t, err)
}

func TestListOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.Repo, "A", 1_000, 10)
	for _, customer := range []uint{1, 1, 2} {
		testutil.SeedCart(t, f.Repo, customer, models.CartLine{ProductID: p.ID, Quantity: 1})
		_, err := f.Placement.PlaceOrder(ctx, validRequest(customer))
		require.NoError(t, err)
	}

	mine, err := f.Orders.ListMyOrders(ctx, 1, 1, 1)
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)
	assert.EqualValues(t, 2, mine.Meta.Total)
	assert.True(t, mine.Meta.HasNext)

	all, err := f.Orders.ListOrders(ctx, "pending", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Meta.Total)

	none, err := f.Orders.ListOrders(ctx, "COMPLETED", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, none.Items)

	_, err = f.Orders.ListOrders(ctx, "archived", 1, 20)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
