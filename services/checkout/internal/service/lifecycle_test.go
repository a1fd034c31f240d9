package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = domain.Actor{CustomerID: 100, Admin: true}

func placeOne(t *testing.T, f *fixture, customer uint, qty int, stock int) (*models.Product, uint) {
	t.Helper()

	p := testutil.SeedProduct(t, f.Repo, "Product C", 1_000, stock)
	testutil.SeedCart(t, f.Repo, customer, models.CartLine{ProductID: p.ID, Quantity: qty})
	res, err := f.Placement.PlaceOrder(context.Background(), validRequest(customer))
	require.NoError(t, err)
	return p, res.OrderID
}

func TestCancel_RestoresStock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	p, orderID := placeOne(t, f, 1, 2, 5)
	require.Equal(t, 3, testutil.Stock(t, f.Repo, p.ID))

	order, err := f.Lifecycle.Cancel(ctx, domain.Actor{CustomerID: 1}, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, order.Status)
	assert.Equal(t, 5, testutil.Stock(t, f.Repo, p.ID))

	stored, err := f.Repo.FindOrderByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	changed := f.Events.ofType(events.TypeOrderStatusChanged)
	require.Len(t, changed, 1)
	ev := changed[0].Event.(events.OrderStatusChanged)
	assert.Equal(t, "PENDING", ev.From)
	assert.Equal(t, "CANCELLED", ev.To)
}

func TestCancel_TwiceNeverDoubleRestores(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	p, orderID := placeOne(t, f, 1, 2, 5)

	_, err := f.Lifecycle.Cancel(ctx, domain.Actor{CustomerID: 1}, orderID)
	require.NoError(t, err)

	_, err = f.Lifecycle.Cancel(ctx, admin, orderID)
	var te *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.StatusCancelled, te.From)
	assert.Empty(t, te.Allowed)
	assert.Equal(t, 5, testutil.Stock(t, f.Repo, p.ID))
}

func TestCancel_CompletedOrderRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	p, orderID := placeOne(t, f, 1, 2, 5)

	_, err := f.Lifecycle.Ship(ctx, admin, orderID)
	require.NoError(t, err)
	_, err = f.Lifecycle.Complete(ctx, admin, orderID)
	require.NoError(t, err)

	_, err = f.Lifecycle.Cancel(ctx, domain.Actor{CustomerID: 1}, orderID)
	var te *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.StatusCompleted, te.From)
	assert.Equal(t, domain.StatusCancelled, te.To)
	assert.Empty(t, te.Allowed)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "COMPLETED")

	stored, err := f.Repo.FindOrderByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, 3, testutil.Stock(t, f.Repo, p.ID))
}

func TestTransition_ClosedOverTable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	for _, from := range domain.Statuses {
		for _, to := range domain.Statuses {
			if from.CanTransitionTo(to) {
				continue
			}
			order := &models.Order{
				CustomerID:      1,
				TotalAmount:     decimal.NewFromInt(10),
				Currency:        "VND",
				Status:          from,
				PaymentMethod:   domain.PaymentCash,
				ShippingAddress: "12 Long Street",
				Phone:           "0123456789",
			}
			require.NoError(t, f.Repo.SaveOrder(ctx, order))

			_, err := f.Lifecycle.Transition(ctx, admin, order.ID, to)
			require.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "%s -> %s", from, to)

			stored, err := f.Repo.FindOrderByID(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, from, stored.Status, "%s -> %s must leave status unchanged", from, to)
		}
	}
}

func TestTransition_Permissions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	_, orderID := placeOne(t, f, 1, 1, 5)

	_, err := f.Lifecycle.Ship(ctx, domain.Actor{CustomerID: 1}, orderID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.Lifecycle.Cancel(ctx, domain.Actor{CustomerID: 2}, orderID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.Lifecycle.UpdateStatus(ctx, domain.Actor{CustomerID: 1}, orderID, "SHIPPING")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.Lifecycle.Cancel(ctx, admin, 999)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	_, orderID := placeOne(t, f, 1, 1, 5)

	_, err := f.Lifecycle.UpdateStatus(ctx, admin, orderID, "lost")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "PENDING, SHIPPING, COMPLETED, CANCELLED")

	order, err := f.Lifecycle.UpdateStatus(ctx, admin, orderID, "shipping")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipping, order.Status)

	_, err = f.Lifecycle.UpdateStatus(ctx, admin, orderID, "cancelled")
	var te *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, []domain.OrderStatus{domain.StatusCompleted}, te.Allowed)
}
