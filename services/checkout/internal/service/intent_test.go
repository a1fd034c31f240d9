package service

import (
	"context"
	"testing"
	"time"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmIntent_PlacesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.Repo, "A", 1_000, 5)
	testutil.SeedCart(t, f.Repo, 1, models.CartLine{ProductID: p.ID, Quantity: 2})

	req := validRequest(1)
	req.PaymentMethod = "bank-transfer"
	req.Notes = "  leave at the door "
	intent, err := f.Intents.SaveIntent(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentBankTransfer, intent.PaymentMethod)

	res, err := f.Intents.ConfirmIntent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "leave at the door", res.Order.Notes)
	assert.Equal(t, 3, testutil.Stock(t, f.Repo, p.ID))

	_, err = f.Repo.FindIntent(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrIntentNotFound)

	_, err = f.Intents.ConfirmIntent(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrIntentNotFound)
	assert.EqualValues(t, 1, testutil.CountOrders(t, f.Repo))
}

func TestConfirmIntent_Expired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.Repo, "A", 1_000, 5)
	testutil.SeedCart(t, f.Repo, 1, models.CartLine{ProductID: p.ID, Quantity: 1})

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.Intents.Now = func() time.Time { return clock }
	f.Intents.TTL = 10 * time.Minute

	_, err := f.Intents.SaveIntent(ctx, validRequest(1))
	require.NoError(t, err)

	clock = clock.Add(10 * time.Minute)
	_, err = f.Intents.ConfirmIntent(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrIntentNotFound)
	assert.EqualValues(t, 0, testutil.CountOrders(t, f.Repo))
	assert.Equal(t, 5, testutil.Stock(t, f.Repo, p.ID))
}

func TestConfirmIntent_FailedPlacementKeepsIntent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.Repo, "A", 1_000, 0)
	testutil.SeedCart(t, f.Repo, 1, models.CartLine{ProductID: p.ID, Quantity: 1})

	_, err := f.Intents.SaveIntent(ctx, validRequest(1))
	require.NoError(t, err)

	_, err = f.Intents.ConfirmIntent(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.Intents.GetIntent(ctx, 1)
	assert.NoError(t, err)
}

func TestSaveIntent_Validates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	req := validRequest(1)
	req.Phone = "123"

	_, err := f.Intents.SaveIntent(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
