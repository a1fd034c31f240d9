package service

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
)

const DefaultIntentTTL = 30 * time.Minute

// IntentService keeps the shipping and payment details a customer entered at
// checkout until they confirm, so no request-scoped session is needed.
type IntentService struct {
	Repo      *repo.GormRepo
	Placement *PlacementService
	TTL       time.Duration
	Now       func() time.Time
}

func (s *IntentService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultIntentTTL
}

// SaveIntent validates like PlaceOrder and replaces any earlier intent.
func (s *IntentService) SaveIntent(ctx context.Context, req PlaceOrderRequest) (*models.CheckoutIntent, error) {
	in, err := validatePlacement(req)
	if err != nil {
		return nil, err
	}
	intent := &models.CheckoutIntent{
		CustomerID:      in.customerID,
		ShippingAddress: in.address,
		Phone:           in.phone,
		PaymentMethod:   in.method,
		Notes:           in.notes,
		ExpiresAt:       nowOr(s.Now).Add(s.ttl()),
	}
	if err := s.Repo.SaveIntent(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}

func (s *IntentService) GetIntent(ctx context.Context, customerID uint) (*models.CheckoutIntent, error) {
	intent, err := s.Repo.FindIntent(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if intent.Expired(nowOr(s.Now)) {
		return nil, domain.ErrIntentNotFound
	}
	return intent, nil
}

// ConfirmIntent places the order from a live intent. The intent is deleted in
// the placement transaction, so a confirmed intent cannot be replayed.
func (s *IntentService) ConfirmIntent(ctx context.Context, customerID uint) (*PlaceOrderResult, error) {
	if customerID == 0 {
		return nil, domain.Validationf("customer id must be positive")
	}
	intent, err := s.GetIntent(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrIntentNotFound) {
			if delErr := s.Repo.DeleteIntent(ctx, customerID); delErr != nil {
				logging.FromContext(ctx).Warn("delete_expired_intent_error", "customer_id", customerID, "error", delErr)
			}
		}
		return nil, err
	}

	in := placement{
		customerID: intent.CustomerID,
		address:    intent.ShippingAddress,
		phone:      intent.Phone,
		method:     intent.PaymentMethod,
		notes:      intent.Notes,
	}
	return s.Placement.place(ctx, in, func(tx *repo.GormRepo) error {
		if _, err := tx.FindIntent(ctx, customerID); err != nil {
			return err
		}
		return tx.DeleteIntent(ctx, customerID)
	})
}
