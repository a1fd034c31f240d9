package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
	"github.com/google/uuid"
)

// LifecycleService moves persisted orders through the status machine.
type LifecycleService struct {
	Repo   *repo.GormRepo
	Ledger *InventoryLedger
	Events Publisher
	Now    func() time.Time
}

func (s *LifecycleService) Ship(ctx context.Context, actor domain.Actor, orderID uint) (*models.Order, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: only an admin can ship an order", domain.ErrForbidden)
	}
	return s.Transition(ctx, actor, orderID, domain.StatusShipping)
}

func (s *LifecycleService) Complete(ctx context.Context, actor domain.Actor, orderID uint) (*models.Order, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: only an admin can complete an order", domain.ErrForbidden)
	}
	return s.Transition(ctx, actor, orderID, domain.StatusCompleted)
}

// Cancel is open to the order's owner and to admins. Stock for every line is
// restored in the same transaction as the status change.
func (s *LifecycleService) Cancel(ctx context.Context, actor domain.Actor, orderID uint) (*models.Order, error) {
	return s.Transition(ctx, actor, orderID, domain.StatusCancelled)
}

// UpdateStatus is the admin form of Transition taking a raw status name.
func (s *LifecycleService) UpdateStatus(ctx context.Context, actor domain.Actor, orderID uint, raw string) (*models.Order, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: only an admin can change order status", domain.ErrForbidden)
	}
	target, err := domain.ParseOrderStatus(raw)
	if err != nil {
		return nil, err
	}
	return s.Transition(ctx, actor, orderID, target)
}

func (s *LifecycleService) Transition(ctx context.Context, actor domain.Actor, orderID uint, target domain.OrderStatus) (*models.Order, error) {
	if orderID == 0 {
		return nil, domain.Validationf("order id must be positive")
	}
	if !target.Valid() {
		return nil, domain.Validationf("invalid status %q", target)
	}
	if target != domain.StatusCancelled && !actor.Admin {
		return nil, fmt.Errorf("%w: only an admin can move an order to %s", domain.ErrForbidden, target)
	}

	now := nowOr(s.Now)
	var (
		order *models.Order
		from  domain.OrderStatus
		moves []stockMove
	)
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		order, err = tx.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !actor.Admin && !actor.Owns(order.CustomerID) {
			return fmt.Errorf("%w: order %d belongs to another customer", domain.ErrForbidden, orderID)
		}
		from = order.Status
		if err := from.CheckTransition(target); err != nil {
			return err
		}

		moved, err := tx.UpdateOrderStatus(ctx, orderID, from, target, now)
		if err != nil {
			return err
		}
		if !moved {
			// lost the race; report against the status that won
			current, err := tx.FindOrderByID(ctx, orderID)
			if err != nil {
				return err
			}
			if err := current.Status.CheckTransition(target); err != nil {
				return err
			}
			return fmt.Errorf("%w: order %d was modified concurrently", domain.ErrConflict, orderID)
		}

		if target == domain.StatusCancelled {
			moves = moves[:0]
			for _, line := range order.Lines {
				left, err := s.Ledger.increment(ctx, tx, line.ProductID, line.Quantity)
				if err != nil {
					return err
				}
				moves = append(moves, stockMove{productID: line.ProductID, delta: line.Quantity, available: left})
			}
		}
		order.Status = target
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrders, orderKey(order.ID), events.OrderStatusChanged{
		Type:       events.TypeOrderStatusChanged,
		EventID:    uuid.NewString(),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		From:       string(from),
		To:         string(target),
		OccurredAt: now,
	})
	if len(moves) > 0 {
		publishStockMoves(ctx, s.Events, moves, reasonOrderCancelled, now)
	}

	logging.FromContext(ctx).Info("order_status_changed", "order_id", order.ID, "from", from, "to", target)
	return order, nil
}
