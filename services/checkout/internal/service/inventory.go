package service

import (
	"context"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
)

const (
	reasonOrderPlaced    = "order_placed"
	reasonOrderCancelled = "order_cancelled"
	reasonRestock        = "restock"
	reasonInitialStock   = "initial_stock"
	reasonAdjustment     = "adjustment"
)

// InventoryLedger is the only writer of available quantities. Other services
// pass their transaction repo to the unexported methods so the ledger change
// commits or rolls back with the rest of their work.
type InventoryLedger struct {
	Repo   *repo.GormRepo
	Events Publisher
}

func (l *InventoryLedger) Available(ctx context.Context, productID uint) (int, error) {
	if productID == 0 {
		return 0, domain.Validationf("product id must be positive")
	}
	return l.Repo.Available(ctx, productID)
}

func (l *InventoryLedger) Decrement(ctx context.Context, productID uint, quantity int) (int, error) {
	left, err := l.decrement(ctx, l.Repo, productID, quantity)
	if err != nil {
		return 0, err
	}
	publishStockMoves(ctx, l.Events, []stockMove{{productID: productID, delta: -quantity, available: left}}, reasonAdjustment, nowOr(nil))
	return left, nil
}

func (l *InventoryLedger) Increment(ctx context.Context, productID uint, quantity int) (int, error) {
	return l.incrementWithReason(ctx, productID, quantity, reasonAdjustment)
}

// Restock is the admin entry point for adding stock.
func (l *InventoryLedger) Restock(ctx context.Context, productID uint, quantity int) (int, error) {
	return l.incrementWithReason(ctx, productID, quantity, reasonRestock)
}

func (l *InventoryLedger) incrementWithReason(ctx context.Context, productID uint, quantity int, reason string) (int, error) {
	left, err := l.increment(ctx, l.Repo, productID, quantity)
	if err != nil {
		return 0, err
	}
	publishStockMoves(ctx, l.Events, []stockMove{{productID: productID, delta: quantity, available: left}}, reason, nowOr(nil))
	return left, nil
}

func (l *InventoryLedger) decrement(ctx context.Context, r *repo.GormRepo, productID uint, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.Validationf("quantity must be positive, got %d", quantity)
	}
	return r.Decrement(ctx, productID, quantity)
}

func (l *InventoryLedger) increment(ctx context.Context, r *repo.GormRepo, productID uint, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.Validationf("quantity must be positive, got %d", quantity)
	}
	return r.Increment(ctx, productID, quantity)
}
