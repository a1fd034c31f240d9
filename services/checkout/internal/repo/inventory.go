package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) Available(ctx context.Context, productID uint) (int, error) {
	var rec models.InventoryRecord
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &domain.ProductNotFoundError{ProductID: productID}
		}
		return 0, err
	}
	return rec.Available, nil
}

// Decrement is a single conditional UPDATE: it only matches when enough stock
// remains, so concurrent callers cannot drive the quantity below zero.
func (r *GormRepo) Decrement(ctx context.Context, productID uint, quantity int) (int, error) {
	res := r.DB.WithContext(ctx).Model(&models.InventoryRecord{}).
		Where("product_id = ? AND available >= ?", productID, quantity).
		Update("available", gorm.Expr("available - ?", quantity))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		available, err := r.Available(ctx, productID)
		if err != nil {
			return 0, err
		}
		return 0, &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: available}
	}
	return r.Available(ctx, productID)
}

func (r *GormRepo) Increment(ctx context.Context, productID uint, quantity int) (int, error) {
	res := r.DB.WithContext(ctx).Model(&models.InventoryRecord{}).
		Where("product_id = ?", productID).
		Update("available", gorm.Expr("available + ?", quantity))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, &domain.ProductNotFoundError{ProductID: productID}
	}
	return r.Available(ctx, productID)
}
