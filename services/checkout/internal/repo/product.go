package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.ProductNotFoundError{ProductID: id}
		}
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts the product with its inventory record.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product, initialStock int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(prod).Error; err != nil {
			return err
		}
		return tx.Create(&models.InventoryRecord{ProductID: prod.ID, Available: initialStock}).Error
	})
}

func (r *GormRepo) UpdateProductPrice(ctx context.Context, id uint, amount decimal.Decimal) (*models.Product, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("price_amount", amount)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	return r.GetProduct(ctx, id)
}

func (r *GormRepo) SetProductVisibility(ctx context.Context, id uint, visible bool) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("visible", visible)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &domain.ProductNotFoundError{ProductID: id}
	}
	return nil
}
