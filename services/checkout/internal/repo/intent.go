package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveIntent replaces any intent the customer already has.
func (r *GormRepo) SaveIntent(ctx context.Context, intent *models.CheckoutIntent) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"shipping_address", "phone", "payment_method", "notes", "expires_at", "updated_at"}),
	}).Create(intent).Error
}

func (r *GormRepo) FindIntent(ctx context.Context, customerID uint) (*models.CheckoutIntent, error) {
	var intent models.CheckoutIntent
	if err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).First(&intent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIntentNotFound
		}
		return nil, err
	}
	return &intent, nil
}

func (r *GormRepo) DeleteIntent(ctx context.Context, customerID uint) error {
	return r.DB.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&models.CheckoutIntent{}).Error
}
