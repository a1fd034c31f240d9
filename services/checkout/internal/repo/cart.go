package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindActiveCart returns the customer's cart with lines in insertion order,
// or domain.ErrEmptyCart when the customer never added anything.
func (r *GormRepo) FindActiveCart(ctx context.Context, customerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("customer_id = ?", customerID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	return &cart, nil
}

// LockActiveCart is FindActiveCart with the cart row held FOR UPDATE until the
// surrounding transaction ends. A second checkout of the same cart waits here
// and then sees the lines the first one cleared.
func (r *GormRepo) LockActiveCart(ctx context.Context, customerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cart.ID).Order("id ASC").Find(&cart.Lines).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetOrCreateCart(ctx context.Context, customerID uint) (*models.Cart, error) {
	cart := models.Cart{CustomerID: customerID}
	if err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) FindCartLine(ctx context.Context, cartID, productID uint) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.DB.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartLineAbsent
		}
		return nil, err
	}
	return &line, nil
}

func (r *GormRepo) CreateCartLine(ctx context.Context, line *models.CartLine) error {
	return r.DB.WithContext(ctx).Create(line).Error
}

func (r *GormRepo) SetCartLineQuantity(ctx context.Context, line *models.CartLine, quantity int) error {
	if err := r.DB.WithContext(ctx).Model(line).Update("quantity", quantity).Error; err != nil {
		return err
	}
	line.Quantity = quantity
	return nil
}

func (r *GormRepo) RemoveCartLine(ctx context.Context, customerID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("product_id = ? AND cart_id IN (?)", productID,
			r.DB.Model(&models.Cart{}).Select("id").Where("customer_id = ?", customerID)).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCartLineAbsent
	}
	return nil
}

// ClearCart deletes every line and keeps the cart row. It reports whether any
// line was removed.
func (r *GormRepo) ClearCart(ctx context.Context, customerID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("cart_id IN (?)", r.DB.Model(&models.Cart{}).Select("id").Where("customer_id = ?", customerID)).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
