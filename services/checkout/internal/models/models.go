package models

import (
	"time"

	"github.com/Skotchmaster/storefront/pkg/money"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string          `gorm:"not null"                   json:"name"`
	Description string          `gorm:"not null;default:''"        json:"description"`
	ImageURL    string          `gorm:"not null;default:''"        json:"image_url"`
	PriceAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	Currency    string          `gorm:"type:varchar(3);not null"   json:"currency"`
	Visible     bool            `gorm:"not null"                   json:"visible"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p Product) Price() (money.Money, error) {
	return money.New(p.PriceAmount, p.Currency)
}

// InventoryRecord is written only through the ledger's atomic updates.
type InventoryRecord struct {
	ProductID uint      `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Available int       `gorm:"not null;check:available>=0"  json:"available"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Cart struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint       `gorm:"uniqueIndex;not null"     json:"customer_id"`
	Lines      []CartLine `gorm:"foreignKey:CartID"        json:"lines"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartLine struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"               json:"id"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_product;not null"  json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product;not null"  json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity>0"            json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Order struct {
	ID              uint                 `gorm:"primaryKey;autoIncrement"    json:"id"`
	CustomerID      uint                 `gorm:"index;not null"              json:"customer_id"`
	Lines           []OrderLine          `gorm:"foreignKey:OrderID"          json:"lines"`
	TotalAmount     decimal.Decimal      `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	Currency        string               `gorm:"type:varchar(3);not null"    json:"currency"`
	Status          domain.OrderStatus   `gorm:"type:varchar(16);index;not null" json:"status"`
	PaymentMethod   domain.PaymentMethod `gorm:"type:varchar(32);not null"   json:"payment_method"`
	ShippingAddress string               `gorm:"not null"                    json:"shipping_address"`
	Phone           string               `gorm:"not null"                    json:"phone"`
	Notes           string               `gorm:"not null;default:''"         json:"notes"`
	CreatedAt       time.Time            `gorm:"index"                       json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (o Order) Total() (money.Money, error) {
	return money.New(o.TotalAmount, o.Currency)
}

// OrderLine is a price snapshot taken at placement and never updated.
type OrderLine struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID         uint            `gorm:"index;not null"              json:"order_id"`
	ProductID       uint            `gorm:"not null"                    json:"product_id"`
	ProductName     string          `gorm:"not null"                    json:"product_name"`
	Quantity        int             `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPriceAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	Currency        string          `gorm:"type:varchar(3);not null"    json:"currency"`
}

func (l OrderLine) UnitPrice() (money.Money, error) {
	return money.New(l.UnitPriceAmount, l.Currency)
}

func (l OrderLine) Subtotal() (money.Money, error) {
	p, err := l.UnitPrice()
	if err != nil {
		return money.Money{}, err
	}
	return p.Mul(int64(l.Quantity))
}

// CheckoutIntent holds the shipping and payment details between the checkout
// form and the confirmation step.
type CheckoutIntent struct {
	CustomerID      uint                 `gorm:"primaryKey;autoIncrement:false" json:"customer_id"`
	ShippingAddress string               `gorm:"not null"                       json:"shipping_address"`
	Phone           string               `gorm:"not null"                       json:"phone"`
	PaymentMethod   domain.PaymentMethod `gorm:"type:varchar(32);not null"      json:"payment_method"`
	Notes           string               `gorm:"not null;default:''"            json:"notes"`
	ExpiresAt       time.Time            `gorm:"index;not null"                 json:"expires_at"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (i CheckoutIntent) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

func All() []any {
	return []any{&Product{}, &InventoryRecord{}, &Cart{}, &CartLine{}, &Order{}, &OrderLine{}, &CheckoutIntent{}}
}
