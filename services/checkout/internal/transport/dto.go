package transport

import "github.com/shopspring/decimal"

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type ClearCartResponse struct {
	Cleared bool `json:"cleared"`
}

// CheckoutRequest is the body of both POST /orders and PUT /checkout/intent.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	Phone           string `json:"phone"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"image_url"`
	Price        decimal.Decimal `json:"price"`
	Visible      *bool           `json:"visible"`
	InitialStock int             `json:"initial_stock"`
}

type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type UpdateVisibilityRequest struct {
	Visible bool `json:"visible"`
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// AdjustStockRequest adds stock for a positive delta and removes it for a
// negative one.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

type StockResponse struct {
	ProductID uint `json:"product_id"`
	Available int  `json:"available"`
	InStock   bool `json:"in_stock"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Allowed []string `json:"allowed,omitempty"`
}
