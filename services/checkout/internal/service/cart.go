package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/pkg/money"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
)

const DefaultMaxAddQuantity = 100

type CartService struct {
	Repo           *repo.GormRepo
	Pricing        *PricingCalculator
	MaxAddQuantity int
}

type CartViewLine struct {
	ProductID   uint         `json:"product_id"`
	Name        string       `json:"name"`
	ImageURL    string       `json:"image_url,omitempty"`
	Quantity    int          `json:"quantity"`
	UnitPrice   *money.Money `json:"unit_price,omitempty"`
	Subtotal    *money.Money `json:"subtotal,omitempty"`
	Available   int          `json:"available"`
	IsAvailable bool         `json:"is_available"`
}

type CartView struct {
	CustomerID uint           `json:"customer_id"`
	Lines      []CartViewLine `json:"lines"`
	Quote      Quote          `json:"quote"`
	// Purchasable is false when any line would fail the checkout pre-check.
	Purchasable bool `json:"purchasable"`
}

func (s *CartService) maxAdd() int {
	if s.MaxAddQuantity > 0 {
		return s.MaxAddQuantity
	}
	return DefaultMaxAddQuantity
}

// AddItem merges quantity into the customer's line for the product, creating
// the cart on first use. The merged quantity may not exceed current stock.
func (s *CartService) AddItem(ctx context.Context, customerID, productID uint, quantity int) (*models.CartLine, error) {
	if customerID == 0 {
		return nil, domain.Validationf("customer id must be positive")
	}
	if productID == 0 {
		return nil, domain.Validationf("product id must be positive")
	}
	if quantity < 1 || quantity > s.maxAdd() {
		return nil, domain.Validationf("quantity must be between 1 and %d, got %d", s.maxAdd(), quantity)
	}

	var out *models.CartLine
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		available, err := purchasable(ctx, tx, productID)
		if err != nil {
			return err
		}
		cart, err := tx.GetOrCreateCart(ctx, customerID)
		if err != nil {
			return err
		}

		line, err := tx.FindCartLine(ctx, cart.ID, productID)
		switch {
		case errors.Is(err, domain.ErrCartLineAbsent):
			if quantity > available {
				return &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: available}
			}
			out = &models.CartLine{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			return tx.CreateCartLine(ctx, out)
		case err != nil:
			return err
		}

		merged := line.Quantity + quantity
		if merged > available {
			return &domain.InsufficientStockError{ProductID: productID, Requested: merged, Available: available}
		}
		if err := tx.SetCartLineQuantity(ctx, line, merged); err != nil {
			return err
		}
		out = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItem sets the line's quantity outright.
func (s *CartService) UpdateItem(ctx context.Context, customerID, productID uint, quantity int) (*models.CartLine, error) {
	if customerID == 0 {
		return nil, domain.Validationf("customer id must be positive")
	}
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be positive, got %d", quantity)
	}

	var out *models.CartLine
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.FindActiveCart(ctx, customerID)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCart) {
				return domain.ErrCartLineAbsent
			}
			return err
		}
		line, err := tx.FindCartLine(ctx, cart.ID, productID)
		if err != nil {
			return err
		}
		available, err := purchasable(ctx, tx, productID)
		if err != nil {
			return err
		}
		if quantity > available {
			return &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: available}
		}
		if err := tx.SetCartLineQuantity(ctx, line, quantity); err != nil {
			return err
		}
		out = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, productID uint) error {
	if customerID == 0 {
		return domain.Validationf("customer id must be positive")
	}
	return s.Repo.RemoveCartLine(ctx, customerID, productID)
}

// Clear reports whether the cart had any lines.
func (s *CartService) Clear(ctx context.Context, customerID uint) (bool, error) {
	if customerID == 0 {
		return false, domain.Validationf("customer id must be positive")
	}
	return s.Repo.ClearCart(ctx, customerID)
}

func (s *CartService) FindActiveCart(ctx context.Context, customerID uint) (*models.Cart, error) {
	return s.Repo.FindActiveCart(ctx, customerID)
}

// View prices the cart and annotates each line with its current stock. A
// customer without a cart gets an empty view.
func (s *CartService) View(ctx context.Context, customerID uint) (*CartView, error) {
	if customerID == 0 {
		return nil, domain.Validationf("customer id must be positive")
	}

	view := &CartView{CustomerID: customerID, Lines: []CartViewLine{}}
	cart, err := s.Repo.FindActiveCart(ctx, customerID)
	if err != nil && !errors.Is(err, domain.ErrEmptyCart) {
		return nil, err
	}

	var lines []models.CartLine
	if cart != nil {
		lines = cart.Lines
	}
	snaps, err := snapshotLines(ctx, s.Repo, lines)
	if err != nil {
		return nil, err
	}

	priced := make([]PriceLine, 0, len(snaps))
	view.Purchasable = len(snaps) > 0
	for _, snap := range snaps {
		vl := CartViewLine{ProductID: snap.line.ProductID, Quantity: snap.line.Quantity}
		checkErr := snap.check()
		if checkErr != nil {
			view.Purchasable = false
		}
		if snap.product != nil {
			price, err := snap.product.Price()
			if err != nil {
				return nil, err
			}
			sub, err := price.Mul(int64(snap.line.Quantity))
			if err != nil {
				return nil, err
			}
			vl.Name = snap.product.Name
			vl.ImageURL = snap.product.ImageURL
			vl.UnitPrice = &price
			vl.Subtotal = &sub
			vl.Available = snap.available
			vl.IsAvailable = checkErr == nil
			priced = append(priced, PriceLine{UnitPrice: price, Quantity: snap.line.Quantity})
		}
		view.Lines = append(view.Lines, vl)
	}

	quote, err := s.Pricing.Quote(priced)
	if err != nil {
		return nil, err
	}
	view.Quote = quote
	return view, nil
}

// purchasable returns current stock for a product that exists and is visible.
func purchasable(ctx context.Context, r *repo.GormRepo, productID uint) (int, error) {
	product, err := r.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !product.Visible {
		return 0, domain.Validationf("product %q is no longer available", product.Name)
	}
	return r.Available(ctx, productID)
}
