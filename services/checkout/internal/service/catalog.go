package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/storefront/pkg/money"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
	"github.com/shopspring/decimal"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Events   Publisher
	Currency string
}

type CreateProductInput struct {
	Name         string
	Description  string
	ImageURL     string
	Price        decimal.Decimal
	Visible      bool
	InitialStock int
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("product name is required")
	}
	if in.InitialStock < 0 {
		return nil, domain.Validationf("initial stock cannot be negative")
	}
	price, err := money.NewPrice(in.Price, s.Currency)
	if err != nil {
		return nil, domain.Validationf("price: %v", err)
	}

	p := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		PriceAmount: price.Amount(),
		Currency:    price.Currency(),
		Visible:     in.Visible,
	}
	if err := s.Repo.CreateProduct(ctx, p, in.InitialStock); err != nil {
		return nil, err
	}

	if in.InitialStock > 0 {
		publishStockMoves(ctx, s.Events, []stockMove{{productID: p.ID, delta: in.InitialStock, available: in.InitialStock}},
			reasonInitialStock, nowOr(nil))
	}
	return p, nil
}

// UpdatePrice changes the catalog price only; placed orders keep the price
// they captured.
func (s *CatalogService) UpdatePrice(ctx context.Context, id uint, amount decimal.Decimal) (*models.Product, error) {
	if id == 0 {
		return nil, domain.Validationf("product id must be positive")
	}
	if _, err := money.NewPrice(amount, s.Currency); err != nil {
		return nil, domain.Validationf("price: %v", err)
	}
	return s.Repo.UpdateProductPrice(ctx, id, amount)
}

func (s *CatalogService) SetVisibility(ctx context.Context, id uint, visible bool) (*models.Product, error) {
	if id == 0 {
		return nil, domain.Validationf("product id must be positive")
	}
	if err := s.Repo.SetProductVisibility(ctx, id, visible); err != nil {
		return nil, err
	}
	return s.Repo.GetProduct(ctx, id)
}
