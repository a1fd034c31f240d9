package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/pkg/util"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

type OrderPage struct {
	Items []models.Order `json:"items"`
	Meta  util.PageMeta  `json:"meta"`
}

func (s *OrderService) GetOrder(ctx context.Context, actor domain.Actor, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, domain.Validationf("order id must be positive")
	}
	order, err := s.Repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(order.CustomerID) {
		return nil, fmt.Errorf("%w: order %d belongs to another customer", domain.ErrForbidden, orderID)
	}
	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, customerID uint, page, size int) (*OrderPage, error) {
	if customerID == 0 {
		return nil, domain.Validationf("customer id must be positive")
	}
	return s.list(ctx, repo.OrderFilter{CustomerID: customerID}, page, size)
}

// ListOrders lists every customer's orders, optionally narrowed to one status.
func (s *OrderService) ListOrders(ctx context.Context, status string, page, size int) (*OrderPage, error) {
	f := repo.OrderFilter{}
	if status != "" {
		st, err := domain.ParseOrderStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	return s.list(ctx, f, page, size)
}

func (s *OrderService) list(ctx context.Context, f repo.OrderFilter, page, size int) (*OrderPage, error) {
	offset, limit := util.Calculate(page, size)
	f.Offset, f.Limit = offset, limit

	orders, total, err := s.Repo.ListOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return &OrderPage{Items: orders, Meta: util.Meta(page, offset, limit, total)}, nil
}
