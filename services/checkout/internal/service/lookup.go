package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
	"golang.org/x/sync/errgroup"
)

const lookupConcurrency = 8

type lineSnapshot struct {
	line      models.CartLine
	product   *models.Product
	available int
	// missing is set when the product or its inventory record is gone.
	missing error
}

// snapshotLines loads product and stock for every cart line concurrently.
// Results keep cart order. Missing products are recorded per line; any other
// error aborts the whole lookup.
func snapshotLines(ctx context.Context, r *repo.GormRepo, lines []models.CartLine) ([]lineSnapshot, error) {
	out := make([]lineSnapshot, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for i := range lines {
		i := i
		out[i].line = lines[i]
		g.Go(func() error {
			pid := lines[i].ProductID
			product, err := r.GetProduct(gctx, pid)
			if err != nil {
				return recordMissing(&out[i], err)
			}
			available, err := r.Available(gctx, pid)
			if err != nil {
				return recordMissing(&out[i], err)
			}
			out[i].product = product
			out[i].available = available
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func recordMissing(s *lineSnapshot, err error) error {
	var nf *domain.ProductNotFoundError
	if errors.As(err, &nf) {
		s.missing = err
		return nil
	}
	return err
}

// check reports the first reason the line cannot be bought as-is.
func (s lineSnapshot) check() error {
	if s.missing != nil {
		return s.missing
	}
	if !s.product.Visible {
		return domain.Validationf("product %q is no longer available", s.product.Name)
	}
	if s.available < s.line.Quantity {
		return &domain.InsufficientStockError{
			ProductID: s.line.ProductID,
			Requested: s.line.Quantity,
			Available: s.available,
		}
	}
	return nil
}
