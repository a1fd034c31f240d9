package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/money"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
)

const (
	minAddressLength = 10
	minPhoneLength   = 10
)

type PlaceOrderRequest struct {
	CustomerID      uint
	ShippingAddress string
	Phone           string
	PaymentMethod   string
	Notes           string
}

type PlaceOrderResult struct {
	OrderID     uint          `json:"order_id"`
	TotalAmount money.Money   `json:"total_amount"`
	Quote       Quote         `json:"quote"`
	Order       *models.Order `json:"order"`
}

// PlacementService turns a customer's cart into a PENDING order.
type PlacementService struct {
	Repo    *repo.GormRepo
	Ledger  *InventoryLedger
	Pricing *PricingCalculator
	Events  Publisher
	Now     func() time.Time
}

// afterPrecheck, when set, runs between the read-only pre-check and the
// transaction. Only tests assign it.
var afterPrecheck func(ctx context.Context)

type placement struct {
	customerID uint
	address    string
	phone      string
	method     domain.PaymentMethod
	notes      string
}

// validatePlacement checks the request in a fixed order and returns the
// first failure.
func validatePlacement(req PlaceOrderRequest) (placement, error) {
	if req.CustomerID == 0 {
		return placement{}, domain.Validationf("customer id must be positive")
	}
	address := strings.TrimSpace(req.ShippingAddress)
	if utf8.RuneCountInString(address) < minAddressLength {
		return placement{}, domain.Validationf("shipping address must be at least %d characters", minAddressLength)
	}
	phone := strings.TrimSpace(req.Phone)
	if utf8.RuneCountInString(phone) < minPhoneLength {
		return placement{}, domain.Validationf("phone must be at least %d characters", minPhoneLength)
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return placement{}, err
	}
	return placement{
		customerID: req.CustomerID,
		address:    address,
		phone:      phone,
		method:     method,
		notes:      strings.TrimSpace(req.Notes),
	}, nil
}

func (s *PlacementService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	in, err := validatePlacement(req)
	if err != nil {
		return nil, err
	}
	return s.place(ctx, in, nil)
}

// place pre-checks the whole cart without writing, then decrements stock,
// inserts the order and clears the cart in one transaction. inTx, when set,
// joins the same transaction.
func (s *PlacementService) place(ctx context.Context, in placement, inTx func(tx *repo.GormRepo) error) (*PlaceOrderResult, error) {
	l := logging.FromContext(ctx).With("customer_id", in.customerID)

	cart, err := s.Repo.FindActiveCart(ctx, in.customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	snaps, err := snapshotLines(ctx, s.Repo, cart.Lines)
	if err != nil {
		return nil, err
	}
	for _, snap := range snaps {
		if err := snap.check(); err != nil {
			return nil, err
		}
	}

	order, quote, err := s.buildOrder(in, snaps)
	if err != nil {
		return nil, err
	}

	if afterPrecheck != nil {
		afterPrecheck(ctx)
	}

	var moves []stockMove
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := sameLines(ctx, tx, in.customerID, cart.Lines); err != nil {
			return err
		}
		moves = moves[:0]
		for _, line := range order.Lines {
			left, err := s.Ledger.decrement(ctx, tx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			moves = append(moves, stockMove{productID: line.ProductID, delta: -line.Quantity, available: left})
		}
		if inTx != nil {
			if err := inTx(tx); err != nil {
				return err
			}
		}
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}
		cleared, err := tx.ClearCart(ctx, in.customerID)
		if err != nil {
			return err
		}
		if !cleared {
			return fmt.Errorf("%w: cart changed during checkout", domain.ErrConflict)
		}
		return nil
	})
	if err != nil {
		l.Warn("place_order_rolled_back", "error", err)
		return nil, err
	}

	at := nowOr(s.Now)
	publish(ctx, s.Events, events.TopicOrders, orderKey(order.ID), orderPlacedEvent(order, at))
	publishStockMoves(ctx, s.Events, moves, reasonOrderPlaced, at)

	l.Info("order_placed", "order_id", order.ID, "total", quote.Subtotal.String())
	return &PlaceOrderResult{
		OrderID:     order.ID,
		TotalAmount: quote.Subtotal,
		Quote:       quote,
		Order:       order,
	}, nil
}

// buildOrder snapshots current prices into order lines. The persisted total
// is the item subtotal; tax and shipping only appear in the quote.
func (s *PlacementService) buildOrder(in placement, snaps []lineSnapshot) (*models.Order, Quote, error) {
	lines := make([]models.OrderLine, len(snaps))
	priced := make([]PriceLine, len(snaps))
	for i, snap := range snaps {
		price, err := snap.product.Price()
		if err != nil {
			return nil, Quote{}, err
		}
		if price.Currency() != s.Pricing.Currency() {
			return nil, Quote{}, fmt.Errorf("product %d: %w: priced in %s, store currency is %s",
				snap.product.ID, money.ErrCurrencyMismatch, price.Currency(), s.Pricing.Currency())
		}
		lines[i] = models.OrderLine{
			ProductID:       snap.product.ID,
			ProductName:     snap.product.Name,
			Quantity:        snap.line.Quantity,
			UnitPriceAmount: price.Amount(),
			Currency:        price.Currency(),
		}
		priced[i] = PriceLine{UnitPrice: price, Quantity: snap.line.Quantity}
	}

	quote, err := s.Pricing.Quote(priced)
	if err != nil {
		return nil, Quote{}, err
	}

	return &models.Order{
		CustomerID:      in.customerID,
		Lines:           lines,
		TotalAmount:     quote.Subtotal.Amount(),
		Currency:        quote.Subtotal.Currency(),
		Status:          domain.StatusPending,
		PaymentMethod:   in.method,
		ShippingAddress: in.address,
		Phone:           in.phone,
		Notes:           in.notes,
	}, quote, nil
}

// sameLines locks the cart row for the rest of the transaction and fails when
// the cart changed after it was pre-checked.
func sameLines(ctx context.Context, tx *repo.GormRepo, customerID uint, checked []models.CartLine) error {
	cart, err := tx.LockActiveCart(ctx, customerID)
	if err != nil {
		return err
	}
	if len(cart.Lines) == 0 {
		return domain.ErrEmptyCart
	}
	if len(cart.Lines) != len(checked) {
		return fmt.Errorf("%w: cart changed during checkout", domain.ErrConflict)
	}
	for i := range checked {
		if cart.Lines[i].ProductID != checked[i].ProductID || cart.Lines[i].Quantity != checked[i].Quantity {
			return fmt.Errorf("%w: cart changed during checkout", domain.ErrConflict)
		}
	}
	return nil
}
