package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
	"github.com/Skotchmaster/storefront/services/checkout/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	fail   bool
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *fakePublisher) ofType(typ string) []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []recordedEvent
	for _, e := range p.events {
		switch ev := e.Event.(type) {
		case events.OrderPlaced:
			if ev.Type == typ {
				out = append(out, e)
			}
		case events.OrderStatusChanged:
			if ev.Type == typ {
				out = append(out, e)
			}
		case events.StockChanged:
			if ev.Type == typ {
				out = append(out, e)
			}
		}
	}
	return out
}

type fixture struct {
	Repo      *repo.GormRepo
	Events    *fakePublisher
	Ledger    *InventoryLedger
	Pricing   *PricingCalculator
	Cart      *CartService
	Placement *PlacementService
	Lifecycle *LifecycleService
	Orders    *OrderService
	Intents   *IntentService
	Catalog   *CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	r := testutil.NewRepo(t)
	pub := &fakePublisher{}
	pricing, err := NewPricingCalculator(PricingRules{
		Currency:              "VND",
		ShippingFee:           decimal.NewFromInt(20),
		FreeShippingThreshold: decimal.NewFromInt(500),
		TaxRate:               decimal.RequireFromString("0.10"),
	})
	require.NoError(t, err)

	ledger := &InventoryLedger{Repo: r, Events: pub}
	placement := &PlacementService{Repo: r, Ledger: ledger, Pricing: pricing, Events: pub}
	return &fixture{
		Repo:      r,
		Events:    pub,
		Ledger:    ledger,
		Pricing:   pricing,
		Cart:      &CartService{Repo: r, Pricing: pricing},
		Placement: placement,
		Lifecycle: &LifecycleService{Repo: r, Ledger: ledger, Events: pub},
		Orders:    &OrderService{Repo: r},
		Intents:   &IntentService{Repo: r, Placement: placement},
		Catalog:   &CatalogService{Repo: r, Events: pub, Currency: "VND"},
	}
}

// setAfterPrecheck installs the placement hook for one test. Tests that call
// it must not run in parallel.
func setAfterPrecheck(t *testing.T, fn func(ctx context.Context)) {
	t.Helper()
	afterPrecheck = fn
	t.Cleanup(func() { afterPrecheck = nil })
}

func validRequest(customerID uint) PlaceOrderRequest {
	return PlaceOrderRequest{
		CustomerID:      customerID,
		ShippingAddress: "221B Baker Street, London",
		Phone:           "0901234567",
		PaymentMethod:   "cod",
	}
}
