package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/google/uuid"
)

// Publisher is satisfied by *mykafka.Producer.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, string, string, any) error { return nil }

// publish runs after the database commit; a failed publish is logged and
// never undoes the committed change.
func publish(ctx context.Context, p Publisher, topic, key string, event any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "key", key, "error", err)
	}
}

type stockMove struct {
	productID uint
	delta     int
	available int
}

func publishStockMoves(ctx context.Context, p Publisher, moves []stockMove, reason string, at time.Time) {
	for _, m := range moves {
		publish(ctx, p, events.TopicInventory, strconv.FormatUint(uint64(m.productID), 10), events.StockChanged{
			Type:       events.TypeStockChanged,
			EventID:    uuid.NewString(),
			ProductID:  m.productID,
			Delta:      m.delta,
			Available:  m.available,
			Reason:     reason,
			OccurredAt: at,
		})
	}
}

func orderPlacedEvent(order *models.Order, at time.Time) events.OrderPlaced {
	lines := make([]events.OrderLine, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = events.OrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPriceAmount.String(),
		}
	}
	return events.OrderPlaced{
		Type:        events.TypeOrderPlaced,
		EventID:     uuid.NewString(),
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount.String(),
		Currency:    order.Currency,
		Lines:       lines,
		OccurredAt:  at,
	}
}

func orderKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func nowOr(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now().UTC()
}
