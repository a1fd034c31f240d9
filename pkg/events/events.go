// Package events holds the payloads exchanged over the event bus between the
// checkout service and its downstream consumers.
package events

import "time"

const (
	TopicOrders    = "order_events"
	TopicInventory = "inventory_events"
)

const (
	TypeOrderPlaced        = "order_placed"
	TypeOrderStatusChanged = "order_status_changed"
	TypeStockChanged       = "stock_changed"
)

type OrderLine struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type OrderPlaced struct {
	Type        string      `json:"type"`
	EventID     string      `json:"event_id"`
	OrderID     uint        `json:"order_id"`
	CustomerID  uint        `json:"customer_id"`
	TotalAmount string      `json:"total_amount"`
	Currency    string      `json:"currency"`
	Lines       []OrderLine `json:"lines"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

type OrderStatusChanged struct {
	Type       string    `json:"type"`
	EventID    string    `json:"event_id"`
	OrderID    uint      `json:"order_id"`
	CustomerID uint      `json:"customer_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StockChanged carries the ledger quantity after a committed mutation.
type StockChanged struct {
	Type       string    `json:"type"`
	EventID    string    `json:"event_id"`
	ProductID  uint      `json:"product_id"`
	Delta      int       `json:"delta"`
	Available  int       `json:"available"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
