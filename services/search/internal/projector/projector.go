// Package projector keeps stock figures in the product search index in step
// with the inventory ledger.
package projector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/segmentio/kafka-go"
)

const DefaultIndex = "products"

type Projector struct {
	ES    *elasticsearch.Client
	Index string
}

type availabilityDoc struct {
	ProductID      uint   `json:"product_id"`
	Available      int    `json:"available"`
	InStock        bool   `json:"in_stock"`
	StockUpdatedAt string `json:"stock_updated_at"`
}

func (p *Projector) index() string {
	if p.Index != "" {
		return p.Index
	}
	return DefaultIndex
}

// Apply writes the event's quantity onto the product document, creating a
// stub document when the product was never indexed.
func (p *Projector) Apply(ctx context.Context, ev events.StockChanged) error {
	body := map[string]any{
		"doc": availabilityDoc{
			ProductID:      ev.ProductID,
			Available:      ev.Available,
			InStock:        ev.Available > 0,
			StockUpdatedAt: ev.OccurredAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		},
		"doc_as_upsert": true,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("encode update: %w", err)
	}

	docID := strconv.FormatUint(uint64(ev.ProductID), 10)
	res, err := p.ES.Update(p.index(), docID, &buf,
		p.ES.Update.WithContext(ctx),
		p.ES.Update.WithRetryOnConflict(3),
	)
	if err != nil {
		return fmt.Errorf("update product %s: %w", docID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("update product %s: %s: %s", docID, res.Status(), msg)
	}
	return nil
}

// HandleMessage is a mykafka.Handler. Messages that are not stock events or
// cannot be decoded are skipped so one bad payload cannot stall the topic.
func (p *Projector) HandleMessage(ctx context.Context, msg kafka.Message) error {
	l := logging.FromContext(ctx).With("handler", "projector.stock_changed", "offset", msg.Offset)

	var ev events.StockChanged
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		l.Warn("skip_malformed_event", "error", err)
		return nil
	}
	if ev.Type != events.TypeStockChanged {
		return nil
	}
	if ev.ProductID == 0 {
		l.Warn("skip_malformed_event", "reason", "missing product id")
		return nil
	}

	if err := p.Apply(ctx, ev); err != nil {
		l.Error("apply_stock_changed_error", "product_id", ev.ProductID, "error", err)
		return err
	}
	l.Debug("stock_projected", "product_id", ev.ProductID, "available", ev.Available)
	return nil
}
