package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/service"
	"github.com/Skotchmaster/storefront/services/checkout/internal/transport"
	"github.com/labstack/echo/v4"
)

type InventoryHTTP struct {
	Ledger *service.InventoryLedger
}

func (h *InventoryHTTP) GetStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.get_stock")

	id, err := idParam(c, "product_id")
	if err != nil {
		return writeError(c, l, "get_stock_error", err)
	}

	available, err := h.Ledger.Available(ctx, id)
	if err != nil {
		return writeError(c, l, "get_stock_error", err)
	}

	return c.JSON(http.StatusOK, transport.StockResponse{ProductID: id, Available: available, InStock: available > 0})
}

func (h *InventoryHTTP) Restock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.restock")

	id, err := idParam(c, "product_id")
	if err != nil {
		return writeError(c, l, "restock_error", err)
	}
	var req transport.RestockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("restock_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	available, err := h.Ledger.Restock(ctx, id, req.Quantity)
	if err != nil {
		return writeError(c, l, "restock_error", err)
	}

	l.Info("restock_success", "product_id", id, "available", available)
	return c.JSON(http.StatusOK, transport.StockResponse{ProductID: id, Available: available, InStock: available > 0})
}

func (h *InventoryHTTP) Adjust(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.adjust")

	id, err := idParam(c, "product_id")
	if err != nil {
		return writeError(c, l, "adjust_stock_error", err)
	}
	var req transport.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("adjust_stock_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var available int
	switch {
	case req.Delta > 0:
		available, err = h.Ledger.Increment(ctx, id, req.Delta)
	case req.Delta < 0:
		available, err = h.Ledger.Decrement(ctx, id, -req.Delta)
	default:
		err = domain.Validationf("delta must not be zero")
	}
	if err != nil {
		return writeError(c, l, "adjust_stock_error", err)
	}

	l.Info("adjust_stock_success", "product_id", id, "delta", req.Delta, "available", available)
	return c.JSON(http.StatusOK, transport.StockResponse{ProductID: id, Available: available, InStock: available > 0})
}
