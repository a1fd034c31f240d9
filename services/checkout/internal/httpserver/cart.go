package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/services/checkout/internal/service"
	"github.com/Skotchmaster/storefront/services/checkout/internal/transport"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	a, err := actor(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	view, err := h.Svc.View(ctx, a.CustomerID)
	if err != nil {
		return writeError(c, l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	a, err := actor(c)
	if err != nil {
		l.Warn("add_item_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	line, err := h.Svc.AddItem(ctx, a.CustomerID, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, l, "add_item_error", err)
	}

	l.Info("add_item_success", "product_id", line.ProductID, "quantity", line.Quantity)
	return c.JSON(http.StatusCreated, line)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	a, err := actor(c)
	if err != nil {
		l.Warn("update_item_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	productID, err := idParam(c, "product_id")
	if err != nil {
		return writeError(c, l, "update_item_error", err)
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	line, err := h.Svc.UpdateItem(ctx, a.CustomerID, productID, req.Quantity)
	if err != nil {
		return writeError(c, l, "update_item_error", err)
	}

	return c.JSON(http.StatusOK, line)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	a, err := actor(c)
	if err != nil {
		l.Warn("remove_item_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	productID, err := idParam(c, "product_id")
	if err != nil {
		return writeError(c, l, "remove_item_error", err)
	}

	if err := h.Svc.RemoveItem(ctx, a.CustomerID, productID); err != nil {
		return writeError(c, l, "remove_item_error", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	a, err := actor(c)
	if err != nil {
		l.Warn("clear_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cleared, err := h.Svc.Clear(ctx, a.CustomerID)
	if err != nil {
		return writeError(c, l, "clear_cart_error", err)
	}

	l.Info("cart successfully cleared")
	return c.JSON(http.StatusOK, transport.ClearCartResponse{Cleared: cleared})
}
