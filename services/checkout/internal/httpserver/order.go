package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/util"
	"github.com/Skotchmaster/storefront/services/checkout/internal/service"
	"github.com/Skotchmaster/storefront/services/checkout/internal/transport"
	"github.com/labstack/echo/v4"
)

type OrderHTTP struct {
	Placement *service.PlacementService
	Lifecycle *service.LifecycleService
	Orders    *service.OrderService
	Intents   *service.IntentService
}

func placeRequest(customerID uint, req transport.CheckoutRequest) service.PlaceOrderRequest {
	return service.PlaceOrderRequest{
		CustomerID:      customerID,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	a, err := actor(c)
	if err != nil {
		l.Warn("place_order_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Placement.PlaceOrder(ctx, placeRequest(a.CustomerID, req))
	if err != nil {
		return writeError(c, l, "place_order_error", err)
	}

	l.Info("place_order_success", "order_id", res.OrderID)
	return c.JSON(http.StatusCreated, res)
}

func (h *OrderHTTP) SaveIntent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.save_intent")

	a, err := actor(c)
	if err != nil {
		l.Warn("save_intent_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("save_intent_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	intent, err := h.Intents.SaveIntent(ctx, placeRequest(a.CustomerID, req))
	if err != nil {
		return writeError(c, l, "save_intent_error", err)
	}

	return c.JSON(http.StatusOK, intent)
}

func (h *OrderHTTP) ConfirmIntent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.confirm")

	a, err := actor(c)
	if err != nil {
		l.Warn("confirm_intent_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	res, err := h.Intents.ConfirmIntent(ctx, a.CustomerID)
	if err != nil {
		return writeError(c, l, "confirm_intent_error", err)
	}

	l.Info("confirm_intent_success", "order_id", res.OrderID)
	return c.JSON(http.StatusCreated, res)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	a, err := actor(c)
	if err != nil {
		l.Warn("get_order_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, l, "get_order_error", err)
	}

	order, err := h.Orders.GetOrder(ctx, a, id)
	if err != nil {
		return writeError(c, l, "get_order_error", err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_my_orders")

	a, err := actor(c)
	if err != nil {
		l.Warn("list_orders_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	out, err := h.Orders.ListMyOrders(ctx, a.CustomerID, page, size)
	if err != nil {
		return writeError(c, l, "list_orders_error", err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	a, err := actor(c)
	if err != nil {
		l.Warn("cancel_order_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, l, "cancel_order_error", err)
	}

	order, err := h.Lifecycle.Cancel(ctx, a, id)
	if err != nil {
		return writeError(c, l, "cancel_order_error", err)
	}

	l.Info("cancel_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}
