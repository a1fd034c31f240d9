package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/util"
	"github.com/Skotchmaster/storefront/services/checkout/internal/service"
	"github.com/Skotchmaster/storefront/services/checkout/internal/transport"
	"github.com/labstack/echo/v4"
)

type AdminHTTP struct {
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Lifecycle *service.LifecycleService
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}
	p, err := h.Catalog.CreateProduct(ctx, service.CreateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Price:        req.Price,
		Visible:      visible,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		return writeError(c, l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminHTTP) UpdatePrice(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_price")

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, l, "update_price_error", err)
	}
	var req transport.UpdatePriceRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_price_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Catalog.UpdatePrice(ctx, id, req.Price)
	if err != nil {
		return writeError(c, l, "update_price_error", err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *AdminHTTP) UpdateVisibility(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_visibility")

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, l, "update_visibility_error", err)
	}
	var req transport.UpdateVisibilityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_visibility_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Catalog.SetVisibility(ctx, id, req.Visible)
	if err != nil {
		return writeError(c, l, "update_visibility_error", err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	out, err := h.Orders.ListOrders(ctx, c.QueryParam("status"), page, size)
	if err != nil {
		return writeError(c, l, "list_orders_error", err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_status")

	a, err := actor(c)
	if err != nil {
		l.Warn("update_status_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, l, "update_status_error", err)
	}
	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Lifecycle.UpdateStatus(ctx, a, id, req.Status)
	if err != nil {
		return writeError(c, l, "update_status_error", err)
	}

	l.Info("update_status_success", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}
